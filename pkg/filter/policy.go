package filter

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// FilterPolicy is the compiled, immutable per-guild policy value. It is
// built once per cache refresh from the raw config row and never mutated:
// config changes produce a whole new policy.
type FilterPolicy struct {
	GuildID           string
	Enabled           bool
	Action            models.FilterAction
	Mode              models.FilterMode
	CustomMessage     string
	LogViolations     bool
	LogChannelID      string
	FilterDisplayName bool
	Words             []*CompiledPattern
	Phrases           []*CompiledPattern

	whitelistChannels map[string]struct{}
	whitelistRoles    map[string]struct{}
}

// BuildPolicy compiles a raw config row into a FilterPolicy. Patterns that
// fail to compile are skipped with a warning; they never abort the rest of
// the list. A nil row yields the disabled policy (not configured).
func BuildPolicy(cfg *models.FilterConfig, log Logger) *FilterPolicy {
	if cfg == nil {
		return DisabledPolicy("")
	}

	p := &FilterPolicy{
		GuildID:           cfg.GuildID,
		Enabled:           cfg.Enabled,
		Action:            cfg.Action,
		Mode:              cfg.Mode,
		CustomMessage:     cfg.CustomMessage,
		LogViolations:     cfg.LogViolations,
		LogChannelID:      cfg.LogChannelID,
		FilterDisplayName: cfg.FilterDisplayName,
		whitelistChannels: make(map[string]struct{}, len(cfg.WhitelistChannels)),
		whitelistRoles:    make(map[string]struct{}, len(cfg.WhitelistRoles)),
	}

	if !p.Action.IsValid() {
		p.Action = models.FilterActionDelete
	}
	if !p.Mode.IsValid() {
		p.Mode = models.FilterModeContains
	}

	for _, id := range cfg.WhitelistChannels {
		p.whitelistChannels[id] = struct{}{}
	}
	for _, id := range cfg.WhitelistRoles {
		p.whitelistRoles[id] = struct{}{}
	}

	for _, w := range cfg.Words {
		cp, ok := CompilePattern(w, p.Mode, models.MatchKindWord)
		if !ok {
			log.Warn(fmt.Sprintf("Patrón inválido ignorado en guild %s: %q", cfg.GuildID, w), "Filter")
			continue
		}
		p.Words = append(p.Words, cp)
	}
	for _, ph := range cfg.Phrases {
		cp, ok := CompilePattern(ph, p.Mode, models.MatchKindPhrase)
		if !ok {
			log.Warn(fmt.Sprintf("Frase inválida ignorada en guild %s: %q", cfg.GuildID, ph), "Filter")
			continue
		}
		p.Phrases = append(p.Phrases, cp)
	}

	return p
}

// DisabledPolicy returns the policy used when a guild has no configuration
// or the config store is unavailable: filtering off, nothing else set.
func DisabledPolicy(guildID string) *FilterPolicy {
	return &FilterPolicy{
		GuildID: guildID,
		Enabled: false,
		Action:  models.FilterActionDelete,
		Mode:    models.FilterModeContains,
	}
}

// Smart reports whether the policy uses smart normalization.
func (p *FilterPolicy) Smart() bool {
	return p.Mode == models.FilterModeSmart
}

// ChannelWhitelisted reports whether a channel is exempt from filtering.
func (p *FilterPolicy) ChannelWhitelisted(channelID string) bool {
	_, ok := p.whitelistChannels[channelID]
	return ok
}

// AnyRoleWhitelisted reports whether any of the member's roles is exempt.
func (p *FilterPolicy) AnyRoleWhitelisted(roleIDs []string) bool {
	if len(p.whitelistRoles) == 0 {
		return false
	}
	for _, id := range roleIDs {
		if _, ok := p.whitelistRoles[id]; ok {
			return true
		}
	}
	return false
}

// HasPatterns reports whether the policy has at least one compiled pattern.
func (p *FilterPolicy) HasPatterns() bool {
	return len(p.Words) > 0 || len(p.Phrases) > 0
}
