package filter

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// IncomingMessage is the platform-independent view of a message the engine
// evaluates. The discord adapter fills it from a discordgo event.
type IncomingMessage struct {
	GuildID     string
	ChannelID   string
	MessageID   string
	UserID      string
	IsBot       bool
	Content     string
	Roles       []string
	DisplayName string
	// Permissions are the author's resolved permissions in the channel.
	Permissions int64
}

// HasBypass reports whether the author holds a moderation permission that
// exempts them from filtering.
func (m *IncomingMessage) HasBypass() bool {
	return m.Permissions&(discordgo.PermissionAdministrator|discordgo.PermissionManageMessages) != 0
}

// MatchResult describes the first pattern that matched.
type MatchResult struct {
	Term string
	Kind models.MatchKind
	// FromDisplayName marks a match against the author's display name
	// rather than the message content. Names cannot be deleted, so these
	// are always enforced log-only.
	FromDisplayName bool
}

// MatchEngine scans normalized text against a policy's compiled patterns.
type MatchEngine struct {
	log Logger
}

// NewMatchEngine creates a MatchEngine.
func NewMatchEngine(log Logger) (*MatchEngine, error) {
	if log == nil {
		return nil, errors.New("filter: logger is required")
	}
	return &MatchEngine{log: log}, nil
}

// Find returns the first matching pattern in the policy's configured order:
// the word list is scanned before the phrase list, and within each list the
// first match wins, not the longest and not the most severe.
func (e *MatchEngine) Find(normalized string, policy *FilterPolicy) *MatchResult {
	for _, p := range policy.Words {
		if p.Matches(normalized) {
			return &MatchResult{Term: p.Source, Kind: p.Kind}
		}
	}
	for _, p := range policy.Phrases {
		if p.Matches(normalized) {
			return &MatchResult{Term: p.Source, Kind: p.Kind}
		}
	}
	return nil
}

// Evaluate applies the guard chain and, when it passes, normalizes the
// message content and scans it. Each guard is a hard short-circuit to
// "no match": filter disabled, whitelisted channel, whitelisted role,
// bypass permission, empty pattern list.
//
// When display-name filtering is enabled and the content is clean, the
// author's display name is normalized and scanned separately.
func (e *MatchEngine) Evaluate(policy *FilterPolicy, msg *IncomingMessage) *MatchResult {
	if !policy.Enabled {
		return nil
	}
	if policy.ChannelWhitelisted(msg.ChannelID) {
		return nil
	}
	if policy.AnyRoleWhitelisted(msg.Roles) {
		return nil
	}
	if msg.HasBypass() {
		return nil
	}
	if !policy.HasPatterns() {
		return nil
	}

	normalized := Normalize(msg.Content, policy.Smart())
	if match := e.Find(normalized, policy); match != nil {
		return match
	}

	if policy.FilterDisplayName && msg.DisplayName != "" {
		name := Normalize(msg.DisplayName, policy.Smart())
		if match := e.Find(name, policy); match != nil {
			match.FromDisplayName = true
			return match
		}
	}

	return nil
}
