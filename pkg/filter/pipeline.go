package filter

import (
	"errors"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// DefaultMuteDuration is the member timeout applied by the mute action.
const DefaultMuteDuration = 5 * time.Minute

// ModLogEntry is the structured notification emitted to the configured
// mod-log destination. It carries the matched term, kind and action; the
// raw message content is never included.
type ModLogEntry struct {
	GuildID   string
	UserID    string
	ChannelID string
	Term      string
	Kind      models.MatchKind
	Action    models.FilterAction
	Cooldown  bool
}

// Actions are the destructive capabilities the pipeline drives. Every call
// is best-effort and attempted exactly once: a permission error, an already
// deleted message or closed DMs are logged and dropped, never retried.
type Actions interface {
	DeleteMessage(channelID, messageID string) error
	SendDirectMessage(userID, content string) error
	TimeoutMember(guildID, userID string, duration time.Duration, reason string) error
	KickMember(guildID, userID, reason string) error
	BanMember(guildID, userID, reason string) error
	SendModLog(channelID string, entry ModLogEntry) error
}

// ViolationSink receives the audit record of a full enforcement run. The
// sink must not block: the enforcement decision completes independent of
// whether the audit write has finished.
type ViolationSink interface {
	Append(v *models.Violation)
}

// EnforcementPipeline turns a match into the graduated, cooldown-aware
// enforcement response.
type EnforcementPipeline struct {
	actions      Actions
	sink         ViolationSink
	cooldowns    *CooldownTracker
	log          Logger
	muteDuration time.Duration
	now          func() time.Time
	newID        func() string
}

// NewEnforcementPipeline creates a pipeline. All collaborators are required.
func NewEnforcementPipeline(actions Actions, sink ViolationSink, cooldowns *CooldownTracker, log Logger, muteDuration time.Duration, newID func() string) (*EnforcementPipeline, error) {
	if actions == nil {
		return nil, errors.New("filter: actions are required")
	}
	if sink == nil {
		return nil, errors.New("filter: violation sink is required")
	}
	if cooldowns == nil {
		return nil, errors.New("filter: cooldown tracker is required")
	}
	if log == nil {
		return nil, errors.New("filter: logger is required")
	}
	if newID == nil {
		return nil, errors.New("filter: id generator is required")
	}
	if muteDuration <= 0 {
		muteDuration = DefaultMuteDuration
	}
	return &EnforcementPipeline{
		actions:      actions,
		sink:         sink,
		cooldowns:    cooldowns,
		log:          log,
		muteDuration: muteDuration,
		now:          time.Now,
		newID:        newID,
	}, nil
}

// Handle runs the enforcement response for a match and returns the action
// that was applied.
//
// Inside the cooldown window only the minimal action runs (delete the
// message), with no DM, no escalation and no duplicate mod-log entry, so a
// burst of rapid violations cannot flood moderation actions. A full run appends
// the violation record, executes the configured action with each
// destructive sub-action independently best-effort, emits the mod-log entry
// if configured, and only then updates the cooldown timestamp.
func (p *EnforcementPipeline) Handle(policy *FilterPolicy, msg *IncomingMessage, match *MatchResult) models.FilterAction {
	action := policy.Action
	if match.FromDisplayName {
		// A name cannot be deleted; report only.
		action = models.FilterActionLogOnly
	}

	if p.cooldowns.OnCooldown(msg.GuildID, msg.UserID) {
		if action != models.FilterActionLogOnly {
			p.try("delete", p.actions.DeleteMessage(msg.ChannelID, msg.MessageID))
		}
		p.log.Debug(fmt.Sprintf("Cooldown activo para %s en %s, solo borrado", msg.UserID, msg.GuildID), "Enforcement")
		return action
	}

	p.sink.Append(&models.Violation{
		ID:        p.newID(),
		GuildID:   msg.GuildID,
		UserID:    msg.UserID,
		ChannelID: msg.ChannelID,
		Term:      match.Term,
		Kind:      match.Kind,
		Action:    action,
		Timestamp: p.now().UnixMilli(),
	})

	notice := policy.CustomMessage
	if notice == "" {
		notice = "🚫 Tu mensaje fue eliminado por contener palabras filtradas en este servidor."
	}
	reason := fmt.Sprintf("Filtro de palabras: %s (%s)", match.Term, match.Kind)

	switch action {
	case models.FilterActionDelete:
		p.try("delete", p.actions.DeleteMessage(msg.ChannelID, msg.MessageID))
	case models.FilterActionWarn:
		p.try("delete", p.actions.DeleteMessage(msg.ChannelID, msg.MessageID))
		p.try("dm", p.actions.SendDirectMessage(msg.UserID, notice))
	case models.FilterActionMute:
		p.try("delete", p.actions.DeleteMessage(msg.ChannelID, msg.MessageID))
		p.try("timeout", p.actions.TimeoutMember(msg.GuildID, msg.UserID, p.muteDuration, reason))
		p.try("dm", p.actions.SendDirectMessage(msg.UserID, notice))
	case models.FilterActionKick:
		p.try("delete", p.actions.DeleteMessage(msg.ChannelID, msg.MessageID))
		p.try("dm", p.actions.SendDirectMessage(msg.UserID, notice))
		p.try("kick", p.actions.KickMember(msg.GuildID, msg.UserID, reason))
	case models.FilterActionBan:
		p.try("delete", p.actions.DeleteMessage(msg.ChannelID, msg.MessageID))
		p.try("dm", p.actions.SendDirectMessage(msg.UserID, notice))
		p.try("ban", p.actions.BanMember(msg.GuildID, msg.UserID, reason))
	case models.FilterActionLogOnly:
		// no message mutation
	}

	if policy.LogViolations && policy.LogChannelID != "" {
		p.try("modlog", p.actions.SendModLog(policy.LogChannelID, ModLogEntry{
			GuildID:   msg.GuildID,
			UserID:    msg.UserID,
			ChannelID: msg.ChannelID,
			Term:      match.Term,
			Kind:      match.Kind,
			Action:    action,
		}))
	}

	p.cooldowns.MarkEnforced(msg.GuildID, msg.UserID)
	return action
}

// try logs a failed sub-action and drops it. Sub-actions are independent:
// one failing never aborts its siblings in the same run.
func (p *EnforcementPipeline) try(name string, err error) {
	if err != nil {
		p.log.Warn(fmt.Sprintf("Sub-acción '%s' falló: %v", name, err), "Enforcement")
	}
}
