package filter

import (
	"sync"
	"time"
)

// DefaultCooldownWindow is the minimum interval between two full enforcement
// runs for the same (guild, user) pair.
const DefaultCooldownWindow = 5 * time.Second

// CooldownTracker remembers the last full enforcement per (guild, user).
// State lives in process memory only and is never persisted. sync.Map keeps
// unrelated users from contending on a single lock.
type CooldownTracker struct {
	window time.Duration
	last   sync.Map // "guildID:userID" -> time.Time
}

// NewCooldownTracker creates a tracker. A window <= 0 falls back to
// DefaultCooldownWindow.
func NewCooldownTracker(window time.Duration) *CooldownTracker {
	if window <= 0 {
		window = DefaultCooldownWindow
	}
	return &CooldownTracker{window: window}
}

func cooldownKey(guildID, userID string) string {
	return guildID + ":" + userID
}

// OnCooldown reports whether the pair had a full enforcement run within the
// cooldown window.
func (t *CooldownTracker) OnCooldown(guildID, userID string) bool {
	v, ok := t.last.Load(cooldownKey(guildID, userID))
	if !ok {
		return false
	}
	return time.Since(v.(time.Time)) < t.window
}

// MarkEnforced records a full enforcement run for the pair. Only full runs
// update the timestamp; cooldown-suppressed deletes do not.
func (t *CooldownTracker) MarkEnforced(guildID, userID string) {
	t.last.Store(cooldownKey(guildID, userID), time.Now())
}
