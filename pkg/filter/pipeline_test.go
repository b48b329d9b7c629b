package filter

import (
	"testing"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

func newTestPipeline(t *testing.T, actions *recordingActions, sink *memorySink, window time.Duration) *EnforcementPipeline {
	t.Helper()
	p, err := NewEnforcementPipeline(actions, sink, NewCooldownTracker(window), testLogger{}, DefaultMuteDuration, testIDs())
	if err != nil {
		t.Fatalf("NewEnforcementPipeline: %v", err)
	}
	return p
}

func wordMatch(term string) *MatchResult {
	return &MatchResult{Term: term, Kind: models.MatchKindWord}
}

func TestPipelineActions(t *testing.T) {
	tests := []struct {
		action   models.FilterAction
		deletes  int
		dms      int
		timeouts int
		kicks    int
		bans     int
	}{
		{models.FilterActionDelete, 1, 0, 0, 0, 0},
		{models.FilterActionWarn, 1, 1, 0, 0, 0},
		{models.FilterActionMute, 1, 1, 1, 0, 0},
		{models.FilterActionKick, 1, 1, 0, 1, 0},
		{models.FilterActionBan, 1, 1, 0, 0, 1},
		{models.FilterActionLogOnly, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			actions := &recordingActions{}
			sink := &memorySink{}
			p := newTestPipeline(t, actions, sink, time.Second)

			cfg := baseConfig()
			cfg.Action = tt.action
			got := p.Handle(testPolicy(t, cfg), baseMessage("spam"), wordMatch("spam"))

			if got != tt.action {
				t.Errorf("Handle returned %v, want %v", got, tt.action)
			}
			if actions.deletes != tt.deletes || actions.dms != tt.dms ||
				actions.timeouts != tt.timeouts || actions.kicks != tt.kicks || actions.bans != tt.bans {
				t.Errorf("sub-actions = del:%d dm:%d to:%d kick:%d ban:%d, want del:%d dm:%d to:%d kick:%d ban:%d",
					actions.deletes, actions.dms, actions.timeouts, actions.kicks, actions.bans,
					tt.deletes, tt.dms, tt.timeouts, tt.kicks, tt.bans)
			}
			if sink.count() != 1 {
				t.Errorf("violations appended = %d, want 1", sink.count())
			}
		})
	}
}

// TestPipelineCooldown: two violations inside the window yield exactly one
// full run (DM + record) and one extra delete-only action.
func TestPipelineCooldown(t *testing.T) {
	actions := &recordingActions{}
	sink := &memorySink{}
	p := newTestPipeline(t, actions, sink, time.Minute)

	cfg := baseConfig()
	cfg.Action = models.FilterActionWarn
	policy := testPolicy(t, cfg)

	p.Handle(policy, baseMessage("spam"), wordMatch("spam"))
	p.Handle(policy, baseMessage("spam otra vez"), wordMatch("spam"))

	if actions.deletes != 2 {
		t.Errorf("deletes = %d, want 2", actions.deletes)
	}
	if actions.dms != 1 {
		t.Errorf("dms = %d, want 1 (no DM during cooldown)", actions.dms)
	}
	if sink.count() != 1 {
		t.Errorf("violations appended = %d, want 1 (no duplicate record during cooldown)", sink.count())
	}
}

// TestPipelineCooldownDoesNotExtend: a suppressed run must not refresh the
// cooldown timestamp.
func TestPipelineCooldownDoesNotExtend(t *testing.T) {
	actions := &recordingActions{}
	sink := &memorySink{}
	p := newTestPipeline(t, actions, sink, 100*time.Millisecond)

	policy := testPolicy(t, baseConfig())
	msg := baseMessage("spam")

	p.Handle(policy, msg, wordMatch("spam"))
	time.Sleep(60 * time.Millisecond)
	p.Handle(policy, msg, wordMatch("spam")) // suppressed, must not extend
	time.Sleep(60 * time.Millisecond)        // first run is now past the window
	p.Handle(policy, msg, wordMatch("spam"))

	if sink.count() != 2 {
		t.Errorf("violations appended = %d, want 2", sink.count())
	}
}

// TestPipelineBestEffort: a failing sub-action never aborts its siblings.
func TestPipelineBestEffort(t *testing.T) {
	actions := &recordingActions{failDel: true, failDM: true}
	sink := &memorySink{}
	p := newTestPipeline(t, actions, sink, time.Second)

	cfg := baseConfig()
	cfg.Action = models.FilterActionKick
	p.Handle(testPolicy(t, cfg), baseMessage("spam"), wordMatch("spam"))

	if actions.kicks != 1 {
		t.Error("kick should still run after delete and DM failures")
	}
	if sink.count() != 1 {
		t.Error("violation should still be recorded")
	}
}

// TestPipelineModLogPrivacy: the mod-log entry carries term, kind and action
// but never the message content.
func TestPipelineModLog(t *testing.T) {
	actions := &recordingActions{}
	sink := &memorySink{}
	p := newTestPipeline(t, actions, sink, time.Second)

	cfg := baseConfig()
	cfg.LogViolations = true
	cfg.LogChannelID = "log-channel"
	msg := baseMessage("raw secret content with spam inside")
	p.Handle(testPolicy(t, cfg), msg, wordMatch("spam"))

	if len(actions.modLogs) != 1 {
		t.Fatalf("mod logs = %d, want 1", len(actions.modLogs))
	}
	entry := actions.modLogs[0]
	if entry.Term != "spam" || entry.Kind != models.MatchKindWord || entry.Action != models.FilterActionDelete {
		t.Errorf("unexpected mod-log entry: %+v", entry)
	}
}

func TestPipelineDisplayNameIsLogOnly(t *testing.T) {
	actions := &recordingActions{}
	sink := &memorySink{}
	p := newTestPipeline(t, actions, sink, time.Second)

	cfg := baseConfig()
	cfg.Action = models.FilterActionBan
	match := wordMatch("spam")
	match.FromDisplayName = true

	got := p.Handle(testPolicy(t, cfg), baseMessage("limpio"), match)
	if got != models.FilterActionLogOnly {
		t.Errorf("Handle returned %v, want %v", got, models.FilterActionLogOnly)
	}
	if actions.total() != 0 {
		t.Error("display-name match must not mutate anything")
	}
	if sink.count() != 1 {
		t.Error("display-name match should still be recorded")
	}
}
