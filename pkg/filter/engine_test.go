package filter

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

func testPolicy(t *testing.T, cfg *models.FilterConfig) *FilterPolicy {
	t.Helper()
	return BuildPolicy(cfg, testLogger{})
}

func baseConfig() *models.FilterConfig {
	return &models.FilterConfig{
		GuildID: "g1",
		Enabled: true,
		Action:  models.FilterActionDelete,
		Mode:    models.FilterModeContains,
		Words:   []string{"spam"},
	}
}

func baseMessage(content string) *IncomingMessage {
	return &IncomingMessage{
		GuildID:   "g1",
		ChannelID: "c1",
		MessageID: "m1",
		UserID:    "u1",
		Content:   content,
	}
}

func TestEvaluateGuards(t *testing.T) {
	engine, err := NewMatchEngine(testLogger{})
	if err != nil {
		t.Fatalf("NewMatchEngine: %v", err)
	}

	tests := []struct {
		name   string
		cfg    func(*models.FilterConfig)
		msg    func(*IncomingMessage)
		wantIt bool
	}{
		{"matching baseline", func(c *models.FilterConfig) {}, func(m *IncomingMessage) {}, true},
		{"disabled", func(c *models.FilterConfig) { c.Enabled = false }, func(m *IncomingMessage) {}, false},
		{"whitelisted channel", func(c *models.FilterConfig) { c.WhitelistChannels = []string{"c1"} }, func(m *IncomingMessage) {}, false},
		{"whitelisted role", func(c *models.FilterConfig) { c.WhitelistRoles = []string{"r9"} }, func(m *IncomingMessage) { m.Roles = []string{"r9"} }, false},
		{"bypass permission", func(c *models.FilterConfig) {}, func(m *IncomingMessage) { m.Permissions = discordgo.PermissionManageMessages }, false},
		{"admin permission", func(c *models.FilterConfig) {}, func(m *IncomingMessage) { m.Permissions = discordgo.PermissionAdministrator }, false},
		{"empty pattern list", func(c *models.FilterConfig) { c.Words = nil }, func(m *IncomingMessage) {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.cfg(cfg)
			msg := baseMessage("this is SPAM now")
			tt.msg(msg)

			match := engine.Evaluate(testPolicy(t, cfg), msg)
			if (match != nil) != tt.wantIt {
				t.Errorf("Evaluate() match = %v, want match %v", match, tt.wantIt)
			}
		})
	}
}

// TestFindFirstMatchWins verifies the earliest-configured pattern is
// reported, not the longest or most severe one.
func TestFindFirstMatchWins(t *testing.T) {
	engine, _ := NewMatchEngine(testLogger{})
	cfg := baseConfig()
	cfg.Words = []string{"b", "ab"}

	match := engine.Find("xabx", testPolicy(t, cfg))
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Term != "b" {
		t.Errorf("Term = %q, want %q", match.Term, "b")
	}
}

func TestFindWordsBeforePhrases(t *testing.T) {
	engine, _ := NewMatchEngine(testLogger{})
	cfg := baseConfig()
	cfg.Words = []string{"mundo"}
	cfg.Phrases = []string{"hola mundo"}

	match := engine.Find("hola mundo", testPolicy(t, cfg))
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Kind != models.MatchKindWord {
		t.Errorf("Kind = %v, want %v", match.Kind, models.MatchKindWord)
	}
	if match.Term != "mundo" {
		t.Errorf("Term = %q, want %q", match.Term, "mundo")
	}
}

func TestEvaluateSmartMode(t *testing.T) {
	engine, _ := NewMatchEngine(testLogger{})

	cfg := baseConfig()
	cfg.Words = []string{"hello"}
	cfg.Mode = models.FilterModeSmart
	if match := engine.Evaluate(testPolicy(t, cfg), baseMessage("h3ll0")); match == nil {
		t.Error("smart mode should decode h3ll0")
	}

	cfg.Mode = models.FilterModeContains
	if match := engine.Evaluate(testPolicy(t, cfg), baseMessage("h3ll0")); match != nil {
		t.Error("plain mode should not decode h3ll0")
	}
}

func TestEvaluateDisplayName(t *testing.T) {
	engine, _ := NewMatchEngine(testLogger{})
	cfg := baseConfig()
	cfg.FilterDisplayName = true

	msg := baseMessage("totalmente normal")
	msg.DisplayName = "spam lord"

	match := engine.Evaluate(testPolicy(t, cfg), msg)
	if match == nil {
		t.Fatal("expected a display-name match")
	}
	if !match.FromDisplayName {
		t.Error("FromDisplayName should be set")
	}

	// Disabled display-name filtering ignores the name.
	cfg.FilterDisplayName = false
	if match := engine.Evaluate(testPolicy(t, cfg), msg); match != nil {
		t.Error("display name should be ignored when disabled")
	}
}
