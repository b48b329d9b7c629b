package discord

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

// captureTransport swallows the outgoing request and answers 204, so REST
// calls can be inspected without touching the network.
type captureTransport struct {
	req *http.Request
}

func (ct *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ct.req = req
	return &http.Response{
		StatusCode: http.StatusNoContent,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

// TestTimeoutMemberSendsAuditReason: the timeout endpoint has no reason
// field, so the reason must travel in the audit log header.
func TestTimeoutMemberSendsAuditReason(t *testing.T) {
	s, err := discordgo.New("Bot token-de-prueba")
	if err != nil {
		t.Fatalf("discordgo.New: %v", err)
	}
	ct := &captureTransport{}
	s.Client = &http.Client{Transport: ct}

	a := NewFilterActions(s)
	if err := a.TimeoutMember("guild-1", "user-1", time.Minute, "filtro de palabras"); err != nil {
		t.Fatalf("TimeoutMember: %v", err)
	}

	if ct.req == nil {
		t.Fatal("no request was sent")
	}
	if got := ct.req.Header.Get("X-Audit-Log-Reason"); got != "filtro de palabras" {
		t.Errorf("X-Audit-Log-Reason = %q, want %q", got, "filtro de palabras")
	}
}

func stateWithGuild(t *testing.T) *discordgo.Session {
	t.Helper()
	s := &discordgo.Session{State: discordgo.NewState(), StateEnabled: true}
	err := s.State.GuildAdd(&discordgo.Guild{
		ID:      "guild-1",
		OwnerID: "owner-1",
		Channels: []*discordgo.Channel{
			{ID: "chan-1", GuildID: "guild-1", Type: discordgo.ChannelTypeGuildText},
		},
	})
	if err != nil {
		t.Fatalf("GuildAdd: %v", err)
	}
	err = s.State.MemberAdd(&discordgo.Member{
		GuildID: "guild-1",
		User:    &discordgo.User{ID: "owner-1"},
		Roles:   []string{},
	})
	if err != nil {
		t.Fatalf("MemberAdd: %v", err)
	}
	return s
}

func TestIncomingFromMessage(t *testing.T) {
	s := stateWithGuild(t)

	m := &discordgo.Message{
		ID:        "msg-1",
		GuildID:   "guild-1",
		ChannelID: "chan-1",
		Content:   "hola mundo",
		Author: &discordgo.User{
			ID:         "owner-1",
			Username:   "pancy",
			GlobalName: "Pancy",
		},
		Member: &discordgo.Member{
			Roles: []string{"role-1", "role-2"},
			Nick:  "Apodo",
		},
	}

	msg := IncomingFromMessage(s, m)
	if msg == nil {
		t.Fatal("IncomingFromMessage returned nil")
	}

	if msg.GuildID != "guild-1" || msg.ChannelID != "chan-1" || msg.MessageID != "msg-1" {
		t.Errorf("ids not carried over: %+v", msg)
	}
	if msg.Content != "hola mundo" {
		t.Errorf("Content = %q", msg.Content)
	}
	if msg.DisplayName != "Apodo" {
		t.Errorf("DisplayName = %q, want the nickname", msg.DisplayName)
	}
	if len(msg.Roles) != 2 {
		t.Errorf("Roles = %v", msg.Roles)
	}
	// The author owns the guild, so state resolution grants every permission
	if msg.Permissions&discordgo.PermissionManageMessages == 0 {
		t.Errorf("owner should have bypass permissions, got %d", msg.Permissions)
	}
}

func TestIncomingFromMessageGlobalName(t *testing.T) {
	s := stateWithGuild(t)

	m := &discordgo.Message{
		ID:        "msg-2",
		GuildID:   "guild-1",
		ChannelID: "chan-1",
		Author: &discordgo.User{
			ID:         "owner-1",
			Username:   "pancy",
			GlobalName: "Pancy Global",
		},
	}

	msg := IncomingFromMessage(s, m)
	if msg == nil {
		t.Fatal("IncomingFromMessage returned nil")
	}
	// Without a nickname the global display name wins over the username
	if msg.DisplayName != "Pancy Global" {
		t.Errorf("DisplayName = %q, want the global name", msg.DisplayName)
	}
}

func TestIncomingFromMessageNilAuthor(t *testing.T) {
	s := stateWithGuild(t)

	if IncomingFromMessage(s, nil) != nil {
		t.Error("nil message should yield nil")
	}
	if IncomingFromMessage(s, &discordgo.Message{ID: "x"}) != nil {
		t.Error("message without author should yield nil")
	}
}
