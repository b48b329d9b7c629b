// Package discord - adapter between the filter pipeline and the Discord API.
package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/PancyStudios/PancyGuardGo/pkg/filter"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// FilterActions implements the filter.Actions capability on top of a
// discordgo session. Every method is a single attempt; the pipeline owns
// the best-effort semantics.
type FilterActions struct {
	session *discordgo.Session
}

// NewFilterActions creates the enforcement adapter.
func NewFilterActions(session *discordgo.Session) *FilterActions {
	return &FilterActions{session: session}
}

// DeleteMessage removes the offending message.
func (a *FilterActions) DeleteMessage(channelID, messageID string) error {
	return a.session.ChannelMessageDelete(channelID, messageID)
}

// SendDirectMessage opens (or reuses) the user's DM channel and sends the
// notice.
func (a *FilterActions) SendDirectMessage(userID, content string) error {
	channel, err := a.session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = a.session.ChannelMessageSend(channel.ID, content)
	return err
}

// TimeoutMember applies a communication timeout (mute) to the member. The
// timeout endpoint takes no reason parameter, so it travels in the audit log
// header like the kick and ban reasons do.
func (a *FilterActions) TimeoutMember(guildID, userID string, duration time.Duration, reason string) error {
	until := time.Now().Add(duration)
	return a.session.GuildMemberTimeout(guildID, userID, &until, discordgo.WithAuditLogReason(reason))
}

// KickMember kicks the member from the guild.
func (a *FilterActions) KickMember(guildID, userID, reason string) error {
	return a.session.GuildMemberDeleteWithReason(guildID, userID, reason)
}

// BanMember bans the member without deleting message history.
func (a *FilterActions) BanMember(guildID, userID, reason string) error {
	return a.session.GuildBanCreateWithReason(guildID, userID, reason, 0)
}

// SendModLog posts the structured violation embed to the mod-log channel.
// The embed carries term, kind and action only, never the message content.
func (a *FilterActions) SendModLog(channelID string, entry filter.ModLogEntry) error {
	embed := &discordgo.MessageEmbed{
		Title: "🚫 Filtro de palabras",
		Color: 0xE74C3C,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Usuario", Value: fmt.Sprintf("<@%s>", entry.UserID), Inline: true},
			{Name: "Canal", Value: fmt.Sprintf("<#%s>", entry.ChannelID), Inline: true},
			{Name: "Acción", Value: string(entry.Action), Inline: true},
			{Name: "Término", Value: fmt.Sprintf("||%s||", entry.Term), Inline: true},
			{Name: "Tipo", Value: string(entry.Kind), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "PancyGuard Go",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	_, err := a.session.ChannelMessageSendEmbed(channelID, embed)
	return err
}

// IncomingFromMessage converts a discordgo message event into the
// platform-independent view the filter evaluates.
func IncomingFromMessage(s *discordgo.Session, m *discordgo.Message) *filter.IncomingMessage {
	if m == nil || m.Author == nil {
		return nil
	}

	msg := &filter.IncomingMessage{
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		MessageID:   m.ID,
		UserID:      m.Author.ID,
		IsBot:       m.Author.Bot,
		Content:     m.Content,
		DisplayName: m.Author.Username,
	}

	if m.Member != nil {
		msg.Roles = m.Member.Roles
		if m.Member.Nick != "" {
			msg.DisplayName = m.Member.Nick
		}
	}
	if m.Author.GlobalName != "" && msg.DisplayName == m.Author.Username {
		msg.DisplayName = m.Author.GlobalName
	}

	perms, err := s.State.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		// State miss (e.g. right after startup): ask the API once.
		perms, err = s.UserChannelPermissions(m.Author.ID, m.ChannelID)
		if err != nil {
			logger.Debug(fmt.Sprintf("No se pudieron resolver permisos de %s en %s: %v", m.Author.ID, m.ChannelID, err), "Filter")
			perms = 0
		}
	}
	msg.Permissions = perms

	return msg
}
