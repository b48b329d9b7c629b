// Package events provides event handlers for message events
package events

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMessageEvents registers all message-related event handlers
func RegisterMessageEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(makeMessageCreateHandler(client))
	client.Session.AddHandler(makeMessageUpdateHandler(client))
}

// makeMessageCreateHandler runs every new message through the word filter
func makeMessageCreateHandler(client *discord.ExtendedClient) func(*discordgo.Session, *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot || client.Filter == nil {
			return
		}

		msg := discord.IncomingFromMessage(s, m.Message)
		if msg == nil {
			return
		}

		res := client.Filter.CheckMessage(msg)
		if res.Action != "" {
			logger.Debug(fmt.Sprintf("Mensaje filtrado de %s en %s (término: %s, acción: %s)",
				m.Author.ID, m.GuildID, res.Term, res.Action), "Filter")
		}
	}
}

// makeMessageUpdateHandler re-checks edited messages: editing a clean
// message into a violation is a classic filter bypass
func makeMessageUpdateHandler(client *discord.ExtendedClient) func(*discordgo.Session, *discordgo.MessageUpdate) {
	return func(s *discordgo.Session, m *discordgo.MessageUpdate) {
		if m.Author == nil || m.Author.Bot || client.Filter == nil {
			return
		}

		msg := discord.IncomingFromMessage(s, m.Message)
		if msg == nil {
			return
		}

		res := client.Filter.CheckMessage(msg)
		if res.Action != "" {
			logger.Debug(fmt.Sprintf("Mensaje editado filtrado de %s en %s (término: %s)",
				m.Author.ID, m.GuildID, res.Term), "Filter")
		}
	}
}
