// Package filter - /filter test command
package filter

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createTestCommand creates the /filter test subcommand
func createTestCommand() *discord.Command {
	return discord.NewCommand(
		"test",
		"Prueba un texto contra el filtro sin aplicar acciones",
		"filter",
		testHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "texto",
			Description: "Texto de ejemplo a evaluar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionManageMessages)
}

// testHandler handles /filter test. The preview reloads the stored
// configuration, so a just-saved change is always reflected.
func testHandler(ctx *discord.CommandContext) error {
	guildID := ctx.Interaction.GuildID
	if guildID == "" {
		return ctx.ReplyEphemeral("❌ Este comando solo funciona en un servidor.")
	}
	if ctx.Client.Filter == nil {
		return ctx.ReplyEphemeral("❌ El filtro no está inicializado.")
	}

	text := ctx.GetStringOption("texto")
	result := ctx.Client.Filter.TestMessage(guildID, text)

	verdict := "🟢 El texto **no** sería bloqueado."
	color := 0x2ECC71
	if result.WouldBlock {
		verdict = "🔴 El texto **sería bloqueado**."
		color = 0xE74C3C
	}

	matched := "—"
	if len(result.Matches) > 0 {
		terms := make([]string, 0, len(result.Matches))
		for _, m := range result.Matches {
			terms = append(terms, fmt.Sprintf("||%s|| (%s)", m.Term, m.Kind))
		}
		matched = strings.Join(terms, ", ")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🧪 Prueba del filtro",
		Description: verdict,
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Texto normalizado", Value: "`" + truncate(result.NormalizedText, 512) + "`"},
			{Name: fmt.Sprintf("Coincidencias (%d)", len(result.Matches)), Value: matched},
		},
	}
	return ctx.ReplyEphemeralEmbed(embed)
}

func truncate(s string, max int) string {
	if s == "" {
		return "—"
	}
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
