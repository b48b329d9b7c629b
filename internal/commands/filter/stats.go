// Package filter - /filter stats command
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createStatsCommand creates the /filter stats subcommand
func createStatsCommand() *discord.Command {
	return discord.NewCommand(
		"stats",
		"Estadísticas de infracciones del filtro",
		"filter",
		statsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "horas",
			Description: "Ventana de tiempo en horas (por defecto 24)",
			MinValue:    &statsMinHours,
			MaxValue:    24 * 30,
		},
	).WithUserPermissions(discordgo.PermissionManageMessages)
}

var statsMinHours = float64(1)

// statsHandler handles /filter stats
func statsHandler(ctx *discord.CommandContext) error {
	guildID := ctx.Interaction.GuildID
	if guildID == "" {
		return ctx.ReplyEphemeral("❌ Este comando solo funciona en un servidor.")
	}

	hours := ctx.GetIntOption("horas")
	if hours <= 0 {
		hours = 24
	}
	window := time.Duration(hours) * time.Hour

	total, err := database.TotalViolations(guildID, window)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudieron leer las estadísticas: " + err.Error())
	}

	top, err := database.TopViolationTerms(guildID, window, 10)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudieron leer las estadísticas: " + err.Error())
	}

	ranking := "—"
	if len(top) > 0 {
		lines := make([]string, 0, len(top))
		for i, stat := range top {
			lines = append(lines, fmt.Sprintf("%d. ||%s|| (%s) — %d", i+1, stat.Term, stat.Kind, stat.Count))
		}
		ranking = strings.Join(lines, "\n")
	}

	embed := &discordgo.MessageEmbed{
		Title: "📊 Estadísticas del filtro",
		Color: 0x00AAFF,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ventana", Value: fmt.Sprintf("Últimas %d horas", hours), Inline: true},
			{Name: "Infracciones", Value: fmt.Sprintf("%d", total), Inline: true},
			{Name: "Términos más detectados", Value: ranking},
		},
	}
	return ctx.ReplyEphemeralEmbed(embed)
}
