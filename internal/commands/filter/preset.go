// Package filter - /filter preset list|apply commands
package filter

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createPresetListCommand creates the /filter preset list subcommand
func createPresetListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"Muestra las listas predefinidas disponibles",
		"filter",
		presetListHandler,
	).WithUserPermissions(discordgo.PermissionManageMessages)
}

// createPresetApplyCommand creates the /filter preset apply subcommand
func createPresetApplyCommand() *discord.Command {
	return discord.NewCommand(
		"apply",
		"Añade los patrones de una lista predefinida al filtro",
		"filter",
		presetApplyHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "nombre",
			Description:  "Nombre de la lista predefinida",
			Required:     true,
			Autocomplete: true,
		},
	).WithUserPermissions(discordgo.PermissionManageMessages).
		WithAutoComplete(presetAutoComplete)
}

// presetListHandler handles /filter preset list
func presetListHandler(ctx *discord.CommandContext) error {
	presets, err := database.ListFilterPresets()
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudieron leer los presets: " + err.Error())
	}
	if len(presets) == 0 {
		return ctx.ReplyEphemeral("📋 No hay listas predefinidas disponibles.")
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(presets))
	for _, p := range presets {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s (%s)", p.Name, p.Category),
			Value: fmt.Sprintf("%s\n%d palabras, %d frases",
				p.Description, len(p.Words), len(p.Phrases)),
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📚 Listas predefinidas",
		Description: "Aplica una con `/filter preset apply`.",
		Color:       0x00AAFF,
		Fields:      fields,
	}
	return ctx.ReplyEphemeralEmbed(embed)
}

// presetApplyHandler handles /filter preset apply
func presetApplyHandler(ctx *discord.CommandContext) error {
	guildID := ctx.Interaction.GuildID
	if guildID == "" {
		return ctx.ReplyEphemeral("❌ Este comando solo funciona en un servidor.")
	}

	name := ctx.GetStringOption("nombre")
	cfg, added, err := database.ApplyFilterPreset(guildID, name)
	if err != nil {
		if err == database.ErrPresetNotFound {
			return ctx.ReplyEphemeral("❌ No existe el preset `" + name + "`. Usa `/filter preset list`.")
		}
		return ctx.ReplyEphemeral("❌ No se pudo aplicar el preset: " + err.Error())
	}

	if ctx.Client.Filter != nil {
		ctx.Client.Filter.Cache().Invalidate(guildID)
	}

	return ctx.ReplyEphemeral(fmt.Sprintf(
		"✅ Preset `%s` aplicado: %d patrones nuevos (%d en total).",
		name, added, len(cfg.Words)+len(cfg.Phrases)))
}

// presetAutoComplete suggests preset names while the moderator types
func presetAutoComplete(ctx *discord.CommandContext) {
	presets, err := database.ListFilterPresets()
	if err != nil {
		logger.Warn("No se pudieron cargar presets para autocompletar: "+err.Error(), "Filter")
		return
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(presets))
	for _, p := range presets {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s — %s", p.Name, p.Description),
			Value: p.Name,
		})
		if len(choices) == 25 {
			break
		}
	}

	err = ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		logger.Warn("Error respondiendo autocompletado: "+err.Error(), "Filter")
	}
}
