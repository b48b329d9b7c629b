// Package filter - /filter config command
package filter

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createConfigCommand creates the /filter config subcommand
func createConfigCommand() *discord.Command {
	return discord.NewCommand(
		"config",
		"Muestra o cambia la configuración del filtro",
		"filter",
		configHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "activado",
			Description: "Activa o desactiva el filtro",
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "accion",
			Description: "Acción al detectar una infracción",
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Borrar mensaje", Value: string(models.FilterActionDelete)},
				{Name: "Borrar + advertir por DM", Value: string(models.FilterActionWarn)},
				{Name: "Borrar + silenciar", Value: string(models.FilterActionMute)},
				{Name: "Borrar + expulsar", Value: string(models.FilterActionKick)},
				{Name: "Borrar + banear", Value: string(models.FilterActionBan)},
				{Name: "Solo registrar", Value: string(models.FilterActionLogOnly)},
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "modo",
			Description: "Cómo se comparan los patrones",
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Exacto (palabra completa)", Value: string(models.FilterModeExact)},
				{Name: "Contiene (subcadena)", Value: string(models.FilterModeContains)},
				{Name: "Inteligente (detecta evasiones)", Value: string(models.FilterModeSmart)},
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "canal-logs",
			Description: "Canal donde registrar infracciones",
			ChannelTypes: []discordgo.ChannelType{
				discordgo.ChannelTypeGuildText,
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "mensaje",
			Description: "Mensaje de advertencia personalizado",
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "filtrar-apodos",
			Description: "Revisa también los apodos de los miembros",
		},
	).WithUserPermissions(discordgo.PermissionManageMessages)
}

// configHandler handles the /filter config command. Without options it shows
// the current configuration; with options it updates and persists it.
func configHandler(ctx *discord.CommandContext) error {
	guildID := ctx.Interaction.GuildID
	if guildID == "" {
		return ctx.ReplyEphemeral("❌ Este comando solo funciona en un servidor.")
	}

	cfg, err := database.GetOrDefaultFilterConfig(guildID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo leer la configuración: " + err.Error())
	}

	changed := false
	if opt := ctx.GetOption("activado"); opt != nil {
		cfg.Enabled = opt.BoolValue()
		changed = true
	}
	if v := ctx.GetStringOption("accion"); v != "" {
		action := models.FilterAction(v)
		if !action.IsValid() {
			return ctx.ReplyEphemeral("❌ Acción no válida: " + v)
		}
		cfg.Action = action
		changed = true
	}
	if v := ctx.GetStringOption("modo"); v != "" {
		mode := models.FilterMode(v)
		if !mode.IsValid() {
			return ctx.ReplyEphemeral("❌ Modo no válido: " + v)
		}
		cfg.Mode = mode
		changed = true
	}
	if ch := ctx.GetChannelOption("canal-logs"); ch != nil {
		cfg.LogChannelID = ch.ID
		cfg.LogViolations = true
		changed = true
	}
	if v := ctx.GetStringOption("mensaje"); v != "" {
		cfg.CustomMessage = v
		changed = true
	}
	if opt := ctx.GetOption("filtrar-apodos"); opt != nil {
		cfg.FilterDisplayName = opt.BoolValue()
		changed = true
	}

	if changed {
		if err := saveAndInvalidate(ctx, cfg); err != nil {
			return ctx.ReplyEphemeral("❌ No se pudo guardar la configuración: " + err.Error())
		}
	}

	return ctx.ReplyEmbed(buildConfigEmbed(cfg, changed))
}

func buildConfigEmbed(cfg *models.FilterConfig, updated bool) *discordgo.MessageEmbed {
	title := "🛡️ Configuración del filtro"
	if updated {
		title = "✅ Configuración actualizada"
	}

	status := "🔴 Desactivado"
	if cfg.Enabled {
		status = "🟢 Activado"
	}

	logChannel := "—"
	if cfg.LogChannelID != "" {
		logChannel = fmt.Sprintf("<#%s>", cfg.LogChannelID)
	}

	apodos := "No"
	if cfg.FilterDisplayName {
		apodos = "Sí"
	}

	return &discordgo.MessageEmbed{
		Title: title,
		Color: 0x00AAFF,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Estado", Value: status, Inline: true},
			{Name: "Acción", Value: string(cfg.Action), Inline: true},
			{Name: "Modo", Value: string(cfg.Mode), Inline: true},
			{Name: "Palabras", Value: fmt.Sprintf("%d", len(cfg.Words)), Inline: true},
			{Name: "Frases", Value: fmt.Sprintf("%d", len(cfg.Phrases)), Inline: true},
			{Name: "Canal de logs", Value: logChannel, Inline: true},
			{Name: "Filtrar apodos", Value: apodos, Inline: true},
			{Name: "Canales exentos", Value: mentionList(cfg.WhitelistChannels, "#"), Inline: true},
			{Name: "Roles exentos", Value: mentionList(cfg.WhitelistRoles, "@&"), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "PancyGuard Go | PancyStudios",
		},
	}
}

// mentionList renders ids as channel/role mentions, or a dash when empty.
func mentionList(ids []string, prefix string) string {
	if len(ids) == 0 {
		return "—"
	}
	mentions := make([]string, 0, len(ids))
	for _, id := range ids {
		mentions = append(mentions, fmt.Sprintf("<%s%s>", prefix, id))
	}
	return strings.Join(mentions, " ")
}
