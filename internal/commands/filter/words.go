// Package filter - /filter words add|remove|list commands
package filter

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

const maxPatternsPerGuild = 500

var patternTypeOption = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionString,
	Name:        "tipo",
	Description: "Tipo de patrón",
	Choices: []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Palabra", Value: "palabra"},
		{Name: "Frase", Value: "frase"},
	},
}

// createWordsAddCommand creates the /filter words add subcommand
func createWordsAddCommand() *discord.Command {
	return discord.NewCommand(
		"add",
		"Añade una palabra o frase al filtro",
		"filter",
		wordsAddHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "patron",
			Description: "Palabra o frase a filtrar (admite * como comodín)",
			Required:    true,
		},
		patternTypeOption,
	).WithUserPermissions(discordgo.PermissionManageMessages)
}

// createWordsRemoveCommand creates the /filter words remove subcommand
func createWordsRemoveCommand() *discord.Command {
	return discord.NewCommand(
		"remove",
		"Quita una palabra o frase del filtro",
		"filter",
		wordsRemoveHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "patron",
			Description: "Patrón exacto a quitar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionManageMessages)
}

// createWordsListCommand creates the /filter words list subcommand
func createWordsListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"Muestra las palabras y frases filtradas",
		"filter",
		wordsListHandler,
	).WithUserPermissions(discordgo.PermissionManageMessages)
}

// wordsAddHandler handles /filter words add
func wordsAddHandler(ctx *discord.CommandContext) error {
	guildID := ctx.Interaction.GuildID
	if guildID == "" {
		return ctx.ReplyEphemeral("❌ Este comando solo funciona en un servidor.")
	}

	pattern := strings.TrimSpace(ctx.GetStringOption("patron"))
	if pattern == "" {
		return ctx.ReplyEphemeral("❌ Debes indicar un patrón.")
	}

	cfg, err := database.GetOrDefaultFilterConfig(guildID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo leer la configuración: " + err.Error())
	}

	if len(cfg.Words)+len(cfg.Phrases) >= maxPatternsPerGuild {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Límite de %d patrones alcanzado.", maxPatternsPerGuild))
	}

	isPhrase := ctx.GetStringOption("tipo") == "frase" || strings.Contains(pattern, " ")

	if isPhrase {
		if hasPattern(cfg.Phrases, pattern) {
			return ctx.ReplyEphemeral("⚠️ Esa frase ya está en el filtro.")
		}
		cfg.Phrases = append(cfg.Phrases, pattern)
	} else {
		if hasPattern(cfg.Words, pattern) {
			return ctx.ReplyEphemeral("⚠️ Esa palabra ya está en el filtro.")
		}
		cfg.Words = append(cfg.Words, pattern)
	}

	if err := saveAndInvalidate(ctx, cfg); err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo guardar: " + err.Error())
	}

	kind := "Palabra"
	if isPhrase {
		kind = "Frase"
	}
	return ctx.ReplyEphemeral(fmt.Sprintf("✅ %s añadida al filtro: ||%s||", kind, pattern))
}

// wordsRemoveHandler handles /filter words remove
func wordsRemoveHandler(ctx *discord.CommandContext) error {
	guildID := ctx.Interaction.GuildID
	if guildID == "" {
		return ctx.ReplyEphemeral("❌ Este comando solo funciona en un servidor.")
	}

	pattern := strings.TrimSpace(ctx.GetStringOption("patron"))
	cfg, err := database.GetOrDefaultFilterConfig(guildID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo leer la configuración: " + err.Error())
	}

	var removed bool
	cfg.Words, removed = removePattern(cfg.Words, pattern)
	if !removed {
		cfg.Phrases, removed = removePattern(cfg.Phrases, pattern)
	}
	if !removed {
		return ctx.ReplyEphemeral("⚠️ Ese patrón no está en el filtro.")
	}

	if err := saveAndInvalidate(ctx, cfg); err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo guardar: " + err.Error())
	}
	return ctx.ReplyEphemeral(fmt.Sprintf("✅ Patrón eliminado: ||%s||", pattern))
}

// wordsListHandler handles /filter words list
func wordsListHandler(ctx *discord.CommandContext) error {
	guildID := ctx.Interaction.GuildID
	if guildID == "" {
		return ctx.ReplyEphemeral("❌ Este comando solo funciona en un servidor.")
	}

	cfg, err := database.GetOrDefaultFilterConfig(guildID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo leer la configuración: " + err.Error())
	}

	if len(cfg.Words) == 0 && len(cfg.Phrases) == 0 {
		return ctx.ReplyEphemeral("📋 El filtro no tiene patrones. Añade uno con `/filter words add`.")
	}

	embed := &discordgo.MessageEmbed{
		Title: "📋 Patrones del filtro",
		Color: 0x00AAFF,
		Fields: []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("Palabras (%d)", len(cfg.Words)), Value: spoilerList(cfg.Words)},
			{Name: fmt.Sprintf("Frases (%d)", len(cfg.Phrases)), Value: spoilerList(cfg.Phrases)},
		},
	}
	return ctx.ReplyEphemeralEmbed(embed)
}

func hasPattern(list []string, pattern string) bool {
	for _, p := range list {
		if strings.EqualFold(p, pattern) {
			return true
		}
	}
	return false
}

func removePattern(list []string, pattern string) ([]string, bool) {
	for i, p := range list {
		if strings.EqualFold(p, pattern) {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

// spoilerList renders patterns wrapped in spoilers so the list itself does
// not display the filtered terms. Discord embed fields cap at 1024 chars.
func spoilerList(patterns []string) string {
	if len(patterns) == 0 {
		return "—"
	}
	var b strings.Builder
	for i, p := range patterns {
		entry := "||" + p + "||"
		if i > 0 {
			entry = ", " + entry
		}
		if b.Len()+len(entry) > 1000 {
			b.WriteString(fmt.Sprintf(" … y %d más", len(patterns)-i))
			break
		}
		b.WriteString(entry)
	}
	return b.String()
}
