// Package filter - /filter whitelist add|remove|list commands
package filter

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createWhitelistAddCommand creates the /filter whitelist add subcommand
func createWhitelistAddCommand() *discord.Command {
	return discord.NewCommand(
		"add",
		"Exime un canal o rol del filtro",
		"filter",
		whitelistAddHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "canal",
			Description: "Canal a eximir",
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "rol",
			Description: "Rol a eximir",
		},
	).WithUserPermissions(discordgo.PermissionManageMessages)
}

// createWhitelistRemoveCommand creates the /filter whitelist remove subcommand
func createWhitelistRemoveCommand() *discord.Command {
	return discord.NewCommand(
		"remove",
		"Quita la exención de un canal o rol",
		"filter",
		whitelistRemoveHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "canal",
			Description: "Canal a quitar de la lista",
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "rol",
			Description: "Rol a quitar de la lista",
		},
	).WithUserPermissions(discordgo.PermissionManageMessages)
}

// createWhitelistListCommand creates the /filter whitelist list subcommand
func createWhitelistListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"Muestra los canales y roles exentos",
		"filter",
		whitelistListHandler,
	).WithUserPermissions(discordgo.PermissionManageMessages)
}

// whitelistAddHandler handles /filter whitelist add
func whitelistAddHandler(ctx *discord.CommandContext) error {
	guildID := ctx.Interaction.GuildID
	if guildID == "" {
		return ctx.ReplyEphemeral("❌ Este comando solo funciona en un servidor.")
	}

	channel := ctx.GetChannelOption("canal")
	role := ctx.GetRoleOption("rol")
	if channel == nil && role == nil {
		return ctx.ReplyEphemeral("❌ Debes indicar un canal o un rol.")
	}

	cfg, err := database.GetOrDefaultFilterConfig(guildID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo leer la configuración: " + err.Error())
	}

	added := make([]string, 0, 2)
	if channel != nil && !containsID(cfg.WhitelistChannels, channel.ID) {
		cfg.WhitelistChannels = append(cfg.WhitelistChannels, channel.ID)
		added = append(added, fmt.Sprintf("<#%s>", channel.ID))
	}
	if role != nil && !containsID(cfg.WhitelistRoles, role.ID) {
		cfg.WhitelistRoles = append(cfg.WhitelistRoles, role.ID)
		added = append(added, fmt.Sprintf("<@&%s>", role.ID))
	}
	if len(added) == 0 {
		return ctx.ReplyEphemeral("⚠️ Ya estaban en la lista de exentos.")
	}

	if err := saveAndInvalidate(ctx, cfg); err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo guardar: " + err.Error())
	}
	return ctx.ReplyEphemeral("✅ Exentos del filtro: " + joinMentions(added))
}

// whitelistRemoveHandler handles /filter whitelist remove
func whitelistRemoveHandler(ctx *discord.CommandContext) error {
	guildID := ctx.Interaction.GuildID
	if guildID == "" {
		return ctx.ReplyEphemeral("❌ Este comando solo funciona en un servidor.")
	}

	channel := ctx.GetChannelOption("canal")
	role := ctx.GetRoleOption("rol")
	if channel == nil && role == nil {
		return ctx.ReplyEphemeral("❌ Debes indicar un canal o un rol.")
	}

	cfg, err := database.GetOrDefaultFilterConfig(guildID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo leer la configuración: " + err.Error())
	}

	removed := make([]string, 0, 2)
	if channel != nil {
		var ok bool
		if cfg.WhitelistChannels, ok = removeID(cfg.WhitelistChannels, channel.ID); ok {
			removed = append(removed, fmt.Sprintf("<#%s>", channel.ID))
		}
	}
	if role != nil {
		var ok bool
		if cfg.WhitelistRoles, ok = removeID(cfg.WhitelistRoles, role.ID); ok {
			removed = append(removed, fmt.Sprintf("<@&%s>", role.ID))
		}
	}
	if len(removed) == 0 {
		return ctx.ReplyEphemeral("⚠️ No estaban en la lista de exentos.")
	}

	if err := saveAndInvalidate(ctx, cfg); err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo guardar: " + err.Error())
	}
	return ctx.ReplyEphemeral("✅ Quitados de la lista de exentos: " + joinMentions(removed))
}

// whitelistListHandler handles /filter whitelist list
func whitelistListHandler(ctx *discord.CommandContext) error {
	guildID := ctx.Interaction.GuildID
	if guildID == "" {
		return ctx.ReplyEphemeral("❌ Este comando solo funciona en un servidor.")
	}

	cfg, err := database.GetOrDefaultFilterConfig(guildID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo leer la configuración: " + err.Error())
	}

	embed := &discordgo.MessageEmbed{
		Title: "📋 Exentos del filtro",
		Color: 0x00AAFF,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Canales", Value: mentionList(cfg.WhitelistChannels, "#")},
			{Name: "Roles", Value: mentionList(cfg.WhitelistRoles, "@&")},
		},
	}
	return ctx.ReplyEphemeralEmbed(embed)
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(list []string, id string) ([]string, bool) {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

func joinMentions(mentions []string) string {
	out := ""
	for i, m := range mentions {
		if i > 0 {
			out += " "
		}
		out += m
	}
	return out
}
