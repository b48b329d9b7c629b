// Package filter provides the word-filter commands organized as subcommands
// under /filter. Each subcommand is in its own file for better organization
package filter

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// RegisterFilterCommands registers all filter commands as /filter subcommands
func RegisterFilterCommands(client *discord.ExtendedClient) {
	configCmd := createConfigCommand()
	testCmd := createTestCommand()
	statsCmd := createStatsCommand()

	// Build the /filter command group with the flat subcommands
	filterGroup := client.CommandHandler.BuildCommandGroup(
		"filter",
		"Filtro de palabras y frases",
		configCmd,
		testCmd,
		statsCmd,
	)

	// Nested subcommand groups: /filter words ..., /filter whitelist ...,
	// /filter preset ...
	filterGroup.Options = append(filterGroup.Options,
		client.CommandHandler.BuildSubcommandGroup(
			"filter", "words", "Gestiona la lista de palabras y frases",
			createWordsAddCommand(),
			createWordsRemoveCommand(),
			createWordsListCommand(),
		),
		client.CommandHandler.BuildSubcommandGroup(
			"filter", "whitelist", "Canales y roles exentos del filtro",
			createWhitelistAddCommand(),
			createWhitelistRemoveCommand(),
			createWhitelistListCommand(),
		),
		client.CommandHandler.BuildSubcommandGroup(
			"filter", "preset", "Listas de patrones predefinidas",
			createPresetListCommand(),
			createPresetApplyCommand(),
		),
	)

	// The whole group is moderator-only
	perms := int64(discordgo.PermissionManageMessages)
	filterGroup.DefaultMemberPermissions = &perms

	client.CommandHandler.AddGlobalCommand(filterGroup)
}

// saveAndInvalidate persists a config row and drops the guild's cached
// policy so the next message is evaluated with the new configuration.
func saveAndInvalidate(ctx *discord.CommandContext, cfg *models.FilterConfig) error {
	if _, err := database.SaveFilterConfig(cfg); err != nil {
		return err
	}
	if ctx.Client.Filter != nil {
		ctx.Client.Filter.Cache().Invalidate(cfg.GuildID)
	}
	return nil
}
