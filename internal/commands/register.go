// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category
package commands

import (
	"github.com/PancyStudios/PancyGuardGo/internal/commands/filter"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Word-filter commands (/filter config, words, whitelist, test, stats, preset)
	filter.RegisterFilterCommands(client)
}
