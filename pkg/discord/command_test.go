package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

// TestCommandCreation verifies that commands can be created with the builder pattern
func TestCommandCreation(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("test", "Test command", "filter", handler)

	if cmd == nil {
		t.Fatal("NewCommand returned nil")
	}

	if cmd.Name != "test" {
		t.Errorf("Name = %v, want %v", cmd.Name, "test")
	}

	if cmd.Description != "Test command" {
		t.Errorf("Description = %v, want %v", cmd.Description, "Test command")
	}

	if cmd.Category != "filter" {
		t.Errorf("Category = %v, want %v", cmd.Category, "filter")
	}

	if cmd.Run == nil {
		t.Error("Run function is nil")
	}
}

// TestCommandBuilders verifies the builder methods chain correctly
func TestCommandBuilders(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	option := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "patron",
		Description: "Patrón a filtrar",
		Required:    true,
	}

	cmd := NewCommand("add", "Añade un patrón", "filter", handler).
		WithOptions(option).
		WithUserPermissions(discordgo.PermissionManageMessages).
		WithBotPermissions(discordgo.PermissionSendMessages).
		AsDev()

	if len(cmd.Options) != 1 || cmd.Options[0].Name != "patron" {
		t.Errorf("Options not set: %+v", cmd.Options)
	}
	if cmd.UserPermissions != discordgo.PermissionManageMessages {
		t.Errorf("UserPermissions = %v, want %v", cmd.UserPermissions, discordgo.PermissionManageMessages)
	}
	if cmd.BotPermissions != discordgo.PermissionSendMessages {
		t.Errorf("BotPermissions = %v, want %v", cmd.BotPermissions, discordgo.PermissionSendMessages)
	}
	if !cmd.IsDev {
		t.Error("IsDev should be true after calling AsDev()")
	}
}

// TestToApplicationCommand verifies conversion to Discord application command
func TestToApplicationCommand(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("stats", "Estadísticas del filtro", "filter", handler).
		WithOptions(&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "horas",
			Description: "Ventana de tiempo",
		})

	appCmd := cmd.ToApplicationCommand()

	if appCmd == nil {
		t.Fatal("ToApplicationCommand returned nil")
	}
	if appCmd.Name != "stats" {
		t.Errorf("ApplicationCommand Name = %v, want %v", appCmd.Name, "stats")
	}
	if len(appCmd.Options) != 1 {
		t.Fatalf("ApplicationCommand Options length = %v, want 1", len(appCmd.Options))
	}
}

// TestGetOptionNested verifies that option lookup descends into subcommand
// groups, the shape /filter words add produces
func TestGetOptionNested(t *testing.T) {
	ctx := &CommandContext{
		Interaction: &discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				Type: discordgo.InteractionApplicationCommand,
				Data: discordgo.ApplicationCommandInteractionData{
					Name: "filter",
					Options: []*discordgo.ApplicationCommandInteractionDataOption{
						{
							Name: "words",
							Type: discordgo.ApplicationCommandOptionSubCommandGroup,
							Options: []*discordgo.ApplicationCommandInteractionDataOption{
								{
									Name: "add",
									Type: discordgo.ApplicationCommandOptionSubCommand,
									Options: []*discordgo.ApplicationCommandInteractionDataOption{
										{
											Name:  "patron",
											Type:  discordgo.ApplicationCommandOptionString,
											Value: "spam",
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	if got := ctx.GetStringOption("patron"); got != "spam" {
		t.Errorf("GetStringOption(patron) = %q, want %q", got, "spam")
	}
	if got := ctx.GetStringOption("inexistente"); got != "" {
		t.Errorf("GetStringOption(inexistente) = %q, want empty", got)
	}
}
