package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/urfave/cli/v3"

	"github.com/textbox-bot/textbox/internal/bot"
)

type DeployCmd struct {
	flags *Flags
	app   *App

	// flags
	guildID string
	global  bool
}

// NewDeployCmd creates a new deploy command
func NewDeployCmd(flags *Flags, app *App) *DeployCmd {
	return &DeployCmd{flags: flags, app: app}
}

// Register adds the deploy command to the application
func (cmd *DeployCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "deploy",
		Usage:     "Register slash commands with Discord",
		UsageText: "textbox deploy [--guild <id>] [--global]",
		Description: `Overwrites the application's slash commands with /box and /help.

Commands are registered to GUILD_ID when set, which takes effect immediately.
Without a guild, or with --global, commands are registered globally and can
take up to an hour to appear.

DISCORD_TOKEN and CLIENT_ID must be set.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "guild",
				Usage:       "guild to register commands in (overrides GUILD_ID)",
				Destination: &cmd.guildID,
			},
			&cli.BoolFlag{
				Name:        "global",
				Usage:       "register commands globally even if GUILD_ID is set",
				Destination: &cmd.global,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DeployCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.app.Config
	if err := cfg.ValidateDeploy(); err != nil {
		return fmt.Errorf("invalid deploy config: %w", err)
	}

	guildID := cfg.Discord.GuildID
	if cmd.guildID != "" {
		guildID = cmd.guildID
	}
	if cmd.global {
		guildID = ""
	}

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}

	registry := bot.NewRegistry(
		bot.NewBoxCommand(cmd.app.Catalog, boxOptions(cfg)),
		bot.HelpCommand{},
	)

	scope := "global"
	if guildID != "" {
		scope = "guild " + guildID
	}
	cmd.app.Log.Info().Int("commands", len(registry.Definitions())).Str("scope", scope).Msg("uploading commands")

	created, err := bot.Deploy(session, cfg.Discord.ClientID, guildID, registry)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "registered %d command(s) (%s)\n", len(created), scope)
	return nil
}
