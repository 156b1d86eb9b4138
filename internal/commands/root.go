package commands

import (
	"github.com/urfave/cli/v3"
)

const (
	rootUsage       = "Undertale style text boxes for Discord"
	rootUsageText   = "textbox [global options] command [command options]"
	rootDescription = `textbox runs a Discord bot that turns /box commands into Undertale and
Deltarune dialogue panels, with buttons to edit the text or swap the
character's expression in place.

Run 'textbox scrape' to build the character catalog, 'textbox deploy' to
register slash commands and 'textbox serve' to run the bot.`
)

// NewRoot returns the root command with global flags bound to flags. The
// Before and After hooks are left to the caller.
func NewRoot(flags *Flags) *cli.Command {
	return &cli.Command{
		Name:        "textbox",
		Usage:       rootUsage,
		UsageText:   rootUsageText,
		Description: rootDescription,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TEXTBOX_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logs to stderr when unset)",
				Sources:     cli.EnvVars("TEXTBOX_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TEXTBOX_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TEXTBOX_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
	}
}

// RegisterAll adds every subcommand to root.
func RegisterAll(root *cli.Command, flags *Flags, app *App) *cli.Command {
	root = NewServeCmd(flags, app).Register(root)
	root = NewDeployCmd(flags, app).Register(root)
	root = NewRenderCmd(flags, app).Register(root)
	root = NewScrapeCmd(flags, app).Register(root)
	root = NewCatalogCmd(flags, app).Register(root)
	root = NewConfigValidateCmd(flags).Register(root)
	return root
}
