package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/textbox-bot/textbox/internal/bot"
	"github.com/textbox-bot/textbox/internal/core/catalog"
	"github.com/textbox-bot/textbox/internal/health"
)

type ServeCmd struct {
	flags *Flags
	app   *App

	// flags
	noHealth bool
	noWatch  bool
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags, app *App) *ServeCmd {
	return &ServeCmd{flags: flags, app: app}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Run the bot",
		UsageText: "textbox serve [--no-health] [--no-watch]",
		Description: `Connects to Discord and answers /box and /help.

The character catalog is loaded at startup, reloaded on an interval and,
unless --no-watch is set, whenever the catalog file changes. A health check
listener answers on the configured address for the hosting platform.

DISCORD_TOKEN must be set.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "no-health",
				Usage:       "do not start the health check listener",
				Destination: &cmd.noHealth,
			},
			&cli.BoolFlag{
				Name:        "no-watch",
				Usage:       "do not reload the catalog on file changes",
				Destination: &cmd.noWatch,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.app.Config
	if err := cfg.ValidateBot(); err != nil {
		return fmt.Errorf("invalid bot config: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catLog := cmd.app.Log.With().Str("component", "catalog").Logger()
	if !catalog.ReloadAndLog(cmd.app.Catalog, catLog) {
		catLog.Warn().Msg("no character data. run the scraper or something.")
	}

	if cfg.Catalog.WatchEnabled() && !cmd.noWatch {
		w, err := catalog.NewWatcher(cmd.app.Catalog, catLog)
		if err != nil {
			catLog.Warn().Err(err).Msg("catalog watcher disabled")
		} else {
			defer func() { _ = w.Close() }()
		}
	}

	registry := bot.NewRegistry(
		bot.NewBoxCommand(cmd.app.Catalog, boxOptions(cfg)),
		bot.HelpCommand{},
	)

	b, err := bot.New(cfg.Discord.Token, registry, cmd.app.Log.With().Str("component", "bot").Logger())
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		catalog.StartReloader(gctx, cmd.app.Catalog, cfg.Catalog.ReloadInterval, catLog)
		return nil
	})

	if !cmd.noHealth {
		g.Go(func() error {
			return health.Run(gctx, cfg.Health.Addr, cmd.app.Log.With().Str("component", "health").Logger())
		})
	}

	g.Go(func() error {
		if err := b.Open(); err != nil {
			return err
		}
		<-gctx.Done()
		cmd.app.Log.Info().Msg("shutting down")
		return b.Close()
	})

	return g.Wait()
}
