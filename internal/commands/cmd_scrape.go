package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v3"

	"github.com/textbox-bot/textbox/internal/core/catalog"
	"github.com/textbox-bot/textbox/internal/scraper"
)

type ScrapeCmd struct {
	flags *Flags
	app   *App

	// flags
	out       string
	batchSize int
}

// NewScrapeCmd creates a new scrape command
func NewScrapeCmd(flags *Flags, app *App) *ScrapeCmd {
	return &ScrapeCmd{flags: flags, app: app}
}

// Register adds the scrape command to the application
func (cmd *ScrapeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "scrape",
		Usage:     "Rebuild the character catalog from the renderer site",
		UsageText: "textbox scrape [--universe <id>...] [--out <path>]",
		Description: `Fetches the character listing of every universe and writes the characters
that have text box sprites to the catalog file.

Universes come from --universe flags, falling back to scraper.universes in the
config file. A running bot picks up the new file on its next reload.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "universe",
				Usage: "universe id to fetch (repeatable)",
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path (defaults to the catalog path)",
				Destination: &cmd.out,
			},
			&cli.IntFlag{
				Name:        "batch-size",
				Usage:       "universes fetched concurrently (defaults to scraper.batch_size)",
				Destination: &cmd.batchSize,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ScrapeCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.app.Config
	log := cmd.app.Log.With().Str("component", "scraper").Logger()

	universes := c.StringSlice("universe")
	if len(universes) == 0 {
		universes = cfg.Scraper.Universes
	}
	if len(universes) == 0 {
		return fmt.Errorf("no universes to scrape; pass --universe or set scraper.universes")
	}

	out := cmd.out
	if out == "" {
		out = cfg.Catalog.Path
	}

	batchSize := cfg.Scraper.BatchSize
	if cmd.batchSize > 0 {
		batchSize = cmd.batchSize
	}

	s := scraper.New(scraper.Options{
		BaseURL:    cfg.Scraper.BaseURL,
		UserAgent:  cfg.Scraper.UserAgent,
		BatchSize:  batchSize,
		BatchDelay: cfg.Scraper.BatchDelay,
		Client:     &http.Client{Timeout: cfg.Scraper.Timeout},
	}, log)

	log.Info().Int("universes", len(universes)).Msg("digging through universes")

	chars, stats, err := s.Scrape(ctx, universes)
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}

	if err := scraper.WriteCatalog(out, chars); err != nil {
		return err
	}

	// Re-read what was written so the reported count matches what the bot loads.
	_, parsed, err := catalog.LoadFile(out)
	if err != nil {
		return fmt.Errorf("verify catalog: %w", err)
	}

	log.Info().
		Int("fetched", stats.Fetched).
		Int("kept", stats.Kept).
		Int("failed", stats.Failed).
		Int("hidden", parsed.Hidden).
		Str("path", out).
		Msg("catalog written")

	_, _ = fmt.Fprintf(c.Root().Writer, "wrote %d characters to %s\n", stats.Kept, out)
	if stats.Failed > 0 {
		_, _ = fmt.Fprintf(c.Root().Writer, "%d of %d universes failed\n", stats.Failed, stats.Universes)
	}
	return nil
}
