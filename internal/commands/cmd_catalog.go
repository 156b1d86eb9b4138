package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/textbox-bot/textbox/internal/core/catalog"
	"github.com/textbox-bot/textbox/pkg/iojson"
)

type CatalogCmd struct {
	flags *Flags
	app   *App

	// flags
	search     string
	character  string
	jsonOutput bool
}

// NewCatalogCmd creates a new catalog command
func NewCatalogCmd(flags *Flags, app *App) *CatalogCmd {
	return &CatalogCmd{flags: flags, app: app}
}

// Register adds the catalog command to the application
func (cmd *CatalogCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "catalog",
		Usage:     "Inspect the character catalog",
		UsageText: "textbox catalog [--search <query>] [--character <id>] [--json]",
		Description: `Prints the number of characters in the catalog file.

--search lists characters the way /box autocomplete would offer them.
--character lists the expressions of one character, filtered by --search.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "autocomplete query",
				Destination: &cmd.search,
			},
			&cli.StringFlag{
				Name:        "character",
				Aliases:     []string{"c"},
				Usage:       "list expressions of this character",
				Destination: &cmd.character,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// catalogResult is the JSON output format for textbox catalog --json.
type catalogResult struct {
	Path       string           `json:"path"`
	Characters int              `json:"characters"`
	Hidden     int              `json:"hidden"`
	Invalid    int              `json:"invalid"`
	Choices    []catalog.Choice `json:"choices,omitempty"`
}

func (cmd *CatalogCmd) run(ctx context.Context, c *cli.Command) error {
	stats, err := cmd.app.Catalog.Reload()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cmd.app.Log.Warn().Str("path", cmd.app.Catalog.Path()).Msg("catalog file missing; run textbox scrape")
	case err != nil:
		return fmt.Errorf("load catalog: %w", err)
	}
	snap := cmd.app.Catalog.Snapshot()

	result := catalogResult{
		Path:       cmd.app.Catalog.Path(),
		Characters: snap.Len(),
		Hidden:     stats.Hidden,
		Invalid:    stats.Invalid,
	}

	switch {
	case cmd.character != "":
		if _, err := cmd.app.Catalog.Get(cmd.character); err != nil {
			return fmt.Errorf("character %q: %w", cmd.character, err)
		}
		result.Choices = snap.SearchExpressions(cmd.character, cmd.search)
	case c.IsSet("search"):
		result.Choices = snap.SearchCharacters(cmd.search)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, result)
	}

	w := c.Root().Writer
	_, _ = fmt.Fprintf(w, "%d characters in %s\n", result.Characters, result.Path)
	if len(result.Choices) == 0 {
		return nil
	}

	_, _ = fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "VALUE\tLABEL")
	for _, ch := range result.Choices {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", ch.Value, ch.Name)
	}
	return tw.Flush()
}
