package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/textbox-bot/textbox/internal/core/catalog"
	"github.com/textbox-bot/textbox/internal/core/textbox"
	"github.com/textbox-bot/textbox/pkg/iojson"
)

type RenderCmd struct {
	flags *Flags
	app   *App

	// flags
	character     string
	expression    string
	text          string
	setExpression string
	legacy        bool
	jsonOutput    bool
	request       iojson.FileReader[textbox.DialogueState]
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags, app *App) *RenderCmd {
	return &RenderCmd{flags: flags, app: app}
}

// Register adds the render command to the application
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Print panel URLs for dialogue without Discord",
		UsageText: "textbox render --character <id> --text <text> [--expression <key>] [--json]\n   textbox render --url <panel> [--url <panel>...] [--text <text> | --set-expression <key>]",
		Description: `Renders dialogue into panel URLs using the local catalog.

With --url, the given panels are read back the way the bot reads a message:
--text replaces the dialogue and --set-expression replaces the expression of
every panel. Without either, the recovered state is printed.

Without --text or --url, a JSON request {"character","expression","text"} is
read from --file or stdin.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "character",
				Usage:       "character id",
				Destination: &cmd.character,
			},
			&cli.StringFlag{
				Name:        "expression",
				Usage:       "expression key",
				Destination: &cmd.expression,
			},
			&cli.StringFlag{
				Name:        "text",
				Usage:       "dialogue text",
				Destination: &cmd.text,
			},
			&cli.StringSliceFlag{
				Name:  "url",
				Usage: "existing panel URL, in reading order (repeatable)",
			},
			&cli.StringFlag{
				Name:        "set-expression",
				Usage:       "replace the expression of the --url panels",
				Destination: &cmd.setExpression,
			},
			&cli.BoolFlag{
				Name:        "legacy",
				Usage:       "treat --url panels as legacy attachments",
				Destination: &cmd.legacy,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
			cmd.request.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

// renderResult is the JSON output format for textbox render --json.
type renderResult struct {
	State   textbox.DialogueState `json:"state"`
	Surface string                `json:"surface,omitempty"`
	Panels  []string              `json:"panels"`
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.app.Config
	log := cmd.app.Log.With().Str("component", "render").Logger()

	if _, err := cmd.app.Catalog.Reload(); err != nil {
		log.Warn().Err(err).Msg("rendering without catalog")
	}

	snap := cmd.app.Catalog.Snapshot()
	enc := textbox.NewEncoder(cfg.Render.BaseURL, snap, log)
	rec := textbox.NewReconciler(enc, cfg.Render.ChunkLimit)

	var result renderResult

	if urls := c.StringSlice("url"); len(urls) > 0 {
		surface := textbox.EmbedSurface(urls)
		if cmd.legacy {
			surface = textbox.AttachmentSurface(urls)
		}

		res := textbox.NewReader(fallback(cfg), log).Read(surface)
		state, panels := res.State, res.Panels

		switch {
		case cmd.setExpression != "":
			if err := checkExpression(snap, state.CharacterID, cmd.setExpression); err != nil {
				return err
			}
			state, panels = rec.ReplaceExpression(state, panels, cmd.setExpression)
		case c.IsSet("text"):
			state, panels = rec.ReplaceText(state, cmd.text)
		}

		result = renderResult{State: state, Surface: res.Surface.String(), Panels: panels.URLs()}
	} else {
		state, err := cmd.requestState(c)
		if err != nil {
			return err
		}
		result = renderResult{State: state, Panels: rec.Render(state).URLs()}
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, result)
	}

	for _, u := range result.Panels {
		_, _ = fmt.Fprintln(out, u)
	}
	return nil
}

func (cmd *RenderCmd) requestState(c *cli.Command) (textbox.DialogueState, error) {
	var state textbox.DialogueState

	if !c.IsSet("text") && cmd.request.Provided() {
		req, err := cmd.request.Read()
		if err != nil {
			return state, err
		}
		state = req
	}

	if cmd.character != "" {
		state.CharacterID = cmd.character
	}
	if cmd.expression != "" {
		state.Expression = cmd.expression
	}
	if c.IsSet("text") {
		state.Text = cmd.text
	}

	def := fallback(cmd.app.Config)
	if state.CharacterID == "" {
		state.CharacterID = def.CharacterID
	}
	if state.Expression == "" {
		state.Expression = def.Expression
	}

	return state, nil
}

// checkExpression rejects expression edits the catalog cannot satisfy. An
// empty catalog accepts anything.
func checkExpression(snap *catalog.Snapshot, characterID, expression string) error {
	if snap.Len() == 0 {
		return nil
	}
	char, ok := snap.Lookup(characterID)
	if !ok || !char.HasExpressions() {
		return fmt.Errorf("character %q has no expressions to pick from", characterID)
	}
	if _, ok := char.Expression(expression); !ok {
		return fmt.Errorf("character %q has no expression %q", characterID, expression)
	}
	return nil
}
