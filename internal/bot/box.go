package bot

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/textbox-bot/textbox/internal/core/catalog"
	"github.com/textbox-bot/textbox/internal/core/textbox"
)

const (
	boxCommandName = "box"

	optCharacter  = "character"
	optText       = "text"
	optExpression = "expression"

	textInputID     = "text_input"
	textInputMaxLen = 4000
)

// ErrTooManyPanels is returned when dialogue would need more panels than a
// message can hold.
var ErrTooManyPanels = errors.New("too many panels")

// BoxOptions configures the box command.
type BoxOptions struct {
	RendererURL string
	ChunkLimit  int
	Fallback    textbox.Fallback
}

// BoxCommand renders dialogue boxes and handles their edit controls.
type BoxCommand struct {
	catalog *catalog.Catalog
	opts    BoxOptions
}

// NewBoxCommand creates the /box command.
func NewBoxCommand(c *catalog.Catalog, opts BoxOptions) *BoxCommand {
	if opts.ChunkLimit < 1 {
		opts.ChunkLimit = textbox.DefaultChunkLimit
	}
	if opts.Fallback.CharacterID == "" || opts.Fallback.Expression == "" {
		def := textbox.DefaultFallback()
		if opts.Fallback.CharacterID == "" {
			opts.Fallback.CharacterID = def.CharacterID
		}
		if opts.Fallback.Expression == "" {
			opts.Fallback.Expression = def.Expression
		}
	}
	return &BoxCommand{catalog: c, opts: opts}
}

func (b *BoxCommand) Name() string { return boxCommandName }

func (b *BoxCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        boxCommandName,
		Description: "Generate an Undertale/Deltarune text box",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         optCharacter,
				Description:  "The character to speak",
				Required:     true,
				Autocomplete: true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optText,
				Description: "The dialogue text",
				Required:    true,
			},
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         optExpression,
				Description:  "The facial expression",
				Required:     false,
				Autocomplete: true,
			},
		},
	}
}

// boxSession bundles the per-interaction view of the core. Every interaction
// works against a single catalog snapshot.
type boxSession struct {
	snap   *catalog.Snapshot
	reader *textbox.Reader
	rec    *textbox.Reconciler
}

func (b *BoxCommand) session(req *Request) boxSession {
	snap := b.catalog.Snapshot()
	enc := textbox.NewEncoder(b.opts.RendererURL, snap, req.Log)
	return boxSession{
		snap:   snap,
		reader: textbox.NewReader(b.opts.Fallback, req.Log),
		rec:    textbox.NewReconciler(enc, b.opts.ChunkLimit),
	}
}

// Execute renders a new dialogue box.
func (b *BoxCommand) Execute(req *Request) error {
	if err := req.Defer(); err != nil {
		return fmt.Errorf("defer reply: %w", err)
	}

	state := textbox.DialogueState{
		CharacterID: req.StringOption(optCharacter),
		Expression:  req.StringOption(optExpression),
		Text:        req.StringOption(optText),
	}
	if state.CharacterID == "" {
		state.CharacterID = b.opts.Fallback.CharacterID
	}
	if state.Expression == "" {
		state.Expression = b.opts.Fallback.Expression
	}

	panels := b.session(req).rec.Render(state)
	return b.editBox(req, panels)
}

func tooManyPanels(n int) string {
	return fmt.Sprintf("that needs %d boxes and a message fits %d. don't write a novel, please.", n, MaxPanels)
}

// editBox writes panels into the deferred response. For a new box the
// response is the bot's own reply, so an oversize render becomes a notice
// in its place.
func (b *BoxCommand) editBox(req *Request, panels textbox.PanelSet) error {
	if len(panels) > MaxPanels {
		msg := tooManyPanels(len(panels))
		if err := req.EditResponse(&discordgo.WebhookEdit{Content: &msg}); err != nil {
			return fmt.Errorf("edit response: %w", err)
		}
		return nil
	}

	if err := req.EditResponse(boxWebhookEdit(boxCommandName, panels)); err != nil {
		return fmt.Errorf("edit response: %w", err)
	}
	return nil
}

// Autocomplete suggests characters and, once a character is chosen, its
// expressions.
func (b *BoxCommand) Autocomplete(req *Request) error {
	focused, ok := req.FocusedOption()
	if !ok {
		return nil
	}

	query, _ := focused.Value.(string)
	snap := b.catalog.Snapshot()

	var found []catalog.Choice
	switch focused.Name {
	case optCharacter:
		found = snap.SearchCharacters(query)
	case optExpression:
		if charID := req.StringOption(optCharacter); charID != "" {
			found = snap.SearchExpressions(charID, query)
		}
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(found))
	for _, c := range found {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  truncate(c.Name, 100),
			Value: c.Value,
		})
	}

	return req.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

// HandleAction handles the edit controls of a rendered box.
func (b *BoxCommand) HandleAction(req *Request, action Action) error {
	switch action.Kind {
	case ActionEditText:
		return b.openTextEditor(req)
	case ActionSubmitText:
		return b.submitText(req)
	case ActionOpenExpressionPicker:
		return b.openExpressionPicker(req)
	case ActionSelectExpression:
		return b.selectExpression(req, action.MessageID)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCustomID, action.Kind)
	}
}

// openTextEditor moves the box into the editing state by showing a modal
// prefilled with the recovered text.
func (b *BoxCommand) openTextEditor(req *Request) error {
	res := b.session(req).reader.Read(SurfaceOf(req.Interaction.Message))

	return req.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: Action{Command: boxCommandName, Kind: ActionSubmitText}.CustomID(),
			Title:    "Edit Dialogue",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:  textInputID,
							Label:     "New Text",
							Style:     discordgo.TextInputParagraph,
							Value:     truncate(res.State.Text, textInputMaxLen),
							Required:  true,
							MaxLength: textInputMaxLen,
						},
					},
				},
			},
		},
	})
}

// submitText applies a text replacement to the box the modal was opened from.
func (b *BoxCommand) submitText(req *Request) error {
	if err := req.DeferUpdate(); err != nil {
		return fmt.Errorf("defer update: %w", err)
	}

	s := b.session(req)
	res := s.reader.Read(SurfaceOf(req.Interaction.Message))
	req.Log.Debug().
		Str("surface", res.Surface.String()).
		Str("character", res.State.CharacterID).
		Str("expression", res.State.Expression).
		Int("panels", len(res.Panels)).
		Msg("recovered dialogue state")

	_, panels := s.rec.ReplaceText(res.State, req.ModalValue(textInputID))
	if len(panels) > MaxPanels {
		// The deferred response is the shared box message. Leave it alone.
		if err := req.FollowUp(tooManyPanels(len(panels))); err != nil {
			return fmt.Errorf("send notice: %w", err)
		}
		return nil
	}
	return b.editBox(req, panels)
}

// openExpressionPicker replies with a selector of the speaking character's
// expressions. Characters without expressions cannot be edited this way.
func (b *BoxCommand) openExpressionPicker(req *Request) error {
	msg := req.Interaction.Message
	if msg == nil {
		if err := req.Ephemeral(msgNoBox); err != nil {
			return err
		}
		return fmt.Errorf("%w: no message to edit", ErrUnsupportedAction)
	}

	s := b.session(req)
	res := s.reader.Read(SurfaceOf(msg))

	char, ok := s.snap.Lookup(res.State.CharacterID)
	if !ok || !char.HasExpressions() {
		if err := req.Ephemeral("this character has no expressions to pick from."); err != nil {
			return err
		}
		return fmt.Errorf("%w: no expressions for %q", ErrUnsupportedAction, res.State.CharacterID)
	}

	options := make([]discordgo.SelectMenuOption, 0, min(len(char.Expressions), catalog.MaxChoices))
	for _, e := range char.Expressions {
		options = append(options, discordgo.SelectMenuOption{
			Label:   truncate(e.Label(), 100),
			Value:   e.Key,
			Default: e.Key == res.State.Expression,
		})
		if len(options) >= catalog.MaxChoices {
			break
		}
	}

	return req.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("pick an expression for %s.", char.Name),
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.SelectMenu{
							CustomID:    Action{Command: boxCommandName, Kind: ActionSelectExpression, MessageID: msg.ID}.CustomID(),
							Placeholder: "Expression",
							Options:     options,
						},
					},
				},
			},
		},
	})
}

// selectExpression applies an expression replacement to the target box and
// closes the picker.
func (b *BoxCommand) selectExpression(req *Request, messageID string) error {
	values := req.Interaction.MessageComponentData().Values
	if len(values) == 0 || values[0] == "" {
		if err := req.Ephemeral(msgNoExpression); err != nil {
			return err
		}
		return fmt.Errorf("%w: no expression selected", ErrUnsupportedAction)
	}
	expression := values[0]

	target, err := req.Responder.ChannelMessage(req.Interaction.ChannelID, messageID)
	if err != nil {
		return fmt.Errorf("fetch dialogue box: %w", err)
	}

	s := b.session(req)
	res := s.reader.Read(SurfaceOf(target))
	_, panels := s.rec.ReplaceExpression(res.State, res.Panels, expression)
	if len(panels) > MaxPanels {
		return fmt.Errorf("%w: %d", ErrTooManyPanels, len(panels))
	}

	if _, err := req.Responder.ChannelMessageEditComplex(boxMessageEdit(boxCommandName, target.ChannelID, target.ID, panels)); err != nil {
		return fmt.Errorf("edit dialogue box: %w", err)
	}

	label := expression
	if char, ok := s.snap.Lookup(res.State.CharacterID); ok {
		if e, ok := char.Expression(expression); ok {
			label = e.Label()
		}
	}

	return req.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    fmt.Sprintf("expression set to %s.", label),
			Components: []discordgo.MessageComponent{},
		},
	})
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}
