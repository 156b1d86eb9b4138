// Package bot adapts the dialogue box core to Discord interactions.
package bot

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

const (
	msgCommandFailed = "error executing this. of course."
	msgActionFailed  = "button handling failed. try again."
	msgNoBox         = "can't find the dialogue box to edit."
	msgNoExpression  = "no expression picked."
)

// Bot owns the gateway session and routes interactions to commands.
type Bot struct {
	session  *discordgo.Session
	registry *Registry
	log      zerolog.Logger
}

// New creates a bot for the given token. The session is not opened.
func New(token string, registry *Registry, log zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	b := &Bot{session: session, registry: registry, log: log}

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("ready")
	})
	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.Dispatch(s, i)
	})

	return b, nil
}

// Session returns the underlying gateway session.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Open connects to the gateway.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	return nil
}

// Close disconnects from the gateway.
func (b *Bot) Close() error {
	return b.session.Close()
}

// Dispatch handles a single interaction to completion. Handler errors are
// logged and reported to the user; they never escape.
func (b *Bot) Dispatch(responder Responder, i *discordgo.InteractionCreate) {
	if i == nil || i.Interaction == nil {
		return
	}

	req := &Request{
		Interaction: i.Interaction,
		Responder:   responder,
		Log:         b.log.With().Str("interaction", i.ID).Str("type", i.Type.String()).Logger(),
	}

	defer func() {
		if r := recover(); r != nil {
			req.Log.Error().Interface("panic", r).Msg("interaction handler panicked")
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.dispatchCommand(req)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.dispatchAutocomplete(req)
	case discordgo.InteractionMessageComponent:
		b.dispatchComponent(req, i.MessageComponentData().CustomID)
	case discordgo.InteractionModalSubmit:
		b.dispatchComponent(req, i.ModalSubmitData().CustomID)
	}
}

func (b *Bot) dispatchCommand(req *Request) {
	name := req.Interaction.ApplicationCommandData().Name
	cmd, ok := b.registry.Get(name)
	if !ok {
		req.Log.Error().Str("command", name).Msg("unknown command")
		return
	}

	if err := cmd.Execute(req); err != nil {
		req.Log.Error().Err(err).Str("command", name).Msg("command failed")
		b.reportFailure(req, msgCommandFailed)
	}
}

func (b *Bot) dispatchAutocomplete(req *Request) {
	name := req.Interaction.ApplicationCommandData().Name
	cmd, ok := b.registry.Get(name)
	if !ok {
		req.Log.Error().Str("command", name).Msg("missing autocomplete")
		return
	}

	ac, ok := cmd.(Autocompleter)
	if !ok {
		return
	}

	if err := ac.Autocomplete(req); err != nil {
		req.Log.Error().Err(err).Str("command", name).Msg("autocomplete failed")
	}
}

func (b *Bot) dispatchComponent(req *Request, customID string) {
	h, action, err := b.registry.component(customID)
	if err != nil {
		req.Log.Warn().Err(err).Str("custom_id", customID).Msg("ignoring component")
		return
	}

	if err := h.HandleAction(req, action); err != nil {
		if errors.Is(err, ErrUnsupportedAction) {
			req.Log.Info().Err(err).Str("custom_id", customID).Msg("rejected action")
			return
		}
		req.Log.Error().Err(err).Str("custom_id", customID).Msg("component failed")
		b.reportFailure(req, msgActionFailed)
	}
}

// reportFailure tells the user something went wrong. If the interaction was
// already acknowledged the original response is edited instead.
func (b *Bot) reportFailure(req *Request, content string) {
	if err := req.Ephemeral(content); err == nil {
		return
	}

	if err := req.EditResponse(&discordgo.WebhookEdit{Content: &content}); err != nil {
		req.Log.Debug().Err(err).Msg("could not report failure")
	}
}
