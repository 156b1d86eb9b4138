package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Responder is the subset of *discordgo.Session used to answer interactions.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Request is a single inbound interaction and the means to answer it.
type Request struct {
	Interaction *discordgo.Interaction
	Responder   Responder
	Log         zerolog.Logger
}

// Respond sends the initial interaction response.
func (r *Request) Respond(resp *discordgo.InteractionResponse) error {
	return r.Responder.InteractionRespond(r.Interaction, resp)
}

// Ephemeral replies with a message only the invoking user can see.
func (r *Request) Ephemeral(content string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// Defer acknowledges a command with a "thinking" state.
func (r *Request) Defer() error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

// DeferUpdate acknowledges a component or modal without changing the message yet.
func (r *Request) DeferUpdate() error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// EditResponse edits the original response, or for component interactions
// the message the component is attached to.
func (r *Request) EditResponse(edit *discordgo.WebhookEdit) error {
	_, err := r.Responder.InteractionResponseEdit(r.Interaction, edit)
	return err
}

// FollowUp sends an ephemeral message after the interaction was
// acknowledged, without touching the original response.
func (r *Request) FollowUp(content string) error {
	_, err := r.Responder.FollowupMessageCreate(r.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return err
}

// StringOption returns a string option of a slash command.
func (r *Request) StringOption(name string) string {
	for _, opt := range r.Interaction.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

// FocusedOption returns the option being autocompleted.
func (r *Request) FocusedOption() (*discordgo.ApplicationCommandInteractionDataOption, bool) {
	for _, opt := range r.Interaction.ApplicationCommandData().Options {
		if opt.Focused {
			return opt, true
		}
	}
	return nil, false
}

// ModalValue returns the value of a text input in a submitted modal.
func (r *Request) ModalValue(fieldID string) string {
	for _, comp := range r.Interaction.ModalSubmitData().Components {
		row, ok := comp.(*discordgo.ActionsRow)
		if !ok || row == nil {
			continue
		}
		for _, c := range row.Components {
			ti, ok := c.(*discordgo.TextInput)
			if ok && ti.CustomID == fieldID {
				return ti.Value
			}
		}
	}
	return ""
}
