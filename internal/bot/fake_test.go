package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/textbox-bot/textbox/internal/core/catalog"
)

type fakeResponder struct {
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
	msgEdits  []*discordgo.MessageEdit
	followUps []*discordgo.WebhookParams
	messages  map[string]*discordgo.Message

	respondErr error
	editErr    error
}

func (f *fakeResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	if f.respondErr != nil {
		return f.respondErr
	}
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeResponder) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.editErr != nil {
		return nil, f.editErr
	}
	f.edits = append(f.edits, edit)
	return &discordgo.Message{}, nil
}

func (f *fakeResponder) ChannelMessage(channelID, messageID string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m, ok := f.messages[messageID]
	if !ok || m.ChannelID != channelID {
		return nil, fmt.Errorf("message %s/%s not found", channelID, messageID)
	}
	return m, nil
}

func (f *fakeResponder) ChannelMessageEditComplex(edit *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.msgEdits = append(f.msgEdits, edit)
	return &discordgo.Message{ID: edit.ID, ChannelID: edit.Channel}, nil
}

func (f *fakeResponder) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.followUps = append(f.followUps, data)
	return &discordgo.Message{}, nil
}

func testCatalog() *catalog.Catalog {
	c := catalog.New("unused.json")
	c.Store(catalog.NewSnapshot([]catalog.Character{
		{ID: "undertale-sans", Name: "Sans", Universe: "undertale", Expressions: []catalog.Expression{
			{Key: "default", Name: "Default"},
			{Key: "wink", Name: "Wink"},
			{Key: "closed_eyes", Name: "Eyes Closed"},
		}},
		{ID: "deltarune-susie", Name: "Susie", Universe: "deltarune"},
	}))
	return c
}

func testBot() *Bot {
	reg := NewRegistry(NewBoxCommand(testCatalog(), BoxOptions{}), HelpCommand{})
	return &Bot{registry: reg, log: zerolog.Nop()}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func commandInteraction(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "i1",
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "c1",
		Data:      discordgo.ApplicationCommandInteractionData{Name: name, Options: opts},
	}}
}

func autocompleteInteraction(opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	ic := commandInteraction(boxCommandName, opts...)
	ic.Type = discordgo.InteractionApplicationCommandAutocomplete
	return ic
}

func componentInteraction(customID string, msg *discordgo.Message, values ...string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "i2",
		Type:      discordgo.InteractionMessageComponent,
		ChannelID: "c1",
		Message:   msg,
		Data:      discordgo.MessageComponentInteractionData{CustomID: customID, Values: values},
	}}
}

func modalInteraction(customID, text string, msg *discordgo.Message) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "i3",
		Type:      discordgo.InteractionModalSubmit,
		ChannelID: "c1",
		Message:   msg,
		Data: discordgo.ModalSubmitInteractionData{
			CustomID: customID,
			Components: []discordgo.MessageComponent{
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: textInputID, Value: text},
				}},
			},
		},
	}}
}

func embedMessage(id string, urls ...string) *discordgo.Message {
	m := &discordgo.Message{ID: id, ChannelID: "c1"}
	for _, u := range urls {
		m.Embeds = append(m.Embeds, &discordgo.MessageEmbed{Image: &discordgo.MessageEmbedImage{URL: u}})
	}
	return m
}

func attachmentMessage(id string, urls ...string) *discordgo.Message {
	m := &discordgo.Message{ID: id, ChannelID: "c1"}
	for _, u := range urls {
		m.Attachments = append(m.Attachments, &discordgo.MessageAttachment{URL: u})
	}
	return m
}

func embedURLs(embeds []*discordgo.MessageEmbed) []string {
	urls := make([]string, len(embeds))
	for i, e := range embeds {
		urls[i] = e.Image.URL
	}
	return urls
}
