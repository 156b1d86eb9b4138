package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/textbox-bot/textbox/internal/core/textbox"
)

// MaxPanels is the most embeds a single message can carry.
const MaxPanels = 10

// SurfaceOf extracts the panel surface of a rendered message.
func SurfaceOf(m *discordgo.Message) textbox.Surface {
	if m == nil {
		return textbox.ResolveSurface(nil, nil)
	}

	embeds := make([]string, 0, len(m.Embeds))
	for _, e := range m.Embeds {
		if e != nil && e.Image != nil {
			embeds = append(embeds, e.Image.URL)
		}
	}

	attachments := make([]string, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		if a != nil {
			attachments = append(attachments, a.URL)
		}
	}

	return textbox.ResolveSurface(embeds, attachments)
}

// PanelEmbeds renders a panel set as one image embed per panel.
func PanelEmbeds(panels textbox.PanelSet) []*discordgo.MessageEmbed {
	embeds := make([]*discordgo.MessageEmbed, len(panels))
	for i, p := range panels {
		embeds[i] = &discordgo.MessageEmbed{
			Image: &discordgo.MessageEmbedImage{URL: p.ImageURL},
		}
	}
	return embeds
}

// boxComponents is the action row shown under a dialogue box in the viewing
// state.
func boxComponents(command string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: Action{Command: command, Kind: ActionEditText}.CustomID(),
					Label:    "✏️ Edit Text",
					Style:    discordgo.SecondaryButton,
				},
				discordgo.Button{
					CustomID: Action{Command: command, Kind: ActionOpenExpressionPicker}.CustomID(),
					Label:    "🎭 Expression",
					Style:    discordgo.SecondaryButton,
				},
			},
		},
	}
}

// boxWebhookEdit replaces the content of a dialogue box message. Legacy
// attachments are dropped so the message is rewritten in the embed format.
func boxWebhookEdit(command string, panels textbox.PanelSet) *discordgo.WebhookEdit {
	content := ""
	embeds := PanelEmbeds(panels)
	components := boxComponents(command)
	attachments := []*discordgo.MessageAttachment{}
	return &discordgo.WebhookEdit{
		Content:     &content,
		Embeds:      &embeds,
		Components:  &components,
		Attachments: &attachments,
	}
}

// boxMessageEdit is boxWebhookEdit for a message edited through the channel.
func boxMessageEdit(command, channelID, messageID string, panels textbox.PanelSet) *discordgo.MessageEdit {
	content := ""
	embeds := PanelEmbeds(panels)
	components := boxComponents(command)
	attachments := []*discordgo.MessageAttachment{}
	return &discordgo.MessageEdit{
		ID:          messageID,
		Channel:     channelID,
		Content:     &content,
		Embeds:      &embeds,
		Components:  &components,
		Attachments: &attachments,
	}
}
