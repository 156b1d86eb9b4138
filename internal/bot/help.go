package bot

import (
	"github.com/bwmarrin/discordgo"
)

// HelpCommand explains how to use the bot.
type HelpCommand struct{}

func (HelpCommand) Name() string { return "help" }

func (HelpCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "help",
		Description: "Get help using the Undertale Box Bot",
	}
}

func (HelpCommand) Execute(req *Request) error {
	return req.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{HelpEmbed()},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// HelpEmbed is the usage summary shown by /help.
func HelpEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Undertale Box Bot Help",
		Description: "Generating text boxes because apparently typing is too hard for some people.",
		Color:       0xffffff,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Basic Usage: `/box`", Value: "Use `/box character: <name> text: <dialogue>` to generate a text box. It is not that complicated."},
			{Name: "Autocomplete", Value: "The `character` and `expression` fields have autocomplete. Use them. It saves you from typos I have to handle."},
			{Name: "Expressions", Value: "Most characters have multiple expressions. If you don't pick one, you get \"default\". Boring, but functional."},
			{Name: "Interactive Editing", Value: "Once a box is generated, use the buttons to edit the text or change expressions without retyping the whole command. Efficiency, I guess."},
			{Name: "Long Text", Value: "If your text is too long, the bot will split it into multiple boxes automatically. Don't write a novel, please."},
			{Name: "AUs (Alternate Universes)", Value: "The bot includes characters from various AUs. The universe is shown in parentheses during autocomplete."},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "just use the commands. please."},
	}
}
