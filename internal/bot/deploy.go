package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// CommandOverwriter replaces an application's registered commands.
type CommandOverwriter interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Deploy uploads every registered command. A non-empty guildID scopes the
// commands to that guild, which applies immediately; global commands can take
// up to an hour to propagate.
func Deploy(api CommandOverwriter, appID, guildID string, registry *Registry) ([]*discordgo.ApplicationCommand, error) {
	created, err := api.ApplicationCommandBulkOverwrite(appID, guildID, registry.Definitions())
	if err != nil {
		return nil, fmt.Errorf("overwrite commands: %w", err)
	}
	return created, nil
}
