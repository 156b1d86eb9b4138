package bot

import (
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// Command is a slash command.
type Command interface {
	Name() string
	Definition() *discordgo.ApplicationCommand
	Execute(req *Request) error
}

// Autocompleter is implemented by commands with autocompleted options.
type Autocompleter interface {
	Autocomplete(req *Request) error
}

// ComponentHandler is implemented by commands that own message components
// and modals. Custom IDs are routed by their command prefix.
type ComponentHandler interface {
	HandleAction(req *Request, action Action) error
}

// Registry maps command names to commands.
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a registry holding cmds.
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(cmds))}
	for _, c := range cmds {
		r.Register(c)
	}
	return r
}

// Register adds a command, replacing any command with the same name.
func (r *Registry) Register(c Command) {
	r.commands[c.Name()] = c
}

// Get returns the command with the given name.
func (r *Registry) Get(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Definitions returns the application command definitions sorted by name.
func (r *Registry) Definitions() []*discordgo.ApplicationCommand {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]*discordgo.ApplicationCommand, 0, len(names))
	for _, name := range names {
		defs = append(defs, r.commands[name].Definition())
	}
	return defs
}

// component resolves the handler that owns a custom ID.
func (r *Registry) component(customID string) (ComponentHandler, Action, error) {
	action, err := ParseAction(customID)
	if err != nil {
		return nil, Action{}, err
	}

	c, ok := r.commands[action.Command]
	if !ok {
		return nil, Action{}, fmt.Errorf("%w: no command %q", ErrUnknownCustomID, action.Command)
	}

	h, ok := c.(ComponentHandler)
	if !ok {
		return nil, Action{}, fmt.Errorf("%w: command %q has no components", ErrUnknownCustomID, action.Command)
	}

	return h, action, nil
}
