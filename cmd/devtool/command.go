package main

import (
	"context"
	"fmt"
	"io"
	"sort"
)

// Command is one devtool subcommand. Run receives the arguments after the
// command name; ctx is cancelled on interrupt.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, args []string) error
}

// Registry maps names to commands.
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd, replacing any command with the same name.
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get looks a command up by name.
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns the commands sorted by name.
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// PrintHelp writes usage with descriptions aligned in one column.
func (r *Registry) PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: devtool <command> [args...]")
	fmt.Fprintln(w, "\nAvailable Commands:")

	cmds := r.List()
	width := 0
	for _, cmd := range cmds {
		width = max(width, len(cmd.Name()))
	}
	for _, cmd := range cmds {
		fmt.Fprintf(w, "  %-*s  %s\n", width, cmd.Name(), cmd.Description())
	}
}
