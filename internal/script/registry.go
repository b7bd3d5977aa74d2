package script

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Mode says which sessions a command applies to.
type Mode uint8

const (
	// ModePlain commands need a plain text field.
	ModePlain Mode = 1 << iota
	// ModeMasked commands need a masked field.
	ModeMasked
	// ModeAny commands work in both.
	ModeAny = ModePlain | ModeMasked
)

// Command is one script verb.
type Command struct {
	Name    string
	Usage   string
	Help    string
	MinArgs int
	MaxArgs int // -1 for no limit
	Mode    Mode
	Run     func(s *Session, args []string) error
}

// Errors returned for malformed commands.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	ErrWrongMode      = errors.New("not available for this field")
)

// Registry maps names to commands.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd, replacing any command of the same name.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.Name] = cmd
}

// Get returns the command called name.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all command names in order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// check validates args against the command's arity.
func (c Command) check(args []string) error {
	if len(args) < c.MinArgs || (c.MaxArgs >= 0 && len(args) > c.MaxArgs) {
		return fmt.Errorf("%w: %s %s", ErrUsage, c.Name, c.Usage)
	}
	return nil
}
