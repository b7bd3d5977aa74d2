// Package clipboard provides the clipboards the editing core copies to and
// pastes from.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	sysclip "github.com/atotto/clipboard"
)

// ErrUnavailable is returned when the system clipboard cannot be reached.
var ErrUnavailable = errors.New("clipboard unavailable")

// Clipboard stores a single text value.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Local is an in-process clipboard. The zero value is empty and ready.
type Local struct {
	mu   sync.Mutex
	text string
}

// NewLocal creates an empty local clipboard.
func NewLocal() *Local {
	return &Local{}
}

// Get returns the stored text.
func (c *Local) Get() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

// Set stores text.
func (c *Local) Set(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

// System uses the operating system clipboard.
type System struct{}

// NewSystem returns the system clipboard, or ErrUnavailable when the
// platform has no clipboard utility.
func NewSystem() (*System, error) {
	if sysclip.Unsupported {
		return nil, ErrUnavailable
	}
	return &System{}, nil
}

// Get reads the system clipboard.
func (System) Get() (string, error) {
	text, err := sysclip.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return text, nil
}

// Set writes the system clipboard.
func (System) Set(text string) error {
	if err := sysclip.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Fallback tries Primary first and uses Secondary when Primary fails.
type Fallback struct {
	Primary   Clipboard
	Secondary Clipboard
}

// Get reads Primary, falling back to Secondary.
func (f Fallback) Get() (string, error) {
	if text, err := f.Primary.Get(); err == nil {
		return text, nil
	}
	return f.Secondary.Get()
}

// Set writes both clipboards. It fails only when Secondary fails.
func (f Fallback) Set(text string) error {
	_ = f.Primary.Set(text)
	return f.Secondary.Set(text)
}

// Best returns the system clipboard backed by a local one, or only the
// local clipboard when the system has none.
func Best() Clipboard {
	local := NewLocal()
	sys, err := NewSystem()
	if err != nil {
		return local
	}
	return Fallback{Primary: sys, Secondary: local}
}
