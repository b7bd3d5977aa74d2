// Package script drives a text field from line-oriented commands. It backs
// the textcore command and makes editing sessions easy to replay in tests.
package script

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/textcore/internal/binding"
	"github.com/dshills/textcore/internal/config"
	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/locale"
	"github.com/dshills/textcore/internal/logging"
	"github.com/dshills/textcore/internal/mask"
	"github.com/dshills/textcore/internal/maskinput"
	"github.com/dshills/textcore/internal/view"
	"github.com/dshills/textcore/internal/view/dirty"
)

// Session is one field plus everything needed to show and persist it.
// A Session is not safe for concurrent use.
type Session struct {
	cfg      config.Config
	out      io.Writer
	logger   *logging.Logger
	registry *Registry

	eng    *engine.Engine
	field  *mask.Field
	masked *maskinput.Input
	table  locale.Table

	tracker  *dirty.Tracker
	unwatch  func()
	palette  *view.Palette
	gutter   view.Gutter
	tags     map[string]engine.Tag
	tagNames map[engine.Tag]string

	doc     *binding.Document
	docPath string
}

// Option configures a Session.
type Option func(*Session)

// WithOutput sets where command output goes. The default discards it.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// WithLogger sets the session logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithMask edits through f instead of a plain field.
func WithMask(f *mask.Field) Option {
	return func(s *Session) {
		s.field = f
	}
}

// WithDocument binds the session to a JSON document saved at path.
func WithDocument(doc *binding.Document, path string) Option {
	return func(s *Session) {
		s.doc, s.docPath = doc, path
	}
}

// WithTags names style tags for the span and style commands.
func WithTags(tags map[string]engine.Tag) Option {
	return func(s *Session) {
		for name, tag := range tags {
			s.tags[name] = tag
		}
	}
}

// WithRegistry replaces the built-in command set.
func WithRegistry(r *Registry) Option {
	return func(s *Session) {
		s.registry = r
	}
}

// New creates a session configured by cfg.
func New(cfg config.Config, table locale.Table, opts ...Option) (*Session, error) {
	s := &Session{
		cfg:      cfg,
		out:      io.Discard,
		logger:   logging.Nop(),
		registry: Builtins(),
		table:    table,
		tags:     map[string]engine.Tag{"invalid": maskinput.TagInvalid},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("script")

	if s.field != nil {
		s.field.SetPlaceholder(cfg.PlaceholderRune())
		s.masked = maskinput.New(s.field,
			maskinput.WithLogger(s.logger),
			maskinput.WithEngineOptions(cfg.EngineOptions()...))
		s.eng = s.masked.Engine()
	} else {
		s.eng = engine.New(append(cfg.EngineOptions(), engine.WithLogger(s.logger))...)
	}

	palette, err := cfg.BuildPalette(s.tags)
	if err != nil {
		return nil, err
	}
	s.palette = palette
	s.gutter = cfg.Gutter(table)
	s.tagNames = make(map[engine.Tag]string, len(s.tags))
	for name, tag := range s.tags {
		s.tagNames[tag] = name
	}

	s.tracker = dirty.NewTracker(s.eng.LineCount())
	s.unwatch = s.tracker.Observe(s.eng)
	return s, nil
}

// Close detaches the session from its engine.
func (s *Session) Close() {
	if s.unwatch != nil {
		s.unwatch()
		s.unwatch = nil
	}
}

// Engine returns the engine holding the field's text.
func (s *Session) Engine() *engine.Engine { return s.eng }

// Masked returns the masked input, or nil for a plain field.
func (s *Session) Masked() *maskinput.Input { return s.masked }

// Document returns the bound document, or nil.
func (s *Session) Document() *binding.Document { return s.doc }

func (s *Session) mode() Mode {
	if s.masked != nil {
		return ModeMasked
	}
	return ModePlain
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// Exec runs one script line.
func (s *Session) Exec(line string) error {
	words, err := Tokenize(line)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return nil
	}
	cmd, ok := s.registry.Get(words[0])
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, words[0])
	}
	if cmd.Mode&s.mode() == 0 {
		return fmt.Errorf("%s: %w", cmd.Name, ErrWrongMode)
	}
	args := words[1:]
	if err := cmd.check(args); err != nil {
		return err
	}
	s.logger.Debug("exec %s %q", cmd.Name, args)
	return cmd.Run(s, args)
}

// Run executes every line read from r. With prompt set, a prompt is
// written before each line and failing commands are reported without
// stopping; otherwise the first failure ends the run.
func (s *Session) Run(ctx context.Context, r io.Reader, prompt string) error {
	sc := bufio.NewScanner(r)
	n := 0
	for {
		if prompt != "" {
			s.printf("%s", prompt)
		}
		if !sc.Scan() {
			break
		}
		n++
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.Exec(sc.Text())
		if err == nil {
			continue
		}
		if prompt == "" {
			return fmt.Errorf("line %d: %w", n, err)
		}
		s.printf("error: %v\n", err)
	}
	return sc.Err()
}

// Show writes the visible lines with a gutter and a caret marker.
func (s *Session) Show() {
	caret := s.eng.Caret()
	lines := view.Lines(s.eng, 0, s.eng.LineCount(), s.cfg.ViewOptions())
	labels := s.gutter.Render(0, len(lines), caret.Line, s.eng.LineCount())
	for i, l := range lines {
		s.printf("%s %s\n", labels[i], l.Text())
		if l.Caret >= 0 {
			col := 0
			for _, c := range l.Cells[:l.Caret] {
				col += c.Width
			}
			s.printf("%s %s^\n", strings.Repeat(" ", len(labels[i])), strings.Repeat(" ", col))
		}
	}
}
