package config

import (
	"errors"
	"io"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/language"

	"github.com/dshills/textcore/internal/clipboard"
	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/engine/history"
	"github.com/dshills/textcore/internal/locale"
	"github.com/dshills/textcore/internal/logging"
	"github.com/dshills/textcore/internal/mask"
	"github.com/dshills/textcore/internal/view"
)

// Config holds every textcore setting.
type Config struct {
	Editor  EditorConfig           `toml:"editor"`
	Undo    UndoConfig             `toml:"undo"`
	Mask    MaskConfig             `toml:"mask"`
	Log     LogConfig              `toml:"log"`
	Palette map[string]StyleConfig `toml:"palette"`
}

// EditorConfig holds engine and layout settings.
type EditorConfig struct {
	// TabWidth is the distance between tab stops.
	TabWidth int `toml:"tab_width"`

	// ExpandTabs makes the tab key insert spaces.
	ExpandTabs bool `toml:"expand_tabs"`

	// SingleLine restricts plain fields to one line.
	SingleLine bool `toml:"single_line"`

	// ShowCtrl renders control characters as symbols.
	ShowCtrl bool `toml:"show_ctrl"`

	// Newline is the exported line ending: "lf", "crlf" or "cr".
	Newline string `toml:"newline"`

	// RelativeNumbers numbers gutter lines from the caret line.
	RelativeNumbers bool `toml:"relative_numbers"`

	// SystemClipboard copies to the operating system clipboard when one
	// is available.
	SystemClipboard bool `toml:"system_clipboard"`
}

// UndoConfig holds history settings.
type UndoConfig struct {
	// MaxDepth bounds the number of undo steps; -1 is unlimited.
	MaxDepth int `toml:"max_depth"`

	// Coalesce merges typing runs into single steps.
	Coalesce bool `toml:"coalesce"`

	// MaxRun is the longest run in graphemes; 0 is unbounded.
	MaxRun int `toml:"max_run"`

	// Boundary is "none", "whitespace" or "word".
	Boundary string `toml:"boundary"`

	// Styles makes span changes undoable.
	Styles bool `toml:"styles"`
}

// MaskConfig holds masked field settings.
type MaskConfig struct {
	// Placeholder is shown in blank cells.
	Placeholder string `toml:"placeholder"`

	// Locale is a BCP 47 tag matched against the locale catalog.
	Locale string `toml:"locale"`

	// LocaleFile names a YAML file of extra locale tables.
	LocaleFile string `toml:"locale_file"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// StyleConfig is one palette entry.
type StyleConfig struct {
	FG        string `toml:"fg"`
	BG        string `toml:"bg"`
	Bold      bool   `toml:"bold"`
	Italic    bool   `toml:"italic"`
	Underline bool   `toml:"underline"`
	Reverse   bool   `toml:"reverse"`
	Dim       bool   `toml:"dim"`
}

// Palette entries with these names style the whole view and the
// selection rather than a tag.
const (
	PaletteBase      = "base"
	PaletteSelection = "selection"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth:   engine.DefaultTabWidth,
			ExpandTabs: true,
			Newline:    "lf",
		},
		Undo: UndoConfig{
			MaxDepth: history.DefaultMaxDepth,
			Coalesce: true,
			MaxRun:   history.DefaultPolicy.MaxRun,
			Boundary: history.DefaultPolicy.Boundary.String(),
		},
		Mask: MaskConfig{
			Placeholder: string(mask.DefaultPlaceholder),
			Locale:      "en-US",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Validate checks every setting and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 32 {
		errs = append(errs, invalid("editor.tab_width %d out of range [1, 32]", c.Editor.TabWidth))
	}
	if _, ok := buffer.ParseLineEnding(c.Editor.Newline); !ok {
		errs = append(errs, invalid("editor.newline %q", c.Editor.Newline))
	}
	if c.Undo.MaxDepth < history.Unlimited {
		errs = append(errs, invalid("undo.max_depth %d", c.Undo.MaxDepth))
	}
	if c.Undo.MaxRun < 0 {
		errs = append(errs, invalid("undo.max_run %d is negative", c.Undo.MaxRun))
	}
	if _, ok := history.ParseBoundary(c.Undo.Boundary); !ok {
		errs = append(errs, invalid("undo.boundary %q", c.Undo.Boundary))
	}
	if utf8.RuneCountInString(c.Mask.Placeholder) != 1 {
		errs = append(errs, invalid("mask.placeholder %q must be one character", c.Mask.Placeholder))
	}
	if _, err := language.Parse(c.Mask.Locale); err != nil {
		errs = append(errs, invalid("mask.locale %q: %v", c.Mask.Locale, err))
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		errs = append(errs, invalid("log.level %q", c.Log.Level))
	}
	for _, name := range c.paletteNames() {
		if _, err := c.Palette[name].entry().Style(); err != nil {
			errs = append(errs, invalid("palette.%s: %v", name, err))
		}
	}
	return errors.Join(errs...)
}

// EngineOptions returns the engine options the configuration selects.
func (c Config) EngineOptions() []engine.Option {
	le, _ := buffer.ParseLineEnding(c.Editor.Newline)
	opts := []engine.Option{
		engine.WithTabWidth(c.Editor.TabWidth),
		engine.WithExpandTabs(c.Editor.ExpandTabs),
		engine.WithNewline(le),
		engine.WithMaxUndo(c.Undo.MaxDepth),
	}
	if c.Editor.SingleLine {
		opts = append(opts, engine.WithSingleLine())
	}
	if c.Undo.Coalesce {
		b, _ := history.ParseBoundary(c.Undo.Boundary)
		opts = append(opts, engine.WithCoalescing(history.Policy{MaxRun: c.Undo.MaxRun, Boundary: b}))
	} else {
		opts = append(opts, engine.WithoutCoalescing())
	}
	if c.Undo.Styles {
		opts = append(opts, engine.WithUndoStyles())
	}
	if c.Editor.SystemClipboard {
		opts = append(opts, engine.WithClipboard(clipboard.Best()))
	}
	return opts
}

// ViewOptions returns the layout options.
func (c Config) ViewOptions() view.Options {
	return view.Options{TabWidth: c.Editor.TabWidth, ShowCtrl: c.Editor.ShowCtrl}
}

// Gutter returns the line-number gutter for table.
func (c Config) Gutter(table locale.Table) view.Gutter {
	return view.Gutter{Relative: c.Editor.RelativeNumbers, Printer: table.Printer()}
}

// Logger builds a logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *logging.Logger {
	level, _ := logging.ParseLevel(c.Log.Level)
	return logging.New(logging.Config{Level: level, Output: w, Prefix: "textcore"})
}

// PlaceholderRune returns the mask placeholder.
func (c Config) PlaceholderRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Mask.Placeholder)
	if r == utf8.RuneError {
		return mask.DefaultPlaceholder
	}
	return r
}

// Catalog returns the built-in locale catalog extended with the tables in
// mask.locale_file.
func (c Config) Catalog() (*locale.Catalog, error) {
	cat := locale.Builtin()
	if c.Mask.LocaleFile == "" {
		return cat, nil
	}
	tables, err := locale.LoadYAMLFile(c.Mask.LocaleFile)
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		if err := cat.Add(t); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// Locale resolves mask.locale against cat.
func (c Config) Locale(cat *locale.Catalog) (locale.Table, error) {
	tag, err := language.Parse(c.Mask.Locale)
	if err != nil {
		return locale.Table{}, invalid("mask.locale %q: %v", c.Mask.Locale, err)
	}
	t, _ := cat.Match(tag)
	return t, nil
}

// BuildPalette turns the palette section into a view palette. tags names
// the style tags entries may refer to.
func (c Config) BuildPalette(tags map[string]engine.Tag) (*view.Palette, error) {
	p := view.NewPalette()
	if e, ok := c.Palette[PaletteBase]; ok {
		if err := p.SetBase(e.entry()); err != nil {
			return nil, invalid("palette.%s: %v", PaletteBase, err)
		}
	}
	if e, ok := c.Palette[PaletteSelection]; ok {
		if err := p.SetSelection(e.entry()); err != nil {
			return nil, invalid("palette.%s: %v", PaletteSelection, err)
		}
	}
	for _, name := range c.paletteNames() {
		if name == PaletteBase || name == PaletteSelection {
			continue
		}
		tag, ok := tags[name]
		if !ok {
			return nil, invalid("palette.%s: unknown tag", name)
		}
		if err := p.Set(tag, c.Palette[name].entry()); err != nil {
			return nil, invalid("palette.%s: %v", name, err)
		}
	}
	return p, nil
}

func (c Config) paletteNames() []string {
	names := make([]string, 0, len(c.Palette))
	for name := range c.Palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s StyleConfig) entry() view.Entry {
	return view.Entry{
		FG:        s.FG,
		BG:        s.BG,
		Bold:      s.Bold,
		Italic:    s.Italic,
		Underline: s.Underline,
		Reverse:   s.Reverse,
		Dim:       s.Dim,
	}
}
