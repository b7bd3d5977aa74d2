package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/textcore/internal/engine"
)

// ErrColor is returned for colors that cannot be parsed.
var ErrColor = errors.New("invalid color")

// Entry describes a style in configuration terms.
type Entry struct {
	FG        string
	BG        string
	Bold      bool
	Italic    bool
	Underline bool
	Reverse   bool
	Dim       bool
}

// ParseColor accepts "", "default", "#rrggbb" or a color name.
func ParseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "default":
		return tcell.ColorDefault, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("%q: %w", s, ErrColor)
		}
		return fromColorful(c), nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("%q: %w", s, ErrColor)
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Blend mixes a toward b by t in Lab space. Default colors are returned
// unchanged.
func Blend(a, b tcell.Color, t float64) tcell.Color {
	if !a.Valid() || !b.Valid() {
		return a
	}
	return fromColorful(toColorful(a).BlendLab(toColorful(b), t))
}

// Style converts the entry to a tcell style.
func (e Entry) Style() (tcell.Style, error) {
	fg, err := ParseColor(e.FG)
	if err != nil {
		return tcell.StyleDefault, fmt.Errorf("fg: %w", err)
	}
	bg, err := ParseColor(e.BG)
	if err != nil {
		return tcell.StyleDefault, fmt.Errorf("bg: %w", err)
	}
	attrs := tcell.AttrNone
	if e.Bold {
		attrs |= tcell.AttrBold
	}
	if e.Italic {
		attrs |= tcell.AttrItalic
	}
	if e.Underline {
		attrs |= tcell.AttrUnderline
	}
	if e.Reverse {
		attrs |= tcell.AttrReverse
	}
	if e.Dim {
		attrs |= tcell.AttrDim
	}
	return tcell.StyleDefault.Foreground(fg).Background(bg).Attributes(attrs), nil
}

// Palette maps style tags to terminal styles.
type Palette struct {
	base      tcell.Style
	selection tcell.Style
	hasSel    bool
	styles    map[engine.Tag]tcell.Style
}

// NewPalette creates a palette with default styles. Selected cells are
// shown reversed until SetSelection is called.
func NewPalette() *Palette {
	return &Palette{
		base:   tcell.StyleDefault,
		styles: make(map[engine.Tag]tcell.Style),
	}
}

// SetBase sets the style under every cell.
func (p *Palette) SetBase(e Entry) error {
	s, err := e.Style()
	if err != nil {
		return err
	}
	p.base = s
	return nil
}

// SetSelection sets the selection style. An entry without a background
// gets the base background blended toward the base foreground.
func (p *Palette) SetSelection(e Entry) error {
	s, err := e.Style()
	if err != nil {
		return err
	}
	if _, bg, _ := s.Decompose(); !bg.Valid() {
		fg, base, _ := p.base.Decompose()
		if base.Valid() && fg.Valid() {
			s = s.Background(Blend(base, fg, 0.3))
		}
	}
	p.selection, p.hasSel = s, true
	return nil
}

// Set assigns the style for tag.
func (p *Palette) Set(tag engine.Tag, e Entry) error {
	s, err := e.Style()
	if err != nil {
		return fmt.Errorf("tag %d: %w", tag, err)
	}
	p.styles[tag] = s
	return nil
}

// Has reports whether tag has a style.
func (p *Palette) Has(tag engine.Tag) bool {
	_, ok := p.styles[tag]
	return ok
}

// overlay applies top over s: set colors replace, attributes add up.
func overlay(s, top tcell.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	tfg, tbg, tattrs := top.Decompose()
	if tfg != tcell.ColorDefault {
		fg = tfg
	}
	if tbg != tcell.ColorDefault {
		bg = tbg
	}
	return tcell.StyleDefault.Foreground(fg).Background(bg).Attributes(attrs | tattrs)
}

// Resolve layers the styles of tags, in order, over the base style and
// then the selection style if selected.
func (p *Palette) Resolve(tags []engine.Tag, selected bool) tcell.Style {
	s := p.base
	for _, t := range tags {
		if ts, ok := p.styles[t]; ok {
			s = overlay(s, ts)
		}
	}
	if selected {
		if p.hasSel {
			return overlay(s, p.selection)
		}
		return s.Reverse(true)
	}
	return s
}

// CellStyle resolves the style of a cell.
func (p *Palette) CellStyle(c Cell) tcell.Style {
	return p.Resolve(c.Tags, c.Selected)
}
