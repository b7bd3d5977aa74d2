package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textcore/internal/binding"
	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/mask"
)

// ErrNoDocument is returned by binding commands when no document is open.
var ErrNoDocument = errors.New("no document bound")

// Builtins returns a registry holding every built-in command.
func Builtins() *Registry {
	r := NewRegistry()
	for _, cmd := range editCommands() {
		r.Register(cmd)
	}
	for _, cmd := range motionCommands() {
		r.Register(cmd)
	}
	for _, cmd := range styleCommands() {
		r.Register(cmd)
	}
	for _, cmd := range valueCommands() {
		r.Register(cmd)
	}
	for _, cmd := range outputCommands() {
		r.Register(cmd)
	}
	r.Register(Command{
		Name: "help", Help: "list commands", MaxArgs: 0, Mode: ModeAny,
		Run: func(s *Session, _ []string) error {
			for _, name := range s.registry.List() {
				cmd, _ := s.registry.Get(name)
				if cmd.Mode&s.mode() == 0 {
					continue
				}
				s.printf("%-18s %s\n", strings.TrimSpace(cmd.Name+" "+cmd.Usage), cmd.Help)
			}
			return nil
		},
	})
	return r
}

// count parses an optional repeat count.
func count(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: bad count %q", ErrUsage, args[0])
	}
	return n, nil
}

func repeat(args []string, fn func()) error {
	n, err := count(args)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		fn()
	}
	return nil
}

func offset(s *Session, arg string) (engine.Position, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return engine.Position{}, fmt.Errorf("%w: bad offset %q", ErrUsage, arg)
	}
	return s.eng.PositionAtOffset(n)
}

func ignore(_ bool, err error) error { return err }

// ============================================================================
// Editing
// ============================================================================

func editCommands() []Command {
	return []Command{
		{
			Name: "type", Usage: "<text>", Help: "type text at the caret", MinArgs: 1, MaxArgs: -1, Mode: ModeAny,
			Run: func(s *Session, args []string) error {
				text := strings.Join(args, " ")
				if s.masked != nil {
					if n := s.masked.TypeString(text); n < len([]rune(text)) {
						s.logger.Debug("%d of %d keystrokes accepted", n, len([]rune(text)))
					}
					return nil
				}
				return s.eng.InsertText(text)
			},
		},
		{
			Name: "tab", Help: "insert a tab or spaces to the next stop", Mode: ModePlain,
			Run: func(s *Session, _ []string) error { return s.eng.InsertTab() },
		},
		{
			Name: "newline", Help: "break the line", Mode: ModePlain,
			Run: func(s *Session, _ []string) error { return ignore(s.eng.InsertNewline()) },
		},
		{
			Name: "backspace", Usage: "[n]", Help: "delete before the caret", MaxArgs: 1, Mode: ModeAny,
			Run: func(s *Session, args []string) error {
				var err error
				rerr := repeat(args, func() {
					if s.masked != nil {
						s.masked.Backspace()
					} else if err == nil {
						_, err = s.eng.DeletePrev()
					}
				})
				return errors.Join(rerr, err)
			},
		},
		{
			Name: "delete", Usage: "[n]", Help: "delete after the caret", MaxArgs: 1, Mode: ModeAny,
			Run: func(s *Session, args []string) error {
				var err error
				rerr := repeat(args, func() {
					if s.masked != nil {
						s.masked.Delete()
					} else if err == nil {
						_, err = s.eng.DeleteNext()
					}
				})
				return errors.Join(rerr, err)
			},
		},
		{
			Name: "delete-word-left", Help: "delete to the previous word start", Mode: ModePlain,
			Run: func(s *Session, _ []string) error { return ignore(s.eng.DeletePrevWord()) },
		},
		{
			Name: "delete-word-right", Help: "delete to the next word end", Mode: ModePlain,
			Run: func(s *Session, _ []string) error { return ignore(s.eng.DeleteNextWord()) },
		},
		{
			Name: "clear", Help: "empty the field", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				if s.masked != nil {
					s.masked.Clear()
					return nil
				}
				return s.eng.Clear()
			},
		},
		{
			Name: "reset", Usage: "<text>", Help: "replace the text and forget history", MaxArgs: -1, Mode: ModePlain,
			Run: func(s *Session, args []string) error { return s.eng.SetText(strings.Join(args, " ")) },
		},
		{
			Name: "copy", Help: "copy the selection", Mode: ModePlain,
			Run: func(s *Session, _ []string) error { return ignore(s.eng.Copy()) },
		},
		{
			Name: "cut", Help: "cut the selection", Mode: ModePlain,
			Run: func(s *Session, _ []string) error { return ignore(s.eng.Cut()) },
		},
		{
			Name: "paste", Help: "paste over the selection", Mode: ModePlain,
			Run: func(s *Session, _ []string) error { return ignore(s.eng.Paste()) },
		},
		{
			Name: "undo", Help: "undo one step", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				if s.masked != nil {
					s.masked.Undo()
					return nil
				}
				return ignore(s.eng.Undo())
			},
		},
		{
			Name: "redo", Help: "redo one step", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				if s.masked != nil {
					s.masked.Redo()
					return nil
				}
				return ignore(s.eng.Redo())
			},
		},
	}
}

// ============================================================================
// Motion and selection
// ============================================================================

func motionCommands() []Command {
	move := func(name, help string, mode Mode, plain func(*engine.Engine), masked func(*Session)) Command {
		return Command{
			Name: name, Usage: "[n]", Help: help, MaxArgs: 1, Mode: mode,
			Run: func(s *Session, args []string) error {
				return repeat(args, func() {
					if s.masked != nil && masked != nil {
						masked(s)
						return
					}
					plain(s.eng)
				})
			},
		}
	}
	return []Command{
		move("left", "move left", ModeAny,
			func(e *engine.Engine) { e.MoveLeft(false) },
			func(s *Session) { s.masked.MoveLeft(false) }),
		move("right", "move right", ModeAny,
			func(e *engine.Engine) { e.MoveRight(false) },
			func(s *Session) { s.masked.MoveRight(false) }),
		move("sel-left", "extend the selection left", ModeAny,
			func(e *engine.Engine) { e.MoveLeft(true) },
			func(s *Session) { s.masked.MoveLeft(true) }),
		move("sel-right", "extend the selection right", ModeAny,
			func(e *engine.Engine) { e.MoveRight(true) },
			func(s *Session) { s.masked.MoveRight(true) }),
		move("up", "move up a line", ModePlain, func(e *engine.Engine) { e.MoveUp(false) }, nil),
		move("down", "move down a line", ModePlain, func(e *engine.Engine) { e.MoveDown(false) }, nil),
		move("word-left", "move to the previous word", ModePlain, func(e *engine.Engine) { e.MoveWordLeft(false) }, nil),
		move("word-right", "move to the next word", ModePlain, func(e *engine.Engine) { e.MoveWordRight(false) }, nil),
		move("next-word", "move to the next word start", ModePlain, func(e *engine.Engine) { e.MoveNextWordStart(false) }, nil),
		move("prev-word-end", "move to the previous word end", ModePlain, func(e *engine.Engine) { e.MovePrevWordEnd(false) }, nil),
		{
			Name: "home", Help: "move to the line start", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				if s.masked != nil {
					s.masked.MoveHome()
				} else {
					s.eng.MoveLineStart(false)
				}
				return nil
			},
		},
		{
			Name: "end", Help: "move to the line end", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				if s.masked != nil {
					s.masked.MoveEnd()
				} else {
					s.eng.MoveLineEnd(false)
				}
				return nil
			},
		},
		{
			Name: "goto", Usage: "<offset>", Help: "move to a byte offset", MinArgs: 1, MaxArgs: 1, Mode: ModePlain,
			Run: func(s *Session, args []string) error {
				p, err := offset(s, args[0])
				if err != nil {
					return err
				}
				return s.eng.MoveTo(p)
			},
		},
		{
			Name: "select", Usage: "<start> <end>", Help: "select a byte range", MinArgs: 2, MaxArgs: 2, Mode: ModePlain,
			Run: func(s *Session, args []string) error {
				r, err := byteRange(s, args[0], args[1])
				if err != nil {
					return err
				}
				return s.eng.SelectRange(r)
			},
		},
		{
			Name: "select-all", Help: "select everything", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				if s.masked != nil {
					s.masked.SelectAll()
				} else {
					s.eng.SelectAll()
				}
				return nil
			},
		},
		{
			Name: "select-word", Help: "select the word at the caret", Mode: ModePlain,
			Run: func(s *Session, _ []string) error {
				s.eng.SelectWord()
				return nil
			},
		},
	}
}

func byteRange(s *Session, a, b string) (engine.Range, error) {
	start, err := offset(s, a)
	if err != nil {
		return engine.Range{}, err
	}
	end, err := offset(s, b)
	if err != nil {
		return engine.Range{}, err
	}
	return engine.Range{Start: start, End: end}, nil
}

// ============================================================================
// Styles
// ============================================================================

func (s *Session) tag(arg string) (engine.Tag, error) {
	if tag, ok := s.tags[arg]; ok {
		return tag, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: unknown tag %q", ErrUsage, arg)
	}
	return engine.Tag(n), nil
}

func (s *Session) tagName(tag engine.Tag) string {
	if name, ok := s.tagNames[tag]; ok {
		return name
	}
	return strconv.Itoa(int(tag))
}

func colorName(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return "default"
	}
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func styleCommands() []Command {
	return []Command{
		{
			Name: "span", Usage: "<start> <end> <tag>", Help: "style a byte range", MinArgs: 3, MaxArgs: 3, Mode: ModePlain,
			Run: func(s *Session, args []string) error {
				r, err := byteRange(s, args[0], args[1])
				if err != nil {
					return err
				}
				tag, err := s.tag(args[2])
				if err != nil {
					return err
				}
				id, err := s.eng.AddSpan(r, tag)
				if err != nil {
					return err
				}
				s.printf("span %d\n", id)
				return nil
			},
		},
		{
			Name: "unspan", Usage: "<id>", Help: "remove a span", MinArgs: 1, MaxArgs: 1, Mode: ModePlain,
			Run: func(s *Session, args []string) error {
				n, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("%w: bad span id %q", ErrUsage, args[0])
				}
				if !s.eng.RemoveSpan(engine.SpanID(n)) {
					return fmt.Errorf("no span %d", n)
				}
				return nil
			},
		},
		{
			Name: "spans", Help: "list spans", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				for _, sp := range s.eng.Spans() {
					s.printf("%d %d-%d %s\n", sp.ID, sp.Start, sp.End, s.tagName(sp.Tag))
				}
				return nil
			},
		},
		{
			Name: "style", Usage: "<offset>", Help: "show the resolved style at an offset", MinArgs: 1, MaxArgs: 1, Mode: ModeAny,
			Run: func(s *Session, args []string) error {
				p, err := offset(s, args[0])
				if err != nil {
					return err
				}
				sel := s.eng.SelectionRange()
				selected := p.Offset >= sel.Start.Offset && p.Offset < sel.End.Offset
				tags := s.eng.StylesAt(p)
				fg, bg, attrs := s.palette.Resolve(tags, selected).Decompose()

				names := make([]string, len(tags))
				for i, t := range tags {
					names[i] = s.tagName(t)
				}
				s.printf("fg=%s bg=%s bold=%t reverse=%t tags=[%s]\n",
					colorName(fg), colorName(bg),
					attrs&tcell.AttrBold != 0, attrs&tcell.AttrReverse != 0,
					strings.Join(names, " "))
				return nil
			},
		},
	}
}

// ============================================================================
// Values and binding
// ============================================================================

func valueCommands() []Command {
	return []Command{
		{
			Name: "commit", Help: "parse and commit the masked value", Mode: ModeMasked,
			Run: func(s *Session, _ []string) error {
				v, err := s.masked.Commit()
				if err != nil {
					s.printf("invalid: %v\n", err)
					return nil
				}
				s.printf("value %s\n", valueString(v))
				return nil
			},
		},
		{
			Name: "validate", Help: "check the input without committing", Mode: ModeMasked,
			Run: func(s *Session, _ []string) error {
				if err := s.masked.Validate(); err != nil {
					s.printf("invalid: %v\n", err)
					return nil
				}
				s.printf("ok\n")
				return nil
			},
		},
		{
			Name: "value", Help: "print the committed value", Mode: ModeMasked,
			Run: func(s *Session, _ []string) error {
				s.printf("value %s\n", valueString(s.masked.Value()))
				return nil
			},
		},
		{
			Name: "set-value", Usage: "<value>", Help: "load a value", MinArgs: 1, MaxArgs: 1, Mode: ModeMasked,
			Run: func(s *Session, args []string) error {
				v, err := binding.ParseValue(args[0], s.masked.Field().ValueKind())
				if err != nil {
					return err
				}
				return s.masked.SetValue(v)
			},
		},
		{
			Name: "sections", Help: "list the mask sections", Mode: ModeMasked,
			Run: func(s *Session, _ []string) error {
				for _, sec := range s.masked.Field().Sections() {
					s.printf("%d %s %s %d-%d\n", sec.Index, sec.Kind, sec.Name, sec.Start, sec.End)
				}
				return nil
			},
		},
		{
			Name: "load", Usage: "<path>", Help: "load the field from the document", MinArgs: 1, MaxArgs: 1, Mode: ModeAny,
			Run: func(s *Session, args []string) error {
				if s.doc == nil {
					return ErrNoDocument
				}
				if s.masked != nil {
					return binding.LoadMasked(s.doc, args[0], s.masked)
				}
				return binding.LoadText(s.doc, args[0], s.eng)
			},
		},
		{
			Name: "store", Usage: "<path>", Help: "store the field into the document", MinArgs: 1, MaxArgs: 1, Mode: ModeAny,
			Run: func(s *Session, args []string) error {
				if s.doc == nil {
					return ErrNoDocument
				}
				if s.masked != nil {
					return binding.StoreMasked(s.doc, args[0], s.masked)
				}
				return binding.StoreText(s.doc, args[0], s.eng)
			},
		},
		{
			Name: "save", Help: "write the document", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				if s.doc == nil {
					return ErrNoDocument
				}
				if s.docPath == "" {
					s.printf("%s", s.doc.Pretty())
					return nil
				}
				return s.doc.Save(s.docPath)
			},
		},
	}
}

func valueString(v mask.Value) string {
	if v.IsNull() {
		return "null"
	}
	return v.String()
}

// ============================================================================
// Output
// ============================================================================

func outputCommands() []Command {
	return []Command{
		{
			Name: "text", Help: "print the text", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				s.printf("%q\n", s.eng.Text())
				return nil
			},
		},
		{
			Name: "export", Help: "print the text with the configured newline", Mode: ModePlain,
			Run: func(s *Session, _ []string) error {
				s.printf("%q\n", s.eng.ExportText())
				return nil
			},
		},
		{
			Name: "caret", Help: "print the caret position", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				c := s.eng.Caret()
				s.printf("%d:%d @%d\n", c.Line+1, c.Column+1, c.Offset)
				return nil
			},
		},
		{
			Name: "selection", Help: "print the selected text", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				s.printf("%q\n", s.eng.SelectedText())
				return nil
			},
		},
		{
			Name: "show", Help: "draw the field with line numbers", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				s.Show()
				return nil
			},
		},
		{
			Name: "dirty", Help: "print and reset the lines changed since the last call", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				ranges := s.tracker.Take()
				if len(ranges) == 0 {
					s.printf("clean\n")
					return nil
				}
				parts := make([]string, len(ranges))
				for i, r := range ranges {
					parts[i] = fmt.Sprintf("%d-%d", r.Start+1, r.End+1)
				}
				s.printf("dirty %s\n", strings.Join(parts, " "))
				return nil
			},
		},
		{
			Name: "history", Help: "print undo and redo depth", Mode: ModeAny,
			Run: func(s *Session, _ []string) error {
				s.printf("undo=%d redo=%d\n", s.eng.UndoCount(), s.eng.RedoCount())
				return nil
			},
		},
	}
}
