package script

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/textcore/internal/binding"
	"github.com/dshills/textcore/internal/config"
	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/locale"
	"github.com/dshills/textcore/internal/mask"
)

// ============================================================================
// Helpers
// ============================================================================

func newSession(t *testing.T, cfg config.Config, opts ...Option) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s, err := New(cfg, locale.Default(), append([]Option{WithOutput(&out)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s, &out
}

func run(t *testing.T, s *Session, lines ...string) {
	t.Helper()
	for _, l := range lines {
		if err := s.Exec(l); err != nil {
			t.Fatalf("Exec(%q): %v", l, err)
		}
	}
}

func dateField(t *testing.T) *mask.Field {
	t.Helper()
	f, err := mask.Date("MM/dd/yyyy", locale.Default())
	if err != nil {
		t.Fatal(err)
	}
	return f
}

// ============================================================================
// Tokenize
// ============================================================================

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"# comment", nil},
		{"type abc", []string{"type", "abc"}},
		{"  left   3 ", []string{"left", "3"}},
		{`type "a b\n"`, []string{"type", "a b\n"}},
		{`span 0 5 "two words"`, []string{"span", "0", "5", "two words"}},
	}
	for _, tt := range tests {
		got, err := Tokenize(tt.line)
		if err != nil {
			t.Errorf("Tokenize(%q): %v", tt.line, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Tokenize(%q) (-want +got):\n%s", tt.line, diff)
		}
	}
	if _, err := Tokenize(`type "open`); err == nil {
		t.Error("unterminated quote should fail")
	}
}

// ============================================================================
// Plain sessions
// ============================================================================

func TestPlainEditing(t *testing.T) {
	s, out := newSession(t, config.Default())
	run(t, s,
		"type hello",
		"newline",
		"type world",
		"backspace 2",
		"text",
		"caret",
	)
	want := "\"hello\\nwor\"\n2:4 @9\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	out.Reset()
	run(t, s, "undo", "text")
	if got := out.String(); got != "\"hello\\nworld\"\n" {
		t.Errorf("after undo = %q", got)
	}
}

func TestWordMotionCommands(t *testing.T) {
	s, out := newSession(t, config.Default())
	run(t, s, `reset "one two"`, "goto 0", "next-word", "caret", "prev-word-end", "caret")
	if got, want := out.String(), "1:5 @4\n1:4 @3\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestShow(t *testing.T) {
	s, out := newSession(t, config.Default())
	run(t, s, `reset "ab\ncd"`, "goto 4", "show")
	want := "  1 ab\n  2 cd\n" + "     ^\n"
	if got := out.String(); got != want {
		t.Errorf("show = %q, want %q", got, want)
	}
}

func TestStyleCommand(t *testing.T) {
	cfg := config.Default()
	cfg.Palette = map[string]config.StyleConfig{
		"keyword": {FG: "#ff0000", Bold: true},
	}
	s, out := newSession(t, cfg, WithTags(map[string]engine.Tag{"keyword": 1}))
	run(t, s, "reset hello world", "span 0 5 keyword")
	out.Reset()

	run(t, s, "style 0", "style 6", "spans")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("output = %q", out.String())
	}
	if want := "fg=#ff0000 bg=default bold=true reverse=false tags=[keyword]"; lines[0] != want {
		t.Errorf("style 0 = %q, want %q", lines[0], want)
	}
	if want := "fg=default bg=default bold=false reverse=false tags=[]"; lines[1] != want {
		t.Errorf("style 6 = %q, want %q", lines[1], want)
	}
	if !strings.HasSuffix(lines[2], " 0-5 keyword") {
		t.Errorf("spans = %q", lines[2])
	}
}

func TestUnknownPaletteTag(t *testing.T) {
	cfg := config.Default()
	cfg.Palette = map[string]config.StyleConfig{"comment": {FG: "#00ff00"}}
	if _, err := New(cfg, locale.Default()); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestDirty(t *testing.T) {
	s, out := newSession(t, config.Default())
	run(t, s, "dirty", "type a", "dirty", "dirty", "newline", "dirty")
	want := "dirty 1-1\ndirty 1-1\nclean\ndirty 1-2\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestExecErrors(t *testing.T) {
	s, _ := newSession(t, config.Default())
	tests := []struct {
		line string
		want error
	}{
		{"bogus", ErrUnknownCommand},
		{"type", ErrUsage},
		{"left x", ErrUsage},
		{"commit", ErrWrongMode},
		{"store x", ErrNoDocument},
	}
	for _, tt := range tests {
		if err := s.Exec(tt.line); !errors.Is(err, tt.want) {
			t.Errorf("Exec(%q) = %v, want %v", tt.line, err, tt.want)
		}
	}
}

func TestRun(t *testing.T) {
	s, out := newSession(t, config.Default())
	err := s.Run(context.Background(), strings.NewReader("type abc\nbogus\ntext\n"), "")
	if !errors.Is(err, ErrUnknownCommand) || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunInteractive(t *testing.T) {
	s, out := newSession(t, config.Default())
	err := s.Run(context.Background(), strings.NewReader("type abc\nbogus\ntext\n"), "> ")
	if err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "error: unknown command: bogus") || !strings.Contains(got, `"abc"`) {
		t.Errorf("output = %q", got)
	}
	if strings.Count(got, "> ") != 4 {
		t.Errorf("prompts = %d, want 4", strings.Count(got, "> "))
	}
}

func TestRunCancelled(t *testing.T) {
	s, _ := newSession(t, config.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, strings.NewReader("type a\n"), ""); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
	if s.Engine().Text() != "" {
		t.Errorf("text = %q", s.Engine().Text())
	}
}

// ============================================================================
// Masked sessions
// ============================================================================

func TestMaskedSession(t *testing.T) {
	s, out := newSession(t, config.Default(), WithMask(dateField(t)))
	run(t, s, "type 01152024", "text", "commit")
	want := "\"01/15/2024\"\nvalue 2024-01-15T00:00:00Z\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if err := s.Exec("tab"); !errors.Is(err, ErrWrongMode) {
		t.Errorf("tab err = %v", err)
	}
}

func TestMaskedCommitFailure(t *testing.T) {
	s, out := newSession(t, config.Default(), WithMask(dateField(t)))
	run(t, s, "type 02302024", "commit", "text")
	got := out.String()
	if !strings.HasPrefix(got, "invalid: ") || !strings.Contains(got, "no such date") {
		t.Errorf("output = %q", got)
	}
	if !strings.HasSuffix(got, "\"__/__/____\"\n") {
		t.Errorf("text not reverted: %q", got)
	}
}

func TestMaskedPlaceholderAndSetValue(t *testing.T) {
	cfg := config.Default()
	cfg.Mask.Placeholder = "."
	s, out := newSession(t, cfg, WithMask(dateField(t)))
	run(t, s, "text", "set-value 2023-07-04", "text", "value")
	want := "\"../../....\"\n\"07/04/2023\"\nvalue 2023-07-04T00:00:00Z\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// ============================================================================
// Binding
// ============================================================================

func TestBindingCommands(t *testing.T) {
	doc, err := binding.Parse([]byte(`{"note":"hi"}`))
	if err != nil {
		t.Fatal(err)
	}
	s, out := newSession(t, config.Default(), WithDocument(doc, ""))
	run(t, s, "load note", "end", "type !", "store copy", "save")

	r, err := doc.Get("copy")
	if err != nil {
		t.Fatal(err)
	}
	if r.Str != "hi!" {
		t.Errorf("copy = %q", r.Str)
	}
	if !strings.Contains(out.String(), `"copy": "hi!"`) {
		t.Errorf("save output = %q", out.String())
	}
}

func TestHelp(t *testing.T) {
	s, out := newSession(t, config.Default(), WithMask(dateField(t)))
	run(t, s, "help")
	got := out.String()
	if !strings.Contains(got, "commit") || strings.Contains(got, "newline") {
		t.Errorf("help = %q", got)
	}
}
