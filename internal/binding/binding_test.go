package binding

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/locale"
	"github.com/dshills/textcore/internal/mask"
	"github.com/dshills/textcore/internal/maskinput"
)

// ============================================================================
// Helpers
// ============================================================================

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	d, err := Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return d
}

func dateInput(t *testing.T) *maskinput.Input {
	t.Helper()
	f, err := mask.Date("MM/dd/yyyy", locale.Default())
	if err != nil {
		t.Fatal(err)
	}
	return maskinput.New(f)
}

// ============================================================================
// Document
// ============================================================================

func TestParse(t *testing.T) {
	if _, err := Parse([]byte(`{"a":`)); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("err = %v, want ErrInvalidJSON", err)
	}
	d, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(d.Bytes()) != "{}" {
		t.Errorf("empty = %s", d.Bytes())
	}
}

func TestDocumentSetGetDelete(t *testing.T) {
	d := New()
	if err := d.Set("user.name", "ada"); err != nil {
		t.Fatal(err)
	}
	r, err := d.Get("user.name")
	if err != nil {
		t.Fatal(err)
	}
	if r.Str != "ada" {
		t.Errorf("user.name = %q", r.Str)
	}
	if err := d.Delete("user.name"); err != nil {
		t.Fatal(err)
	}
	if d.Has("user.name") {
		t.Error("user.name still present")
	}
	if _, err := d.Get("user.name"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDocumentFormatting(t *testing.T) {
	d := mustParse(t, `{ "a" : 1 }`)
	if got := string(d.Compact()); got != `{"a":1}` {
		t.Errorf("Compact = %s", got)
	}
	if got := string(d.Pretty()); got != "{\n  \"a\": 1\n}\n" {
		t.Errorf("Pretty = %q", got)
	}
}

// ============================================================================
// Plain text
// ============================================================================

func TestLoadStoreText(t *testing.T) {
	d := mustParse(t, `{"note":"hello\nworld","n":3,"z":null}`)
	e := engine.New()

	if err := LoadText(d, "note", e); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "hello\nworld" || e.LineCount() != 2 {
		t.Errorf("text = %q", e.Text())
	}
	if err := StoreText(d, "copy", e); err != nil {
		t.Fatal(err)
	}
	if r, _ := d.Get("copy"); r.Str != "hello\nworld" {
		t.Errorf("copy = %q", r.Str)
	}

	if err := LoadText(d, "n", e); !errors.Is(err, ErrType) {
		t.Errorf("number err = %v, want ErrType", err)
	}
	if err := LoadText(d, "missing", e); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing err = %v, want ErrNotFound", err)
	}
	if err := LoadText(d, "z", e); err != nil || e.Text() != "" {
		t.Errorf("null: err = %v, text = %q", err, e.Text())
	}
}

// ============================================================================
// Masked values
// ============================================================================

func TestMaskedDate(t *testing.T) {
	d := mustParse(t, `{"due":"2024-03-05"}`)
	in := dateInput(t)

	if err := LoadMasked(d, "due", in); err != nil {
		t.Fatal(err)
	}
	if in.Text() != "03/05/2024" {
		t.Errorf("display = %q", in.Text())
	}
	if err := StoreMasked(d, "due", in); err != nil {
		t.Fatal(err)
	}
	if r, _ := d.Get("due"); r.Str != "2024-03-05T00:00:00Z" {
		t.Errorf("stored = %q", r.Str)
	}
}

func TestMaskedInteger(t *testing.T) {
	f, err := mask.Integer(locale.Default(), mask.IntegerOptions{Digits: 6})
	if err != nil {
		t.Fatal(err)
	}
	in := maskinput.New(f)
	d := mustParse(t, `{"qty":42,"bad":"x","big":1.5}`)

	if err := LoadMasked(d, "qty", in); err != nil {
		t.Fatal(err)
	}
	if v := in.Value(); v.Kind != mask.ValueInt || v.Int != 42 {
		t.Errorf("value = %+v", v)
	}
	if err := LoadMasked(d, "bad", in); !errors.Is(err, ErrType) {
		t.Errorf("string err = %v, want ErrType", err)
	}
	if err := LoadMasked(d, "big", in); !errors.Is(err, ErrType) {
		t.Errorf("fraction err = %v, want ErrType", err)
	}
	if err := StoreMasked(d, "out", in); err != nil {
		t.Fatal(err)
	}
	if r, _ := d.Get("out"); r.Raw != "42" {
		t.Errorf("out = %s", r.Raw)
	}
}

func TestMaskedDecimal(t *testing.T) {
	f, err := mask.Decimal(locale.Default(), mask.DecimalOptions{})
	if err != nil {
		t.Fatal(err)
	}
	in := maskinput.New(f)
	d := mustParse(t, `{"amount":12.5}`)

	if err := LoadMasked(d, "amount", in); err != nil {
		t.Fatal(err)
	}
	if got := in.Value().String(); got != "12.50" {
		t.Errorf("value = %s", got)
	}
	if err := StoreMasked(d, "amount", in); err != nil {
		t.Fatal(err)
	}
	if r, _ := d.Get("amount"); r.Raw != "12.50" {
		t.Errorf("amount = %s", r.Raw)
	}
}

func TestMaskedNull(t *testing.T) {
	in := dateInput(t)
	d := New()
	if err := LoadMasked(d, "missing", in); err != nil {
		t.Fatal(err)
	}
	if !in.Value().IsNull() {
		t.Errorf("value = %+v", in.Value())
	}
	if err := StoreMasked(d, "due", in); err != nil {
		t.Fatal(err)
	}
	if r, _ := d.Get("due"); r.Type.String() != "Null" {
		t.Errorf("due = %s", r.Raw)
	}
}

func TestStoreMaskedCommitFailure(t *testing.T) {
	in := dateInput(t)
	in.TypeString("03")
	d := New()
	var fe *mask.FormatError
	if err := StoreMasked(d, "due", in); !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *mask.FormatError", err)
	}
	if d.Has("due") {
		t.Error("failed commit wrote a value")
	}
}

func TestEncodeValue(t *testing.T) {
	tests := []struct {
		name string
		v    mask.Value
		want string
	}{
		{"null", mask.Null, "null"},
		{"text", mask.TextValue(`a"b`), `"a\"b"`},
		{"int", mask.IntValue(-7), "-7"},
		{"decimal", mask.DecimalValue(decimal.New(-5, -2)), "-0.05"},
		{"time", mask.TimeValue(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)), `"2024-01-02T03:04:05Z"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeValue(tt.v); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in      string
		kind    mask.ValueKind
		want    mask.Value
		wantErr bool
	}{
		{"null", mask.ValueInt, mask.Null, false},
		{"", mask.ValueText, mask.Null, false},
		{"42", mask.ValueInt, mask.IntValue(42), false},
		{"4.2", mask.ValueInt, mask.Null, true},
		{"-1.25", mask.ValueDecimal, mask.DecimalValue(decimal.New(-125, -2)), false},
		{"2024-02-29", mask.ValueTime, mask.TimeValue(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)), false},
		{"soon", mask.ValueTime, mask.Null, true},
		{"abc", mask.ValueText, mask.TextValue("abc"), false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseValue(tt.in, tt.kind)
			if tt.wantErr {
				if !errors.Is(err, ErrType) {
					t.Fatalf("err = %v, want ErrType", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
