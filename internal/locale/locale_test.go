package locale

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

// ============================================================================
// Table
// ============================================================================

func TestDefault(t *testing.T) {
	tab := Default()
	if tab.Decimal != "." || tab.Group != "," || tab.Minus != "-" {
		t.Errorf("separators = %q %q %q", tab.Decimal, tab.Group, tab.Minus)
	}
	if tab.DateOrder != MDY || tab.DateSeparator != "/" {
		t.Errorf("date = %v %q, want mdy /", tab.DateOrder, tab.DateSeparator)
	}
	if tab.ShortMonths[8] != "Sep" {
		t.Errorf("ShortMonths[8] = %q, want Sep", tab.ShortMonths[8])
	}
	if err := tab.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestFromTag(t *testing.T) {
	tests := []struct {
		tag     language.Tag
		decimal string
		group   string
		order   Order
		sep     string
	}{
		{language.AmericanEnglish, ".", ",", MDY, "/"},
		{language.German, ",", ".", DMY, "."},
		{language.BritishEnglish, ".", ",", DMY, "/"},
		{language.Japanese, ".", ",", YMD, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			tab := FromTag(tt.tag)
			if tab.Decimal != tt.decimal || tab.Group != tt.group {
				t.Errorf("separators = %q %q, want %q %q", tab.Decimal, tab.Group, tt.decimal, tt.group)
			}
			if tab.DateOrder != tt.order || tab.DateSeparator != tt.sep {
				t.Errorf("date = %v %q, want %v %q", tab.DateOrder, tab.DateSeparator, tt.order, tt.sep)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Table)
	}{
		{"empty decimal", func(t *Table) { t.Decimal = "" }},
		{"multi rune decimal", func(t *Table) { t.Decimal = ".." }},
		{"same separators", func(t *Table) { t.Group = "." }},
		{"empty minus", func(t *Table) { t.Minus = "" }},
		{"empty date separator", func(t *Table) { t.DateSeparator = "" }},
		{"missing month", func(t *Table) { t.Months[3] = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := Default()
			tt.modify(&tab)
			if err := tab.Validate(); !errors.Is(err, ErrInvalidTable) {
				t.Errorf("Validate = %v, want ErrInvalidTable", err)
			}
		})
	}
}

func TestMonthIndex(t *testing.T) {
	tab := Default()
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"January", 1, true},
		{"jan", 1, true},
		{"DEC", 12, true},
		{"Sept", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := tab.MonthIndex(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MonthIndex(%q) = %d, %v; want %d, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMonthsWithPrefix(t *testing.T) {
	tab := Default()
	tests := []struct {
		prefix string
		want   []int
	}{
		{"j", []int{1, 6, 7}},
		{"ju", []int{6, 7}},
		{"jun", []int{6}},
		{"x", nil},
	}
	for _, tt := range tests {
		got := tab.MonthsWithPrefix(tt.prefix)
		if len(got) != len(tt.want) {
			t.Errorf("MonthsWithPrefix(%q) = %v, want %v", tt.prefix, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("MonthsWithPrefix(%q) = %v, want %v", tt.prefix, got, tt.want)
				break
			}
		}
	}
}

func TestFormatInt(t *testing.T) {
	tab := Default()
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{-1234567, "-1,234,567"},
		{-9223372036854775808, "-9,223,372,036,854,775,808"},
	}
	for _, tt := range tests {
		if got := tab.FormatInt(tt.n); got != tt.want {
			t.Errorf("FormatInt(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

// ============================================================================
// Catalog
// ============================================================================

func TestCatalogMatch(t *testing.T) {
	c := Builtin()

	tab, ok := c.Match(language.MustParse("de-AT"))
	if !ok {
		t.Fatal("de-AT did not match")
	}
	if b, _ := tab.Tag.Base(); b.String() != "de" {
		t.Errorf("matched %v, want German", tab.Tag)
	}

	tab, _ = c.Match(language.Swahili)
	if tab.Tag != language.AmericanEnglish {
		t.Errorf("fallback = %v, want en-US", tab.Tag)
	}
}

func TestCatalogParse(t *testing.T) {
	c := NewCatalog()
	if _, err := c.Parse("not a tag!"); !errors.Is(err, ErrUnknownLocale) {
		t.Errorf("Parse bad tag = %v, want ErrUnknownLocale", err)
	}
	tab, err := c.Parse("en-US")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tab.Decimal != "." {
		t.Errorf("Decimal = %q", tab.Decimal)
	}
}

func TestCatalogAdd(t *testing.T) {
	c := NewCatalog()
	tab := Default()
	tab.Tag = language.MustParse("de-CH")
	tab.Group = "'"
	if err := c.Add(tab); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, ok := c.Lookup(tab.Tag)
	if !ok || got.Group != "'" {
		t.Errorf("Lookup = %+v, %v", got, ok)
	}
	if n := len(c.Tags()); n != 2 {
		t.Errorf("Tags = %d, want 2", n)
	}

	bad := Default()
	bad.Tag = language.French
	bad.Decimal = ""
	if err := c.Add(bad); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("Add invalid = %v, want ErrInvalidTable", err)
	}
}

// ============================================================================
// YAML
// ============================================================================

func TestLoadYAML(t *testing.T) {
	const doc = `
locales:
  - tag: en-US
    group: ""
    date_order: ymd
    date_separator: "-"
  - tag: fr
    months: [janvier, fevrier, mars, avril, mai, juin, juillet, aout, septembre, octobre, novembre, decembre]
`
	tables, err := LoadYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(tables))
	}
	if tables[0].Group != "" || tables[0].DateOrder != YMD || tables[0].DateSeparator != "-" {
		t.Errorf("first table = %+v", tables[0])
	}
	if tables[1].Months[0] != "janvier" || tables[1].ShortMonths[0] != "jan" {
		t.Errorf("months = %q %q", tables[1].Months[0], tables[1].ShortMonths[0])
	}
}

func TestLoadYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown key", "locales:\n  - tag: en\n    colour: red\n", nil},
		{"bad tag", "locales:\n  - tag: \"!!\"\n", ErrUnknownLocale},
		{"bad order", "locales:\n  - tag: en\n    date_order: dym\n", ErrInvalidTable},
		{"short months", "locales:\n  - tag: en\n    months: [a, b]\n", ErrInvalidTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadYAMLEmpty(t *testing.T) {
	tables, err := LoadYAML(strings.NewReader(""))
	if err != nil || len(tables) != 0 {
		t.Errorf("LoadYAML empty = %v, %v", tables, err)
	}
}
