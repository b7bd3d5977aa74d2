package locale

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// file is the YAML document shape:
//
//	locales:
//	  - tag: de-CH
//	    group: "'"
//	    date_order: dmy
//	    months: [Januar, Februar, ...]
type file struct {
	Locales []entry `yaml:"locales"`
}

type entry struct {
	Tag           string   `yaml:"tag"`
	Decimal       string   `yaml:"decimal"`
	Group         *string  `yaml:"group"`
	Minus         string   `yaml:"minus"`
	DateOrder     string   `yaml:"date_order"`
	DateSeparator string   `yaml:"date_separator"`
	TimeSeparator string   `yaml:"time_separator"`
	Months        []string `yaml:"months"`
	ShortMonths   []string `yaml:"short_months"`
	Days          []string `yaml:"days"`
	ShortDays     []string `yaml:"short_days"`
}

// LoadYAML decodes locale tables from r. Each entry starts from FromTag of
// its tag and overrides the fields it sets. Unknown keys are errors.
func LoadYAML(r io.Reader) ([]Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode locales: %w", err)
	}

	tables := make([]Table, 0, len(f.Locales))
	for i, e := range f.Locales {
		t, err := e.table()
		if err != nil {
			return nil, fmt.Errorf("locales[%d]: %w", i, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// LoadYAMLFile reads tables from path.
func LoadYAMLFile(path string) ([]Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadYAML(f)
}

func (e entry) table() (Table, error) {
	tag, err := language.Parse(e.Tag)
	if err != nil {
		return Table{}, fmt.Errorf("tag %q: %w", e.Tag, ErrUnknownLocale)
	}
	t := FromTag(tag)

	if e.Decimal != "" {
		t.Decimal = e.Decimal
	}
	if e.Group != nil {
		t.Group = *e.Group
	}
	if e.Minus != "" {
		t.Minus = e.Minus
	}
	if e.DateOrder != "" {
		if t.DateOrder, err = ParseOrder(e.DateOrder); err != nil {
			return Table{}, err
		}
	}
	if e.DateSeparator != "" {
		t.DateSeparator = e.DateSeparator
	}
	if e.TimeSeparator != "" {
		t.TimeSeparator = e.TimeSeparator
	}

	if e.Months != nil {
		if err := fill(t.Months[:], e.Months, "months"); err != nil {
			return Table{}, err
		}
		if e.ShortMonths == nil {
			t.ShortMonths = abbreviate12(t.Months)
		}
	}
	if e.ShortMonths != nil {
		if err := fill(t.ShortMonths[:], e.ShortMonths, "short_months"); err != nil {
			return Table{}, err
		}
	}
	if e.Days != nil {
		if err := fill(t.Days[:], e.Days, "days"); err != nil {
			return Table{}, err
		}
		if e.ShortDays == nil {
			t.ShortDays = abbreviate7(t.Days)
		}
	}
	if e.ShortDays != nil {
		if err := fill(t.ShortDays[:], e.ShortDays, "short_days"); err != nil {
			return Table{}, err
		}
	}

	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

func fill(dst, src []string, field string) error {
	if len(src) != len(dst) {
		return fmt.Errorf("%s: want %d names, got %d: %w", field, len(dst), len(src), ErrInvalidTable)
	}
	copy(dst, src)
	return nil
}
