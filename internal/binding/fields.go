package binding

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/mask"
	"github.com/dshills/textcore/internal/maskinput"
)

// LoadText replaces the content of e with the string at path. A null
// value clears e.
func LoadText(d *Document, path string, e *engine.Engine) error {
	r, err := d.Get(path)
	if err != nil {
		return err
	}
	switch r.Type {
	case gjson.Null:
		return e.SetText("")
	case gjson.String:
		return e.SetText(r.Str)
	default:
		return fmt.Errorf("%s: %s is not a string: %w", path, r.Type, ErrType)
	}
}

// StoreText writes the exported content of e at path.
func StoreText(d *Document, path string, e *engine.Engine) error {
	return d.Set(path, e.ExportText())
}

// LoadMasked sets the value of in from path. A missing path or null
// clears the field.
func LoadMasked(d *Document, path string, in *maskinput.Input) error {
	r, err := d.Get(path)
	if errors.Is(err, ErrNotFound) {
		return in.SetValue(mask.Null)
	}
	if err != nil {
		return err
	}
	v, err := decodeValue(r, in.Field().ValueKind())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return in.SetValue(v)
}

// StoreMasked commits in and writes its value at path. If the commit
// fails the document is left unchanged.
func StoreMasked(d *Document, path string, in *maskinput.Input) error {
	v, err := in.Commit()
	if err != nil {
		return err
	}
	return d.SetRaw(path, EncodeValue(v))
}

// EncodeValue returns the JSON literal for v.
func EncodeValue(v mask.Value) string {
	switch v.Kind {
	case mask.ValueText:
		return strconv.Quote(v.Text)
	case mask.ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case mask.ValueDecimal:
		return mask.FormatDecimal(v.Dec)
	case mask.ValueTime:
		return strconv.Quote(v.Time.Format(time.RFC3339))
	default:
		return "null"
	}
}

func decodeValue(r gjson.Result, kind mask.ValueKind) (mask.Value, error) {
	if r.Type == gjson.Null {
		return mask.Null, nil
	}
	switch kind {
	case mask.ValueInt:
		if r.Type != gjson.Number {
			return mask.Null, fmt.Errorf("%s for integer: %w", r.Type, ErrType)
		}
		n, err := strconv.ParseInt(r.Raw, 10, 64)
		if err != nil {
			return mask.Null, fmt.Errorf("%s: %w", r.Raw, ErrType)
		}
		return mask.IntValue(n), nil
	case mask.ValueDecimal:
		if r.Type != gjson.Number && r.Type != gjson.String {
			return mask.Null, fmt.Errorf("%s for decimal: %w", r.Type, ErrType)
		}
		s := r.Raw
		if r.Type == gjson.String {
			s = r.Str
		}
		f, err := mask.ParseDecimal(s)
		if err != nil {
			return mask.Null, fmt.Errorf("%q: %w", s, ErrType)
		}
		return mask.DecimalValue(f), nil
	case mask.ValueTime:
		if r.Type != gjson.String {
			return mask.Null, fmt.Errorf("%s for time: %w", r.Type, ErrType)
		}
		t, err := parseTime(r.Str)
		if err != nil {
			return mask.Null, fmt.Errorf("%q: %w", r.Str, ErrType)
		}
		return mask.TimeValue(t), nil
	default:
		if r.Type != gjson.String {
			return mask.Null, fmt.Errorf("%s for text: %w", r.Type, ErrType)
		}
		return mask.TextValue(r.Str), nil
	}
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

// ParseValue parses the plain text form of a value of the given kind, as
// produced by mask.Value.String. "null" and "" are the null value.
func ParseValue(s string, kind mask.ValueKind) (mask.Value, error) {
	if s == "" || s == "null" {
		return mask.Null, nil
	}
	switch kind {
	case mask.ValueInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return mask.Null, fmt.Errorf("%q: %w", s, ErrType)
		}
		return mask.IntValue(n), nil
	case mask.ValueDecimal:
		f, err := mask.ParseDecimal(s)
		if err != nil {
			return mask.Null, fmt.Errorf("%q: %w", s, ErrType)
		}
		return mask.DecimalValue(f), nil
	case mask.ValueTime:
		t, err := parseTime(s)
		if err != nil {
			return mask.Null, fmt.Errorf("%q: %w", s, ErrType)
		}
		return mask.TimeValue(t), nil
	default:
		return mask.TextValue(s), nil
	}
}
