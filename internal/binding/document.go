// Package binding loads and stores field content in JSON documents.
//
// Paths use gjson/sjson syntax ("user.name", "items.0.qty"). Plain fields
// bind to strings. Masked fields bind by value kind: text and times as
// strings (RFC 3339 for times), integers and decimals as JSON numbers,
// and an empty field as null.
package binding

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var (
	// ErrNotFound is returned when a path has no value.
	ErrNotFound = errors.New("path not found")
	// ErrType is returned when a value has the wrong JSON type.
	ErrType = errors.New("wrong value type")
	// ErrInvalidJSON is returned for malformed documents.
	ErrInvalidJSON = errors.New("invalid JSON")
)

// Document is a JSON document edited in place. A Document is not safe
// for concurrent use.
type Document struct {
	raw []byte
}

// New returns an empty object document.
func New() *Document {
	return &Document{raw: []byte("{}")}
}

// Parse validates data and wraps it. Empty input is an empty object.
func Parse(data []byte) (*Document, error) {
	if len(data) == 0 {
		return New(), nil
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	raw := make([]byte, len(data))
	copy(raw, data)
	return &Document{raw: raw}, nil
}

// Load reads a document from a file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Save writes the pretty-printed document to a file.
func (d *Document) Save(path string) error {
	return os.WriteFile(path, d.Pretty(), 0o644)
}

// Bytes returns the document as stored.
func (d *Document) Bytes() []byte { return d.raw }

// Pretty returns an indented copy of the document.
func (d *Document) Pretty() []byte {
	return pretty.Pretty(d.raw)
}

// Compact returns the document without insignificant whitespace.
func (d *Document) Compact() []byte {
	return pretty.Ugly(d.raw)
}

// Get returns the value at path.
func (d *Document) Get(path string) (gjson.Result, error) {
	r := gjson.GetBytes(d.raw, path)
	if !r.Exists() {
		return r, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return r, nil
}

// Has reports whether path has a value.
func (d *Document) Has(path string) bool {
	return gjson.GetBytes(d.raw, path).Exists()
}

// Set stores a Go value at path.
func (d *Document) Set(path string, v any) error {
	raw, err := sjson.SetBytes(d.raw, path, v)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	d.raw = raw
	return nil
}

// SetRaw stores a JSON literal at path.
func (d *Document) SetRaw(path, value string) error {
	raw, err := sjson.SetRawBytes(d.raw, path, []byte(value))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	d.raw = raw
	return nil
}

// Delete removes the value at path. A missing path is not an error.
func (d *Document) Delete(path string) error {
	raw, err := sjson.DeleteBytes(d.raw, path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	d.raw = raw
	return nil
}
