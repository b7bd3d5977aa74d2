package locale

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// Catalog maps language tags to tables. It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	tags    []language.Tag
	tables  map[language.Tag]Table
	matcher language.Matcher
}

// NewCatalog creates a catalog holding tables. The first table is the
// fallback for Match. An empty call yields a catalog with Default only.
func NewCatalog(tables ...Table) *Catalog {
	c := &Catalog{tables: make(map[language.Tag]Table)}
	if len(tables) == 0 {
		tables = []Table{Default()}
	}
	for _, t := range tables {
		c.add(t)
	}
	c.rebuild()
	return c
}

// Builtin returns a catalog of tables derived from a set of common tags.
func Builtin() *Catalog {
	tags := []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.German,
		language.French,
		language.Spanish,
		language.Italian,
		language.Dutch,
		language.Swedish,
		language.Russian,
		language.Japanese,
		language.Chinese,
		language.Korean,
	}
	tables := make([]Table, 0, len(tags))
	tables = append(tables, Default())
	for _, tag := range tags[1:] {
		tables = append(tables, FromTag(tag))
	}
	return NewCatalog(tables...)
}

func (c *Catalog) add(t Table) {
	if _, ok := c.tables[t.Tag]; !ok {
		c.tags = append(c.tags, t.Tag)
	}
	c.tables[t.Tag] = t
}

func (c *Catalog) rebuild() {
	c.matcher = language.NewMatcher(c.tags)
}

// Add inserts or replaces the table for t.Tag.
func (c *Catalog) Add(t Table) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("locale %s: %w", t.Tag, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(t)
	c.rebuild()
	return nil
}

// Lookup returns the table registered for exactly tag.
func (c *Catalog) Lookup(tag language.Tag) (Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[tag]
	return t, ok
}

// Match returns the closest table for the preferred tags, falling back to
// the first table. The boolean is false when only the fallback applied.
func (c *Catalog) Match(preferred ...language.Tag) (Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, idx, conf := c.matcher.Match(preferred...)
	return c.tables[c.tags[idx]], conf != language.No
}

// Parse resolves a BCP 47 string such as "de-CH" to a table.
func (c *Catalog) Parse(s string) (Table, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return Table{}, fmt.Errorf("%q: %w", s, ErrUnknownLocale)
	}
	t, ok := c.Match(tag)
	if !ok {
		return Table{}, fmt.Errorf("%q: %w", s, ErrUnknownLocale)
	}
	return t, nil
}

// Tags returns the registered tags in insertion order.
func (c *Catalog) Tags() []language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}
