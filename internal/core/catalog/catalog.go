// Package catalog holds the read-mostly character catalog. The catalog is an
// immutable Snapshot swapped wholesale on reload, so readers always observe a
// complete table.
package catalog

import (
	"errors"
	"sort"
	"sync/atomic"
)

// UniverseDeltarune is the universe whose characters use the deltarune box.
const UniverseDeltarune = "deltarune"

// ErrNotFound is returned when a character is not in the catalog.
var ErrNotFound = errors.New("character not found")

// Expression is one facial expression sprite of a character.
type Expression struct {
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

// Label returns the display name, or the key when the sprite has no name.
func (e Expression) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Key
}

// Character is a catalog record.
type Character struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Universe    string       `json:"universe,omitempty"`
	Expressions []Expression `json:"expressions"` // sorted by key
}

// HasExpressions reports whether the character has any selectable expression.
func (c Character) HasExpressions() bool {
	return len(c.Expressions) > 0
}

// Expression returns the expression with the given key.
func (c Character) Expression(key string) (Expression, bool) {
	i := sort.Search(len(c.Expressions), func(i int) bool { return c.Expressions[i].Key >= key })
	if i < len(c.Expressions) && c.Expressions[i].Key == key {
		return c.Expressions[i], true
	}
	return Expression{}, false
}

// Snapshot is an immutable view of the catalog.
type Snapshot struct {
	chars map[string]Character
	ids   []string
}

// NewSnapshot builds a snapshot from records. Expressions are sorted by key.
func NewSnapshot(chars []Character) *Snapshot {
	s := &Snapshot{
		chars: make(map[string]Character, len(chars)),
		ids:   make([]string, 0, len(chars)),
	}
	for _, c := range chars {
		exprs := append([]Expression(nil), c.Expressions...)
		sort.Slice(exprs, func(i, j int) bool { return exprs[i].Key < exprs[j].Key })
		c.Expressions = exprs

		if _, dup := s.chars[c.ID]; !dup {
			s.ids = append(s.ids, c.ID)
		}
		s.chars[c.ID] = c
	}
	sort.Strings(s.ids)
	return s
}

// Lookup returns the character with the given id.
func (s *Snapshot) Lookup(id string) (Character, bool) {
	if s == nil {
		return Character{}, false
	}
	c, ok := s.chars[id]
	return c, ok
}

// Len returns the number of characters in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns character ids in sorted order.
func (s *Snapshot) IDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.ids...)
}

// Catalog is the process-wide character table.
type Catalog struct {
	path string
	snap atomic.Pointer[Snapshot]
}

// New creates a catalog backed by the file at path. The catalog starts empty
// until Reload or Store is called.
func New(path string) *Catalog {
	c := &Catalog{path: path}
	c.snap.Store(NewSnapshot(nil))
	return c
}

// Path returns the backing file path.
func (c *Catalog) Path() string {
	return c.path
}

// Snapshot returns the current snapshot. Callers handling one interaction
// should take a single snapshot and use it throughout.
func (c *Catalog) Snapshot() *Snapshot {
	return c.snap.Load()
}

// Store replaces the current snapshot.
func (c *Catalog) Store(s *Snapshot) {
	if s == nil {
		s = NewSnapshot(nil)
	}
	c.snap.Store(s)
}

// Lookup returns the character with the given id from the current snapshot.
func (c *Catalog) Lookup(id string) (Character, bool) {
	return c.Snapshot().Lookup(id)
}

// Get is like Lookup but returns ErrNotFound for unknown ids.
func (c *Catalog) Get(id string) (Character, error) {
	char, ok := c.Lookup(id)
	if !ok {
		return Character{}, ErrNotFound
	}
	return char, nil
}

// Len returns the number of characters currently loaded.
func (c *Catalog) Len() int {
	return c.Snapshot().Len()
}
