package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `{
  "undertale-sans": {
    "name": "Sans",
    "universe": "undertale",
    "sprites": {"textbox": {"wink": {"name": "Wink"}, "default": {"name": "Default"}, "closed_eyes": {}}}
  },
  "deltarune-susie": {
    "name": "Susie",
    "universe": "deltarune",
    "shown_textbox": true,
    "sprites": {"textbox": {"smile": {"name": "Smile"}}}
  },
  "undertale-hidden": {
    "name": "Hidden",
    "universe": "undertale",
    "shown_textbox": false,
    "sprites": {"textbox": {"default": {}}}
  },
  "undertale-hidden-int": {"name": "Hidden Too", "shown_textbox": 0},
  "au-nosprites": {"name": "No Sprites", "sprites": {"textbox": []}},
  "broken": "not an object"
}`

func TestParse(t *testing.T) {
	t.Parallel()

	snap, stats, err := Parse([]byte(fixture))
	require.NoError(t, err)

	assert.Equal(t, ParseStats{Total: 6, Hidden: 2, Invalid: 1}, stats)
	assert.Equal(t, []string{"au-nosprites", "deltarune-susie", "undertale-sans"}, snap.IDs())

	sans, ok := snap.Lookup("undertale-sans")
	require.True(t, ok)
	assert.Equal(t, "Sans", sans.Name)
	assert.Equal(t, "undertale", sans.Universe)
	assert.Equal(t, []Expression{
		{Key: "closed_eyes"},
		{Key: "default", Name: "Default"},
		{Key: "wink", Name: "Wink"},
	}, sans.Expressions)

	susie, ok := snap.Lookup("deltarune-susie")
	require.True(t, ok)
	assert.Equal(t, UniverseDeltarune, susie.Universe)

	none, ok := snap.Lookup("au-nosprites")
	require.True(t, ok)
	assert.False(t, none.HasExpressions())

	_, ok = snap.Lookup("undertale-hidden")
	assert.False(t, ok)
}

func TestParse_NotAnObject(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]byte(`[1, 2, 3]`))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "characters.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	snap, _, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Len())

	_, _, err = LoadFile(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestHasTextboxSprites(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "sprites", raw: `{"sprites": {"textbox": {"default": {}}}}`, want: true},
		{name: "empty object", raw: `{"sprites": {"textbox": {}}}`, want: false},
		{name: "empty array", raw: `{"sprites": {"textbox": []}}`, want: false},
		{name: "no sprites", raw: `{"name": "x"}`, want: false},
		{name: "invalid", raw: `"x"`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, HasTextboxSprites([]byte(tt.raw)))
		})
	}
}

func TestCharacter_Expression(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot([]Character{{
		ID:          "c",
		Expressions: []Expression{{Key: "b"}, {Key: "a", Name: "Alpha"}, {Key: "c"}},
	}})
	c, ok := snap.Lookup("c")
	require.True(t, ok)

	e, ok := c.Expression("a")
	require.True(t, ok)
	assert.Equal(t, "Alpha", e.Label())

	e, ok = c.Expression("c")
	require.True(t, ok)
	assert.Equal(t, "c", e.Label())

	_, ok = c.Expression("zzz")
	assert.False(t, ok)
}

func TestSnapshot_NilSafe(t *testing.T) {
	t.Parallel()

	var s *Snapshot
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.IDs())
	_, ok := s.Lookup("x")
	assert.False(t, ok)
}

func TestCatalog_Get(t *testing.T) {
	t.Parallel()

	c := New("unused.json")
	c.Store(NewSnapshot([]Character{{ID: "undertale-sans", Name: "Sans"}}))

	got, err := c.Get("undertale-sans")
	require.NoError(t, err)
	assert.Equal(t, "Sans", got.Name)

	_, err = c.Get("nobody")
	require.ErrorIs(t, err, ErrNotFound)

	c.Store(nil)
	assert.Equal(t, 0, c.Len())
}
