package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, "characters.json")
	c := New(path)

	w, err := NewWatcher(c, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	writeCatalog(t, path, "undertale-sans", "undertale-undyne")

	assert.Eventually(t, func() bool {
		return c.Len() == 2
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_ReloadsOnAtomicReplace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "characters.json")
	writeCatalog(t, path, "undertale-sans")

	c := New(path)
	_, err := c.Reload()
	require.NoError(t, err)

	w, err := NewWatcher(c, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	tmp := path + ".tmp"
	writeCatalog(t, tmp, "undertale-sans", "undertale-alphys", "undertale-asgore")
	require.NoError(t, os.Rename(tmp, path))

	assert.Eventually(t, func() bool {
		return c.Len() == 3
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "characters.json")
	writeCatalog(t, path, "undertale-sans")
	c := New(path)

	w, err := NewWatcher(c, zerolog.Nop())
	require.NoError(t, err)

	writeCatalog(t, filepath.Join(dir, "other.json"), "undertale-sans")
	time.Sleep(2 * watchDebounce)

	require.NoError(t, w.Close())
	assert.Equal(t, 0, c.Len())
}
