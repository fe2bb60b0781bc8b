package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "c.PNG", "a.jpg", "notes.txt", "b.webp", "d.jpeg", "noext")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	entries, err := List(dir, nil)
	require.NoError(t, err)

	var names []string
	for i, e := range entries {
		assert.Equal(t, i, e.Index)
		assert.Equal(t, filepath.Join(dir, e.Name), e.Path)
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a.jpg", "b.webp", "c.PNG", "d.jpeg"}, names)
	assert.Equal(t, "png", entries[2].Ext)
}

func TestListCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.jpg", "b.png", "c.gif")

	entries, err := List(dir, []string{".PNG", " gif "})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b.png", entries[0].Name)
	assert.Equal(t, "c.gif", entries[1].Name)
	assert.Equal(t, 1, entries[1].Index)
}

func TestListIsStable(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "3.png", "1.png", "2.png", "10.png")

	first, err := List(dir, nil)
	require.NoError(t, err)
	second, err := List(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListMissingDir(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNamer(t *testing.T) {
	n := Namer{Pattern: "frame_%04d", Start: 1}
	require.NoError(t, n.Validate())
	assert.Equal(t, "frame_0001.png", n.Name(Entry{Index: 0}, "png"))
	assert.Equal(t, "frame_0013.jpeg", n.Name(Entry{Index: 12}, "jpeg"))

	n = Namer{Pattern: "%d%%", Start: 0}
	require.NoError(t, n.Validate())
	assert.Equal(t, "7%.gif", n.Name(Entry{Index: 7}, "gif"))
}

func TestNamerValidate(t *testing.T) {
	for _, pattern := range []string{"", "fixed", "%d_%d", "%s", "dir/%d", `a\%d`, "%%"} {
		assert.Error(t, Namer{Pattern: pattern}.Validate(), pattern)
	}
	for _, pattern := range []string{"%d", "%03d", "img-%x", "out_%5d_final"} {
		assert.NoError(t, Namer{Pattern: pattern}.Validate(), pattern)
	}
}
