package playlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadM3U(t *testing.T) {
	dir := t.TempDir()
	content := "#EXTM3U\n" +
		"#EXTINF:123, Some Artist - Some Song\n" +
		"song1.mp3\n" +
		"\n" +
		"sub/song2.flac\n" +
		"/abs/song3.ogg\n"
	path := filepath.Join(dir, "mix.m3u")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := LoadM3U(path)
	require.NoError(t, err)

	assert.Equal(t, "mix", c.Name)
	assert.Equal(t, []string{
		filepath.Join(dir, "song1.mp3"),
		filepath.Join(dir, "sub", "song2.flac"),
		"/abs/song3.ogg",
	}, c.Paths)
	assert.Equal(t, 3, c.Len())
}

func TestLoadM3U_MissingFile(t *testing.T) {
	_, err := LoadM3U(filepath.Join(t.TempDir(), "nope.m3u"))
	assert.Error(t, err)
}

func TestFromDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.mp3", "c.txt", "d.FLAC"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	c, err := FromDir(dir, []string{"mp3", "flac"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.mp3"),
		filepath.Join(dir, "b.mp3"),
		filepath.Join(dir, "d.FLAC"),
	}, c.Paths)
}

func TestFromDir_MissingDir(t *testing.T) {
	_, err := FromDir(filepath.Join(t.TempDir(), "nope"), []string{"mp3"})
	assert.Error(t, err)
}
