package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddeko/tunebox/internal/infra/config"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{4 * time.Second, "00:04"},
		{90 * time.Second, "01:30"},
		{61 * time.Minute, "61:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in))
	}
}

func TestExpandMedia(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp3"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.flac"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))

	m3u := filepath.Join(dir, "mix.m3u")
	require.NoError(t, os.WriteFile(m3u, []byte("a.mp3\n#comment\nb.flac\n"), 0644))

	// Plain file passes through untouched.
	assert.Equal(t, []string{"x.mp3"}, expandMedia([]string{"x.mp3"}))

	// Directory expands to supported files only.
	got := expandMedia([]string{dir})
	assert.Equal(t, []string{
		filepath.Join(dir, "a.mp3"),
		filepath.Join(dir, "b.flac"),
	}, got)

	// Playlist expands to its entries.
	got = expandMedia([]string{m3u})
	assert.Equal(t, []string{
		filepath.Join(dir, "a.mp3"),
		filepath.Join(dir, "b.flac"),
	}, got)
}

func TestBuildFilterChain(t *testing.T) {
	cfg := &config.Config{
		Filters: map[string]config.FilterConfig{
			"format": {
				Enabled:  true,
				Settings: map[string]any{"extensions": []string{"mp3"}},
			},
			"duration_limit": {Enabled: false},
		},
	}

	chain, err := buildFilterChain(cfg)
	require.NoError(t, err)
	assert.Len(t, chain.Filters(), 1)
}

func TestBuildFilterChain_UnknownFilter(t *testing.T) {
	cfg := &config.Config{
		Filters: map[string]config.FilterConfig{
			"nope": {Enabled: true},
		},
	}

	_, err := buildFilterChain(cfg)
	assert.Error(t, err)
}
