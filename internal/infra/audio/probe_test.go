package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFile_MissingFile(t *testing.T) {
	_, _, err := decodeFile(filepath.Join(t.TempDir(), "nope.mp3"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResource))
	assert.False(t, errors.Is(err, ErrDecode))
}

func TestDecodeFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not audio"), 0644))

	_, _, err := decodeFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestDecodeFile_GarbageData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.flac")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a flac file"), 0644))

	_, _, err := decodeFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestParseSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
		wantErr  bool
		check    func(t *testing.T, s Settings)
	}{
		{
			name:     "empty map gets defaults",
			settings: map[string]any{},
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, 44100, s.SampleRate)
				assert.Equal(t, 100, s.BufferMs)
				assert.Equal(t, 4, s.ResampleQuality)
			},
		},
		{
			name:     "explicit values kept",
			settings: map[string]any{"sample_rate": 48000, "buffer_ms": 50},
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, 48000, s.SampleRate)
				assert.Equal(t, 50, s.BufferMs)
			},
		},
		{
			name:     "sample rate out of range",
			settings: map[string]any{"sample_rate": 1000},
			wantErr:  true,
		},
		{
			name:     "buffer too small",
			settings: map[string]any{"buffer_ms": 1},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parseSettings(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}
