package playback

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddeko/tunebox/internal/domain/track"
)

func newItem(path string, d time.Duration) Item {
	return Item{
		ID:     uuid.New(),
		Track:  track.Track{Path: path, Duration: d},
		Status: waiting(),
	}
}

func TestPlaylist_HeadOnlyOrdering(t *testing.T) {
	var pl Playlist

	assert.Equal(t, 0, pl.Len())
	assert.Nil(t, pl.head())

	a := newItem("a.mp3", time.Minute)
	b := newItem("b.mp3", time.Minute)
	pl.push(a)
	pl.push(b)

	require.Equal(t, 2, pl.Len())
	assert.Equal(t, a.ID, pl.head().ID)

	got, ok := pl.popHead()
	require.True(t, ok)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, b.ID, pl.head().ID)

	got, ok = pl.popHead()
	require.True(t, ok)
	assert.Equal(t, b.ID, got.ID)

	_, ok = pl.popHead()
	assert.False(t, ok)
}

func TestPlaylist_HeadIsMutable(t *testing.T) {
	var pl Playlist
	pl.push(newItem("a.mp3", time.Minute))

	pl.head().Status = playingAt(time.Now(), 0)
	assert.Equal(t, StatusPlaying, pl.head().Status.Kind)
}

func TestPlaylist_Clear(t *testing.T) {
	var pl Playlist
	pl.push(newItem("a.mp3", time.Minute))
	pl.push(newItem("b.mp3", time.Minute))

	pl.clear()
	assert.Equal(t, 0, pl.Len())
	assert.Nil(t, pl.head())
}

func TestPlaylist_ItemsReturnsCopy(t *testing.T) {
	var pl Playlist
	pl.push(newItem("a.mp3", time.Minute))

	items := pl.Items()
	require.Len(t, items, 1)
	items[0].Track.Path = "changed"
	assert.Equal(t, "a.mp3", pl.head().Track.Path)
}
