package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusKind_String(t *testing.T) {
	assert.Equal(t, "waiting", StatusWaiting.String())
	assert.Equal(t, "playing", StatusPlaying.String())
	assert.Equal(t, "stopped", StatusStopped.String())
	assert.Equal(t, "unknown", StatusKind(99).String())
}

func TestStatus_Elapsed(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status Status
		now    time.Time
		want   time.Duration
	}{
		{
			name:   "waiting has no elapsed",
			status: waiting(),
			now:    t0,
			want:   0,
		},
		{
			name:   "playing counts wall clock since start",
			status: playingAt(t0, 0),
			now:    t0.Add(4 * time.Second),
			want:   4 * time.Second,
		},
		{
			name:   "playing adds previously accumulated time",
			status: playingAt(t0, 3*time.Second),
			now:    t0.Add(4 * time.Second),
			want:   7 * time.Second,
		},
		{
			name:   "stopped is frozen",
			status: stoppedAt(5 * time.Second),
			now:    t0.Add(time.Hour),
			want:   5 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.elapsed(tt.now))
		})
	}
}
