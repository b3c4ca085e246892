package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddeko/tunebox/internal/app/playback"
)

type recordingSubscriber struct {
	mu     sync.Mutex
	events []playback.Event
}

func (r *recordingSubscriber) Notify(e playback.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingSubscriber) received() []playback.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]playback.Event, len(r.events))
	copy(out, r.events)
	return out
}

func TestManager_Broadcast(t *testing.T) {
	m := NewManager()
	a := &recordingSubscriber{}
	b := &recordingSubscriber{}
	m.Subscribe(a)
	idB := m.Subscribe(b)

	m.Broadcast(playback.Event{Type: playback.EventTrackStarted})

	require.Len(t, a.received(), 1)
	require.Len(t, b.received(), 1)

	m.Unsubscribe(idB)
	m.Broadcast(playback.Event{Type: playback.EventTrackEnded})

	assert.Len(t, a.received(), 2)
	assert.Len(t, b.received(), 1)
}

func TestManager_Run_StopsWhenChannelCloses(t *testing.T) {
	m := NewManager()
	sub := &recordingSubscriber{}
	m.Subscribe(sub)

	events := make(chan playback.Event, 2)
	events <- playback.Event{Type: playback.EventTrackQueued}
	events <- playback.Event{Type: playback.EventQueueEmpty}
	close(events)

	done := make(chan struct{})
	go func() {
		m.Run(context.Background(), events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after channel close")
	}
	assert.Len(t, sub.received(), 2)
}
