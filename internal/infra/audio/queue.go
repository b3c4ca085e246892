package audio

import (
	"io"

	"github.com/gopxl/beep/v2"
)

// queueEntry pairs a playable streamer with the closer releasing its
// underlying resources.
type queueEntry struct {
	streamer beep.Streamer
	closer   io.Closer
}

// queue plays appended streamers back to back and emits silence when
// empty, so it can stay attached to the speaker forever. A drained
// streamer is closed and dropped as part of Stream.
//
// All mutations must happen under speaker.Lock: the speaker goroutine
// calls Stream while holding the same lock.
type queue struct {
	entries []queueEntry
}

func (q *queue) add(s beep.Streamer, c io.Closer) {
	q.entries = append(q.entries, queueEntry{streamer: s, closer: c})
}

// dropFirst discards the currently sounding stream.
func (q *queue) dropFirst() {
	if len(q.entries) == 0 {
		return
	}
	if q.entries[0].closer != nil {
		_ = q.entries[0].closer.Close()
	}
	q.entries = q.entries[1:]
}

// dropAll discards every queued stream.
func (q *queue) dropAll() {
	for _, e := range q.entries {
		if e.closer != nil {
			_ = e.closer.Close()
		}
	}
	q.entries = nil
}

func (q *queue) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		if len(q.entries) == 0 {
			for i := filled; i < len(samples); i++ {
				samples[i] = [2]float64{}
			}
			break
		}
		m, sok := q.entries[0].streamer.Stream(samples[filled:])
		if !sok {
			q.dropFirst()
		}
		filled += m
	}
	return len(samples), true
}

func (q *queue) Err() error {
	return nil
}
