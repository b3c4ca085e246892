package playback

import "github.com/oddeko/tunebox/internal/domain/track"

// Stream is an opaque handle to decoded audio produced by OpenAndProbe.
// The sink owns a stream once it has been appended; the Player closes a
// stream itself only when an add is rejected after a successful probe.
type Stream interface {
	Close() error
}

// Sink abstracts the audio output device. Implementations queue decoded
// streams in append order and expose device-level transport controls.
type Sink interface {
	// OpenAndProbe opens a local media file, probes its total duration and
	// embedded tags, and prepares a decoded stream for Append. It must not
	// change the device state.
	OpenAndProbe(path string) (Stream, track.Track, error)

	// Append enqueues decoded audio for playback.
	Append(Stream)

	Play()
	Pause()
	Stop()

	// Replace discards all queued audio, leaving a fresh empty sink.
	Replace()

	IsPaused() bool
	Volume() float64
	SetVolume(float64)
}
