// Package playback provides the single-track playback state machine
// with integrated playlist management.
package playback

import "time"

// StatusKind represents the playback status of a playlist item.
type StatusKind int

const (
	StatusWaiting StatusKind = iota // Queued, never started
	StatusPlaying                   // Currently sounding
	StatusStopped                   // Paused/halted, progress frozen
)

// String returns the string representation of the status kind.
func (k StatusKind) String() string {
	switch k {
	case StatusWaiting:
		return "waiting"
	case StatusPlaying:
		return "playing"
	case StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Status is the per-item playback status. Exactly one kind holds at a
// time: StartedAt is meaningful only while Playing, AlreadyPlayed only
// while Playing or Stopped. AlreadyPlayed never decreases over an item's
// lifetime and never exceeds the item's total duration.
type Status struct {
	Kind          StatusKind
	StartedAt     time.Time     // Wall-clock instant the current Playing run began
	AlreadyPlayed time.Duration // Play time accumulated before StartedAt
}

func waiting() Status {
	return Status{Kind: StatusWaiting}
}

func playingAt(now time.Time, already time.Duration) Status {
	return Status{Kind: StatusPlaying, StartedAt: now, AlreadyPlayed: already}
}

func stoppedAt(already time.Duration) Status {
	return Status{Kind: StatusStopped, AlreadyPlayed: already}
}

// elapsed returns the accumulated play time as of now. While Playing it
// is wall-clock time since StartedAt plus the previously accumulated
// time; otherwise it is the accumulated time alone.
func (s Status) elapsed(now time.Time) time.Duration {
	if s.Kind != StatusPlaying {
		return s.AlreadyPlayed
	}
	return now.Sub(s.StartedAt) + s.AlreadyPlayed
}
