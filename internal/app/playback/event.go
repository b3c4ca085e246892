package playback

// EventType represents a playback event type.
type EventType int

const (
	EventTrackQueued  EventType = iota // Track was added to the playlist
	EventTrackStarted                  // Track started playing
	EventTrackEnded                    // Track finished playing (auto-advance)
	EventTrackSkipped                  // Track was skipped via Next
	EventStateChanged                  // Head item paused or resumed
	EventQueueEmpty                    // Playlist became empty
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackQueued:
		return "track_queued"
	case EventTrackStarted:
		return "track_started"
	case EventTrackEnded:
		return "track_ended"
	case EventTrackSkipped:
		return "track_skipped"
	case EventStateChanged:
		return "state_changed"
	case EventQueueEmpty:
		return "queue_empty"
	default:
		return "unknown"
	}
}

// Event represents a playback event.
type Event struct {
	Type EventType
	Item *Item // Snapshot of the item concerned (nil for EventQueueEmpty)
}
