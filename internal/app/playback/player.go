package playback

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/oddeko/tunebox/internal/domain/track"
)

// Admission validates a probed track before it is queued. A non-nil
// error rejects the add.
type Admission interface {
	Check(t track.Track) error
}

// Config holds player configuration.
type Config struct {
	Admission Admission        // Optional add-time validation
	Clock     func() time.Time // Time source, defaults to time.Now
}

// Player owns the playlist and drives a single audio sink. All state is
// serialized behind one mutex; progress is maintained by Tick, which must
// be invoked periodically (see StartPolling).
type Player struct {
	mu sync.Mutex

	sink      Sink
	admission Admission
	list      Playlist

	// Derived progress snapshot of the head item, updated by Tick only
	currentTime time.Duration
	totalTime   time.Duration

	initialized bool // At least one item has ever been added
	polling     bool

	now func() time.Time

	eventCh chan Event
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a new Player driving the given sink.
func New(sink Sink, config Config) *Player {
	now := config.Clock
	if now == nil {
		now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		sink:      sink,
		admission: config.Admission,
		now:       now,
		eventCh:   make(chan Event, 16),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Events returns the event channel.
func (p *Player) Events() <-chan Event {
	return p.eventCh
}

// AddToList opens and probes the media at path and appends it to the
// playlist. With once, the sink is replaced and the playlist cleared
// first ("play now" semantics). The new item is queued as Waiting, then
// Play and one Tick run synchronously so status and progress are fresh.
// Returns false, without mutating any state, when the file cannot be
// opened, its duration cannot be probed, decoding fails, or an admission
// filter rejects it.
func (p *Player) AddToList(path string, once bool) bool {
	// Probe outside the lock: add is the only blocking operation and must
	// not stall Tick or transport calls.
	st, trk, err := p.sink.OpenAndProbe(path)
	if err != nil {
		zlog.Warn().Msgf("playback: add failed: path=%s err=%v", path, err)
		return false
	}

	if p.admission != nil {
		if err := p.admission.Check(trk); err != nil {
			_ = st.Close()
			zlog.Info().Msgf("playback: add rejected: path=%s reason=%v", path, err)
			return false
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.initialized = true

	if once {
		p.sink.Stop()
		p.sink.Replace()
		p.list.clear()
	}

	p.sink.Append(st)

	it := Item{ID: uuid.New(), Track: trk, Status: waiting()}
	p.list.push(it)
	zlog.Debug().Msgf("playback: queued: track=%s duration=%v once=%v",
		trk.DisplayName(), trk.Duration, once)
	p.sendEventLocked(Event{Type: EventTrackQueued, Item: &it})

	p.playLocked()
	p.tickLocked()
	return true
}

// AddAll appends every path in order and returns how many were accepted.
func (p *Player) AddAll(paths []string) int {
	added := 0
	for _, path := range paths {
		if p.AddToList(path, false) {
			added++
		}
	}
	return added
}

// Play resumes the sink and starts the head item. Safe to call
// speculatively: it is a no-op (returning true) on an empty playlist.
func (p *Player) Play() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playLocked()
	return true
}

func (p *Player) playLocked() {
	p.sink.Play()
	it := p.list.head()
	if it == nil {
		return
	}
	switch it.Status.Kind {
	case StatusWaiting:
		it.Status = playingAt(p.now(), 0)
		p.sendEventLocked(Event{Type: EventTrackStarted, Item: snapshot(it)})
	case StatusPlaying:
		// Already playing, nothing to do
	case StatusStopped:
		it.Status = playingAt(p.now(), it.Status.AlreadyPlayed)
		p.sendEventLocked(Event{Type: EventStateChanged, Item: snapshot(it)})
	}
}

// Pause pauses the sink and records the head item's accumulated play
// time. Idempotent: Waiting and Stopped items are left unchanged.
func (p *Player) Pause() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sink.Pause()
	it := p.list.head()
	if it == nil || it.Status.Kind != StatusPlaying {
		return true
	}

	already := it.Status.elapsed(p.now())
	if already > it.Track.Duration {
		already = it.Track.Duration
	}
	it.Status = stoppedAt(already)
	p.sendEventLocked(Event{Type: EventStateChanged, Item: snapshot(it)})
	return true
}

// Resume resumes the sink and continues a Stopped head item. Unlike Play
// it never starts a Waiting item: resume means "continue from stop".
func (p *Player) Resume() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sink.Play()
	it := p.list.head()
	if it == nil || it.Status.Kind != StatusStopped {
		return true
	}

	it.Status = playingAt(p.now(), it.Status.AlreadyPlayed)
	p.sendEventLocked(Event{Type: EventStateChanged, Item: snapshot(it)})
	return true
}

// Stop halts the sink. No item status changes: unlike Pause, Stop does
// not record progress.
func (p *Player) Stop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sink.Stop()
	return true
}

// Next skips the head item. The new head keeps whatever status it holds
// (typically Waiting); the caller starts it with Play. Returns false when
// there is nothing to skip to, leaving the playlist unchanged.
func (p *Player) Next() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.list.Len() <= 1 {
		return false
	}

	p.sink.Stop()
	it, _ := p.list.popHead()
	zlog.Debug().Msgf("playback: skipped: track=%s pos=%v", it.Track.DisplayName(), it.CurrentPos)
	p.sendEventLocked(Event{Type: EventTrackSkipped, Item: &it})
	return true
}

// Progress returns the current and total time of the head item as of the
// last Tick. Query-only.
func (p *Player) Progress() (current, total time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentTime, p.totalTime
}

// IsPlaying reports whether something is audibly playing: at least one
// item was ever added, the sink is not paused and the playlist is
// non-empty. Derived, never stored.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isPlayingLocked()
}

func (p *Player) isPlayingLocked() bool {
	return p.initialized && !p.sink.IsPaused() && p.list.Len() > 0
}

// Tick is the time-accounting step. It promotes a Waiting head when the
// sink is already sounding, advances or retires a Playing head, freezes
// progress for a Stopped head, and stops the sink when nothing is queued.
// Callers must invoke it periodically (see StartPolling).
func (p *Player) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tickLocked()
}

func (p *Player) tickLocked() {
	playing := p.isPlayingLocked()

	it := p.list.head()
	if it == nil {
		// Nothing queued: make sure the sink is not left running.
		p.sink.Stop()
		return
	}

	now := p.now()
	switch it.Status.Kind {
	case StatusWaiting:
		if playing {
			// The sink was started without going through Play.
			it.Status = playingAt(now, 0)
			p.sendEventLocked(Event{Type: EventTrackStarted, Item: snapshot(it)})
		}
	case StatusPlaying:
		elapsed := it.Status.elapsed(now)
		if elapsed >= it.Track.Duration {
			// Track finished: retire exactly this item. The next head is
			// not started here; continuation is the caller's choice.
			done, _ := p.list.popHead()
			zlog.Debug().Msgf("playback: track ended: track=%s duration=%v",
				done.Track.DisplayName(), done.Track.Duration)
			p.sendEventLocked(Event{Type: EventTrackEnded, Item: &done})
			if p.list.Len() == 0 {
				p.sendEventLocked(Event{Type: EventQueueEmpty})
			}
			return
		}
		it.CurrentPos = elapsed
		p.currentTime = elapsed
		p.totalTime = it.Track.Duration
	case StatusStopped:
		it.CurrentPos = it.Status.AlreadyPlayed
		p.currentTime = it.Status.AlreadyPlayed
		p.totalTime = it.Track.Duration
	}
}

// Volume returns the sink volume level (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sink.Volume()
}

// SetVolume sets the sink volume level (0.0 to 1.0).
func (p *Player) SetVolume(level float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sink.SetVolume(level)
	return true
}

// PlayingSong returns a snapshot of the head item.
func (p *Player) PlayingSong() (Item, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	it := p.list.head()
	if it == nil {
		return Item{}, false
	}
	return *it, true
}

// Playlist returns a snapshot of all items.
func (p *Player) Playlist() []Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.list.Items()
}

// StartPolling runs a single background task invoking Tick at the given
// interval until ctx is cancelled. A second call while polling is active
// is a no-op: there is never more than one poller.
func (p *Player) StartPolling(ctx context.Context, interval time.Duration) {
	p.mu.Lock()
	if p.polling {
		p.mu.Unlock()
		return
	}
	p.polling = true
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				p.mu.Lock()
				p.polling = false
				p.mu.Unlock()
				return
			case <-p.ctx.Done():
				return
			case <-ticker.C:
				p.Tick()
			}
		}
	}()
}

// Close stops the player and releases resources.
func (p *Player) Close() {
	p.cancel()
	p.Stop()
	close(p.eventCh)
}

// sendEventLocked sends an event without blocking.
// Must be called with lock held.
func (p *Player) sendEventLocked(e Event) {
	select {
	case p.eventCh <- e:
		// Successfully sent
	case <-p.ctx.Done():
		// Player closed, don't send
	default:
		// Channel full, drop event
	}
}

// snapshot copies an item so event consumers never observe later
// head mutations.
func snapshot(it *Item) *Item {
	c := *it
	return &c
}
