package playback

import (
	"time"

	"github.com/google/uuid"

	"github.com/oddeko/tunebox/internal/domain/track"
)

// Item is a playlist entry.
type Item struct {
	ID         uuid.UUID
	Track      track.Track
	CurrentPos time.Duration // Derived snapshot, maintained by Tick only
	Status     Status
}

// Playlist is an ordered sequence of items owned by the Player. Items are
// appended at the tail and removed at the head; the head is the only item
// that ever leaves Waiting status.
type Playlist struct {
	items []Item
}

// Len returns the number of items.
func (p *Playlist) Len() int {
	return len(p.items)
}

// Items returns a copy of the items for display.
func (p *Playlist) Items() []Item {
	out := make([]Item, len(p.items))
	copy(out, p.items)
	return out
}

// push appends an item at the tail.
func (p *Playlist) push(it Item) {
	p.items = append(p.items, it)
}

// head returns a pointer to the current item, or nil when empty.
func (p *Playlist) head() *Item {
	if len(p.items) == 0 {
		return nil
	}
	return &p.items[0]
}

// popHead removes and returns the current item.
func (p *Playlist) popHead() (Item, bool) {
	if len(p.items) == 0 {
		return Item{}, false
	}
	it := p.items[0]
	p.items = p.items[1:]
	return it, true
}

// clear removes all items.
func (p *Playlist) clear() {
	p.items = nil
}
