// Package notification fans playback events out to subscribers.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oddeko/tunebox/internal/app/playback"
)

// Subscriber receives playback events.
type Subscriber interface {
	Notify(e playback.Event) error
}

// subscription represents a subscriber's subscription.
type subscription struct {
	id  string
	sub Subscriber
}

// Manager manages notification subscriptions and broadcasting.
type Manager struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
}

// NewManager creates a new notification manager.
func NewManager() *Manager {
	return &Manager{
		subscriptions: make(map[string]*subscription),
	}
}

// Subscribe adds a new subscription and returns the subscription ID.
func (m *Manager) Subscribe(sub Subscriber) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.subscriptions[id] = &subscription{id: id, sub: sub}
	return id
}

// Unsubscribe removes a subscription.
func (m *Manager) Unsubscribe(subscriptionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subscriptions, subscriptionID)
}

// Run consumes events until the channel closes or ctx is cancelled,
// broadcasting each one. Meant to run in its own goroutine.
func (m *Manager) Run(ctx context.Context, events <-chan playback.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			m.Broadcast(e)
		}
	}
}

// Broadcast sends an event to all subscribers. Each send runs in a
// goroutine with a timeout so a slow subscriber cannot block playback.
func (m *Manager) Broadcast(e playback.Event) {
	m.mu.RLock()
	subs := make([]*subscription, 0, len(m.subscriptions))
	for _, sub := range m.subscriptions {
		subs = append(subs, sub)
	}
	m.mu.RUnlock()

	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(s *subscription) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			done := make(chan error, 1)
			go func() {
				done <- s.sub.Notify(e)
			}()

			select {
			case <-done:
				// Notify errors are not fatal to playback
			case <-ctx.Done():
				// Timeout, move on
			}
		}(sub)
	}
	wg.Wait()
}
