// Package watch provides change notification for stores without native
// change streams. Stores publish after every write; subscribers re-query and
// receive full snapshots.
package watch

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/sssmarthaat/haat/internal/logger"
)

// Hub fans out change signals to subscribers. Signals are coalesced: a slow
// subscriber sees at most one pending signal.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[int]chan struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan struct{})}
}

// Subscribe registers a subscriber. The returned cancel func must be called
// to release it.
func (h *Hub) Subscribe() (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan struct{}, 1)
	h.subs[id] = ch

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Publish signals every subscriber.
func (h *Hub) Publish() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Stream runs query once immediately and again after every Publish, sending
// each result on the returned channel. The channel closes when ctx is done.
// An error from the first query is returned directly; later errors are
// logged and skipped.
func Stream[T any](ctx context.Context, h *Hub, query func(context.Context) (T, error)) (<-chan T, error) {
	return stream(ctx, h, 0, query)
}

// StreamEvery is Stream that also re-queries every interval, for stores that
// can be written by other processes. Polled snapshots are only sent when they
// differ from the last one sent.
func StreamEvery[T any](
	ctx context.Context,
	h *Hub,
	every time.Duration,
	query func(context.Context) (T, error),
) (<-chan T, error) {
	return stream(ctx, h, every, query)
}

func stream[T any](
	ctx context.Context,
	h *Hub,
	every time.Duration,
	query func(context.Context) (T, error),
) (<-chan T, error) {
	signals, cancel := h.Subscribe()

	first, err := query(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan T, 1)
	out <- first

	var tick <-chan time.Time
	var ticker *time.Ticker
	if every > 0 {
		ticker = time.NewTicker(every)
		tick = ticker.C
	}

	go func() {
		defer close(out)
		defer cancel()
		if ticker != nil {
			defer ticker.Stop()
		}

		last := first
		for {
			polled := false
			select {
			case <-ctx.Done():
				return
			case <-signals:
			case <-tick:
				polled = true
			}

			snapshot, err := query(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Debug("watch query failed: %v", err)
				continue
			}
			if polled && reflect.DeepEqual(last, snapshot) {
				continue
			}
			last = snapshot

			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
