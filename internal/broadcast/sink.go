// Package broadcast implements the in-process channel that republishes newly
// created records to every attached stream subscriber.
//
// A Sink keeps a bounded window of the most recent items. Each new subscriber
// first receives that window, then every later Publish in publish order. With
// a window of one this is "replay latest": a late subscriber sees only the
// newest item, never the ones before it.
//
// Publish never blocks. Every subscriber owns an unbounded queue drained by
// its own goroutine, so a slow stream cannot stall the write path or the
// other subscribers. The goroutine exits, and the subscriber is removed, as
// soon as the subscription context is cancelled or the sink is closed.
package broadcast

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

const (
	// ReplayNone delivers only items published after subscription.
	ReplayNone = 0
	// ReplayLatest delivers the most recent item, then live items.
	ReplayLatest = 1
	// ReplayAll delivers every item since the sink was created.
	ReplayAll = -1
)

// Sink is a multicast channel with a configurable replay window. The zero
// value is not usable; construct one with New.
type Sink[T any] struct {
	mu      sync.Mutex
	replay  int
	history []T
	subs    map[*subscriber[T]]struct{}
	closed  bool
}

type subscriber[T any] struct {
	mu     sync.Mutex
	queue  []T
	notify chan struct{}
	done   chan struct{}
	once   sync.Once
}

// New creates a sink retaining the last replay items for late subscribers.
// A negative replay retains everything.
func New[T any](replay int) *Sink[T] {
	return &Sink[T]{
		replay: replay,
		subs:   make(map[*subscriber[T]]struct{}),
	}
}

// ParseReplay turns a configured replay policy into a window size. It accepts
// "latest", "none", "all" or a plain integer.
func ParseReplay(value string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "latest":
		return ReplayLatest, nil
	case "none":
		return ReplayNone, nil
	case "all":
		return ReplayAll, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid replay policy %q: %w", value, err)
	}
	if n < 0 {
		return ReplayAll, nil
	}
	return n, nil
}

// Publish records v as the newest item and hands it to every attached
// subscriber. It is a no-op once the sink is closed.
func (s *Sink[T]) Publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.remember(v)
	for sub := range s.subs {
		sub.push(v)
	}
}

// Subscribe attaches a new subscriber. The returned channel yields the
// retained window followed by live items, and is closed when ctx is done or
// the sink is closed.
func (s *Sink[T]) Subscribe(ctx context.Context) <-chan T {
	out := make(chan T)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(out)
		return out
	}

	sub := &subscriber[T]{
		queue:  append([]T(nil), s.history...),
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	go s.serve(ctx, sub, out)

	return out
}

// Subscribers returns the number of attached subscribers.
func (s *Sink[T]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close ends every subscription. Safe to call more than once.
func (s *Sink[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for sub := range s.subs {
		sub.stop()
	}
	s.subs = make(map[*subscriber[T]]struct{})
	s.history = nil
}

func (s *Sink[T]) remember(v T) {
	switch {
	case s.replay == 0:
	case s.replay < 0:
		s.history = append(s.history, v)
	case len(s.history) < s.replay:
		s.history = append(s.history, v)
	default:
		copy(s.history, s.history[1:])
		s.history[len(s.history)-1] = v
	}
}

func (s *Sink[T]) remove(sub *subscriber[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, sub)
}

func (s *Sink[T]) serve(ctx context.Context, sub *subscriber[T], out chan<- T) {
	defer close(out)
	defer s.remove(sub)

	for {
		for _, v := range sub.drain() {
			select {
			case out <- v:
			case <-ctx.Done():
				return
			case <-sub.done:
				return
			}
		}

		select {
		case <-sub.notify:
		case <-ctx.Done():
			return
		case <-sub.done:
			return
		}
	}
}

func (sub *subscriber[T]) push(v T) {
	sub.mu.Lock()
	sub.queue = append(sub.queue, v)
	sub.mu.Unlock()

	select {
	case sub.notify <- struct{}{}:
	default:
	}
}

func (sub *subscriber[T]) drain() []T {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	q := sub.queue
	sub.queue = nil
	return q
}

func (sub *subscriber[T]) stop() {
	sub.once.Do(func() { close(sub.done) })
}
