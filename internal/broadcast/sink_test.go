package broadcast

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()

	select {
	case v, ok := <-ch:
		require.True(t, ok, "stream closed unexpectedly")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for item")
	}

	var zero T
	return zero
}

func assertQuiet[T any](t *testing.T, ch <-chan T) {
	t.Helper()

	select {
	case v, ok := <-ch:
		if ok {
			t.Fatalf("unexpected item %v", v)
		}
		t.Fatal("stream closed unexpectedly")
	case <-time.After(50 * time.Millisecond):
	}
}

func assertClosed[T any](t *testing.T, ch <-chan T) {
	t.Helper()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "expected closed stream")
	case <-time.After(time.Second):
		t.Fatal("stream was not closed")
	}
}

// TestReplayLatest covers publish(A), publish(B), subscribe: B first, then
// only later publishes.
func TestReplayLatest(t *testing.T) {
	sink := New[string](ReplayLatest)
	defer sink.Close()

	sink.Publish("A")
	sink.Publish("B")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := sink.Subscribe(ctx)
	assert.Equal(t, "B", receive(t, stream))
	assertQuiet(t, stream)

	sink.Publish("C")
	assert.Equal(t, "C", receive(t, stream))
	assertQuiet(t, stream)
}

func TestSubscribeBeforeAnyPublish(t *testing.T) {
	sink := New[int](ReplayLatest)
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := sink.Subscribe(ctx)
	assertQuiet(t, stream)

	sink.Publish(1)
	assert.Equal(t, 1, receive(t, stream))
}

func TestReplayWindows(t *testing.T) {
	tests := []struct {
		name   string
		replay int
		want   []int
	}{
		{name: "none", replay: ReplayNone, want: nil},
		{name: "latest", replay: ReplayLatest, want: []int{3}},
		{name: "window of two", replay: 2, want: []int{2, 3}},
		{name: "all", replay: ReplayAll, want: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := New[int](tt.replay)
			defer sink.Close()

			for i := 1; i <= 3; i++ {
				sink.Publish(i)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			stream := sink.Subscribe(ctx)

			var got []int
			for range tt.want {
				got = append(got, receive(t, stream))
			}
			assertQuiet(t, stream)
			assert.Equal(t, tt.want, got)

			sink.Publish(4)
			assert.Equal(t, 4, receive(t, stream))
		})
	}
}

func TestEverySubscriberGetsEveryItemInOrder(t *testing.T) {
	sink := New[int](ReplayNone)
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := sink.Subscribe(ctx)
	second := sink.Subscribe(ctx)

	const n = 100
	for i := 0; i < n; i++ {
		sink.Publish(i)
	}

	for i := 0; i < n; i++ {
		assert.Equal(t, i, receive(t, first))
		assert.Equal(t, i, receive(t, second))
	}
}

func TestPublishDoesNotWaitForReaders(t *testing.T) {
	sink := New[int](ReplayLatest)
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := sink.Subscribe(ctx)

	const n = 10000
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			sink.Publish(i)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on an idle subscriber")
	}

	for i := 0; i < n; i++ {
		require.Equal(t, i, receive(t, stream))
	}
}

func TestCancelReleasesSubscriber(t *testing.T) {
	sink := New[int](ReplayLatest)
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	stream := sink.Subscribe(ctx)
	require.Equal(t, 1, sink.Subscribers())

	cancel()
	assertClosed(t, stream)

	assert.Eventually(t, func() bool { return sink.Subscribers() == 0 }, time.Second, 5*time.Millisecond)

	// publishing afterwards must not resurrect anything
	sink.Publish(1)
	assert.Equal(t, 0, sink.Subscribers())
}

func TestCloseEndsStreams(t *testing.T) {
	sink := New[int](ReplayLatest)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink.Publish(1)
	first := sink.Subscribe(ctx)
	second := sink.Subscribe(ctx)
	assert.Equal(t, 1, receive(t, first))
	assert.Equal(t, 1, receive(t, second))

	sink.Close()
	sink.Close()

	assertClosed(t, first)
	assertClosed(t, second)
	assert.Equal(t, 0, sink.Subscribers())

	sink.Publish(2)
	assertClosed(t, sink.Subscribe(ctx))
}

// TestConcurrentSubscribeSeesConsecutiveItems checks that no subscriber
// misses or duplicates an item while publishing races with subscribing: each
// stream must be a run of consecutive integers ending at the last publish.
func TestConcurrentSubscribeSeesConsecutiveItems(t *testing.T) {
	sink := New[int](ReplayLatest)
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const (
		items       = 500
		subscribers = 20
	)

	results := make([][]int, subscribers)
	var wg sync.WaitGroup
	for i := 0; i < subscribers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stream := sink.Subscribe(ctx)
			for v := range stream {
				results[i] = append(results[i], v)
				if v == items {
					return
				}
			}
		}(i)
	}

	for v := 1; v <= items; v++ {
		sink.Publish(v)
	}

	waited := make(chan struct{})
	go func() {
		wg.Wait()
		close(waited)
	}()

	select {
	case <-waited:
	case <-time.After(5 * time.Second):
		t.Fatal("subscribers did not receive the final item")
	}

	for i, got := range results {
		require.NotEmpty(t, got, "subscriber %d", i)
		for j := 1; j < len(got); j++ {
			require.Equal(t, got[j-1]+1, got[j], "subscriber %d gap or duplicate at %d", i, j)
		}
		assert.Equal(t, items, got[len(got)-1])
	}
}

func TestParseReplay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "", want: ReplayLatest},
		{in: "latest", want: ReplayLatest},
		{in: "LATEST", want: ReplayLatest},
		{in: "none", want: ReplayNone},
		{in: "all", want: ReplayAll},
		{in: "5", want: 5},
		{in: "-3", want: ReplayAll},
		{in: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReplay(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
