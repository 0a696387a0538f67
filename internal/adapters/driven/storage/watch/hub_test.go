package watch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	var zero T
	return zero
}

func TestHub_PublishCoalesces(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Publish()
	h.Publish()
	h.Publish()

	<-ch
	select {
	case <-ch:
		t.Fatal("expected a single coalesced signal")
	default:
	}
}

func TestHub_CancelRemovesSubscriber(t *testing.T) {
	h := NewHub()
	_, cancel := h.Subscribe()
	assert.Equal(t, 1, h.Subscribers())

	cancel()
	assert.Equal(t, 0, h.Subscribers())
	h.Publish()
}

func TestStream_SnapshotsOnPublish(t *testing.T) {
	h := NewHub()
	var n atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Stream(ctx, h, func(context.Context) (int32, error) {
		return n.Load(), nil
	})
	require.NoError(t, err)

	assert.Equal(t, int32(0), receive(t, ch))

	n.Store(5)
	h.Publish()
	assert.Equal(t, int32(5), receive(t, ch))
}

func TestStream_FirstQueryError(t *testing.T) {
	h := NewHub()
	boom := errors.New("boom")

	_, err := Stream(context.Background(), h, func(context.Context) (int, error) {
		return 0, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, h.Subscribers())
}

func TestStream_ClosesOnCancel(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := Stream(ctx, h, func(context.Context) (string, error) { return "x", nil })
	require.NoError(t, err)
	receive(t, ch)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not close")
	}
	assert.Eventually(t, func() bool { return h.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestStreamEvery_PollsForExternalChanges(t *testing.T) {
	h := NewHub()
	var n atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := StreamEvery(ctx, h, 10*time.Millisecond, func(context.Context) (int32, error) {
		return n.Load(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(0), receive(t, ch))

	// No Publish: the change is only visible by polling.
	n.Store(3)
	assert.Equal(t, int32(3), receive(t, ch))
}

func TestStreamEvery_SkipsUnchangedPolls(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := StreamEvery(ctx, h, 5*time.Millisecond, func(context.Context) (string, error) {
		return "same", nil
	})
	require.NoError(t, err)
	receive(t, ch)

	select {
	case v := <-ch:
		t.Fatalf("unexpected snapshot %q", v)
	case <-time.After(50 * time.Millisecond):
	}
}
