package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
	return Event{}
}

func TestMemoryBus_FanOut(t *testing.T) {
	bus := NewMemoryBus(4)
	defer bus.Close()

	a, unsubA := bus.Subscribe()
	b, unsubB := bus.Subscribe()
	defer unsubA()
	defer unsubB()

	require.NoError(t, bus.Publish(context.Background(), New(SignedOut, "u1", "s1")))

	for _, ch := range []<-chan Event{a, b} {
		ev := recv(t, ch)
		assert.Equal(t, SignedOut, ev.Type)
		assert.Equal(t, "u1", ev.UserID)
		assert.Equal(t, "s1", ev.SessionID)
	}
}

func TestMemoryBus_UnsubscribeClosesAndIsIdempotent(t *testing.T) {
	bus := NewMemoryBus(1)
	ch, unsub := bus.Subscribe()
	assert.Equal(t, 1, bus.Subscribers())

	unsub()
	unsub()
	assert.Equal(t, 0, bus.Subscribers())

	_, ok := <-ch
	assert.False(t, ok)

	// публикация без подписчиков не падает
	assert.NoError(t, bus.Publish(context.Background(), New(SignedIn, "u1", "s1")))
}

func TestMemoryBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewMemoryBus(1)
	defer bus.Close()

	ch, unsub := bus.Subscribe()
	defer unsub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			_ = bus.Publish(context.Background(), New(SignedIn, "u1", "s1"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	assert.Len(t, ch, 1)
}

func TestMemoryBus_Close(t *testing.T) {
	bus := NewMemoryBus(1)
	ch, unsub := bus.Subscribe()

	require.NoError(t, bus.Close())
	_, ok := <-ch
	assert.False(t, ok)
	unsub()

	assert.ErrorIs(t, bus.Publish(context.Background(), New(SignedOut, "u1", "")), ErrBusClosed)

	late, _ := bus.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}
