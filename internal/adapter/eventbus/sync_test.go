package eventbus

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavedeck/wavedeck/internal/domain"
	"github.com/wavedeck/wavedeck/internal/logger"
)

func TestSyncEventBus_PublishSubscribe(t *testing.T) {
	bus := NewSyncEventBus()

	var received domain.StateChangedEvent
	bus.Subscribe(domain.EventStateChanged, func(e domain.Event) {
		received = e.(domain.StateChangedEvent)
	})

	state := domain.PlayerState{Status: "Stopped", CurrentIndex: 2}
	bus.Publish(domain.NewStateChangedEvent(state))

	assert.Equal(t, "Stopped", received.State.Status)
	assert.Equal(t, 2, received.State.CurrentIndex)
}

func TestSyncEventBus_TypeFiltering(t *testing.T) {
	bus := NewSyncEventBus()

	stateCount := 0
	errorCount := 0
	bus.Subscribe(domain.EventStateChanged, func(e domain.Event) { stateCount++ })
	bus.Subscribe(domain.EventPlaybackError, func(e domain.Event) { errorCount++ })

	bus.Publish(domain.NewStateChangedEvent(domain.PlayerState{}))
	bus.Publish(domain.NewStateChangedEvent(domain.PlayerState{}))
	bus.Publish(domain.NewPlaybackErrorEvent("open", "/a.wav", domain.ErrUnsupportedFormat))

	assert.Equal(t, 2, stateCount)
	assert.Equal(t, 1, errorCount)
}

func TestSyncEventBus_SubscribeAll(t *testing.T) {
	bus := NewSyncEventBus()

	all := 0
	bus.SubscribeAll(func(e domain.Event) { all++ })

	bus.Publish(domain.NewStateChangedEvent(domain.PlayerState{}))
	bus.Publish(domain.NewPlaybackErrorEvent("open", "", domain.ErrNoClipOpen))

	assert.Equal(t, 2, all)
}

func TestSyncEventBus_Unsubscribe(t *testing.T) {
	bus := NewSyncEventBus()

	count := 0
	id := bus.Subscribe(domain.EventStateChanged, func(e domain.Event) { count++ })

	bus.Publish(domain.NewStateChangedEvent(domain.PlayerState{}))
	bus.Unsubscribe(id)
	bus.Publish(domain.NewStateChangedEvent(domain.PlayerState{}))

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, bus.SubscriberCount())
}

func TestSyncEventBus_UnsubscribeUnknownID(t *testing.T) {
	bus := NewSyncEventBus()

	// Must not panic.
	bus.Unsubscribe("sub-999")
}

func TestSyncEventBus_HandlerPanicRecovered(t *testing.T) {
	bus := NewSyncEventBus()
	bus.SetLogger(logger.NewTestLogger())

	afterPanic := false
	bus.Subscribe(domain.EventStateChanged, func(e domain.Event) {
		panic("handler blew up")
	})
	bus.Subscribe(domain.EventStateChanged, func(e domain.Event) {
		afterPanic = true
	})

	require.NotPanics(t, func() {
		bus.Publish(domain.NewStateChangedEvent(domain.PlayerState{}))
	})

	// The second handler still runs.
	assert.True(t, afterPanic)
}

func TestSyncEventBus_Close(t *testing.T) {
	bus := NewSyncEventBus()

	count := 0
	bus.Subscribe(domain.EventStateChanged, func(e domain.Event) { count++ })

	require.NoError(t, bus.Close())
	assert.Error(t, bus.Close())

	// Publishing after close is a silent no-op.
	bus.Publish(domain.NewStateChangedEvent(domain.PlayerState{}))
	assert.Equal(t, 0, count)

	assert.Panics(t, func() {
		bus.Subscribe(domain.EventStateChanged, func(e domain.Event) {})
	})
}

func TestSyncEventBus_ConcurrentPublish(t *testing.T) {
	bus := NewSyncEventBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe(domain.EventStateChanged, func(e domain.Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(domain.NewStateChangedEvent(domain.PlayerState{}))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, count)
}

func TestSyncEventBus_NilEvent(t *testing.T) {
	bus := NewSyncEventBus()
	require.NotPanics(t, func() { bus.Publish(nil) })
}
