// Package domain defines the events the engine publishes after transitions.
// Front ends subscribe instead of polling the engine.
package domain

import (
	"time"
)

// Event is the base interface for everything published on the event bus.
type Event interface {
	// Type returns the event type identifier.
	Type() EventType

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

const (
	// EventStateChanged is published after every completed transition.
	EventStateChanged EventType = "player.state_changed"

	// EventPlaybackError is published when a transition degrades because
	// of a device or lister failure.
	EventPlaybackError EventType = "player.error"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

type baseEvent struct {
	timestamp time.Time
}

func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// StateChangedEvent carries the snapshot produced by a transition.
type StateChangedEvent struct {
	baseEvent
	State PlayerState
}

// Type returns the event type.
func (e StateChangedEvent) Type() EventType {
	return EventStateChanged
}

// NewStateChangedEvent creates a new StateChangedEvent.
func NewStateChangedEvent(state PlayerState) StateChangedEvent {
	return StateChangedEvent{
		baseEvent: newBaseEvent(),
		State:     state,
	}
}

// PlaybackErrorEvent reports a degraded transition.
type PlaybackErrorEvent struct {
	baseEvent
	Op   string
	Path string
	Err  error
}

// Type returns the event type.
func (e PlaybackErrorEvent) Type() EventType {
	return EventPlaybackError
}

// NewPlaybackErrorEvent creates a new PlaybackErrorEvent.
func NewPlaybackErrorEvent(op, path string, err error) PlaybackErrorEvent {
	return PlaybackErrorEvent{
		baseEvent: newBaseEvent(),
		Op:        op,
		Path:      path,
		Err:       err,
	}
}
