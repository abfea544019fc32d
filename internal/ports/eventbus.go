package ports

import (
	"github.com/wavedeck/wavedeck/internal/domain"
)

// EventBus decouples the engine (publisher) from the front ends
// (subscribers). Implementations must be thread-safe; handlers are
// invoked synchronously and should return quickly.
type EventBus interface {
	// Publish delivers an event to every subscriber of its type.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the given type and
	// returns an ID for later unsubscription.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// SubscribeAll registers a handler that receives every event,
	// regardless of type. Useful for logging and debugging.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a subscription. Unknown IDs are a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// Close shuts the bus down and drops all subscriptions.
	Close() error
}
