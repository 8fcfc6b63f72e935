package core

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Event types published by a session.
const (
	// EventSnapshotReplaced is published after a command commits a new snapshot.
	EventSnapshotReplaced = "snapshot.replaced"
	// EventDirectoryChanged is published after cd changes the working directory.
	EventDirectoryChanged = "cwd.changed"
)

// Event represents a system event
type Event interface {
	// Type returns the event type identifier
	Type() string
	// Timestamp returns when the event occurred
	Timestamp() time.Time
	// Data returns the event payload
	Data() interface{}
}

// EventHandler handles events
type EventHandler interface {
	// Handle processes an event
	Handle(ctx context.Context, event Event) error
}

// EventHandlerFunc is a function adapter for EventHandler
type EventHandlerFunc func(ctx context.Context, event Event) error

// Handle implements EventHandler
func (f EventHandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// SubscriptionID identifies a subscription
type SubscriptionID string

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(eventType string, handler EventHandler) SubscriptionID
	Unsubscribe(subscriptionID SubscriptionID)
	Publish(ctx context.Context, event Event) error
}

// BaseEvent provides a basic implementation of Event
type BaseEvent struct {
	EventType string
	Time      time.Time
	Payload   interface{}
}

func (e *BaseEvent) Type() string         { return e.EventType }
func (e *BaseEvent) Timestamp() time.Time { return e.Time }
func (e *BaseEvent) Data() interface{}    { return e.Payload }

// NewBaseEvent creates a new base event
func NewBaseEvent(eventType string, data interface{}) *BaseEvent {
	return &BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Payload:   data,
	}
}

type subscription struct {
	id      SubscriptionID
	handler EventHandler
}

// MemoryEventBus is an in-memory implementation of EventBus.
// Handler failures are logged and never returned to the publisher.
type MemoryEventBus struct {
	mu            sync.RWMutex
	handlers      map[string][]subscription
	subscriptions map[SubscriptionID]string
	nextID        int
	logger        Logger
}

// NewMemoryEventBus creates a new in-memory event bus
func NewMemoryEventBus(logger Logger) *MemoryEventBus {
	if logger == nil {
		logger = NopLogger{}
	}
	return &MemoryEventBus{
		handlers:      make(map[string][]subscription),
		subscriptions: make(map[SubscriptionID]string),
		nextID:        1,
		logger:        logger,
	}
}

// Subscribe registers a handler for events of the given type
func (bus *MemoryEventBus) Subscribe(eventType string, handler EventHandler) SubscriptionID {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	subID := SubscriptionID(fmt.Sprintf("sub_%d", bus.nextID))
	bus.nextID++

	bus.handlers[eventType] = append(bus.handlers[eventType], subscription{id: subID, handler: handler})
	bus.subscriptions[subID] = eventType

	bus.logger.Debug().
		Str("event_type", eventType).
		Str("subscription_id", string(subID)).
		Int("total_handlers", len(bus.handlers[eventType])).
		Msg("subscribed to event")

	return subID
}

// Unsubscribe removes a handler using its subscription ID
func (bus *MemoryEventBus) Unsubscribe(subscriptionID SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	eventType, exists := bus.subscriptions[subscriptionID]
	if !exists {
		return
	}
	delete(bus.subscriptions, subscriptionID)

	handlers := bus.handlers[eventType]
	for i, sub := range handlers {
		if sub.id == subscriptionID {
			bus.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all registered handlers synchronously, in
// subscription order.
func (bus *MemoryEventBus) Publish(ctx context.Context, event Event) error {
	bus.mu.RLock()
	subscriptions := append([]subscription{}, bus.handlers[event.Type()]...)
	bus.mu.RUnlock()

	if len(subscriptions) == 0 {
		bus.logger.Trace().
			Str("event_type", event.Type()).
			Msg("no handlers for event")
		return nil
	}

	for _, sub := range subscriptions {
		if err := sub.handler.Handle(ctx, event); err != nil {
			bus.logger.Warn().
				Str("event_type", event.Type()).
				Str("subscription_id", string(sub.id)).
				Err(err).
				Msg("event handler failed")
		}
	}

	return nil
}
