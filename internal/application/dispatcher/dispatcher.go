package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zenithhr/procurement-workflow/internal/domain/event"
)

// Handler processes domain events
type Handler func(ctx context.Context, evt *event.Event) error

// Dispatcher routes domain events to registered handlers
type Dispatcher interface {
	// Subscribe registers a named handler for an event type
	Subscribe(eventType event.Type, name string, handler Handler)

	// Unsubscribe removes a handler by name
	Unsubscribe(eventType event.Type, name string)

	// Dispatch sends the event to all handlers synchronously, in
	// registration order, returning the first error encountered
	Dispatch(ctx context.Context, evt *event.Event) error

	// DispatchAsync sends the event to handlers without waiting for them
	DispatchAsync(ctx context.Context, evt *event.Event)

	// Close shuts down the dispatcher and waits for async handlers
	Close() error
}

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type subscription struct {
	name    string
	handler Handler
}

type eventDispatcher struct {
	mu       sync.RWMutex
	handlers map[event.Type][]subscription
	logger   Logger

	wg     sync.WaitGroup
	closed atomic.Bool
}

// Option configures the dispatcher
type Option func(*eventDispatcher)

// WithLogger sets a logger for the dispatcher
func WithLogger(logger Logger) Option {
	return func(d *eventDispatcher) {
		d.logger = logger
	}
}

// New creates a new event dispatcher
func New(opts ...Option) Dispatcher {
	d := &eventDispatcher{
		handlers: make(map[event.Type][]subscription),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Subscribe registers a named handler for an event type
func (d *eventDispatcher) Subscribe(eventType event.Type, name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[eventType] = append(d.handlers[eventType], subscription{name: name, handler: handler})

	if d.logger != nil {
		d.logger.Info("Handler registered", "event_type", eventType, "handler_name", name)
	}
}

// Unsubscribe removes a handler by name
func (d *eventDispatcher) Unsubscribe(eventType event.Type, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	subs := d.handlers[eventType]
	filtered := make([]subscription, 0, len(subs))
	for _, s := range subs {
		if s.name != name {
			filtered = append(filtered, s)
		}
	}
	d.handlers[eventType] = filtered
}

// Dispatch sends the event to all registered handlers synchronously
func (d *eventDispatcher) Dispatch(ctx context.Context, evt *event.Event) error {
	if d.closed.Load() {
		return fmt.Errorf("dispatcher is closed")
	}

	d.mu.RLock()
	subs := d.handlers[evt.Type]
	d.mu.RUnlock()

	for _, s := range subs {
		if err := d.safeExecute(ctx, evt, s); err != nil {
			if d.logger != nil {
				d.logger.Error("Handler error",
					"event_type", evt.Type,
					"event_id", evt.ID,
					"handler_name", s.name,
					"error", err,
				)
			}
			return fmt.Errorf("handler %s failed: %w", s.name, err)
		}
	}

	return nil
}

// DispatchAsync sends the event to handlers without waiting for them
func (d *eventDispatcher) DispatchAsync(ctx context.Context, evt *event.Event) {
	if d.closed.Load() {
		if d.logger != nil {
			d.logger.Error("Cannot dispatch async event, dispatcher is closed",
				"event_type", evt.Type, "event_id", evt.ID)
		}
		return
	}

	d.mu.RLock()
	subs := d.handlers[evt.Type]
	d.mu.RUnlock()

	for _, s := range subs {
		d.wg.Add(1)
		go func(s subscription) {
			defer d.wg.Done()

			if err := d.safeExecute(ctx, evt, s); err != nil && d.logger != nil {
				d.logger.Error("Async handler error",
					"event_type", evt.Type,
					"event_id", evt.ID,
					"handler_name", s.name,
					"error", err,
				)
			}
		}(s)
	}
}

// Close shuts down the dispatcher and waits for async handlers to complete
func (d *eventDispatcher) Close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return fmt.Errorf("dispatcher already closed")
	}

	d.wg.Wait()
	return nil
}

// safeExecute runs a handler with panic recovery
func (d *eventDispatcher) safeExecute(ctx context.Context, evt *event.Event, s subscription) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	return s.handler(ctx, evt)
}
