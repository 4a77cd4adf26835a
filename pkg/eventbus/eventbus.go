package eventbus

import (
	"context"
	"sync"

	"github.com/konvierte/konvierte/pkg/domain"
)

// EventBus defines the contract for publishing and subscribing to domain events.
type EventBus interface {
	Publish(ctx context.Context, event domain.Event) error
	Subscribe(eventType string, handler func(context.Context, domain.Event))
}

// SimpleEventBus dispatches events synchronously to subscribed handlers.
// Handlers run on the publisher's goroutine, which keeps one logical action
// (fetch applied, rate removed) running to completion before the next.
type SimpleEventBus struct {
	handlers map[string][]func(context.Context, domain.Event)
	mu       sync.RWMutex
}

func NewSimpleEventBus() *SimpleEventBus {
	return &SimpleEventBus{handlers: make(map[string][]func(context.Context, domain.Event))}
}

func (b *SimpleEventBus) Publish(ctx context.Context, event domain.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, handler := range b.handlers[event.Type()] {
		handler(ctx, event)
	}
	return nil
}

func (b *SimpleEventBus) Subscribe(eventType string, handler func(context.Context, domain.Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
