package service

import (
	"context"
	"log"
	"sync"
	"time"

	"food-storefront/storefront/internal/domain"

	"github.com/google/uuid"
)

type EventHandler func(ctx context.Context, event domain.Event)

// Bus delivers typed events to in-process subscribers and forwards shared
// events to an external publisher when one is configured.
type Bus struct {
	source  string
	forward Publisher

	mu       sync.RWMutex
	handlers map[domain.EventType][]EventHandler
}

func NewBus(source string, forward Publisher) *Bus {
	return &Bus{
		source:   source,
		forward:  forward,
		handlers: make(map[domain.EventType][]EventHandler),
	}
}

func (b *Bus) Source() string {
	return b.source
}

func (b *Bus) Subscribe(eventType domain.EventType, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

func (b *Bus) Publish(ctx context.Context, event domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Source == "" {
		event.Source = b.source
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	b.Dispatch(ctx, event)

	if b.forward != nil && event.Type.Shared() {
		if err := b.forward.Publish(ctx, event); err != nil {
			log.Printf("ERROR: forward %s event %s: %v", event.Type, event.ID, err)
			return err
		}
	}
	return nil
}

// Dispatch runs local handlers only.
func (b *Bus) Dispatch(ctx context.Context, event domain.Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, event)
	}
}
