package service

import (
	"context"
	"encoding/json"
	"log"

	"food-storefront/storefront/internal/domain"

	"github.com/segmentio/kafka-go"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Consumer replays shared events written by other storefront instances onto the local bus.
type Consumer struct {
	Reader MessageReader
	Bus    *Bus
}

func NewConsumer(reader MessageReader, bus *Bus) *Consumer {
	return &Consumer{
		Reader: reader,
		Bus:    bus,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting storefront event consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Storefront event consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.ProcessEvent(ctx, event)
	}
}

// ProcessEvent reports whether the event was dispatched.
func (c *Consumer) ProcessEvent(ctx context.Context, event domain.Event) bool {
	if event.Source == c.Bus.Source() || !event.Type.Shared() {
		return false
	}
	log.Printf("Processing %s event %s from %s", event.Type, event.ID, event.Source)
	c.Bus.Dispatch(ctx, event)
	return true
}
