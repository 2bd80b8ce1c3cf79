package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/api-sage/account-ledger/src/internal/logger"
)

const (
	TypeAccountCreated  = "account.created"
	TypeMovementApplied = "movement.applied"
)

type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Publisher appends ledger events to a Redis stream. A nil *Publisher is a
// valid no-op so deployments without Redis work unchanged.
type Publisher struct {
	client *redis.Client
	stream string
}

func NewPublisher(client *redis.Client, stream string) *Publisher {
	return &Publisher{client: client, stream: stream}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, data any) error {
	if p == nil || p.client == nil {
		return nil
	}

	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"event": eventJSON,
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		logger.Error("event publisher xadd failed", err, logger.Fields{
			"stream": p.stream,
			"type":   eventType,
		})
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}
