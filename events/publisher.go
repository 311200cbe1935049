package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bookstore/models"

	"github.com/redis/go-redis/v9"
)

const PurchaseCompleted = "purchase.completed"

const defaultMaxLen = 10000

// RedisPublisher appends committed purchases to a Redis stream so that other
// processes (notifications, reporting) can follow the ledger.
type RedisPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewRedisPublisher(client *redis.Client, stream string) (*RedisPublisher, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	stream = strings.TrimSpace(stream)
	if stream == "" {
		return nil, errors.New("events stream required")
	}
	return &RedisPublisher{
		client: client,
		stream: stream,
		maxLen: defaultMaxLen,
	}, nil
}

func (p *RedisPublisher) PublishPurchase(ctx context.Context, purchase models.Purchase) error {
	payload, err := json.Marshal(purchase)
	if err != nil {
		return fmt.Errorf("encode purchase: %w", err)
	}
	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Values: map[string]interface{}{
			"type":        PurchaseCompleted,
			"purchase_id": purchase.ID,
			"payload":     string(payload),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}
