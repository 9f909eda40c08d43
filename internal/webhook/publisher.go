package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	pushQueueKey = "push_events"
)

type PushKind string

const (
	PushLocationChange PushKind = "location_change"
	PushProlongedStay  PushKind = "prolonged_stay_exit"
)

// PushEvent - уведомление, которое нужно показать на устройстве получателя
type PushEvent struct {
	ID          uuid.UUID         `json:"id"`
	RecipientID string            `json:"recipient_id"`
	Kind        PushKind          `json:"kind"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Publisher - интерфейс для публикации push-уведомлений
type Publisher interface {
	Publish(ctx context.Context, event PushEvent) error
}

// RedisPublisher - реализация Publisher, использующая очередь в Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, event PushEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal push event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, pushQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish push event to Redis: %w", err)
	}
	return nil
}
