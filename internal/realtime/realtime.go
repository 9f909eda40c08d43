package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Subscription - подписка на изменения документа. В канале всегда только последнее значение.
type Subscription[T any] interface {
	Updates() <-chan T
	Close() error
}

// LocationChannel возвращает имя канала для позиции пользователя
func LocationChannel(uid string) string {
	return fmt.Sprintf("locations:%s", uid)
}

// ProfileChannel возвращает имя канала для профиля пользователя
func ProfileChannel(uid string) string {
	return fmt.Sprintf("profiles:%s", uid)
}

// Hub публикует изменения документов в Redis pub/sub
type Hub struct {
	redisClient *redis.Client
}

func NewHub(client *redis.Client) *Hub {
	return &Hub{redisClient: client}
}

// Publish сериализует значение в JSON и публикует его в канал
func (h *Hub) Publish(ctx context.Context, channel string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime payload: %w", err)
	}
	if err := h.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to channel %s: %w", channel, err)
	}
	return nil
}

// Watch подписывается на канал. Методы в Go не могут быть обобщенными, поэтому это функция.
func Watch[T any](ctx context.Context, h *Hub, channel string) (Subscription[T], error) {
	ps := h.redisClient.Subscribe(ctx, channel)
	// Дожидаемся подтверждения подписки, иначе первые сообщения могут потеряться
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	sub := &redisSubscription[T]{
		ps:   ps,
		out:  make(chan T, 1),
		done: make(chan struct{}),
	}
	go sub.run()
	return sub, nil
}

type redisSubscription[T any] struct {
	ps        *redis.PubSub
	out       chan T
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func (s *redisSubscription[T]) Updates() <-chan T {
	return s.out
}

func (s *redisSubscription[T]) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.ps.Close()
		<-s.done
	})
	return s.closeErr
}

func (s *redisSubscription[T]) run() {
	defer close(s.done)
	defer close(s.out)

	for msg := range s.ps.Channel() {
		var value T
		if err := json.Unmarshal([]byte(msg.Payload), &value); err != nil {
			continue
		}
		Offer(s.out, value)
	}
}

// Offer кладет значение в канал с буфером 1, вытесняя непрочитанное старое значение.
// Должен вызываться единственным писателем канала.
func Offer[T any](ch chan T, value T) {
	select {
	case ch <- value:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- value
}
