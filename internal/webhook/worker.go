package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/family_locator/internal/config"
	"github.com/sirupsen/logrus"
)

// Worker - забирает push-события из очереди и доставляет их в push-шлюз
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
	}
}

// Start запускает горутину для обработки очереди
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting push worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping push worker.")
				return
			default:
				// BRPOP - блокирующее извлечение из правой части списка (очереди)
				result, err := w.redisClient.BRPop(ctx, 0, pushQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue // Контекст отменен, но не ошибка Redis
					}
					w.logger.WithError(err).Error("Failed to pop push event from Redis")
					time.Sleep(w.cfg.WebhookTimeout) // Ждем перед повторной попыткой
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var event PushEvent
				if err := json.Unmarshal([]byte(payload), &event); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal push event from Redis")
					continue
				}

				log := w.logger.WithField("event_id", event.ID).WithField("recipient_id", event.RecipientID)
				if err := w.deliver(ctx, payload); err != nil {
					log.WithError(err).Error("Failed to deliver push event")
					continue
				}
				log.Info("Push event delivered successfully.")
			}
		}
	}()
}

// deliver отправляет событие в шлюз с экспоненциальной задержкой между попытками
func (w *Worker) deliver(ctx context.Context, rawPayload string) error {
	if w.cfg.PushGatewayURL == "" {
		w.logger.Warn("Push gateway URL is not configured. Skipping delivery.")
		return nil
	}

	maxRetries := w.cfg.WebhookMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	delay := w.cfg.WebhookBaseDelay

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2 // Экспоненциальная задержка
		}

		lastErr = w.send(ctx, rawPayload)
		if lastErr == nil {
			return nil
		}
		w.logger.WithError(lastErr).Warnf("Push delivery attempt failed. Retries left: %d", maxRetries-1-i)
	}

	return fmt.Errorf("push delivery failed after %d attempts: %w", maxRetries, lastErr)
}

func (w *Worker) send(ctx context.Context, rawPayload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.PushGatewayURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(rawPayload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send push request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway responded with status %d", resp.StatusCode)
	}
	return nil
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
