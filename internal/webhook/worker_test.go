package webhook

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/family_locator/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestWorker создает воркер без Redis: в тестах проверяется только доставка
func newTestWorker(cfg *config.Config) *Worker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	if cfg.WebhookTimeout == 0 {
		cfg.WebhookTimeout = time.Second
	}
	return NewWorker(nil, logger, cfg)
}

func TestDeliver_SignsPayload(t *testing.T) {
	payload := `{"recipient_id":"u1","title":"Location change"}`
	var gotSignature, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("X-Webhook-Signature")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	worker := newTestWorker(&config.Config{
		PushGatewayURL:    server.URL,
		WebhookSecret:     "secret",
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	})

	err := worker.deliver(context.Background(), payload)

	require.NoError(t, err)
	assert.Equal(t, payload, gotBody)
	assert.Equal(t, generateHMACSHA256(payload, "secret"), gotSignature)
}

func TestDeliver_RetriesUntilSuccess(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	worker := newTestWorker(&config.Config{
		PushGatewayURL:    server.URL,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	})

	err := worker.deliver(context.Background(), `{}`)

	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDeliver_GivesUp(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	worker := newTestWorker(&config.Config{
		PushGatewayURL:    server.URL,
		WebhookMaxRetries: 2,
		WebhookBaseDelay:  time.Millisecond,
	})

	err := worker.deliver(context.Background(), `{}`)

	require.Error(t, err)
	assert.ErrorContains(t, err, "after 2 attempts")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDeliver_NoGatewayConfigured(t *testing.T) {
	worker := newTestWorker(&config.Config{})

	assert.NoError(t, worker.deliver(context.Background(), `{}`))
}

func TestDeliver_ContextCanceledBetweenAttempts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	worker := newTestWorker(&config.Config{
		PushGatewayURL:    server.URL,
		WebhookMaxRetries: 5,
		WebhookBaseDelay:  time.Hour,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := worker.deliver(ctx, `{}`)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
