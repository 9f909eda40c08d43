package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/family_locator/internal/models"
	"github.com/sirupsen/logrus"
)

// Provider - источник геопозиции устройства
type Provider interface {
	RequestPermission(ctx context.Context) (bool, error)
	Current(ctx context.Context) (models.Position, error)
	Watch(onUpdate func(models.Position)) (func(), error)
}

// Publisher сохраняет позицию пользователя во внешнем хранилище
type Publisher interface {
	SaveLocation(ctx context.Context, record *models.LocationRecord) error
}

// RetryPolicy - ограниченный повтор публикации с экспоненциальной задержкой
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

type Options struct {
	UserID string
	Email  string
	Retry  RetryPolicy
	// OnUpdate вызывается для каждой новой позиции до публикации
	OnUpdate func(models.Position)
	Now      func() time.Time
}

// Tracker хранит текущую позицию пользователя и публикует каждое ее изменение
type Tracker struct {
	userID   string
	email    string
	retry    RetryPolicy
	onUpdate func(models.Position)
	now      func() time.Time

	provider  Provider
	publisher Publisher
	logger    *logrus.Logger

	// pubMu упорядочивает сохранения: вытесненная позиция не пишется поверх новой
	pubMu sync.Mutex

	mu          sync.Mutex
	current     *models.Position
	seq         uint64
	cancelWatch func()

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(provider Provider, publisher Publisher, logger *logrus.Logger, opts Options) *Tracker {
	if opts.Retry.MaxRetries < 1 {
		opts.Retry.MaxRetries = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Tracker{
		userID:    opts.UserID,
		email:     opts.Email,
		retry:     opts.Retry,
		onUpdate:  opts.OnUpdate,
		now:       opts.Now,
		provider:  provider,
		publisher: publisher,
		logger:    logger,
	}
}

// Start проверяет разрешение, обрабатывает текущий фикс и подписывается на обновления
func (t *Tracker) Start(ctx context.Context) error {
	log := t.logger.WithFields(logrus.Fields{
		"component": "tracker",
		"user_id":   t.userID,
	})

	granted, err := t.provider.RequestPermission(ctx)
	if err != nil {
		return fmt.Errorf("tracker: permission request failed: %w", err)
	}
	if !granted {
		log.Warn("Location permission denied, tracking not started")
		return models.ErrPermissionDenied
	}

	t.mu.Lock()
	t.ctx, t.cancel = context.WithCancel(context.Background())
	t.mu.Unlock()

	if fix, err := t.provider.Current(ctx); err == nil {
		t.OnPositionUpdate(fix)
	} else if !errors.Is(err, models.ErrNoFix) {
		log.WithError(err).Warn("Failed to get initial position")
	}

	cancelWatch, err := t.provider.Watch(t.OnPositionUpdate)
	if err != nil {
		t.Stop()
		return fmt.Errorf("tracker: watch failed: %w", err)
	}

	t.mu.Lock()
	t.cancelWatch = cancelWatch
	t.mu.Unlock()

	log.Info("Location tracking started")
	return nil
}

// OnPositionUpdate - обработчик нового фикса от провайдера. Каждый фикс заменяет текущий.
func (t *Tracker) OnPositionUpdate(p models.Position) {
	t.mu.Lock()
	if t.ctx == nil || t.ctx.Err() != nil {
		t.mu.Unlock()
		return
	}
	t.current = &p
	t.seq++
	seq := t.seq
	ctx := t.ctx
	t.wg.Add(1)
	t.mu.Unlock()

	if t.onUpdate != nil {
		t.onUpdate(p)
	}

	record := &models.LocationRecord{
		UserID:      t.userID,
		Email:       t.email,
		Position:    &p,
		LastUpdated: t.now(),
	}
	go func() {
		defer t.wg.Done()
		if err := t.publish(ctx, seq, record); err != nil {
			t.logger.WithFields(logrus.Fields{
				"component": "tracker",
				"user_id":   t.userID,
			}).WithError(err).Warn("Failed to publish position")
		}
	}()
}

// publish сохраняет позицию с повторами. Более новая позиция вытесняет старую.
func (t *Tracker) publish(ctx context.Context, seq uint64, record *models.LocationRecord) error {
	delay := t.retry.BaseDelay
	var lastErr error

	for i := 0; i < t.retry.MaxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
		t.pubMu.Lock()
		if t.superseded(seq) {
			t.pubMu.Unlock()
			return nil
		}
		lastErr = t.publisher.SaveLocation(ctx, record)
		t.pubMu.Unlock()
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("publish failed after %d attempts: %w", t.retry.MaxRetries, lastErr)
}

func (t *Tracker) superseded(seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return seq != t.seq
}

// Current возвращает текущую позицию
func (t *Tracker) Current() (models.Position, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return models.Position{}, false
	}
	return *t.current, true
}

// Stop снимает подписку на провайдер и дожидается публикаций
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancelWatch := t.cancelWatch
	t.cancelWatch = nil
	// отмена под мьютексом: после нее OnPositionUpdate не запускает новых публикаций
	if t.cancel != nil {
		t.cancel()
	}
	t.mu.Unlock()

	if cancelWatch != nil {
		cancelWatch()
	}
	t.wg.Wait()
}
