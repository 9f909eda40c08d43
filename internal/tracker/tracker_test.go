package tracker

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/family_locator/internal/device"
	"github.com/shenikar/family_locator/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePublisher возвращает ошибки из очереди failures, затем успех
type fakePublisher struct {
	mu       sync.Mutex
	failures []error
	calls    []models.LocationRecord
	saved    []models.LocationRecord
}

func (f *fakePublisher) SaveLocation(_ context.Context, record *models.LocationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, *record)
	if len(f.failures) > 0 {
		err := f.failures[0]
		f.failures = f.failures[1:]
		return err
	}
	f.saved = append(f.saved, *record)
	return nil
}

func (f *fakePublisher) snapshot() (calls, saved []models.LocationRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.LocationRecord(nil), f.calls...), append([]models.LocationRecord(nil), f.saved...)
}

func newTestTracker(provider Provider, publisher Publisher, onUpdate func(models.Position)) *Tracker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	return New(provider, publisher, logger, Options{
		UserID:   "u1",
		Email:    "u1@example.com",
		Retry:    RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond},
		OnUpdate: onUpdate,
	})
}

func TestStart_PermissionDenied(t *testing.T) {
	provider := device.NewProvider(false, nil)
	publisher := &fakePublisher{}
	tr := newTestTracker(provider, publisher, nil)

	err := tr.Start(context.Background())

	require.ErrorIs(t, err, models.ErrPermissionDenied)
	assert.Equal(t, 0, provider.Watchers())
	calls, _ := publisher.snapshot()
	assert.Empty(t, calls)
}

func TestStart_PublishesInitialFixAndUpdates(t *testing.T) {
	initial := models.Position{Latitude: 41, Longitude: 29, TimestampMillis: 1000}
	provider := device.NewProvider(true, &initial)
	publisher := &fakePublisher{}

	var mu sync.Mutex
	var seen []models.Position
	tr := newTestTracker(provider, publisher, func(p models.Position) {
		mu.Lock()
		seen = append(seen, p)
		mu.Unlock()
	})

	require.NoError(t, tr.Start(context.Background()))
	next := models.Position{Latitude: 41.0001, Longitude: 29, TimestampMillis: 2000}
	require.NoError(t, provider.Report(next))
	tr.Stop()

	current, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, next, current)

	mu.Lock()
	assert.Equal(t, []models.Position{initial, next}, seen)
	mu.Unlock()

	_, saved := publisher.snapshot()
	require.NotEmpty(t, saved)
	last := saved[len(saved)-1]
	assert.Equal(t, "u1", last.UserID)
	assert.Equal(t, "u1@example.com", last.Email)
	assert.Equal(t, 0, provider.Watchers())
}

func TestStart_NoInitialFix(t *testing.T) {
	provider := device.NewProvider(true, nil)
	publisher := &fakePublisher{}
	tr := newTestTracker(provider, publisher, nil)

	require.NoError(t, tr.Start(context.Background()))
	_, ok := tr.Current()
	assert.False(t, ok)
	assert.Equal(t, 1, provider.Watchers())
	tr.Stop()
}

func TestPublish_RetriesTransientFailures(t *testing.T) {
	provider := device.NewProvider(true, nil)
	publisher := &fakePublisher{failures: []error{errors.New("network"), errors.New("network")}}
	tr := newTestTracker(provider, publisher, nil)

	require.NoError(t, tr.Start(context.Background()))
	require.NoError(t, provider.Report(models.Position{Latitude: 1, Longitude: 2, TimestampMillis: 1}))
	require.Eventually(t, func() bool {
		_, saved := publisher.snapshot()
		return len(saved) == 1
	}, time.Second, 5*time.Millisecond)
	tr.Stop()

	calls, saved := publisher.snapshot()
	assert.Len(t, calls, 3)
	assert.Len(t, saved, 1)
}

func TestPublish_GivesUpAfterMaxRetries(t *testing.T) {
	publisher := &fakePublisher{failures: []error{errors.New("a"), errors.New("b"), errors.New("c"), errors.New("d")}}
	tr := newTestTracker(device.NewProvider(true, nil), publisher, nil)
	tr.seq = 1

	err := tr.publish(context.Background(), 1, &models.LocationRecord{UserID: "u1"})

	require.Error(t, err)
	assert.ErrorContains(t, err, "after 3 attempts")
	calls, _ := publisher.snapshot()
	assert.Len(t, calls, 3)
}

func TestPublish_SupersededByNewerPosition(t *testing.T) {
	publisher := &fakePublisher{failures: []error{errors.New("network")}}
	tr := newTestTracker(device.NewProvider(true, nil), publisher, nil)
	tr.seq = 2 // уже есть более новая позиция

	err := tr.publish(context.Background(), 1, &models.LocationRecord{UserID: "u1"})

	require.NoError(t, err)
	calls, _ := publisher.snapshot()
	assert.Empty(t, calls)
}

func TestOnPositionUpdate_LatestArrivalWinsAndIgnoresStopped(t *testing.T) {
	provider := device.NewProvider(true, nil)
	publisher := &fakePublisher{}
	tr := newTestTracker(provider, publisher, nil)

	// До старта обновления игнорируются
	tr.OnPositionUpdate(models.Position{TimestampMillis: 1})
	_, ok := tr.Current()
	assert.False(t, ok)

	require.NoError(t, tr.Start(context.Background()))
	tr.OnPositionUpdate(models.Position{Latitude: 10, TimestampMillis: 500})
	latest := models.Position{Latitude: 20, TimestampMillis: 100}
	tr.OnPositionUpdate(latest)

	current, _ := tr.Current()
	assert.Equal(t, latest, current)

	tr.Stop()
	tr.OnPositionUpdate(models.Position{Latitude: 30, TimestampMillis: 900})
	current, _ = tr.Current()
	assert.Equal(t, latest, current)

	// Вытесненная позиция не записывается после более новой
	_, saved := publisher.snapshot()
	require.NotEmpty(t, saved)
	assert.Equal(t, latest, *saved[len(saved)-1].Position)
}
