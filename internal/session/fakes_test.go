package session

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shenikar/family_locator/internal/config"
	"github.com/shenikar/family_locator/internal/models"
	"github.com/shenikar/family_locator/internal/realtime"
	"github.com/shenikar/family_locator/internal/webhook"
	"github.com/sirupsen/logrus"
)

type fakeSub[T any] struct {
	ch     chan T
	closed bool
}

func (f *fakeSub[T]) Updates() <-chan T {
	return f.ch
}

// feed хранит подписки по ключу и рассылает значения так же, как realtime.Watch
type feed[T any] struct {
	mu   sync.Mutex
	subs map[string][]*fakeSub[T]
}

func newFeed[T any]() *feed[T] {
	return &feed[T]{subs: make(map[string][]*fakeSub[T])}
}

func (f *feed[T]) watch(key string) realtime.Subscription[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub := &fakeSub[T]{ch: make(chan T, 1)}
	f.subs[key] = append(f.subs[key], sub)
	return &closer[T]{sub: sub, feed: f, key: key}
}

func (f *feed[T]) send(key string, value T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs[key] {
		realtime.Offer(sub.ch, value)
	}
}

func (f *feed[T]) active(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs[key])
}

func (f *feed[T]) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, subs := range f.subs {
		n += len(subs)
	}
	return n
}

type closer[T any] struct {
	sub  *fakeSub[T]
	feed *feed[T]
	key  string
}

func (c *closer[T]) Updates() <-chan T {
	return c.sub.Updates()
}

func (c *closer[T]) Close() error {
	c.feed.mu.Lock()
	defer c.feed.mu.Unlock()
	if c.sub.closed {
		return nil
	}
	c.sub.closed = true
	subs := c.feed.subs[c.key]
	for i, s := range subs {
		if s == c.sub {
			c.feed.subs[c.key] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(c.feed.subs[c.key]) == 0 {
		delete(c.feed.subs, c.key)
	}
	return nil
}

type fakeLocations struct {
	mu      sync.Mutex
	records map[string]models.LocationRecord
	feed    *feed[models.LocationRecord]
}

func newFakeLocations() *fakeLocations {
	return &fakeLocations{
		records: make(map[string]models.LocationRecord),
		feed:    newFeed[models.LocationRecord](),
	}
}

func (f *fakeLocations) SaveLocation(_ context.Context, record *models.LocationRecord) error {
	f.mu.Lock()
	f.records[record.UserID] = *record
	f.mu.Unlock()
	f.feed.send(record.UserID, *record)
	return nil
}

func (f *fakeLocations) GetLocation(_ context.Context, uid string) (*models.LocationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[uid]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (f *fakeLocations) WatchLocation(_ context.Context, uid string) (realtime.Subscription[models.LocationRecord], error) {
	return f.feed.watch(uid), nil
}

// move сохраняет позицию другого пользователя, как это сделал бы его трекер
func (f *fakeLocations) move(uid string, p models.Position) {
	_ = f.SaveLocation(context.Background(), &models.LocationRecord{
		UserID:      uid,
		Email:       uid + "@example.com",
		Position:    &p,
		LastUpdated: time.Now(),
	})
}

func (f *fakeLocations) saved(uid string) (models.LocationRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[uid]
	return record, ok
}

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
	feed     *feed[models.UserProfile]
	// afterRead вызывается после чтения профиля в EnsureProfile
	afterRead func()
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		profiles: make(map[string]models.UserProfile),
		feed:     newFeed[models.UserProfile](),
	}
}

func (f *fakeProfiles) EnsureProfile(_ context.Context, uid, email string) (*models.UserProfile, error) {
	f.mu.Lock()
	p, ok := f.profiles[uid]
	if !ok {
		p = *models.NewDefaultProfile(uid, email)
		f.profiles[uid] = p
	}
	hook := f.afterRead
	f.afterRead = nil
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return &p, nil
}

func (f *fakeProfiles) WatchProfile(_ context.Context, uid string) (realtime.Subscription[models.UserProfile], error) {
	return f.feed.watch(uid), nil
}

func (f *fakeProfiles) setFollowing(uid string, following ...string) {
	f.mu.Lock()
	p, ok := f.profiles[uid]
	if !ok {
		p = *models.NewDefaultProfile(uid, uid+"@example.com")
	}
	p.Following = following
	f.profiles[uid] = p
	f.mu.Unlock()
	f.feed.send(uid, p)
}

type fakeNotifications struct {
	mu      sync.Mutex
	err     error
	records []models.NotificationRecord
}

func (f *fakeNotifications) Append(_ context.Context, n *models.NotificationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *n)
	return nil
}

func (f *fakeNotifications) all() []models.NotificationRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.NotificationRecord(nil), f.records...)
}

type fakePush struct {
	mu     sync.Mutex
	events []webhook.PushEvent
}

func (f *fakePush) Publish(_ context.Context, event webhook.PushEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakePush) all() []webhook.PushEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]webhook.PushEvent(nil), f.events...)
}

// fakeClock - управляемые часы для проверки длительного пребывания
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var errStoreDown = errors.New("store unavailable")

type testEnv struct {
	locations     *fakeLocations
	profiles      *fakeProfiles
	notifications *fakeNotifications
	push          *fakePush
	clock         *fakeClock
	manager       *Manager
}

func newTestEnv() *testEnv {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	env := &testEnv{
		locations:     newFakeLocations(),
		profiles:      newFakeProfiles(),
		notifications: &fakeNotifications{},
		push:          &fakePush{},
		clock:         &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
	}
	cfg := &config.Config{
		MovementThresholdMeters: 10,
		ProlongedStay:           2 * time.Hour,
		DefaultAreaRadiusMeters: 3000,
		PublishMaxRetries:       3,
		PublishBaseDelay:        time.Millisecond,
		EventQueueSize:          64,
	}
	env.manager = NewManager(Deps{
		Locations:     env.locations,
		Profiles:      env.profiles,
		Notifications: env.notifications,
		Push:          env.push,
		Logger:        logger,
	}, cfg)
	env.manager.now = env.clock.Now
	return env
}
