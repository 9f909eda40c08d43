package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/family_locator/internal/device"
	"github.com/shenikar/family_locator/internal/models"
	"github.com/shenikar/family_locator/internal/proximity"
	"github.com/shenikar/family_locator/internal/realtime"
	"github.com/shenikar/family_locator/internal/tracker"
	"github.com/shenikar/family_locator/internal/webhook"
	"github.com/sirupsen/logrus"
)

const (
	sideEffectTimeout = 10 * time.Second
	observerBuffer    = 16
	pushTitleLocation = "Location change"
	pushTitleStay     = "Left monitored area"
)

// LocationStore - хранилище позиций пользователей с realtime-подпиской
type LocationStore interface {
	SaveLocation(ctx context.Context, record *models.LocationRecord) error
	GetLocation(ctx context.Context, uid string) (*models.LocationRecord, error)
	WatchLocation(ctx context.Context, uid string) (realtime.Subscription[models.LocationRecord], error)
}

// ProfileSource отдает профиль локального пользователя и его изменения
type ProfileSource interface {
	EnsureProfile(ctx context.Context, uid, email string) (*models.UserProfile, error)
	WatchProfile(ctx context.Context, uid string) (realtime.Subscription[models.UserProfile], error)
}

type NotificationStore interface {
	Append(ctx context.Context, n *models.NotificationRecord) error
}

// Deps - внешние зависимости сессии
type Deps struct {
	Locations     LocationStore
	Profiles      ProfileSource
	Notifications NotificationStore
	Push          webhook.Publisher
	Logger        *logrus.Logger
}

// Options - параметры одной сессии
type Options struct {
	UserID             string
	Email              string
	LocationPermission bool
	InitialFix         *models.Position

	MovementThresholdMeters float64
	ProlongedStay           time.Duration
	Retry                   tracker.RetryPolicy
	QueueSize               int
	Now                     func() time.Time
}

type eventKind int

const (
	eventLocalPosition eventKind = iota
	eventFollowedPosition
	eventProfile
	eventSetArea
	eventClearArea
	eventSnapshot
)

type event struct {
	kind     eventKind
	position models.Position
	followed models.FollowedUserLocation
	profile  *models.UserProfile
	radius   float64
	reply    chan result
}

type result struct {
	snapshot models.SessionSnapshot
	area     models.MonitoredArea
	err      error
}

// Session - состояние вошедшего пользователя. Движок меняется только из горутины run.
type Session struct {
	userID string
	email  string
	deps   Deps
	log    *logrus.Entry
	now    func() time.Time

	provider *device.Provider
	tracker  *tracker.Tracker
	engine   *proximity.Engine

	events   chan event
	ctx      context.Context
	cancel   context.CancelFunc
	loopDone chan struct{}
	bg       sync.WaitGroup

	// только из горутины run
	watches map[string]context.CancelFunc

	obsMu     sync.Mutex
	observers map[int]chan models.SessionEvent
	nextObs   int

	closeOnce sync.Once
}

// Start создает сессию: подписка на профиль, профиль, трекер и цикл событий.
// При отказе в разрешении на геолокацию возвращает models.ErrPermissionDenied.
func Start(ctx context.Context, deps Deps, opts Options) (*Session, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 64
	}

	log := deps.Logger.WithFields(logrus.Fields{
		"component": "session",
		"user_id":   opts.UserID,
	})

	sctx, cancel := context.WithCancel(context.Background())

	// подписка до чтения профиля, иначе изменение между ними потеряется
	sub, err := deps.Profiles.WatchProfile(sctx, opts.UserID)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to watch profile: %w", err)
	}
	profile, err := deps.Profiles.EnsureProfile(ctx, opts.UserID, opts.Email)
	if err != nil {
		_ = sub.Close()
		cancel()
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	s := &Session{
		userID: opts.UserID,
		email:  opts.Email,
		deps:   deps,
		log:    log,
		now:    opts.Now,
		engine: proximity.NewEngine(proximity.Options{
			LocalLabel:              profile.Label(),
			MovementThresholdMeters: opts.MovementThresholdMeters,
			ProlongedStay:           opts.ProlongedStay,
		}),
		provider:  device.NewProvider(opts.LocationPermission, opts.InitialFix),
		events:    make(chan event, opts.QueueSize),
		ctx:       sctx,
		cancel:    cancel,
		loopDone:  make(chan struct{}),
		watches:   make(map[string]context.CancelFunc),
		observers: make(map[int]chan models.SessionEvent),
	}
	s.tracker = tracker.New(s.provider, deps.Locations, deps.Logger, tracker.Options{
		UserID:   opts.UserID,
		Email:    opts.Email,
		Retry:    opts.Retry,
		OnUpdate: s.enqueueLocal,
		Now:      opts.Now,
	})

	go s.run()

	if err := s.tracker.Start(ctx); err != nil {
		_ = sub.Close()
		s.Close()
		return nil, err
	}

	s.enqueue(sctx, event{kind: eventProfile, profile: profile})

	s.bg.Add(1)
	go s.watchProfile(sub)

	log.Info("Session started")
	return s, nil
}

// ReportPosition принимает новый фикс от устройства пользователя
func (s *Session) ReportPosition(p models.Position) error {
	if p.TimestampMillis == 0 {
		p.TimestampMillis = s.now().UnixMilli()
	}
	return s.provider.Report(p)
}

// SetArea задает геозону с центром в текущей позиции
func (s *Session) SetArea(ctx context.Context, radius float64) (models.MonitoredArea, error) {
	res, err := s.request(ctx, event{kind: eventSetArea, radius: radius})
	if err != nil {
		return models.MonitoredArea{}, err
	}
	return res.area, res.err
}

func (s *Session) ClearArea(ctx context.Context) error {
	_, err := s.request(ctx, event{kind: eventClearArea})
	return err
}

// Snapshot возвращает позиции отслеживаемых пользователей с расстояниями, геозону и ее состояние
func (s *Session) Snapshot(ctx context.Context) (models.SessionSnapshot, error) {
	res, err := s.request(ctx, event{kind: eventSnapshot})
	if err != nil {
		return models.SessionSnapshot{}, err
	}
	return res.snapshot, nil
}

// Observe подписывает на события сессии. Медленный наблюдатель теряет события.
func (s *Session) Observe() (<-chan models.SessionEvent, func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	ch := make(chan models.SessionEvent, observerBuffer)
	if s.observers == nil {
		close(ch)
		return ch, func() {}
	}
	id := s.nextObs
	s.nextObs++
	s.observers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.obsMu.Lock()
			defer s.obsMu.Unlock()
			if c, ok := s.observers[id]; ok {
				delete(s.observers, id)
				close(c)
			}
		})
	}
}

// Close снимает все подписки и дожидается фоновых горутин
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.tracker.Stop()
		<-s.loopDone
		s.bg.Wait()

		s.obsMu.Lock()
		for id, ch := range s.observers {
			close(ch)
			delete(s.observers, id)
		}
		s.observers = nil
		s.obsMu.Unlock()

		s.log.Info("Session closed")
	})
}

func (s *Session) run() {
	defer close(s.loopDone)
	for {
		select {
		case <-s.ctx.Done():
			for id, cancel := range s.watches {
				cancel()
				delete(s.watches, id)
			}
			return
		case ev := <-s.events:
			s.handle(ev)
		}
	}
}

func (s *Session) handle(ev event) {
	now := s.now()

	switch ev.kind {
	case eventLocalPosition:
		s.dispatch(s.engine.SetLocalPosition(ev.position, now))

	case eventFollowedPosition:
		if !s.engine.IsFollowing(ev.followed.UserID) {
			return
		}
		loc := ev.followed
		s.broadcast(models.SessionEvent{Kind: models.SessionEventFollowed, Followed: &loc})
		s.dispatch(s.engine.UpdateFollowedPosition(ev.followed, now))

	case eventProfile:
		s.syncWatches(ev.profile.Following)
		s.dispatch(s.engine.SetFollowing(ev.profile.Following, now))

	case eventSetArea:
		current, ok := s.engine.CurrentPosition()
		if !ok {
			ev.reply <- result{err: models.ErrNoPosition}
			return
		}
		area := models.MonitoredArea{
			CenterLatitude:  current.Latitude,
			CenterLongitude: current.Longitude,
			RadiusMeters:    ev.radius,
		}
		s.dispatch(s.engine.SetArea(area, now))
		ev.reply <- result{area: area}

	case eventClearArea:
		s.engine.ClearArea()
		ev.reply <- result{}

	case eventSnapshot:
		snap := s.engine.Snapshot()
		snap.UserID = s.userID
		ev.reply <- result{snapshot: snap}
	}
}

// syncWatches приводит подписки на позиции к множеству following
func (s *Session) syncWatches(following []string) {
	keep := make(map[string]struct{}, len(following))
	for _, id := range following {
		keep[id] = struct{}{}
		if _, ok := s.watches[id]; ok || id == s.userID {
			continue
		}
		wctx, cancel := context.WithCancel(s.ctx)
		s.watches[id] = cancel
		s.bg.Add(1)
		go s.watchFollowed(wctx, id)
	}

	for id, cancel := range s.watches {
		if _, ok := keep[id]; !ok {
			cancel()
			delete(s.watches, id)
		}
	}
}

func (s *Session) watchFollowed(ctx context.Context, uid string) {
	defer s.bg.Done()
	log := s.log.WithField("followed_id", uid)

	sub, err := s.deps.Locations.WatchLocation(ctx, uid)
	if err != nil {
		if ctx.Err() == nil {
			log.WithError(err).Warn("Failed to watch followed user location")
		}
		return
	}
	defer sub.Close()

	record, err := s.deps.Locations.GetLocation(ctx, uid)
	if err != nil {
		log.WithError(err).Warn("Failed to get followed user location")
	} else if record != nil {
		s.forwardFollowed(ctx, uid, record)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case record, ok := <-sub.Updates():
			if !ok {
				return
			}
			s.forwardFollowed(ctx, uid, &record)
		}
	}
}

func (s *Session) forwardFollowed(ctx context.Context, uid string, record *models.LocationRecord) {
	if record.Position == nil {
		return
	}
	s.enqueue(ctx, event{
		kind: eventFollowedPosition,
		followed: models.FollowedUserLocation{
			UserID:       uid,
			DisplayLabel: record.Email,
			Position:     *record.Position,
		},
	})
}

func (s *Session) watchProfile(sub realtime.Subscription[models.UserProfile]) {
	defer s.bg.Done()
	defer sub.Close()

	for {
		select {
		case <-s.ctx.Done():
			return
		case profile, ok := <-sub.Updates():
			if !ok {
				return
			}
			s.enqueue(s.ctx, event{kind: eventProfile, profile: &profile})
		}
	}
}

func (s *Session) enqueueLocal(p models.Position) {
	s.enqueue(s.ctx, event{kind: eventLocalPosition, position: p})
}

func (s *Session) enqueue(ctx context.Context, ev event) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Session) request(ctx context.Context, ev event) (result, error) {
	ev.reply = make(chan result, 1)
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
		return result{}, models.ErrSessionNotFound
	case <-ctx.Done():
		return result{}, ctx.Err()
	}

	select {
	case res := <-ev.reply:
		return res, nil
	case <-s.loopDone:
		return result{}, models.ErrSessionNotFound
	case <-ctx.Done():
		return result{}, ctx.Err()
	}
}

// dispatch раздает результат пересчета наблюдателям и запускает побочные эффекты
func (s *Session) dispatch(out proximity.Outcome) {
	for _, n := range out.Notifications {
		req := n
		s.broadcast(models.SessionEvent{Kind: models.SessionEventNotification, Notification: &req})
		s.bg.Add(1)
		go s.deliverNotification(req)
	}
	for _, a := range out.AreaEvents {
		ae := a
		s.broadcast(models.SessionEvent{Kind: models.SessionEventArea, Area: &ae})
		if ae.Kind == models.ProlongedStayExit {
			s.bg.Add(1)
			go s.pushProlongedStay(ae)
		}
	}
}

// deliverNotification пишет запись уведомления и отправляет push. Ошибки независимы и только логируются.
func (s *Session) deliverNotification(n models.NotificationRequest) {
	defer s.bg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	log := s.log.WithField("target_id", n.TargetUserID)

	record := &models.NotificationRecord{
		ID:             uuid.New(),
		UserID:         n.TargetUserID,
		Type:           models.NotificationTypeLocationChange,
		Message:        n.Message,
		SenderID:       s.userID,
		SenderEmail:    s.email,
		DistanceMeters: n.DistanceMeters,
		CreatedAt:      n.Timestamp,
	}
	if err := s.deps.Notifications.Append(ctx, record); err != nil {
		log.WithError(err).Warn("Failed to append notification record")
	}

	push := webhook.PushEvent{
		RecipientID: s.userID,
		Kind:        webhook.PushLocationChange,
		Title:       pushTitleLocation,
		Body:        fmt.Sprintf("%s moved away, new distance %.2f km", n.TargetLabel, n.DistanceMeters/1000),
		Data:        map[string]string{"user_id": n.TargetUserID},
		Timestamp:   n.Timestamp,
	}
	if err := s.deps.Push.Publish(ctx, push); err != nil {
		log.WithError(err).Warn("Failed to publish push notification")
	}
}

func (s *Session) pushProlongedStay(a models.AreaEvent) {
	defer s.bg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	push := webhook.PushEvent{
		RecipientID: s.userID,
		Kind:        webhook.PushProlongedStay,
		Title:       pushTitleStay,
		Body:        fmt.Sprintf("Left the monitored area after %s", a.Stayed.Round(time.Minute)),
		Timestamp:   a.At,
	}
	if err := s.deps.Push.Publish(ctx, push); err != nil {
		s.log.WithError(err).Warn("Failed to publish prolonged stay push")
	}
}

func (s *Session) broadcast(ev models.SessionEvent) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	for _, ch := range s.observers {
		select {
		case ch <- ev:
		default:
		}
	}
}
