package session

import (
	"context"
	"sync"
	"time"

	"github.com/shenikar/family_locator/internal/config"
	"github.com/shenikar/family_locator/internal/models"
	"github.com/shenikar/family_locator/internal/tracker"
	"github.com/sirupsen/logrus"
)

// SignInRequest - данные входа пользователя с устройства
type SignInRequest struct {
	UserID             string
	Email              string
	LocationPermission bool
	InitialFix         *models.Position
}

// Service - интерфейс для управления сессиями пользователей
type Service interface {
	SignIn(ctx context.Context, req SignInRequest) (models.SessionSnapshot, error)
	SignOut(ctx context.Context, uid string) error
	ReportPosition(ctx context.Context, uid string, p models.Position) error
	SetArea(ctx context.Context, uid string, radiusMeters float64) (models.MonitoredArea, error)
	ClearArea(ctx context.Context, uid string) error
	Snapshot(ctx context.Context, uid string) (models.SessionSnapshot, error)
	Observe(ctx context.Context, uid string) (<-chan models.SessionEvent, func(), error)
	ActiveSessions() int
	Shutdown()
}

var _ Service = (*Manager)(nil)

// Manager держит не более одной сессии на пользователя
type Manager struct {
	deps Deps
	cfg  *config.Config
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(deps Deps, cfg *config.Config) *Manager {
	return &Manager{
		deps:     deps,
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// SignIn запускает сессию пользователя. Предыдущая сессия того же пользователя закрывается.
func (m *Manager) SignIn(ctx context.Context, req SignInRequest) (models.SessionSnapshot, error) {
	log := m.deps.Logger.WithFields(logrus.Fields{
		"service": "SessionManager",
		"method":  "SignIn",
		"user_id": req.UserID,
	})

	if req.UserID == "" {
		return models.SessionSnapshot{}, models.ErrInvalidTarget
	}

	m.closeSession(req.UserID)

	s, err := Start(ctx, m.deps, Options{
		UserID:                  req.UserID,
		Email:                   req.Email,
		LocationPermission:      req.LocationPermission,
		InitialFix:              req.InitialFix,
		MovementThresholdMeters: m.cfg.MovementThresholdMeters,
		ProlongedStay:           m.cfg.ProlongedStay,
		Retry: tracker.RetryPolicy{
			MaxRetries: m.cfg.PublishMaxRetries,
			BaseDelay:  m.cfg.PublishBaseDelay,
		},
		QueueSize: m.cfg.EventQueueSize,
		Now:       m.now,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to start session")
		return models.SessionSnapshot{}, err
	}

	m.mu.Lock()
	prev := m.sessions[req.UserID]
	m.sessions[req.UserID] = s
	m.mu.Unlock()
	if prev != nil {
		prev.Close()
	}

	log.Info("User signed in")
	return s.Snapshot(ctx)
}

func (m *Manager) SignOut(_ context.Context, uid string) error {
	if !m.closeSession(uid) {
		return models.ErrSessionNotFound
	}
	m.deps.Logger.WithFields(logrus.Fields{
		"service": "SessionManager",
		"method":  "SignOut",
		"user_id": uid,
	}).Info("User signed out")
	return nil
}

func (m *Manager) ReportPosition(_ context.Context, uid string, p models.Position) error {
	s, err := m.get(uid)
	if err != nil {
		return err
	}
	return s.ReportPosition(p)
}

// SetArea задает геозону вокруг текущей позиции. Радиус по умолчанию берется из конфигурации.
func (m *Manager) SetArea(ctx context.Context, uid string, radiusMeters float64) (models.MonitoredArea, error) {
	s, err := m.get(uid)
	if err != nil {
		return models.MonitoredArea{}, err
	}
	if radiusMeters <= 0 {
		radiusMeters = m.cfg.DefaultAreaRadiusMeters
	}
	return s.SetArea(ctx, radiusMeters)
}

func (m *Manager) ClearArea(ctx context.Context, uid string) error {
	s, err := m.get(uid)
	if err != nil {
		return err
	}
	return s.ClearArea(ctx)
}

func (m *Manager) Snapshot(ctx context.Context, uid string) (models.SessionSnapshot, error) {
	s, err := m.get(uid)
	if err != nil {
		return models.SessionSnapshot{}, err
	}
	return s.Snapshot(ctx)
}

func (m *Manager) Observe(_ context.Context, uid string) (<-chan models.SessionEvent, func(), error) {
	s, err := m.get(uid)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.Observe()
	return ch, cancel, nil
}

func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown закрывает все сессии
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, s := range sessions {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			s.Close()
		}(s)
	}
	wg.Wait()
}

func (m *Manager) get(uid string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[uid]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) closeSession(uid string) bool {
	m.mu.Lock()
	s, ok := m.sessions[uid]
	delete(m.sessions, uid)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
	return ok
}
