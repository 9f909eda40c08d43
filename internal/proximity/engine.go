package proximity

import (
	"fmt"
	"math"
	"time"

	"github.com/shenikar/family_locator/internal/geo"
	"github.com/shenikar/family_locator/internal/models"
)

const (
	DefaultMovementThresholdMeters = 10.0
	DefaultProlongedStay           = 2 * time.Hour
)

// Options - параметры движка
type Options struct {
	LocalLabel              string
	MovementThresholdMeters float64
	ProlongedStay           time.Duration
}

// Outcome - результат одного пересчета
type Outcome struct {
	Notifications []models.NotificationRequest
	AreaEvents    []models.AreaEvent
}

func (o Outcome) Empty() bool {
	return len(o.Notifications) == 0 && len(o.AreaEvents) == 0
}

// Engine вычисляет события геозоны и уведомления о перемещении отслеживаемых пользователей.
// Engine не потокобезопасен: все вызовы должны идти из одной горутины.
type Engine struct {
	localLabel string
	threshold  float64

	current   *models.Position
	area      *models.MonitoredArea
	occupancy *Occupancy

	following []string
	positions map[string]models.FollowedUserLocation
	notified  map[string]float64
}

func NewEngine(opts Options) *Engine {
	if opts.MovementThresholdMeters <= 0 {
		opts.MovementThresholdMeters = DefaultMovementThresholdMeters
	}
	if opts.ProlongedStay <= 0 {
		opts.ProlongedStay = DefaultProlongedStay
	}
	return &Engine{
		localLabel: opts.LocalLabel,
		threshold:  opts.MovementThresholdMeters,
		occupancy:  NewOccupancy(opts.ProlongedStay),
		positions:  make(map[string]models.FollowedUserLocation),
		notified:   make(map[string]float64),
	}
}

// SetLocalPosition заменяет позицию локального пользователя. Порядок определяется поступлением, а не часами устройства.
func (e *Engine) SetLocalPosition(p models.Position, now time.Time) Outcome {
	e.current = &p

	var out Outcome
	out.AreaEvents = e.evaluateArea(now)
	out.Notifications = e.recompute(now)
	return out
}

// SetFollowing заменяет множество отслеживаемых пользователей.
// Для удаленных пользователей очищаются позиции и notificationState.
func (e *Engine) SetFollowing(ids []string, now time.Time) Outcome {
	keep := make(map[string]struct{}, len(ids))
	following := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := keep[id]; dup {
			continue
		}
		keep[id] = struct{}{}
		following = append(following, id)
	}
	e.following = following

	for id := range e.positions {
		if _, ok := keep[id]; !ok {
			delete(e.positions, id)
		}
	}
	for id := range e.notified {
		if _, ok := keep[id]; !ok {
			delete(e.notified, id)
		}
	}

	return Outcome{Notifications: e.recompute(now)}
}

// UpdateFollowedPosition применяет новую позицию отслеживаемого пользователя.
// Последняя поступившая позиция заменяет предыдущую. Позиции пользователей вне множества following игнорируются.
func (e *Engine) UpdateFollowedPosition(loc models.FollowedUserLocation, now time.Time) Outcome {
	if !e.IsFollowing(loc.UserID) {
		return Outcome{}
	}
	e.positions[loc.UserID] = loc
	return Outcome{Notifications: e.recompute(now)}
}

// SetArea задает геозону и сразу проверяет текущую позицию
func (e *Engine) SetArea(area models.MonitoredArea, now time.Time) Outcome {
	e.area = &area
	e.occupancy.Reset()
	return Outcome{AreaEvents: e.evaluateArea(now)}
}

func (e *Engine) ClearArea() {
	e.area = nil
	e.occupancy.Reset()
}

func (e *Engine) IsFollowing(userID string) bool {
	for _, id := range e.following {
		if id == userID {
			return true
		}
	}
	return false
}

func (e *Engine) CurrentPosition() (models.Position, bool) {
	if e.current == nil {
		return models.Position{}, false
	}
	return *e.current, true
}

// LastNotifiedDistance возвращает последнее расстояние, о котором было уведомление
func (e *Engine) LastNotifiedDistance(userID string) (float64, bool) {
	d, ok := e.notified[userID]
	return d, ok
}

// Snapshot возвращает текущее состояние для отображения
func (e *Engine) Snapshot() models.SessionSnapshot {
	snap := models.SessionSnapshot{
		Occupancy: e.occupancy.State(),
		Followed:  make([]models.FollowedDistance, 0, len(e.positions)),
	}
	if e.current != nil {
		p := *e.current
		snap.Position = &p
	}
	if e.area != nil {
		a := *e.area
		snap.Area = &a
	}
	for _, id := range e.following {
		loc, ok := e.positions[id]
		if !ok {
			continue
		}
		fd := models.FollowedDistance{FollowedUserLocation: loc, DistanceMeters: -1}
		if e.current != nil {
			fd.DistanceMeters = geo.DistanceMeters(*e.current, loc.Position)
		}
		snap.Followed = append(snap.Followed, fd)
	}
	return snap
}

func (e *Engine) evaluateArea(now time.Time) []models.AreaEvent {
	if e.area == nil || e.current == nil {
		return nil
	}
	return e.occupancy.Evaluate(*e.area, geo.InArea(*e.area, *e.current), now)
}

func (e *Engine) recompute(now time.Time) []models.NotificationRequest {
	if e.current == nil {
		return nil
	}

	var requests []models.NotificationRequest
	for _, id := range e.following {
		loc, ok := e.positions[id]
		if !ok {
			continue
		}

		d := geo.DistanceMeters(*e.current, loc.Position)
		last := e.notified[id]
		if math.Abs(d-last) <= e.threshold {
			continue
		}

		e.notified[id] = d
		requests = append(requests, models.NotificationRequest{
			TargetUserID:   id,
			TargetLabel:    loc.DisplayLabel,
			Message:        fmt.Sprintf("%s moved away, new distance %.2f km", e.localLabel, d/1000),
			DistanceMeters: d,
			Timestamp:      now,
		})
	}
	return requests
}
