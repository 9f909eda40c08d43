package proximity

import (
	"time"

	"github.com/shenikar/family_locator/internal/models"
)

// Occupancy - автомат OUTSIDE/INSIDE для геозоны
type Occupancy struct {
	inside        bool
	enteredAt     time.Time
	prolongedStay time.Duration
}

func NewOccupancy(prolongedStay time.Duration) *Occupancy {
	return &Occupancy{prolongedStay: prolongedStay}
}

// Evaluate применяет новое значение предиката "внутри зоны" и возвращает переходы
func (o *Occupancy) Evaluate(area models.MonitoredArea, inside bool, now time.Time) []models.AreaEvent {
	switch {
	case inside && !o.inside:
		o.inside = true
		o.enteredAt = now
		return []models.AreaEvent{{Kind: models.AreaEntered, Area: area, At: now}}

	case !inside && o.inside:
		stayed := now.Sub(o.enteredAt)
		o.inside = false
		o.enteredAt = time.Time{}

		events := []models.AreaEvent{{Kind: models.AreaExited, Area: area, At: now, Stayed: stayed}}
		if stayed >= o.prolongedStay {
			events = append(events, models.AreaEvent{Kind: models.ProlongedStayExit, Area: area, At: now, Stayed: stayed})
		}
		return events
	}
	return nil
}

// Reset возвращает автомат в OUTSIDE без генерации событий
func (o *Occupancy) Reset() {
	o.inside = false
	o.enteredAt = time.Time{}
}

func (o *Occupancy) State() models.AreaOccupancy {
	state := models.AreaOccupancy{IsInside: o.inside}
	if o.inside {
		enteredAt := o.enteredAt
		state.EnteredAt = &enteredAt
	}
	return state
}
