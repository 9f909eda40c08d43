package models

import "time"

// MonitoredArea - круговая геозона, заданная центром и радиусом в метрах
type MonitoredArea struct {
	CenterLatitude  float64 `json:"center_latitude"`
	CenterLongitude float64 `json:"center_longitude"`
	RadiusMeters    float64 `json:"radius_meters"`
}

// AreaOccupancy хранит, находится ли пользователь внутри геозоны и с какого момента
type AreaOccupancy struct {
	IsInside  bool       `json:"is_inside"`
	EnteredAt *time.Time `json:"entered_at,omitempty"`
}

type AreaEventKind string

const (
	AreaEntered       AreaEventKind = "area_entered"
	AreaExited        AreaEventKind = "area_exited"
	ProlongedStayExit AreaEventKind = "prolonged_stay_exit"
)

// AreaEvent - переход состояния геозоны
type AreaEvent struct {
	Kind   AreaEventKind `json:"kind"`
	Area   MonitoredArea `json:"area"`
	At     time.Time     `json:"at"`
	Stayed time.Duration `json:"stayed,omitempty"`
}

// SessionSnapshot - текущее состояние сессии пользователя
type SessionSnapshot struct {
	UserID    string             `json:"user_id"`
	Position  *Position          `json:"position,omitempty"`
	Area      *MonitoredArea     `json:"area,omitempty"`
	Occupancy AreaOccupancy      `json:"occupancy"`
	Followed  []FollowedDistance `json:"followed"`
}
