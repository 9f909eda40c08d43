package v1

import (
	"time"

	"github.com/google/uuid"
)

// SignInRequest DTO для входа пользователя с устройства
// @Description DTO для входа пользователя с устройства
type SignInRequest struct {
	UserID             string   `json:"user_id" validate:"required,max=128"`
	Email              string   `json:"email" validate:"required,email"`
	LocationPermission bool     `json:"location_permission"`
	Latitude           *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude          *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// PositionRequest DTO для нового фикса устройства
// @Description DTO для нового фикса устройства
type PositionRequest struct {
	Latitude        *float64 `json:"latitude" validate:"required,latitude"`
	Longitude       *float64 `json:"longitude" validate:"required,longitude"`
	TimestampMillis int64    `json:"timestamp_millis,omitempty" validate:"gte=0"`
}

// AreaRequest DTO для задания геозоны. Центр - текущая позиция пользователя.
// @Description DTO для задания геозоны
type AreaRequest struct {
	RadiusMeters float64 `json:"radius_meters,omitempty" validate:"gte=0,lte=100000"`
}

type PositionResponse struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	TimestampMillis int64   `json:"timestamp_millis"`
}

type AreaResponse struct {
	CenterLatitude  float64 `json:"center_latitude"`
	CenterLongitude float64 `json:"center_longitude"`
	RadiusMeters    float64 `json:"radius_meters"`
}

type OccupancyResponse struct {
	IsInside  bool       `json:"is_inside"`
	EnteredAt *time.Time `json:"entered_at,omitempty"`
}

// FollowedUserResponse - отслеживаемый пользователь. Расстояние отсутствует, пока неизвестна своя позиция.
type FollowedUserResponse struct {
	UserID         string           `json:"user_id"`
	DisplayLabel   string           `json:"display_label"`
	Position       PositionResponse `json:"position"`
	DistanceMeters *float64         `json:"distance_meters,omitempty"`
}

// SessionResponse DTO для ответа с состоянием сессии
// @Description DTO для ответа с состоянием сессии
type SessionResponse struct {
	UserID    string                 `json:"user_id"`
	Position  *PositionResponse      `json:"position,omitempty"`
	Area      *AreaResponse          `json:"area,omitempty"`
	Occupancy OccupancyResponse      `json:"occupancy"`
	Followed  []FollowedUserResponse `json:"followed"`
}

// ProfileResponse DTO для ответа с профилем пользователя
// @Description DTO для ответа с профилем пользователя
type ProfileResponse struct {
	UID                     string    `json:"uid"`
	Email                   string    `json:"email"`
	DisplayName             string    `json:"display_name,omitempty"`
	Followers               []string  `json:"followers"`
	Following               []string  `json:"following"`
	ShareLocationWith       []string  `json:"share_location_with"`
	PendingLocationRequests []string  `json:"pending_location_requests"`
	LocationRequestsSent    []string  `json:"location_requests_sent"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// NotificationResponse DTO для ответа с уведомлением
// @Description DTO для ответа с уведомлением
type NotificationResponse struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	SenderID       string    `json:"sender_id"`
	SenderEmail    string    `json:"sender_email"`
	DistanceMeters float64   `json:"distance_meters"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	ActiveSessions int `json:"active_sessions"`
}
