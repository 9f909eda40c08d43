package models

import (
	"time"

	"github.com/google/uuid"
)

const NotificationTypeLocationChange = "location_change"

// NotificationRequest формируется движком, когда расстояние до отслеживаемого пользователя заметно изменилось
type NotificationRequest struct {
	TargetUserID   string    `json:"target_user_id"`
	TargetLabel    string    `json:"target_label"`
	Message        string    `json:"message"`
	DistanceMeters float64   `json:"distance_meters"`
	Timestamp      time.Time `json:"timestamp"`
}

// NotificationRecord - запись уведомления в списке users/{uid}/notifications
type NotificationRecord struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"user_id"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	SenderID       string    `json:"sender_id"`
	SenderEmail    string    `json:"sender_email"`
	DistanceMeters float64   `json:"distance_meters"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

type SessionEventKind string

const (
	SessionEventNotification SessionEventKind = "notification"
	SessionEventArea         SessionEventKind = "area"
	SessionEventFollowed     SessionEventKind = "followed"
)

// SessionEvent отправляется наблюдателям сессии (устройству пользователя)
type SessionEvent struct {
	Kind         SessionEventKind      `json:"kind"`
	Notification *NotificationRequest  `json:"notification,omitempty"`
	Area         *AreaEvent            `json:"area,omitempty"`
	Followed     *FollowedUserLocation `json:"followed,omitempty"`
}
