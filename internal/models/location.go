package models

import (
	"time"
)

// Position - точка на карте с моментом фиксации (unix ms)
type Position struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	TimestampMillis int64   `json:"timestamp_millis"`
}

// LocationRecord представляет последнюю опубликованную позицию пользователя (locations/{uid})
type LocationRecord struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	Position    *Position `json:"position,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}

// FollowedUserLocation - позиция пользователя, на которого подписан локальный пользователь
type FollowedUserLocation struct {
	UserID       string   `json:"user_id"`
	DisplayLabel string   `json:"display_label"`
	Position     Position `json:"position"`
}

// FollowedDistance - позиция отслеживаемого пользователя вместе с расстоянием до него
type FollowedDistance struct {
	FollowedUserLocation
	DistanceMeters float64 `json:"distance_meters"`
}
