package models

import "time"

// UserProfile - профиль пользователя (users/{uid})
type UserProfile struct {
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

// NewDefaultProfile создает пустой профиль для нового пользователя
func NewDefaultProfile(uid, email string) *UserProfile {
	return &UserProfile{
		UID:                     uid,
		Email:                   email,
		Followers:               []string{},
		Following:               []string{},
		ShareLocationWith:       []string{},
		PendingLocationRequests: []string{},
		LocationRequestsSent:    []string{},
	}
}

// Label возвращает подпись пользователя для уведомлений
func (p *UserProfile) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Email
}
