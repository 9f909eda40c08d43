package models

import "errors"

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrNoPosition       = errors.New("current position is unknown")
	ErrNoFix            = errors.New("location provider has no fix yet")
	ErrInvalidTarget    = errors.New("invalid target user")
)
