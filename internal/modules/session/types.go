package session

import (
	"errors"
	"time"
)

type CreateSessionDTO struct {
	Title           string    `json:"title"            binding:"required"`
	Course          string    `json:"course"           binding:"required"`
	StartTime       time.Time `json:"start_time"       binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
	Location        string    `json:"location"         binding:"required"`
}

type UpdateSessionDTO struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type qrCodeResponse struct {
	Token     string    `json:"token"`
	ScanURL   string    `json:"scan_url"`
	QRCode    string    `json:"qr_code"` // PNG data URL
	ExpiresAt time.Time `json:"expires_at"`
}

var (
	// ErrNotOwner rejects mutations by anyone but the session's lecturer.
	ErrNotOwner = errors.New("not the session owner")

	errInvalidDuration = errors.New("duration must be a positive number of minutes")
)
