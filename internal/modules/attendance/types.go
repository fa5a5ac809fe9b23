package attendance

import (
	"errors"
	"time"

	"github.com/Tkay6677/Ndu-attendance/internal/models"
)

type RedeemDTO struct {
	Token string `json:"token" binding:"required"`
}

// Status is the terminal outcome of one redemption attempt.
type Status string

const (
	StatusRecorded        Status = "recorded"
	StatusAlreadyRecorded Status = "already_recorded"
	StatusTokenInvalid    Status = "token_invalid"
	StatusSessionNotFound Status = "session_not_found"
	StatusNotYetOpen      Status = "not_yet_open"
	StatusClosed          Status = "closed"
	StatusDeactivated     Status = "deactivated"
)

// Result carries everything a caller needs to render the outcome. Boundary
// is set for window rejections so the message can name the exact time.
type Result struct {
	Status   Status
	Message  string
	Boundary *time.Time
	Record   *models.AttendanceModel
	Session  *models.SessionModel
}

// ErrDuplicate reports that the (session, student) pair is already in the
// ledger. A benign, expected outcome of re-scanning, not a fault.
var ErrDuplicate = errors.New("attendance already recorded")
