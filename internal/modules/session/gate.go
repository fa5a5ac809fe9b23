package session

import (
	"time"

	"github.com/Tkay6677/Ndu-attendance/internal/models"
)

// Gate is the decision of whether attendance may be recorded right now.
type Gate int

const (
	GateAllowed Gate = iota
	GateNotYetOpen
	GateClosed
	GateDeactivated
)

func (g Gate) String() string {
	switch g {
	case GateAllowed:
		return "allowed"
	case GateNotYetOpen:
		return "not_yet_open"
	case GateClosed:
		return "closed"
	case GateDeactivated:
		return "deactivated"
	}
	return "unknown"
}

// RedemptionGate is a pure read of the session's window and active flag at
// the instant of redemption; nothing is cached from token-issuance time.
// A session past its end time reports Closed whatever the active flag says.
func RedemptionGate(s *models.SessionModel, now time.Time) Gate {
	switch {
	case now.Before(s.StartTime):
		return GateNotYetOpen
	case now.After(s.EndTime):
		return GateClosed
	case !s.IsActive:
		return GateDeactivated
	default:
		return GateAllowed
	}
}
