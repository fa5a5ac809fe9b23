package session

import (
	"testing"
	"time"

	"github.com/Tkay6677/Ndu-attendance/internal/models"
)

func TestRedemptionGate(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	sess := func(active bool) *models.SessionModel {
		return &models.SessionModel{
			StartTime: at(10, 0),
			EndTime:   at(11, 0),
			IsActive:  active,
		}
	}

	tests := []struct {
		name   string
		sess   *models.SessionModel
		now    time.Time
		expect Gate
	}{
		{"before start", sess(true), at(9, 59), GateNotYetOpen},
		{"before start while inactive", sess(false), at(9, 59), GateNotYetOpen},
		{"inside window active", sess(true), at(10, 30), GateAllowed},
		{"inside window inactive", sess(false), at(10, 30), GateDeactivated},
		{"after end", sess(true), at(11, 1), GateClosed},
		{"after end inactive", sess(false), at(11, 1), GateClosed},
		{"exactly at start", sess(true), at(10, 0), GateAllowed},
		{"exactly at end", sess(true), at(11, 0), GateAllowed},
	}
	for _, tt := range tests {
		if got := RedemptionGate(tt.sess, tt.now); got != tt.expect {
			t.Errorf("%s: gate = %v, want %v", tt.name, got, tt.expect)
		}
	}
}
