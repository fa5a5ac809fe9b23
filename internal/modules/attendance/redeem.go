package attendance

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tkay6677/Ndu-attendance/internal/models"
	sessionmod "github.com/Tkay6677/Ndu-attendance/internal/modules/session"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/qrtoken"
)

// Redeemer composes the token codec, the session gate and the ledger into
// the single redemption operation behind the scan endpoint. Every attempt
// runs to a terminal outcome; there are no retries and no shared state
// beyond the database.
type Redeemer struct {
	codec    *qrtoken.Codec
	sessions *sessionmod.Service
	ledger   *Service
}

func NewRedeemer(codec *qrtoken.Codec, sessions *sessionmod.Service, ledger *Service) *Redeemer {
	return &Redeemer{codec: codec, sessions: sessions, ledger: ledger}
}

// Redeem runs the redemption state machine for one student and one token.
// The session's window and active flag are read fresh here, at redemption
// time; token validity and window validity are independent checks.
func (r *Redeemer) Redeem(token string, student *models.UserModel, now time.Time) (Result, error) {
	payload, err := r.codec.Verify(token)
	if err != nil {
		return Result{
			Status:  StatusTokenInvalid,
			Message: "Invalid or expired QR code",
		}, nil
	}

	sess, err := r.sessions.GetByID(payload.SessionID)
	if err != nil {
		return Result{}, err
	}
	if sess == nil {
		return Result{
			Status:  StatusSessionNotFound,
			Message: "Session not found",
		}, nil
	}

	switch sessionmod.RedemptionGate(sess, now) {
	case sessionmod.GateNotYetOpen:
		start := sess.StartTime
		return Result{
			Status:   StatusNotYetOpen,
			Message:  fmt.Sprintf("Session hasn't started yet. It will start at %s", start.Format(time.Kitchen)),
			Boundary: &start,
			Session:  sess,
		}, nil
	case sessionmod.GateClosed:
		end := sess.EndTime
		return Result{
			Status:   StatusClosed,
			Message:  fmt.Sprintf("Session ended at %s", end.Format(time.Kitchen)),
			Boundary: &end,
			Session:  sess,
		}, nil
	case sessionmod.GateDeactivated:
		return Result{
			Status:  StatusDeactivated,
			Message: "Session is not active. Please wait for the lecturer to activate it.",
			Session: sess,
		}, nil
	}

	rec, err := r.ledger.Record(sess.ID, student, now)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Result{
				Status:  StatusAlreadyRecorded,
				Message: "Attendance already recorded",
				Session: sess,
			}, nil
		}
		return Result{}, err
	}

	return Result{
		Status:  StatusRecorded,
		Message: "Attendance recorded successfully",
		Record:  rec,
		Session: sess,
	}, nil
}
