package attendance

import (
	"testing"
	"time"

	"github.com/Tkay6677/Ndu-attendance/internal/models"
	sessionmod "github.com/Tkay6677/Ndu-attendance/internal/modules/session"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/qrtoken"
	"gorm.io/gorm"
)

func testRedeemer(t *testing.T) (*Redeemer, *gorm.DB, *qrtoken.Codec) {
	t.Helper()
	db := testDB(t)
	codec := qrtoken.New("test-secret", 0)
	sessions := sessionmod.NewService(db)
	ledger := NewService(db)
	return NewRedeemer(codec, sessions, ledger), db, codec
}

func seedSession(t *testing.T, db *gorm.DB, start, end time.Time, active bool) *models.SessionModel {
	t.Helper()
	sess := models.SessionModel{
		Title: "Lecture 1", Course: "CSC101", Location: "Hall A",
		Lecturer: "Dr. Ada", LecturerID: "lect-1",
		StartTime: start, EndTime: end, IsActive: active,
	}
	if err := db.Create(&sess).Error; err != nil {
		t.Fatal("seed session:", err)
	}
	// GORM skips zero-value fields that carry a column default, so Create
	// alone cannot persist IsActive=false; set it explicitly afterwards.
	if !active {
		if err := db.Model(&sess).Update("is_active", false).Error; err != nil {
			t.Fatal("seed session active flag:", err)
		}
		sess.IsActive = false
	}
	return &sess
}

func TestRedeemRecords(t *testing.T) {
	r, db, codec := testRedeemer(t)
	now := time.Now()
	sess := seedSession(t, db, now.Add(-10*time.Minute), now.Add(50*time.Minute), true)
	student := testStudent(t, db, "a@ndu.edu")

	token, _, err := codec.Issue(sess.ID)
	if err != nil {
		t.Fatal("issue failed:", err)
	}

	res, err := r.Redeem(token, student, now)
	if err != nil {
		t.Fatal("redeem failed:", err)
	}
	if res.Status != StatusRecorded {
		t.Fatalf("status = %v, want recorded", res.Status)
	}
	if res.Record == nil || res.Record.StudentID != student.ID {
		t.Error("result should carry the stored record")
	}
	if res.Session == nil || res.Session.Title != "Lecture 1" {
		t.Error("result should carry session display metadata")
	}
}

func TestRedeemSecondTokenStillDuplicate(t *testing.T) {
	r, db, codec := testRedeemer(t)
	now := time.Now()
	sess := seedSession(t, db, now.Add(-10*time.Minute), now.Add(50*time.Minute), true)
	student := testStudent(t, db, "a@ndu.edu")

	first, _, _ := codec.Issue(sess.ID)
	if res, err := r.Redeem(first, student, now); err != nil || res.Status != StatusRecorded {
		t.Fatalf("first redeem: status=%v err=%v", res.Status, err)
	}

	// A different, still-valid token for the same session must not create a
	// second record for the same student.
	second, _, _ := codec.Issue(sess.ID)
	res, err := r.Redeem(second, student, now.Add(time.Minute))
	if err != nil {
		t.Fatal("second redeem failed:", err)
	}
	if res.Status != StatusAlreadyRecorded {
		t.Errorf("status = %v, want already_recorded", res.Status)
	}

	var count int64
	db.Model(&models.AttendanceModel{}).Count(&count)
	if count != 1 {
		t.Errorf("ledger holds %d records, want 1", count)
	}
}

func TestRedeemInvalidToken(t *testing.T) {
	r, db, codec := testRedeemer(t)
	student := testStudent(t, db, "a@ndu.edu")

	res, err := r.Redeem("not-a-token", student, time.Now())
	if err != nil {
		t.Fatal("redeem failed:", err)
	}
	if res.Status != StatusTokenInvalid {
		t.Errorf("status = %v, want token_invalid", res.Status)
	}

	// Valid signature but unknown session.
	token, _, _ := codec.Issue("ghost-session")
	res, err = r.Redeem(token, student, time.Now())
	if err != nil {
		t.Fatal("redeem failed:", err)
	}
	if res.Status != StatusSessionNotFound {
		t.Errorf("status = %v, want session_not_found", res.Status)
	}
}

func TestRedeemWindowOutcomes(t *testing.T) {
	r, db, codec := testRedeemer(t)
	now := time.Now()
	student := testStudent(t, db, "a@ndu.edu")

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		active bool
		expect Status
	}{
		{"not yet open", now.Add(time.Hour), now.Add(2 * time.Hour), true, StatusNotYetOpen},
		{"closed", now.Add(-2 * time.Hour), now.Add(-time.Hour), true, StatusClosed},
		{"closed wins over inactive", now.Add(-2 * time.Hour), now.Add(-time.Hour), false, StatusClosed},
		{"deactivated", now.Add(-time.Hour), now.Add(time.Hour), false, StatusDeactivated},
	}
	for _, tt := range tests {
		sess := seedSession(t, db, tt.start, tt.end, tt.active)
		token, _, _ := codec.Issue(sess.ID)
		res, err := r.Redeem(token, student, now)
		if err != nil {
			t.Fatalf("%s: redeem failed: %v", tt.name, err)
		}
		if res.Status != tt.expect {
			t.Errorf("%s: status = %v, want %v", tt.name, res.Status, tt.expect)
		}
		switch tt.expect {
		case StatusNotYetOpen:
			if res.Boundary == nil || !res.Boundary.Equal(sess.StartTime) {
				t.Errorf("%s: boundary should be the start time", tt.name)
			}
		case StatusClosed:
			if res.Boundary == nil || !res.Boundary.Equal(sess.EndTime) {
				t.Errorf("%s: boundary should be the end time", tt.name)
			}
		}
	}
}

// Deactivation does not revoke previously issued tokens; the gate decides at
// redemption time.
func TestRedeemAfterReactivation(t *testing.T) {
	r, db, codec := testRedeemer(t)
	now := time.Now()
	sess := seedSession(t, db, now.Add(-10*time.Minute), now.Add(50*time.Minute), false)
	student := testStudent(t, db, "a@ndu.edu")

	token, _, _ := codec.Issue(sess.ID)

	res, err := r.Redeem(token, student, now)
	if err != nil || res.Status != StatusDeactivated {
		t.Fatalf("inactive redeem: status=%v err=%v", res.Status, err)
	}

	if err := db.Model(sess).Update("is_active", true).Error; err != nil {
		t.Fatal("reactivate:", err)
	}

	res, err = r.Redeem(token, student, now.Add(time.Minute))
	if err != nil || res.Status != StatusRecorded {
		t.Fatalf("post-reactivation redeem: status=%v err=%v", res.Status, err)
	}
}
