package session

import (
	"errors"
	"testing"
	"time"

	"github.com/Tkay6677/Ndu-attendance/internal/database"
	"github.com/Tkay6677/Ndu-attendance/internal/models"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatal("open test db:", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal("resolve sql db:", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatal("migrate:", err)
	}
	return db
}

func paginationAll() pagination.Query { return pagination.Query{Page: 1, Size: 100} }

func testLecturer(t *testing.T, db *gorm.DB) *models.UserModel {
	t.Helper()
	u := models.UserModel{
		Name: "Dr. Ada", Email: "ada@ndu.edu", Password: "x",
		Role: models.RoleLecturer, Department: "Computer Science",
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatal("create lecturer:", err)
	}
	return &u
}

func TestCreateSession(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	owner := testLecturer(t, db)

	start := time.Now().Add(time.Hour)
	sess, err := svc.Create(owner, &CreateSessionDTO{
		Title: "Lecture 1", Course: "CSC101", StartTime: start,
		DurationMinutes: 60, Location: "Hall A",
	})
	if err != nil {
		t.Fatal("create failed:", err)
	}
	if !sess.IsActive {
		t.Error("new sessions must start active")
	}
	if !sess.EndTime.After(sess.StartTime) {
		t.Error("end time must be after start time")
	}
	if got, want := sess.EndTime.Sub(sess.StartTime), time.Hour; got != want {
		t.Errorf("window = %v, want %v", got, want)
	}
	if sess.LecturerID != owner.ID || sess.Lecturer != owner.Name {
		t.Error("session should carry the owning lecturer")
	}
}

func TestCreateSessionRejectsBadDuration(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	owner := testLecturer(t, db)

	for _, minutes := range []int{0, -30} {
		_, err := svc.Create(owner, &CreateSessionDTO{
			Title: "Lecture", Course: "CSC101", StartTime: time.Now(),
			DurationMinutes: minutes, Location: "Hall A",
		})
		if !errors.Is(err, errInvalidDuration) {
			t.Errorf("duration %d: got %v, want errInvalidDuration", minutes, err)
		}
	}
}

func TestSetActive(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	owner := testLecturer(t, db)

	sess, err := svc.Create(owner, &CreateSessionDTO{
		Title: "Lecture", Course: "CSC101", StartTime: time.Now(),
		DurationMinutes: 60, Location: "Hall A",
	})
	if err != nil {
		t.Fatal("create failed:", err)
	}

	updated, err := svc.SetActive(sess.ID, owner.ID, false)
	if err != nil {
		t.Fatal("deactivate failed:", err)
	}
	if updated.IsActive {
		t.Error("session should be inactive")
	}

	// Idempotent: same value again is not an error.
	if _, err := svc.SetActive(sess.ID, owner.ID, false); err != nil {
		t.Error("repeated deactivate should succeed, got:", err)
	}

	// Only the owner may toggle.
	if _, err := svc.SetActive(sess.ID, "someone-else", true); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner toggle: got %v, want ErrNotOwner", err)
	}

	// Unknown session is a nil snapshot, not an error.
	missing, err := svc.SetActive("nope", owner.ID, true)
	if err != nil || missing != nil {
		t.Errorf("unknown session: got (%v, %v), want (nil, nil)", missing, err)
	}
}

func TestListNewestFirst(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	owner := testLecturer(t, db)

	for i, title := range []string{"first", "second"} {
		sess := models.SessionModel{
			Title: title, Course: "CSC101", LecturerID: owner.ID,
			StartTime: time.Now(), EndTime: time.Now().Add(time.Hour), IsActive: true,
		}
		sess.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		if err := db.Create(&sess).Error; err != nil {
			t.Fatal("seed session:", err)
		}
	}

	items, _, err := svc.List(paginationAll(), owner.ID)
	if err != nil {
		t.Fatal("list failed:", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d sessions, want 2", len(items))
	}
	if items[0].Title != "second" {
		t.Errorf("first item = %q, want newest first", items[0].Title)
	}
}
