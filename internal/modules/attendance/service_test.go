package attendance

import (
	"errors"
	"sync"
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

func testStudent(t *testing.T, db *gorm.DB, email string) *models.UserModel {
	t.Helper()
	u := models.UserModel{
		Name: "Student " + email, Email: email, Password: "x",
		Role: models.RoleStudent, StudentID: "NDU/" + email, Department: "Computer Science",
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatal("create student:", err)
	}
	return &u
}

func TestRecordOnce(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	student := testStudent(t, db, "a@ndu.edu")

	now := time.Now()
	rec, err := svc.Record("sess-1", student, now)
	if err != nil {
		t.Fatal("record failed:", err)
	}
	if rec.SessionID != "sess-1" || rec.StudentID != student.ID {
		t.Error("record should carry the (session, student) pair")
	}

	if _, err := svc.Record("sess-1", student, now.Add(time.Minute)); !errors.Is(err, ErrDuplicate) {
		t.Errorf("second record: got %v, want ErrDuplicate", err)
	}

	// Same student in a different session is a fresh fact.
	if _, err := svc.Record("sess-2", student, now); err != nil {
		t.Error("different session should record, got:", err)
	}
}

func TestRecordConcurrentDuplicates(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	student := testStudent(t, db, "a@ndu.edu")

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Record("sess-1", student, time.Now())
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrDuplicate):
			dup++
		default:
			t.Error("unexpected error:", err)
		}
	}
	if ok != 1 || dup != attempts-1 {
		t.Errorf("got %d successes and %d duplicates, want 1 and %d", ok, dup, attempts-1)
	}

	var count int64
	db.Model(&models.AttendanceModel{}).Count(&count)
	if count != 1 {
		t.Errorf("ledger holds %d records, want exactly 1", count)
	}
}

func TestListOrdering(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	base := time.Now().Truncate(time.Second)
	for i, email := range []string{"a@ndu.edu", "b@ndu.edu", "c@ndu.edu"} {
		student := testStudent(t, db, email)
		if _, err := svc.Record("sess-1", student, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatal("record failed:", err)
		}
	}

	items, pag, err := svc.ListBySession("sess-1", pagination.Query{Page: 1, Size: 10})
	if err != nil {
		t.Fatal("list failed:", err)
	}
	if pag.Total != 3 {
		t.Errorf("total = %d, want 3", pag.Total)
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].RecordedAt.Before(items[i].RecordedAt) {
			t.Error("records should be most recent first")
		}
	}
	if items[0].StudentEmail != "c@ndu.edu" {
		t.Errorf("first record = %q, want most recent", items[0].StudentEmail)
	}

	byStudent, _, err := svc.ListByStudent(items[0].StudentID, pagination.Query{Page: 1, Size: 10})
	if err != nil {
		t.Fatal("list by student failed:", err)
	}
	if len(byStudent) != 1 {
		t.Errorf("got %d records for student, want 1", len(byStudent))
	}
}
