package attendance

import (
	"errors"
	"time"

	"github.com/Tkay6677/Ndu-attendance/internal/models"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/pagination"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/response"
	"gorm.io/gorm"
)

// Service is the attendance ledger: append-only facts with an exactly-once
// guarantee per (session, student) pair.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Record inserts one attendance fact. Uniqueness is enforced only by the
// composite index on (session_id, student_id); under concurrent identical
// attempts the database lets exactly one insert through and this returns
// ErrDuplicate for the rest.
func (s *Service) Record(sessionID string, student *models.UserModel, now time.Time) (*models.AttendanceModel, error) {
	rec := models.AttendanceModel{
		SessionID:    sessionID,
		StudentID:    student.ID,
		StudentName:  student.Name,
		StudentEmail: student.Email,
		RecordedAt:   now,
	}
	if err := s.db.Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &rec, nil
}

// ListBySession returns a session's records, most recent first.
func (s *Service) ListBySession(sessionID string, q pagination.Query) ([]models.AttendanceModel, response.Pagination, error) {
	tx := s.db.Model(&models.AttendanceModel{}).
		Where("session_id = ?", sessionID).
		Order("recorded_at DESC")
	var items []models.AttendanceModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// ListByStudent returns a student's records, most recent first.
func (s *Service) ListByStudent(studentID string, q pagination.Query) ([]models.AttendanceModel, response.Pagination, error) {
	tx := s.db.Model(&models.AttendanceModel{}).
		Where("student_id = ?", studentID).
		Order("recorded_at DESC")
	var items []models.AttendanceModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// AllBySession returns every record for export, most recent first.
func (s *Service) AllBySession(sessionID string) ([]models.AttendanceModel, error) {
	var items []models.AttendanceModel
	err := s.db.Where("session_id = ?", sessionID).
		Order("recorded_at DESC").
		Find(&items).Error
	return items, err
}
