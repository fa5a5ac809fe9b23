package session

import (
	"errors"
	"time"

	"github.com/Tkay6677/Ndu-attendance/internal/models"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/pagination"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Create opens a new session owned by the given lecturer. The time window is
// computed once here and never changes afterwards; new sessions start active.
func (s *Service) Create(owner *models.UserModel, dto *CreateSessionDTO) (*models.SessionModel, error) {
	if dto.DurationMinutes <= 0 {
		return nil, errInvalidDuration
	}
	endTime := dto.StartTime.Add(time.Duration(dto.DurationMinutes) * time.Minute)
	if !endTime.After(dto.StartTime) {
		return nil, errInvalidDuration
	}

	sess := models.SessionModel{
		Title:         dto.Title,
		Course:        dto.Course,
		Location:      dto.Location,
		Department:    owner.Department,
		Lecturer:      owner.Name,
		LecturerID:    owner.ID,
		LecturerEmail: owner.Email,
		StartTime:     dto.StartTime,
		EndTime:       endTime,
		IsActive:      true,
	}
	return &sess, s.db.Create(&sess).Error
}

// GetByID returns the session snapshot, or nil when unknown.
func (s *Service) GetByID(id string) (*models.SessionModel, error) {
	var sess models.SessionModel
	if err := s.db.First(&sess, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}

// List returns sessions newest-first, optionally filtered by owning lecturer.
func (s *Service) List(q pagination.Query, lecturerID string) ([]models.SessionModel, response.Pagination, error) {
	tx := s.db.Model(&models.SessionModel{}).Order("created_at DESC")
	if lecturerID != "" {
		tx = tx.Where("lecturer_id = ?", lecturerID)
	}
	var items []models.SessionModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// SetActive toggles the active flag. Only the owning lecturer may do so;
// setting the current value again is not an error.
func (s *Service) SetActive(sessionID, requesterID string, active bool) (*models.SessionModel, error) {
	sess, err := s.GetByID(sessionID)
	if err != nil || sess == nil {
		return sess, err
	}
	if sess.LecturerID != requesterID {
		return nil, ErrNotOwner
	}
	if sess.IsActive == active {
		return sess, nil
	}
	if err := s.db.Model(sess).Update("is_active", active).Error; err != nil {
		return nil, err
	}
	sess.IsActive = active
	return sess, nil
}
