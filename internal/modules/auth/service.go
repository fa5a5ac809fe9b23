package auth

import (
	"errors"
	"time"

	"github.com/Tkay6677/Ndu-attendance/internal/models"
	sessionpkg "github.com/Tkay6677/Ndu-attendance/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Register creates an account. The unique index on email is the duplicate
// check; there is no read-then-write.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	if !dto.Role.Valid() {
		return nil, errInvalidRole
	}
	if dto.Role == models.RoleStudent && dto.StudentID == "" {
		return nil, errStudentIDRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.UserModel{
		Name:       dto.Name,
		Email:      dto.Email,
		Password:   string(hash),
		Role:       dto.Role,
		Department: dto.Department,
	}
	if u.Role == models.RoleStudent {
		u.StudentID = dto.StudentID
	}
	if err := s.db.Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

// Login verifies credentials and issues a session-bound JWT.
func (s *Service) Login(email, password, ip, ua string) (string, *models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(3 * time.Second)
			return "", nil, errUserNotFound
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		time.Sleep(3 * time.Second)
		return "", nil, errWrongPassword
	}
	token, _, err := sessionpkg.Issue(s.db, &u, ip, ua, sessionpkg.DefaultTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

// GetUser returns the account snapshot, or nil when the id is unknown.
func (s *Service) GetUser(userID string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
