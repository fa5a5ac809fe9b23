package models

import "time"

// Role is the account capability: students scan, lecturers run sessions.
type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleStudent || r == RoleLecturer }

// UserModel represents a registered account (student or lecturer).
type UserModel struct {
	Base
	Name       string `json:"name"       gorm:"not null"`
	Email      string `json:"email"      gorm:"uniqueIndex;not null"`
	Password   string `json:"-"          gorm:"not null"`
	Role       Role   `json:"role"       gorm:"type:varchar(16);not null;index"`
	StudentID  string `json:"student_id,omitempty"`
	Department string `json:"department"`
}

func (UserModel) TableName() string { return "users" }

// UserSession tracks signed-in JWT sessions for device/session management.
type UserSession struct {
	Base
	UserID    string     `json:"user_id"    gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua"         gorm:"type:text"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revoked_at" gorm:"index"`
}

func (UserSession) TableName() string { return "user_sessions" }
