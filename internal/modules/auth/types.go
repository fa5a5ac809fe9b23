package auth

import (
	"errors"
	"time"

	"github.com/Tkay6677/Ndu-attendance/internal/models"
)

type RegisterDTO struct {
	Name       string      `json:"name"       binding:"required"`
	Email      string      `json:"email"      binding:"required,email"`
	Password   string      `json:"password"   binding:"required,min=8"`
	Role       models.Role `json:"role"       binding:"required"`
	StudentID  string      `json:"student_id"`
	Department string      `json:"department" binding:"required"`
}

type LoginDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RevokeSessionDTO struct {
	SessionID string `json:"session_id" binding:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       models.Role `json:"role"`
	StudentID  string      `json:"student_id,omitempty"`
	Department string      `json:"department"`
	Created    time.Time   `json:"created"`
}

var (
	errEmailTaken        = errors.New("email already registered")
	errInvalidRole       = errors.New("invalid role")
	errStudentIDRequired = errors.New("student id is required for student accounts")
	errUserNotFound      = errors.New("user not found")
	errWrongPassword     = errors.New("wrong password")
)

func toUserResponse(u *models.UserModel) userResponse {
	return userResponse{
		ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role,
		StudentID: u.StudentID, Department: u.Department, Created: u.CreatedAt,
	}
}
