package models

import "time"

// SessionModel is a single time-boxed class meeting. The time window is fixed
// at creation; only IsActive may change afterwards, and only by the owner.
type SessionModel struct {
	Base
	Title         string    `json:"title"          gorm:"not null"`
	Course        string    `json:"course"         gorm:"not null;index"`
	Location      string    `json:"location"`
	Department    string    `json:"department"`
	Lecturer      string    `json:"lecturer"`
	LecturerID    string    `json:"lecturer_id"    gorm:"index;not null"`
	LecturerEmail string    `json:"lecturer_email" gorm:"index"`
	StartTime     time.Time `json:"start_time"     gorm:"not null"`
	EndTime       time.Time `json:"end_time"       gorm:"not null"`
	IsActive      bool      `json:"is_active"      gorm:"not null;default:true"`
}

func (SessionModel) TableName() string { return "sessions" }
