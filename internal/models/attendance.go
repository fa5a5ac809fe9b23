package models

import "time"

// AttendanceModel is one append-only attendance fact. The composite unique
// index on (session_id, student_id) is what makes recording exactly-once:
// concurrent inserts for the same pair are resolved by the database, never
// by an application-level existence check.
type AttendanceModel struct {
	Base
	SessionID    string    `json:"session_id"    gorm:"uniqueIndex:idx_session_student;not null"`
	StudentID    string    `json:"student_id"    gorm:"uniqueIndex:idx_session_student;not null;index"`
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	RecordedAt   time.Time `json:"recorded_at"   gorm:"not null;index"`
}

func (AttendanceModel) TableName() string { return "attendance_records" }
