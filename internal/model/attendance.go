package model

import "time"

// AttendanceStatus is the recorded state for a student on a given date.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// Attendance is a dated attendance record for a student.
type Attendance struct {
	ID             int              `json:"id"`
	StudentID      int              `json:"student_id"`
	AttendanceDate time.Time        `json:"attendance_date"`
	Status         AttendanceStatus `json:"status"`
	Notes          string           `json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// CreateAttendanceRequest is the payload for recording attendance.
type CreateAttendanceRequest struct {
	AttendanceDate string           `json:"attendance_date" binding:"required,datetime=2006-01-02"`
	Status         AttendanceStatus `json:"status" binding:"required,oneof=present absent late excused"`
	Notes          string           `json:"notes" binding:"omitempty,max=1000"`
}
