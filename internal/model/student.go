package model

import "time"

// Student is a pupil managed by a teacher. Students do not log in; they are
// roster entries that grades and attendance hang off.
type Student struct {
	ID          int       `json:"id"`
	FullName    string    `json:"full_name"`
	GradeLevel  string    `json:"grade_level,omitempty"`
	ParentEmail string    `json:"parent_email,omitempty"`
	TeacherID   int       `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateStudentRequest is the payload for adding a student to the roster.
type CreateStudentRequest struct {
	FullName    string `json:"full_name" binding:"required,min=2,max=255"`
	GradeLevel  string `json:"grade_level" binding:"omitempty,max=50"`
	ParentEmail string `json:"parent_email" binding:"omitempty,email,max=255"`
}

// UpdateStudentRequest is the payload for updating a roster entry.
type UpdateStudentRequest struct {
	FullName    string `json:"full_name" binding:"required,min=2,max=255"`
	GradeLevel  string `json:"grade_level" binding:"omitempty,max=50"`
	ParentEmail string `json:"parent_email" binding:"omitempty,email,max=255"`
}
