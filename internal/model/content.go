package model

import (
	"encoding/json"
	"time"
)

// ContentType classifies a content item.
type ContentType string

const (
	ContentTypeMaterial ContentType = "material"
	ContentTypeExam     ContentType = "exam"
	ContentTypeQuiz     ContentType = "quiz"
)

// Content is a teaching material, exam or quiz authored by a teacher.
// Data holds the free-form body (questions, sections, links); AnswerKey holds
// the grading key for exams and quizzes.
type Content struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	ContentType ContentType     `json:"content_type"`
	Description string          `json:"description,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	AnswerKey   json.RawMessage `json:"answer_key,omitempty"`
	TeacherID   int             `json:"teacher_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateContentRequest is the payload for creating a content item.
type CreateContentRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=255"`
	ContentType ContentType     `json:"content_type" binding:"required,oneof=material exam quiz"`
	Description string          `json:"description" binding:"omitempty,max=4000"`
	Data        json.RawMessage `json:"data" binding:"omitempty"`
	AnswerKey   json.RawMessage `json:"answer_key" binding:"omitempty"`
}

// UpdateContentRequest is the payload for updating a content item.
type UpdateContentRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=255"`
	ContentType ContentType     `json:"content_type" binding:"required,oneof=material exam quiz"`
	Description string          `json:"description" binding:"omitempty,max=4000"`
	Data        json.RawMessage `json:"data" binding:"omitempty"`
	AnswerKey   json.RawMessage `json:"answer_key" binding:"omitempty"`
}
