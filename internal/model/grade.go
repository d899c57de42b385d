package model

import "time"

// Grade records a student's score for a piece of content (exam or quiz).
type Grade struct {
	ID          int       `json:"id"`
	StudentID   int       `json:"student_id"`
	ContentID   int       `json:"content_id"`
	Score       float64   `json:"score"`
	MaxScore    *float64  `json:"max_score,omitempty"`
	Feedback    string    `json:"feedback,omitempty"`
	GradingDate time.Time `json:"grading_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateGradeRequest is the payload for recording a grade.
type CreateGradeRequest struct {
	ContentID int      `json:"content_id" binding:"required"`
	Score     float64  `json:"score" binding:"min=0"`
	MaxScore  *float64 `json:"max_score" binding:"omitempty,min=0"`
	Feedback  string   `json:"feedback" binding:"omitempty,max=4000"`
}
