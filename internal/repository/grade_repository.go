package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/teacherly/teacherly-backend/internal/model"
)

// GradeRepository handles gradebook data access.
type GradeRepository struct {
	pool *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(pool *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{pool: pool}
}

// Create inserts a new grade and fills in the generated ID and timestamps.
func (r *GradeRepository) Create(ctx context.Context, g *model.Grade) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO grades (student_id, content_id, score, max_score, feedback)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, grading_date, created_at`,
		g.StudentID, g.ContentID, g.Score, g.MaxScore, g.Feedback,
	).Scan(&g.ID, &g.GradingDate, &g.CreatedAt)
}

// ListByStudent retrieves a student's grades, newest first.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Grade, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, content_id, score, max_score, feedback, grading_date, created_at
		 FROM grades WHERE student_id = $1 ORDER BY grading_date DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grades := []model.Grade{}
	for rows.Next() {
		var g model.Grade
		if err := rows.Scan(&g.ID, &g.StudentID, &g.ContentID, &g.Score, &g.MaxScore, &g.Feedback, &g.GradingDate, &g.CreatedAt); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// Delete removes a grade for a specific student. The student filter keeps a
// caller from deleting another roster's grades by ID guessing.
func (r *GradeRepository) Delete(ctx context.Context, id, studentID int) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM grades WHERE id = $1 AND student_id = $2`, id, studentID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
