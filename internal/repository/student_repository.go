package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/teacherly/teacherly-backend/internal/model"
)

// StudentRepository handles roster data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, full_name, grade_level, parent_email, teacher_id, created_at, updated_at
		 FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.FullName, &s.GradeLevel, &s.ParentEmail, &s.TeacherID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, translateNoRows(err)
	}
	return s, nil
}

// ListByTeacher retrieves all students belonging to a teacher. A teacherID of
// zero lists every student (admin view).
func (r *StudentRepository) ListByTeacher(ctx context.Context, teacherID int) ([]model.Student, error) {
	query := `SELECT id, full_name, grade_level, parent_email, teacher_id, created_at, updated_at
	          FROM students`
	args := []interface{}{}
	if teacherID > 0 {
		query += ` WHERE teacher_id = $1`
		args = append(args, teacherID)
	}
	query += ` ORDER BY full_name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.FullName, &s.GradeLevel, &s.ParentEmail, &s.TeacherID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Create inserts a new student and fills in the generated ID and timestamps.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO students (full_name, grade_level, parent_email, teacher_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.FullName, s.GradeLevel, s.ParentEmail, s.TeacherID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update overwrites a student's mutable fields.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE students SET full_name = $2, grade_level = $3, parent_email = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		s.ID, s.FullName, s.GradeLevel, s.ParentEmail,
	).Scan(&s.UpdatedAt)
	return translateNoRows(err)
}

// Delete removes a student. Grades and attendance cascade at the schema level.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
