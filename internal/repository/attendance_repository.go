package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/teacherly/teacherly-backend/internal/model"
)

// AttendanceRepository handles attendance data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Create inserts a new attendance record. One record per student per date;
// re-recording the same date overwrites the previous status.
func (r *AttendanceRepository) Create(ctx context.Context, a *model.Attendance) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO attendance (student_id, attendance_date, status, notes)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (student_id, attendance_date)
		 DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes
		 RETURNING id, created_at`,
		a.StudentID, a.AttendanceDate, a.Status, a.Notes,
	).Scan(&a.ID, &a.CreatedAt)
}

// ListByStudent retrieves attendance records for a student within a date
// range, most recent first. Zero times mean an open-ended range.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int, from, to time.Time) ([]model.Attendance, error) {
	query := `SELECT id, student_id, attendance_date, status, notes, created_at
	          FROM attendance WHERE student_id = $1`
	args := []interface{}{studentID}
	if !from.IsZero() {
		args = append(args, from)
		query += ` AND attendance_date >= $2`
	}
	if !to.IsZero() {
		args = append(args, to)
		if len(args) == 3 {
			query += ` AND attendance_date <= $3`
		} else {
			query += ` AND attendance_date <= $2`
		}
	}
	query += ` ORDER BY attendance_date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.Attendance{}
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.StudentID, &a.AttendanceDate, &a.Status, &a.Notes, &a.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
