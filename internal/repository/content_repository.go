package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/teacherly/teacherly-backend/internal/model"
)

// ContentRepository handles teaching content data access.
type ContentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

// GetByID retrieves a content item by ID.
func (r *ContentRepository) GetByID(ctx context.Context, id int) (*model.Content, error) {
	c := &model.Content{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, content_type, description, data, answer_key, teacher_id, created_at, updated_at
		 FROM content WHERE id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.ContentType, &c.Description, &c.Data, &c.AnswerKey, &c.TeacherID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translateNoRows(err)
	}
	return c, nil
}

// ListByTeacher retrieves content for a teacher, newest first. A teacherID of
// zero lists everything (admin view).
func (r *ContentRepository) ListByTeacher(ctx context.Context, teacherID int) ([]model.Content, error) {
	query := `SELECT id, title, content_type, description, data, answer_key, teacher_id, created_at, updated_at
	          FROM content`
	args := []interface{}{}
	if teacherID > 0 {
		query += ` WHERE teacher_id = $1`
		args = append(args, teacherID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Content{}
	for rows.Next() {
		var c model.Content
		if err := rows.Scan(&c.ID, &c.Title, &c.ContentType, &c.Description, &c.Data, &c.AnswerKey, &c.TeacherID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Create inserts a new content item and fills in the generated ID and timestamps.
func (r *ContentRepository) Create(ctx context.Context, c *model.Content) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO content (title, content_type, description, data, answer_key, teacher_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Title, c.ContentType, c.Description, c.Data, c.AnswerKey, c.TeacherID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update overwrites a content item's mutable fields.
func (r *ContentRepository) Update(ctx context.Context, c *model.Content) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE content SET title = $2, content_type = $3, description = $4, data = $5, answer_key = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		c.ID, c.Title, c.ContentType, c.Description, c.Data, c.AnswerKey,
	).Scan(&c.UpdatedAt)
	return translateNoRows(err)
}

// Delete removes a content item. Grades referencing it cascade.
func (r *ContentRepository) Delete(ctx context.Context, id int) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
