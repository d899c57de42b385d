package service

import (
	"context"
	"fmt"
	"time"

	"github.com/teacherly/teacherly-backend/internal/model"
	"github.com/teacherly/teacherly-backend/internal/repository"
)

// GradebookService handles grades and attendance for roster students.
// Ownership is derived through the student record: the acting teacher must
// own the student (admins bypass).
type GradebookService struct {
	grades     *repository.GradeRepository
	attendance *repository.AttendanceRepository
	students   *repository.StudentRepository
	content    *repository.ContentRepository
}

// NewGradebookService creates a new GradebookService.
func NewGradebookService(
	grades *repository.GradeRepository,
	attendance *repository.AttendanceRepository,
	students *repository.StudentRepository,
	content *repository.ContentRepository,
) *GradebookService {
	return &GradebookService{grades: grades, attendance: attendance, students: students, content: content}
}

func (s *GradebookService) ownedStudent(ctx context.Context, actor *model.User, studentID int) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleAdmin && student.TeacherID != actor.ID {
		return nil, ErrForbidden
	}
	return student, nil
}

// RecordGrade records a score for a student against a content item.
func (s *GradebookService) RecordGrade(ctx context.Context, actor *model.User, studentID int, req model.CreateGradeRequest) (*model.Grade, error) {
	if _, err := s.ownedStudent(ctx, actor, studentID); err != nil {
		return nil, err
	}

	// The content item must exist and belong to the same teacher scope.
	item, err := s.content.GetByID(ctx, req.ContentID)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleAdmin && item.TeacherID != actor.ID {
		return nil, ErrForbidden
	}

	grade := &model.Grade{
		StudentID: studentID,
		ContentID: req.ContentID,
		Score:     req.Score,
		MaxScore:  req.MaxScore,
		Feedback:  req.Feedback,
	}
	if err := s.grades.Create(ctx, grade); err != nil {
		return nil, fmt.Errorf("create grade: %w", err)
	}
	return grade, nil
}

// ListGrades retrieves a student's grades.
func (s *GradebookService) ListGrades(ctx context.Context, actor *model.User, studentID int) ([]model.Grade, error) {
	if _, err := s.ownedStudent(ctx, actor, studentID); err != nil {
		return nil, err
	}
	return s.grades.ListByStudent(ctx, studentID)
}

// DeleteGrade removes a single grade from a student's record.
func (s *GradebookService) DeleteGrade(ctx context.Context, actor *model.User, studentID, gradeID int) error {
	if _, err := s.ownedStudent(ctx, actor, studentID); err != nil {
		return err
	}
	return s.grades.Delete(ctx, gradeID, studentID)
}

// RecordAttendance stores an attendance status for a student on a date.
// Recording the same date twice overwrites the earlier status.
func (s *GradebookService) RecordAttendance(ctx context.Context, actor *model.User, studentID int, req model.CreateAttendanceRequest) (*model.Attendance, error) {
	if _, err := s.ownedStudent(ctx, actor, studentID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.AttendanceDate)
	if err != nil {
		return nil, fmt.Errorf("parse attendance date: %w", err)
	}

	record := &model.Attendance{
		StudentID:      studentID,
		AttendanceDate: date,
		Status:         req.Status,
		Notes:          req.Notes,
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}
	return record, nil
}

// ListAttendance retrieves a student's attendance records, optionally
// bounded by a date range.
func (s *GradebookService) ListAttendance(ctx context.Context, actor *model.User, studentID int, from, to time.Time) ([]model.Attendance, error) {
	if _, err := s.ownedStudent(ctx, actor, studentID); err != nil {
		return nil, err
	}
	return s.attendance.ListByStudent(ctx, studentID, from, to)
}
