package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/teacherly/teacherly-backend/internal/model"
	"github.com/teacherly/teacherly-backend/internal/repository"
)

// ErrForbidden is returned when a teacher touches a resource owned by
// another teacher. Admins bypass ownership checks.
var ErrForbidden = errors.New("resource belongs to another teacher")

// StudentService handles roster business logic. Every operation is scoped to
// the acting user: teachers see only their own students, admins see all.
type StudentService struct {
	students *repository.StudentRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(students *repository.StudentRepository) *StudentService {
	return &StudentService{students: students}
}

// List retrieves the actor's roster (or every roster for admins).
func (s *StudentService) List(ctx context.Context, actor *model.User) ([]model.Student, error) {
	teacherID := actor.ID
	if actor.Role == model.RoleAdmin {
		teacherID = 0
	}
	return s.students.ListByTeacher(ctx, teacherID)
}

// Get retrieves a single student, enforcing roster ownership.
func (s *StudentService) Get(ctx context.Context, actor *model.User, id int) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleAdmin && student.TeacherID != actor.ID {
		return nil, ErrForbidden
	}
	return student, nil
}

// Create adds a student to the actor's roster.
func (s *StudentService) Create(ctx context.Context, actor *model.User, req model.CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		FullName:    req.FullName,
		GradeLevel:  req.GradeLevel,
		ParentEmail: req.ParentEmail,
		TeacherID:   actor.ID,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	return student, nil
}

// Update modifies a roster entry, enforcing ownership.
func (s *StudentService) Update(ctx context.Context, actor *model.User, id int, req model.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	student.FullName = req.FullName
	student.GradeLevel = req.GradeLevel
	student.ParentEmail = req.ParentEmail
	if err := s.students.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("update student: %w", err)
	}
	return student, nil
}

// Delete removes a roster entry, enforcing ownership. Grades and attendance
// for the student cascade at the schema level.
func (s *StudentService) Delete(ctx context.Context, actor *model.User, id int) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.students.Delete(ctx, id)
}
