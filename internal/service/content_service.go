package service

import (
	"context"
	"fmt"

	"github.com/teacherly/teacherly-backend/internal/model"
	"github.com/teacherly/teacherly-backend/internal/repository"
)

// ContentService handles teaching content business logic, scoped to the
// acting user like the roster.
type ContentService struct {
	content *repository.ContentRepository
}

// NewContentService creates a new ContentService.
func NewContentService(content *repository.ContentRepository) *ContentService {
	return &ContentService{content: content}
}

// List retrieves the actor's content (or all content for admins).
func (s *ContentService) List(ctx context.Context, actor *model.User) ([]model.Content, error) {
	teacherID := actor.ID
	if actor.Role == model.RoleAdmin {
		teacherID = 0
	}
	return s.content.ListByTeacher(ctx, teacherID)
}

// Get retrieves a single content item, enforcing ownership.
func (s *ContentService) Get(ctx context.Context, actor *model.User, id int) (*model.Content, error) {
	item, err := s.content.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleAdmin && item.TeacherID != actor.ID {
		return nil, ErrForbidden
	}
	return item, nil
}

// Create adds a content item authored by the actor.
func (s *ContentService) Create(ctx context.Context, actor *model.User, req model.CreateContentRequest) (*model.Content, error) {
	item := &model.Content{
		Title:       req.Title,
		ContentType: req.ContentType,
		Description: req.Description,
		Data:        req.Data,
		AnswerKey:   req.AnswerKey,
		TeacherID:   actor.ID,
	}
	if err := s.content.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return item, nil
}

// Update modifies a content item, enforcing ownership.
func (s *ContentService) Update(ctx context.Context, actor *model.User, id int, req model.UpdateContentRequest) (*model.Content, error) {
	item, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	item.Title = req.Title
	item.ContentType = req.ContentType
	item.Description = req.Description
	item.Data = req.Data
	item.AnswerKey = req.AnswerKey
	if err := s.content.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	return item, nil
}

// Delete removes a content item, enforcing ownership.
func (s *ContentService) Delete(ctx context.Context, actor *model.User, id int) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.content.Delete(ctx, id)
}
