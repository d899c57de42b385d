package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teacherly/teacherly-backend/internal/middleware"
	"github.com/teacherly/teacherly-backend/internal/model"
	"github.com/teacherly/teacherly-backend/internal/response"
	"github.com/teacherly/teacherly-backend/internal/service"
	"github.com/teacherly/teacherly-backend/internal/validator"
)

// ContentHandler handles teaching content endpoints.
type ContentHandler struct {
	contentService *service.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// ListContent godoc
// GET /api/content
func (h *ContentHandler) ListContent(c *gin.Context) {
	actor := middleware.SessionUser(c)

	items, err := h.contentService.List(c.Request.Context(), actor)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"content": items})
}

// GetContent godoc
// GET /api/content/:id
func (h *ContentHandler) GetContent(c *gin.Context) {
	actor := middleware.SessionUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.contentService.Get(c.Request.Context(), actor, id)
	if err != nil {
		failStudentErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"content": item})
}

// CreateContent godoc
// POST /api/content
func (h *ContentHandler) CreateContent(c *gin.Context) {
	actor := middleware.SessionUser(c)

	var req model.CreateContentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	item, err := h.contentService.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"content": item})
}

// UpdateContent godoc
// PUT /api/content/:id
func (h *ContentHandler) UpdateContent(c *gin.Context) {
	actor := middleware.SessionUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateContentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	item, err := h.contentService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		failStudentErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"content": item})
}

// DeleteContent godoc
// DELETE /api/content/:id
func (h *ContentHandler) DeleteContent(c *gin.Context) {
	actor := middleware.SessionUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.contentService.Delete(c.Request.Context(), actor, id); err != nil {
		failStudentErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
