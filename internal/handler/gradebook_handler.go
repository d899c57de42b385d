package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teacherly/teacherly-backend/internal/middleware"
	"github.com/teacherly/teacherly-backend/internal/model"
	"github.com/teacherly/teacherly-backend/internal/response"
	"github.com/teacherly/teacherly-backend/internal/service"
	"github.com/teacherly/teacherly-backend/internal/validator"
)

// GradebookHandler handles grade and attendance endpoints, nested under a
// student resource.
type GradebookHandler struct {
	gradebookService *service.GradebookService
}

// NewGradebookHandler creates a new GradebookHandler.
func NewGradebookHandler(gradebookService *service.GradebookService) *GradebookHandler {
	return &GradebookHandler{gradebookService: gradebookService}
}

// RecordGrade godoc
// POST /api/students/:id/grades
func (h *GradebookHandler) RecordGrade(c *gin.Context) {
	actor := middleware.SessionUser(c)
	studentID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.CreateGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	grade, err := h.gradebookService.RecordGrade(c.Request.Context(), actor, studentID, req)
	if err != nil {
		failStudentErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"grade": grade})
}

// ListGrades godoc
// GET /api/students/:id/grades
func (h *GradebookHandler) ListGrades(c *gin.Context) {
	actor := middleware.SessionUser(c)
	studentID, ok := pathID(c)
	if !ok {
		return
	}

	grades, err := h.gradebookService.ListGrades(c.Request.Context(), actor, studentID)
	if err != nil {
		failStudentErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"grades": grades})
}

// DeleteGrade godoc
// DELETE /api/students/:id/grades/:grade_id
func (h *GradebookHandler) DeleteGrade(c *gin.Context) {
	actor := middleware.SessionUser(c)
	studentID, ok := pathID(c)
	if !ok {
		return
	}
	gradeID, err := strconv.Atoi(c.Param("grade_id"))
	if err != nil || gradeID < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.gradebookService.DeleteGrade(c.Request.Context(), actor, studentID, gradeID); err != nil {
		failStudentErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// RecordAttendance godoc
// POST /api/students/:id/attendance
func (h *GradebookHandler) RecordAttendance(c *gin.Context) {
	actor := middleware.SessionUser(c)
	studentID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.CreateAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.gradebookService.RecordAttendance(c.Request.Context(), actor, studentID, req)
	if err != nil {
		failStudentErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"attendance": record})
}

// ListAttendance godoc
// GET /api/students/:id/attendance?from=2006-01-02&to=2006-01-02
func (h *GradebookHandler) ListAttendance(c *gin.Context) {
	actor := middleware.SessionUser(c)
	studentID, ok := pathID(c)
	if !ok {
		return
	}

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
			return
		}
		to = parsed
	}

	records, err := h.gradebookService.ListAttendance(c.Request.Context(), actor, studentID, from, to)
	if err != nil {
		failStudentErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}
