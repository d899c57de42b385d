package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teacherly/teacherly-backend/internal/model"
	"github.com/teacherly/teacherly-backend/internal/repository"
	"github.com/teacherly/teacherly-backend/internal/response"
)

// AccountAdmin is the account management surface the admin endpoints need.
// *service.UserService satisfies it.
type AccountAdmin interface {
	List(ctx context.Context, page, perPage int) ([]model.User, int, error)
	SetActive(ctx context.Context, id int, active bool) (*model.User, error)
}

// AdminUserHandler handles the admin-only account management surface.
// Accounts are never deleted; deactivation flips the active flag.
type AdminUserHandler struct {
	accounts AccountAdmin
}

// NewAdminUserHandler creates a new AdminUserHandler.
func NewAdminUserHandler(accounts AccountAdmin) *AdminUserHandler {
	return &AdminUserHandler{accounts: accounts}
}

// ListUsers godoc
// GET /api/admin/users?page=1&per_page=10
func (h *AdminUserHandler) ListUsers(c *gin.Context) {
	// Clamp before use: per_page feeds the totalPages division below, so a
	// zero or negative query value must never survive parsing.
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if perPage < 1 {
		perPage = 10
	}

	users, total, err := h.accounts.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	totalPages := (total + perPage - 1) / perPage
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"users": users}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// DeactivateUser godoc
// POST /api/admin/users/:id/deactivate
func (h *AdminUserHandler) DeactivateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.accounts.SetActive(c.Request.Context(), id, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ActivateUser godoc
// POST /api/admin/users/:id/activate
func (h *AdminUserHandler) ActivateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.accounts.SetActive(c.Request.Context(), id, true)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
