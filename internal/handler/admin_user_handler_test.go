package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/teacherly/teacherly-backend/internal/model"
	"github.com/teacherly/teacherly-backend/internal/repository"
)

// fakeAccountAdmin records the paging values the handler passes down.
type fakeAccountAdmin struct {
	lastPage    int
	lastPerPage int
	users       map[int]*model.User
}

func (f *fakeAccountAdmin) List(_ context.Context, page, perPage int) ([]model.User, int, error) {
	f.lastPage = page
	f.lastPerPage = perPage
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeAccountAdmin) SetActive(_ context.Context, id int, active bool) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.IsActive = active
	return u, nil
}

func newAdminTestRouter(t *testing.T, accounts *fakeAccountAdmin) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewAdminUserHandler(accounts)

	r := gin.New()
	r.GET("/admin/users", h.ListUsers)
	r.POST("/admin/users/:id/deactivate", h.DeactivateUser)
	r.POST("/admin/users/:id/activate", h.ActivateUser)
	return r
}

func getPath(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListUsersClampsPaging(t *testing.T) {
	accounts := &fakeAccountAdmin{users: map[int]*model.User{
		1: {ID: 1, Email: "a@x.com", Role: model.RoleTeacher, IsActive: true},
	}}
	r := newAdminTestRouter(t, accounts)

	// Zero and negative query values must not reach the pagination math.
	for _, path := range []string{
		"/admin/users?per_page=0",
		"/admin/users?per_page=-5",
		"/admin/users?page=0&per_page=0",
		"/admin/users?page=-1",
	} {
		w := getPath(t, r, path)
		require.Equal(t, http.StatusOK, w.Code, path)
		require.GreaterOrEqual(t, accounts.lastPage, 1, path)
		require.GreaterOrEqual(t, accounts.lastPerPage, 1, path)
	}

	// Defaults land in the pagination metadata.
	w := getPath(t, r, "/admin/users?per_page=0")
	require.Contains(t, w.Body.String(), `"per_page":10`)
	require.Contains(t, w.Body.String(), `"page":1`)
}

func TestListUsersHonorsExplicitPaging(t *testing.T) {
	accounts := &fakeAccountAdmin{users: map[int]*model.User{}}
	r := newAdminTestRouter(t, accounts)

	w := getPath(t, r, "/admin/users?page=3&per_page=25")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 3, accounts.lastPage)
	require.Equal(t, 25, accounts.lastPerPage)
}

func TestDeactivateThenActivate(t *testing.T) {
	accounts := &fakeAccountAdmin{users: map[int]*model.User{
		7: {ID: 7, Email: "teach@x.com", Role: model.RoleTeacher, IsActive: true},
	}}
	r := newAdminTestRouter(t, accounts)

	req := httptest.NewRequest(http.MethodPost, "/admin/users/7/deactivate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, accounts.users[7].IsActive)

	req = httptest.NewRequest(http.MethodPost, "/admin/users/7/activate", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, accounts.users[7].IsActive)

	req = httptest.NewRequest(http.MethodPost, "/admin/users/999/deactivate", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
