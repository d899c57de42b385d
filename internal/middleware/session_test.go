package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/teacherly/teacherly-backend/internal/config"
	"github.com/teacherly/teacherly-backend/internal/model"
	"github.com/teacherly/teacherly-backend/internal/repository"
	"github.com/teacherly/teacherly-backend/internal/service"
)

// fakeUserLoader serves canned user records by ID.
type fakeUserLoader struct {
	users map[int]*model.User
}

func (f *fakeUserLoader) GetByID(_ context.Context, id int) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func newSessionTestRig(t *testing.T, users map[int]*model.User) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:      "session-test-secret",
		AccessTokenTTL: 30 * time.Minute,
		ResetTokenTTL:  15 * time.Minute,
	}
	// Token verification never touches the user store or the mailer.
	authService := service.NewAuthService(cfg, nil, nil, zerolog.Nop())
	loader := &fakeUserLoader{users: users}

	r := gin.New()
	r.Use(ResolveSession(authService))

	r.GET("/open", func(c *gin.Context) {
		id, ok := SessionUserID(c)
		c.JSON(http.StatusOK, gin.H{"anonymous": !ok, "user_id": id})
	})

	authed := r.Group("/", RequireUser(loader))
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": SessionUser(c).Email})
	})

	admin := r.Group("/admin", RequireUser(loader), RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r, authService
}

func doRequest(t *testing.T, r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResolveSessionAnonymousOnMissingCookie(t *testing.T) {
	r, _ := newSessionTestRig(t, nil)

	w := doRequest(t, r, "/open", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"anonymous":true`)
}

func TestResolveSessionAnonymousOnGarbageToken(t *testing.T) {
	r, _ := newSessionTestRig(t, nil)

	w := doRequest(t, r, "/open", "not-a-real-token")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"anonymous":true`)
}

func TestResolveSessionIdentifiesValidToken(t *testing.T) {
	r, authService := newSessionTestRig(t, nil)

	token, err := authService.IssueAccessToken(7)
	require.NoError(t, err)

	w := doRequest(t, r, "/open", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"anonymous":false`)
	require.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestRequireUserRejectsAnonymous(t *testing.T) {
	r, _ := newSessionTestRig(t, nil)

	w := doRequest(t, r, "/me", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, "/me", "garbage")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUserLoadsActiveAccount(t *testing.T) {
	users := map[int]*model.User{
		7: {ID: 7, Email: "teach@x.com", Role: model.RoleTeacher, IsActive: true},
	}
	r, authService := newSessionTestRig(t, users)

	token, err := authService.IssueAccessToken(7)
	require.NoError(t, err)

	w := doRequest(t, r, "/me", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "teach@x.com")
}

func TestRequireUserRejectsInactiveAccount(t *testing.T) {
	users := map[int]*model.User{
		7: {ID: 7, Email: "teach@x.com", Role: model.RoleTeacher, IsActive: false},
	}
	r, authService := newSessionTestRig(t, users)

	token, err := authService.IssueAccessToken(7)
	require.NoError(t, err)

	w := doRequest(t, r, "/me", token)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireUserRejectsVanishedAccount(t *testing.T) {
	r, authService := newSessionTestRig(t, nil)

	// Token is valid but no such user exists anymore.
	token, err := authService.IssueAccessToken(999)
	require.NoError(t, err)

	w := doRequest(t, r, "/me", token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	users := map[int]*model.User{
		1: {ID: 1, Email: "admin@x.com", Role: model.RoleAdmin, IsActive: true},
		2: {ID: 2, Email: "teach@x.com", Role: model.RoleTeacher, IsActive: true},
	}
	r, authService := newSessionTestRig(t, users)

	adminToken, err := authService.IssueAccessToken(1)
	require.NoError(t, err)
	teacherToken, err := authService.IssueAccessToken(2)
	require.NoError(t, err)

	w := doRequest(t, r, "/admin/ping", adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, "/admin/ping", teacherToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, "/admin/ping", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
