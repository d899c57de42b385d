package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/teacherly/teacherly-backend/internal/config"
	"github.com/teacherly/teacherly-backend/internal/middleware"
	"github.com/teacherly/teacherly-backend/internal/model"
	"github.com/teacherly/teacherly-backend/internal/repository"
	"github.com/teacherly/teacherly-backend/internal/service"
	"github.com/teacherly/teacherly-backend/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

// memoryUserStore backs the auth service in handler tests.
type memoryUserStore struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*model.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[int]*model.User)}
}

func (s *memoryUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memoryUserStore) GetByID(_ context.Context, id int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memoryUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memoryUserStore) Update(_ context.Context, id int, patch model.UserPatch) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	cp := *u
	return &cp, nil
}

// discardMailer swallows outgoing mail.
type discardMailer struct{}

func (discardMailer) Send(context.Context, string, string, string) error { return nil }

// newAuthTestRouter wires the auth routes the way the main router does,
// against an in-memory user store.
func newAuthTestRouter(t *testing.T) (*gin.Engine, *memoryUserStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Setup()

	cfg := &config.Config{
		JWTSecret:      "handler-test-secret",
		AccessTokenTTL: 30 * time.Minute,
		ResetTokenTTL:  15 * time.Minute,
		BcryptCost:     bcrypt.MinCost,
		FrontendURL:    "http://localhost:3001",
	}
	store := newMemoryUserStore()
	authService := service.NewAuthService(cfg, store, discardMailer{}, zerolog.Nop())
	h := NewAuthHandler(authService, cfg)

	r := gin.New()
	r.Use(middleware.ResolveSession(authService))

	auth := r.Group("/api/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.POST("/forgot-password", h.ForgotPassword)
	auth.POST("/reset-password", h.ResetPassword)
	auth.GET("/users/me", middleware.RequireUser(store), h.Me)

	return r, store
}

func postJSON(t *testing.T, r *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			return ck
		}
	}
	t.Fatalf("no %s cookie in response", middleware.SessionCookieName)
	return nil
}

func TestRegisterLoginMeFlow(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/register",
		`{"email":"teach@x.com","password":"pw123456","full_name":"Pat Teacher"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotContains(t, w.Body.String(), "password_hash")

	w = postJSON(t, r, "/api/auth/login", `{"email":"teach@x.com","password":"pw123456"}`)
	require.Equal(t, http.StatusOK, w.Code)

	ck := sessionCookie(t, w)
	require.NotEmpty(t, ck.Value)
	require.True(t, ck.HttpOnly)
	require.Equal(t, "/", ck.Path)
	require.Equal(t, int((30 * time.Minute).Seconds()), ck.MaxAge)
	// The token travels only in the cookie, never in the body.
	require.NotContains(t, w.Body.String(), ck.Value)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/users/me", nil)
	req.AddCookie(ck)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code)
	require.Contains(t, me.Body.String(), "teach@x.com")
}

func TestMeWithoutCookie(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/users/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	body := `{"email":"dup@x.com","password":"pw123456","full_name":"Pat"}`
	require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/auth/register", body).Code)

	w := postJSON(t, r, "/api/auth/register", body)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "EMAIL_ALREADY_REGISTERED")
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	// Short password and malformed email both fail binding.
	w := postJSON(t, r, "/api/auth/register", `{"email":"not-an-email","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestLoginBadCredentials(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	postJSON(t, r, "/api/auth/register",
		`{"email":"teach@x.com","password":"pw123456","full_name":"Pat"}`)

	for _, body := range []string{
		`{"email":"teach@x.com","password":"wrong-password"}`,
		`{"email":"ghost@x.com","password":"pw123456"}`,
	} {
		w := postJSON(t, r, "/api/auth/login", body)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/logout", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	ck := sessionCookie(t, w)
	require.Empty(t, ck.Value)
	require.Negative(t, ck.MaxAge)
}

func TestForgotPasswordGenericMessage(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	postJSON(t, r, "/api/auth/register",
		`{"email":"teach@x.com","password":"pw123456","full_name":"Pat"}`)

	known := postJSON(t, r, "/api/auth/forgot-password", `{"email":"teach@x.com"}`)
	unknown := postJSON(t, r, "/api/auth/forgot-password", `{"email":"ghost@x.com"}`)

	require.Equal(t, http.StatusOK, known.Code)
	require.Equal(t, http.StatusOK, unknown.Code)
	require.Contains(t, known.Body.String(), service.MsgResetRequested)
	require.Contains(t, unknown.Body.String(), service.MsgResetRequested)
}

func TestResetPasswordBadToken(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/reset-password",
		`{"token":"garbage","new_password":"pw123456"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "RESET_TOKEN_INVALID")
}
