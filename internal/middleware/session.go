package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teacherly/teacherly-backend/internal/model"
	"github.com/teacherly/teacherly-backend/internal/response"
	"github.com/teacherly/teacherly-backend/internal/service"
)

const (
	// SessionCookieName is the cookie carrying the access token.
	SessionCookieName = "access_token"

	// ContextKeyUserID is the Gin context key for the resolved user ID.
	ContextKeyUserID = "session_user_id"
	// ContextKeyUser is the Gin context key for the loaded user record.
	ContextKeyUser = "session_user"
)

// ResolveSession maps the session cookie to an identity. A missing cookie
// and an invalid or expired token both resolve to anonymous — never an
// error. Whether anonymous is acceptable is the downstream handler's call.
func ResolveSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookieName)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}

		userID, err := authService.VerifyAccessToken(tokenStr)
		if err != nil {
			// Garbage or expired token is treated as no credential at all.
			c.Next()
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// UserLoader resolves a user ID to the stored record.
// *service.UserService satisfies it.
type UserLoader interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
}

// RequireUser rejects anonymous requests and loads the authenticated user
// into the context. Inactive accounts are rejected separately from
// unauthenticated ones.
func RequireUser(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := SessionUserID(c)
		if !ok {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrNotAuthenticated)
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			// Token is valid but the account vanished; treat as unauthenticated.
			response.AbortFail(c, http.StatusUnauthorized, response.ErrNotAuthenticated)
			return
		}
		if !user.IsActive {
			response.AbortFail(c, http.StatusForbidden, response.ErrAccountInactive)
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// RequireAdmin rejects non-admin users. Must run after RequireUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := SessionUser(c)
		if user == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrNotAuthenticated)
			return
		}
		if user.Role != model.RoleAdmin {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminOnly)
			return
		}
		c.Next()
	}
}

// SessionUserID retrieves the resolved user ID from the Gin context.
// The second return is false for anonymous requests.
func SessionUserID(c *gin.Context) (int, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := val.(int)
	return id, ok
}

// SessionUser retrieves the loaded user record from the Gin context.
// Returns nil unless RequireUser ran earlier in the chain.
func SessionUser(c *gin.Context) *model.User {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return user
}
