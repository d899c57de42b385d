package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/teacherly/teacherly-backend/internal/config"
	"github.com/teacherly/teacherly-backend/internal/handler"
	"github.com/teacherly/teacherly-backend/internal/middleware"
	"github.com/teacherly/teacherly-backend/internal/response"
	"github.com/teacherly/teacherly-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Student   *handler.StudentHandler
	Content   *handler.ContentHandler
	Gradebook *handler.GradebookHandler
	AdminUser *handler.AdminUserHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	userService *service.UserService,
	authLimiter *middleware.RateLimiter,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true // Cookies require explicit origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Resolve the session cookie on every request. Anonymous is fine here;
	// groups that need an identity add RequireUser below.
	router.Use(middleware.ResolveSession(authService))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/auth")
	{
		limited := auth.Group("")
		limited.Use(authLimiter.Middleware())
		{
			limited.POST("/register", handlers.Auth.Register)
			limited.POST("/login", handlers.Auth.Login)
			limited.POST("/forgot-password", handlers.Auth.ForgotPassword)
		}

		auth.POST("/reset-password", handlers.Auth.ResetPassword)
		auth.POST("/logout", handlers.Auth.Logout)
		auth.GET("/users/me", middleware.RequireUser(userService), handlers.Auth.Me)
	}

	// ─── 2. Teacher Group (Session Required) ───────────────────────────
	api := router.Group("/api")
	api.Use(middleware.RequireUser(userService))
	{
		// Roster
		api.GET("/students", handlers.Student.ListStudents)
		api.POST("/students", handlers.Student.CreateStudent)
		api.GET("/students/:id", handlers.Student.GetStudent)
		api.PUT("/students/:id", handlers.Student.UpdateStudent)
		api.DELETE("/students/:id", handlers.Student.DeleteStudent)

		// Gradebook
		api.GET("/students/:id/grades", handlers.Gradebook.ListGrades)
		api.POST("/students/:id/grades", handlers.Gradebook.RecordGrade)
		api.DELETE("/students/:id/grades/:grade_id", handlers.Gradebook.DeleteGrade)

		// Attendance
		api.GET("/students/:id/attendance", handlers.Gradebook.ListAttendance)
		api.POST("/students/:id/attendance", handlers.Gradebook.RecordAttendance)

		// Content
		api.GET("/content", handlers.Content.ListContent)
		api.POST("/content", handlers.Content.CreateContent)
		api.GET("/content/:id", handlers.Content.GetContent)
		api.PUT("/content/:id", handlers.Content.UpdateContent)
		api.DELETE("/content/:id", handlers.Content.DeleteContent)
	}

	// ─── 3. Admin Group (Session + Admin Role) ─────────────────────────
	adminAPI := router.Group("/api/admin")
	adminAPI.Use(middleware.RequireUser(userService), middleware.RequireAdmin())
	{
		adminAPI.GET("/users", handlers.AdminUser.ListUsers)
		adminAPI.POST("/users/:id/deactivate", handlers.AdminUser.DeactivateUser)
		adminAPI.POST("/users/:id/activate", handlers.AdminUser.ActivateUser)
	}

	return router
}
