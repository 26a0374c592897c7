package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/innoviii/entrance-backend/internal/config"
	"github.com/innoviii/entrance-backend/internal/handler"
	"github.com/innoviii/entrance-backend/internal/middleware"
	"github.com/innoviii/entrance-backend/internal/response"
	"github.com/innoviii/entrance-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Candidate  *handler.CandidateHandler
	Test       *handler.TestHandler
	Submission *handler.SubmissionHandler
	Dashboard  *handler.DashboardHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
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
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireAdminJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAdminJWT(authService), handlers.Auth.GetProfile)
	}

	// ─── 2. Candidate Group (Public) ───────────────────────────────────
	candidateAPI := router.Group("/api/v1/tests")
	{
		candidateAPI.GET("", handlers.Candidate.ListTests)
		candidateAPI.GET("/:test_id", handlers.Candidate.GetTest)
		candidateAPI.POST("/:test_id/submit", handlers.Candidate.SubmitTest)
	}

	// ─── 3. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Test management
		adminAPI.GET("/tests", handlers.Test.ListTests)
		adminAPI.POST("/tests", handlers.Test.CreateTest)
		adminAPI.GET("/tests/:test_id", handlers.Test.GetTest)
		adminAPI.PUT("/tests/:test_id", handlers.Test.UpdateTest)
		adminAPI.DELETE("/tests/:test_id", handlers.Test.DeleteTest)

		// Submission review
		adminAPI.GET("/submissions", handlers.Submission.ListSubmissions)
		adminAPI.GET("/submissions/:submission_id", handlers.Submission.GetSubmission)
		adminAPI.POST("/submissions/:submission_id/grade", handlers.Submission.GradeSubmission)

		// CSV export
		adminAPI.GET("/export", handlers.Submission.ExportCSV)

		// Dashboard
		adminAPI.GET("/dashboard", handlers.Dashboard.GetDashboard)
	}

	return router
}
