package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sims/sims-backend/internal/config"
	"github.com/sims/sims-backend/internal/handler"
	"github.com/sims/sims-backend/internal/middleware"
	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Student   *handler.StudentHandler
	Dashboard *handler.DashboardHandler
	User      *handler.UserHandler
	System    *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// Background work started here, such as rate limiter cleanup, ends with ctx.
func SetupRouter(
	ctx context.Context,
	auth middleware.TokenValidator,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so the desktop client works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.System.Health)

	loginLimiter := middleware.NewRateLimiter(ctx, cfg.LoginRateLimit, time.Minute)
	authenticated := []gin.HandlerFunc{
		middleware.RequireAuth(auth),
		middleware.RequireActiveSession(auth),
		middleware.NoStore(),
	}

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	authAPI := router.Group("/api/v1/auth")
	{
		authAPI.POST("/login", loginLimiter.Middleware(), handlers.Auth.Login)

		authAPI.POST("/logout", append(authenticated, handlers.Auth.Logout)...)
		authAPI.GET("/me", append(authenticated, handlers.Auth.Me)...)
	}

	// ─── 2. Authenticated API (JWT + session + RBAC) ──────────────────
	api := router.Group("/api/v1")
	api.Use(authenticated...)

	students := api.Group("/students")
	{
		read := middleware.RequirePermission(model.PermissionStudentsRead)
		write := middleware.RequirePermission(model.PermissionStudentsWrite)

		students.GET("", read, handlers.Student.ListStudents)
		students.GET("/export", read, handlers.Student.ExportStudents)
		students.POST("/import",
			middleware.RequirePermission(model.PermissionStudentsImport),
			handlers.Student.ImportStudents,
		)
		students.GET("/:id", read, handlers.Student.GetStudent)
		students.POST("", write, handlers.Student.CreateStudent)
		students.PUT("/:id", write, handlers.Student.UpdateStudent)
		students.DELETE("/:id", write, handlers.Student.DeleteStudent)
	}

	dashboard := api.Group("/dashboard", middleware.RequirePermission(model.PermissionReportsRead))
	{
		dashboard.GET("/stats", handlers.Dashboard.GetStats)
		dashboard.GET("/demographics", handlers.Dashboard.GetDemographics)
		dashboard.GET("/distribution/:field", handlers.Dashboard.GetDistribution)
	}

	reports := api.Group("/reports", middleware.RequirePermission(model.PermissionReportsRead))
	{
		reports.GET("/stream-summary", handlers.Dashboard.GetStreamSummary)
		reports.GET("/admission-stats", handlers.Dashboard.GetAdmissionStats)
	}

	users := api.Group("/users")
	{
		read := middleware.RequirePermission(model.PermissionUsersRead)
		write := middleware.RequirePermission(model.PermissionUsersWrite)

		users.GET("", read, handlers.User.ListUsers)
		users.GET("/:id", read, handlers.User.GetUser)
		users.POST("", write, handlers.User.CreateUser)
		users.PUT("/:id", write, handlers.User.UpdateUser)
		users.DELETE("/:id", write, handlers.User.DeleteUser)
	}

	api.GET("/system/metrics", middleware.RequirePermission(model.PermissionSystemRead), handlers.System.Metrics)

	return router
}
