package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maxuni/miniapp-backend/internal/config"
	"github.com/maxuni/miniapp-backend/internal/handler"
	"github.com/maxuni/miniapp-backend/internal/middleware"
	"github.com/maxuni/miniapp-backend/internal/response"
	"github.com/maxuni/miniapp-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Portal     *handler.PortalHandler
	Nav        *handler.NavHandler
	Preference *handler.PreferenceHandler
	WS         *handler.WSHandler
	System     *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	resumer middleware.Resumer,
	loginLimiter *middleware.RateLimiter,
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
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	publicAPI.Use(middleware.CacheControl(300))
	{
		publicAPI.GET("/universities", handlers.Portal.GetUniversities)
	}

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(middleware.NoStore())
	{
		auth.POST("/login", loginLimiter.Middleware(), handlers.Auth.StudentLogin)

		// Logout and the session check only need a signed token: a
		// superseded session must still be able to clean up.
		auth.POST("/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/session",
			middleware.RequireStudentJWT(authService),
			middleware.CheckSingleDeviceSession(authService, resumer),
			handlers.Auth.GetSession,
		)
	}

	// ─── 2. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1")
	studentAPI.Use(
		middleware.NoStore(),
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService, resumer),
	)
	{
		portal := studentAPI.Group("/portal")
		portal.GET("/profile", handlers.Portal.GetProfile)
		portal.GET("/services", handlers.Portal.GetServices)
		portal.GET("/teachers", handlers.Portal.GetTeachers)
		portal.GET("/teachers/:id", handlers.Portal.GetTeacher)
		portal.GET("/contacts", handlers.Portal.GetContacts)
		portal.GET("/maps", handlers.Portal.GetMaps)
		portal.GET("/schedule", handlers.Portal.GetSchedule)
		portal.GET("/gradebook", handlers.Portal.GetGradebook)
		portal.GET("/news", handlers.Portal.ListNews)
		portal.GET("/news/:id", handlers.Portal.GetNews)
		portal.POST("/refresh", handlers.Portal.Refresh)

		nav := studentAPI.Group("/nav")
		nav.GET("", handlers.Nav.GetNav)
		nav.POST("/push", handlers.Nav.Push)
		nav.POST("/back", handlers.Nav.Back)
		nav.POST("/root", handlers.Nav.Root)
		nav.POST("/search-target", handlers.Nav.OpenSearchResult)

		studentAPI.GET("/search", handlers.Nav.Search)

		studentAPI.GET("/preferences", handlers.Preference.GetPreferences)
		studentAPI.PUT("/preferences", handlers.Preference.UpdatePreferences)
	}

	// ─── 3. WebSocket Group (Student WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(
		middleware.RequireStudentWSAuth(authService),
		middleware.CheckSingleDeviceSession(authService, resumer),
	)
	{
		ws.GET("/stream", handlers.WS.Stream)
	}

	// ─── 4. Operator Group (Static Token) ──────────────────────────────
	if cfg.MetricsToken != "" && handlers.System != nil {
		internal := router.Group("/internal")
		internal.Use(middleware.NoStore(), middleware.RequireOperatorToken(cfg.MetricsToken))
		{
			internal.GET("/metrics", handlers.System.SystemMetricsSSE)
		}
	}

	return router
}
