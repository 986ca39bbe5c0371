package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stemsi/rollcall/internal/config"
	"github.com/stemsi/rollcall/internal/handler"
	"github.com/stemsi/rollcall/internal/middleware"
	"github.com/stemsi/rollcall/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Roster     *handler.RosterHandler
	Attendance *handler.AttendanceHandler
	Export     *handler.ExportHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, uploadLimiter *middleware.RateLimiter, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.NoStore())

	// ─── 1. Roster ─────────────────────────────────────────────────────
	roster := api.Group("/roster")
	{
		roster.GET("", handlers.Roster.GetRoster)
		roster.GET("/status", handlers.Roster.GetStatus)
		roster.POST("/reload", handlers.Roster.Reload)
		if uploadLimiter != nil {
			roster.POST("/upload", uploadLimiter.Middleware(), handlers.Roster.Upload)
		} else {
			roster.POST("/upload", handlers.Roster.Upload)
		}
	}

	// ─── 2. Marking ────────────────────────────────────────────────────
	attendance := api.Group("/attendance")
	{
		attendance.GET("/summary", handlers.Attendance.Summary)
		attendance.POST("/bulk", handlers.Attendance.Bulk)
		attendance.POST("/:index/toggle", handlers.Attendance.Toggle)
		attendance.PUT("/:index", handlers.Attendance.SetMark)
	}

	// ─── 3. Export & Report ────────────────────────────────────────────
	export := api.Group("/export")
	{
		export.GET("/records", handlers.Export.Records)
		export.GET("/xlsx", handlers.Export.Spreadsheet)
		export.GET("/txt", handlers.Export.Text)
	}
	api.POST("/report", handlers.Export.ViewReport)
	api.GET("/report/clipboard", handlers.Export.Clipboard)

	// ─── 4. View Stream ────────────────────────────────────────────────
	router.GET("/ws/v1/roster/stream", handlers.WS.RosterStream)

	return router
}
