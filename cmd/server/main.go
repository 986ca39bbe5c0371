package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/rollcall/internal/clipboard"
	"github.com/stemsi/rollcall/internal/config"
	"github.com/stemsi/rollcall/internal/database"
	"github.com/stemsi/rollcall/internal/handler"
	"github.com/stemsi/rollcall/internal/logger"
	"github.com/stemsi/rollcall/internal/middleware"
	"github.com/stemsi/rollcall/internal/repository"
	"github.com/stemsi/rollcall/internal/router"
	"github.com/stemsi/rollcall/internal/service"
	"github.com/stemsi/rollcall/internal/validator"
	"github.com/stemsi/rollcall/internal/websocket"
	"github.com/stemsi/rollcall/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("roster", cfg.RosterPath).
		Msg("Starting rollcall")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis (optional clipboard) ─────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		// The clipboard is best effort; run without it.
		log.Warn().Err(err).Msg("Redis unavailable, shared clipboard disabled")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// ─── Initialize Store & Services ──────────────────────────────────
	store := repository.NewRosterStore()
	hub := websocket.NewHub(log)

	rosterService := service.NewRosterService(store, hub, cfg.RosterPath, log)
	attendanceService := service.NewAttendanceService(store, hub, log)
	exportService := service.NewExportService(store, cfg.ReportTitle)
	reportService := service.NewReportService(exportService,
		clipboard.NewRedis(rdb, cfg.ClipboardKey, cfg.ClipboardTTL), hub, log)
	hub.SetReportRenderer(reportService.Render)

	// ─── Start Background Workers ─────────────────────────────────────
	if rdb != nil {
		relay := worker.NewClipboardRelay(rdb, cfg.ClipboardKey, hub, log)
		go relay.Start(ctx)
	}

	// ─── Auto-load Roster ─────────────────────────────────────────────
	// Failure downgrades to waiting for a manual upload.
	status := rosterService.AutoLoad()
	log.Info().Bool("loaded", status.Loaded).Msg(status.Message)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Roster:     handler.NewRosterHandler(rosterService, cfg.MaxUploadBytes),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		Export:     handler.NewExportHandler(exportService, reportService),
		WS:         handler.NewWSHandler(hub, rosterService, attendanceService, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	uploadLimiter := middleware.NewRateLimiter(ctx, cfg.UploadRate, time.Minute)
	r := router.SetupRouter(handlers, uploadLimiter, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// Stop workers and the rate limiter cleanup.
	cancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
