package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/skooli/timetable-backend/internal/config"
	"github.com/skooli/timetable-backend/internal/database"
	"github.com/skooli/timetable-backend/internal/handler"
	"github.com/skooli/timetable-backend/internal/logger"
	"github.com/skooli/timetable-backend/internal/repository"
	"github.com/skooli/timetable-backend/internal/router"
	"github.com/skooli/timetable-backend/internal/service"
	"github.com/skooli/timetable-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Timetable Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	slotRepo := repository.NewTimeSlotRepository(pool)
	timetableRepo := repository.NewClassTimetableRepository(pool)
	entryRepo := repository.NewTimetableEntryRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool, cfg.TxTimeout)
	viewRepo := repository.NewScheduleViewRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	viewCache := service.NewRedisViewCache(rdb, log)

	slotService := service.NewTimeSlotService(slotRepo)
	timetableService := service.NewClassTimetableService(timetableRepo)
	entryService := service.NewTimetableEntryService(entryRepo)
	scheduleService := service.NewScheduleService(scheduleRepo, log)
	viewService := service.NewScheduleViewService(viewRepo, catalogRepo, viewCache, cfg.ViewCacheTTL, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		TimeSlot:       handler.NewTimeSlotHandler(slotService),
		ClassTimetable: handler.NewClassTimetableHandler(timetableService),
		TimetableEntry: handler.NewTimetableEntryHandler(entryService),
		Schedule:       handler.NewScheduleHandler(scheduleService),
		ScheduleView:   handler.NewScheduleViewHandler(viewService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
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

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
