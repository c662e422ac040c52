package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/campusly/college-management/internal/config"
	"github.com/campusly/college-management/internal/database"
	"github.com/campusly/college-management/internal/handler"
	"github.com/campusly/college-management/internal/logger"
	"github.com/campusly/college-management/internal/middleware"
	"github.com/campusly/college-management/internal/repository"
	"github.com/campusly/college-management/internal/router"
	"github.com/campusly/college-management/internal/service"
	"github.com/campusly/college-management/internal/validator"
	"github.com/campusly/college-management/internal/worker"
	"github.com/rs/zerolog"
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
		Msg("Starting College Management Backend")

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
	departmentRepo := repository.NewDepartmentRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	locker := service.NewRedisLocker(rdb, cfg.LockTTL, cfg.LockWait, log)
	relations := service.NewDepartmentRelations(departmentRepo, studentRepo, teacherRepo, locker, log)
	auditService := service.NewAuditService(rdb, log)

	authService := service.NewAuthService(cfg, userRepo)
	studentService := service.NewStudentService(studentRepo, relations, auditService, log)
	teacherService := service.NewTeacherService(teacherRepo, relations, auditService, log)
	departmentService := service.NewDepartmentService(departmentRepo, relations, auditService, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, log),
		Student:    handler.NewStudentHandler(studentService, log),
		Teacher:    handler.NewTeacherHandler(teacherService, log),
		Department: handler.NewDepartmentHandler(departmentService, log),
		Health:     handler.NewHealthHandler(database.NewHealthCheck(pool, rdb), log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	auditWorker := worker.NewAuditWorker(auditRepo, rdb, log)
	workers.Add(1)
	go func() {
		defer workers.Done()
		auditWorker.Start(workerCtx)
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	loginLimiter := middleware.NewRateLimiter(ctx, cfg.LoginRatePerMinute, time.Minute)
	r := router.SetupRouter(authService, handlers, loginLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the audit worker and wait for it to drain the queue.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
