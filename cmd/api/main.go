// Command api serves the study booking and missions HTTP API.
//
// @title Fit Study API
// @version 1.0
// @description Event booking and mission progression for study participants.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitstudy/config"
	_ "fitstudy/docs"
	"fitstudy/internal/adapters/auth"
	deliveryhttp "fitstudy/internal/delivery/http"
	"fitstudy/internal/delivery/http/controllers"
	"fitstudy/internal/repository/postgres"
	"fitstudy/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DBUrl, postgres.OpenOptions{
		MaxOpenConns: cfg.DBMaxOpenConns,
		Attempts:     cfg.DBConnectAttempts,
	}, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("connected to postgres")

	if cfg.RunMigrations {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		logger.Info("schema applied")
	}

	bookingRepo := postgres.NewBookingRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	bookingSvc := services.NewBookingService(postgres.NewUnitOfWork(db), bookingRepo, logger, cfg.BookingTimeout)
	missionSvc := services.NewMissionService(bookingRepo, attendanceRepo, cfg.StudyLocation())

	router := deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Logger:         logger,
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		Bookings:       controllers.NewBookingController(logger, bookingSvc),
		Missions:       controllers.NewMissionController(logger, missionSvc),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
