package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carelink/carelink-go/internal/api"
	"github.com/carelink/carelink-go/internal/config"
	"github.com/carelink/carelink-go/internal/pdf"
	"github.com/carelink/carelink-go/internal/repository"
	"github.com/carelink/carelink-go/internal/session"
	"github.com/carelink/carelink-go/internal/state"
	"github.com/carelink/carelink-go/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("api_url", cfg.API.BaseURL),
		zap.String("log_level", cfg.Logging.Level),
	)

	// Initialize the local store with pgx
	poolCfg, err := pgxpool.ParseConfig(cfg.Store.URL)
	if err != nil {
		logger.Fatal("Failed to parse store URL", zap.Error(err))
	}
	poolCfg.MaxConns = int32(cfg.Store.MaxConns)
	poolCfg.MaxConnLifetime = cfg.Store.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("Failed to connect to local store", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping local store", zap.Error(err))
	}
	logger.Info("Successfully connected to local store")

	if err := store.Migrate(context.Background(), pool); err != nil {
		logger.Fatal("Failed to migrate local store", zap.Error(err))
	}

	// Initialize the API client
	client, err := api.New(cfg.API.BaseURL, cfg.API.Timeout, logger)
	if err != nil {
		logger.Fatal("Failed to create API client", zap.Error(err))
	}

	// Initialize stores
	userStore := store.NewUserStore(pool, logger)
	messageStore := store.NewMessageStore(pool, logger)
	cacheStore := store.NewCacheStore(pool, logger)
	sessionStore := session.NewStore(cfg.Session.FilePath, logger)

	// Initialize repositories
	userRepo := repository.NewUserRepository(client, logger)
	patientRepo := repository.NewPatientRepository(client, logger)
	doctorRepo := repository.NewDoctorRepository(client, logger)
	adminRepo := repository.NewAdminRepository(client, logger)
	appointmentRepo := repository.NewAppointmentRepository(client, logger)
	medicationRepo := repository.NewMedicationRepository(client, logger)
	vitalsRepo := repository.NewVitalsRepository(client, logger)
	feedbackRepo := repository.NewFeedbackRepository(client, logger)
	reportRepo := repository.NewReportRepository(client, logger)
	messageRepo := repository.NewMessageRepository(messageStore, userStore, logger)

	// Initialize the PDF generator for report export
	generator := pdf.NewGenerator(logger)

	// Initialize state containers
	timeout := cfg.Requests.Timeout
	userState := state.NewUserState(userRepo, sessionStore, userStore, timeout, logger)
	patientState := state.NewPatientState(patientRepo, userStore, timeout, logger)
	doctorState := state.NewDoctorState(doctorRepo, userStore, timeout, logger)
	adminState := state.NewAdminState(adminRepo, timeout, logger)
	appointmentState := state.NewAppointmentState(appointmentRepo, cacheStore, timeout, logger)
	medicationState := state.NewMedicationState(medicationRepo, cacheStore, timeout, logger)
	vitalsState := state.NewVitalsState(vitalsRepo, cacheStore, timeout, logger)
	feedbackState := state.NewFeedbackState(feedbackRepo, cacheStore, timeout, logger)
	reportState := state.NewReportState(reportRepo, generator, "reports", timeout, logger)
	messageState := state.NewMessageState(messageRepo, timeout, logger)

	containers := []interface{ Close() }{
		userState, patientState, doctorState, adminState,
		appointmentState, medicationState, vitalsState,
		feedbackState, reportState, messageState,
	}

	// Pick up where the last session left off
	restored, err := userState.RestoreSession()
	if err != nil {
		logger.Warn("Failed to restore session", zap.Error(err))
	}
	if restored != nil {
		logger.Info("Restored session", zap.Int64("user_id", restored.ID))
		userState.FetchProfile(restored.ID)
		messageState.RefreshUnread(restored.ID)
	}

	// Keep the unread badge fresh while running
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("carelink client running")

	for {
		select {
		case <-ticker.C:
			if restored != nil {
				messageState.RefreshUnread(restored.ID)
			}
		case <-quit:
			logger.Info("Shutting down...")
			for _, c := range containers {
				c.Close()
			}
			logger.Info("carelink client exited")
			return
		}
	}
}

// buildLogger constructs the zap logger from the logging config
func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
