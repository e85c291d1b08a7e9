package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dharmikkumbhani/khichdi-backend/internal/config"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/repository"
	"github.com/Dharmikkumbhani/khichdi-backend/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Initialize repositories
	hotelRepo := repository.NewHotelRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	// Select the blob sink: real media store when credentials are present and
	// non-placeholder, inline data URIs otherwise.
	var sink services.BlobSink
	if cfg.Media.Configured() {
		s3Sink, err := services.NewS3Sink(context.Background(), cfg.Media)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create media store sink")
		}
		sink = s3Sink
		log.Info().Str("bucket", cfg.Media.Bucket).Msg("Media store configured")
	} else {
		sink = services.NewInlineSink()
		log.Warn().Msg("Media store not configured, falling back to inline image storage")
	}

	// Initialize services
	smsClient := services.NewSMSClient(cfg.SMS.GatewayURL)
	authService := services.NewAuthService(otpRepo, hotelRepo, smsClient, cfg.JWT.Secret)
	menuService := services.NewMenuService(menuRepo, sink)
	pushSender := services.NewWebPushSender(cfg.Push)
	pushService := services.NewPushService(subRepo, hotelRepo, pushSender, cfg.Push.VAPIDPublicKey)
	wsHub := services.NewWSHub()

	// Setup router
	r := newRouter(authService, menuService, pushService, wsHub)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

