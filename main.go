package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/devportfolio/portfolio-backend/api"
	"github.com/devportfolio/portfolio-backend/config"
	"github.com/devportfolio/portfolio-backend/database"
	"github.com/devportfolio/portfolio-backend/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}
	setupLogger(cfg)

	log.Info().Msg("Initializing app...")

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("Exiting")
		os.Exit(1)
	}
}

// run serves until SIGINT or SIGTERM. Startup failures are returned so
// main exits non-zero after deferred cleanup has run.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Options{
		DSN:          cfg.DatabaseURL,
		ReplicaDSN:   cfg.DatabaseReplicaURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		Logger:       log.With().Str("component", "gorm").Logger(),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	reportColumnMismatches(ctx, db)

	var contacts api.ContactObserver
	if cfg.ContactNotificationsEnabled() {
		contacts = services.NewContactNotifier(cfg.ResendAPIKey, cfg.ResendFromEmail, cfg.ContactNotifyEmail, log.Logger)
	} else {
		log.Info().Msg("Contact notifications disabled")
	}

	server := api.NewServer(cfg, db, contacts)
	ln, err := server.Listen()
	if err != nil {
		return fmt.Errorf("bind %s: %w", server.Addr, err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(ln)
	})
	g.Go(func() error {
		<-gCtx.Done()
		return server.ShutdownGracefully(cfg.ShutdownTimeout())
	})

	return g.Wait()
}

// setupLogger applies the configured level and output format to the global logger.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "console" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// reportColumnMismatches warns about drift between the models and the live schema.
func reportColumnMismatches(ctx context.Context, db *database.Database) {
	mismatches, err := db.ColumnReport(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Error generating column report")
		return
	}
	for _, m := range mismatches {
		log.Warn().
			Str("table", m.Table).
			Strs("missingInDatabase", m.MissingInDatabase).
			Strs("missingInModel", m.MissingInModel).
			Msg("Column mismatch between model and database")
	}
}
