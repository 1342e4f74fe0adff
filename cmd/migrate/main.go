// This file is used to run database migrations
// How to run:
// go run cmd/migrate/main.go              # Run all pending migrations
// go run cmd/migrate/main.go -down        # Rollback all migrations
// go run cmd/migrate/main.go -steps 1     # Run one migration
// go run cmd/migrate/main.go -steps -1    # Rollback one migration
// go run cmd/migrate/main.go -force 1     # Force version 1
package main

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/celestiaorg/cadence/config"
	"github.com/celestiaorg/cadence/internal/db"
	"github.com/celestiaorg/cadence/internal/db/migrations"
	"github.com/celestiaorg/cadence/internal/logger"
)

func main() {
	// A missing .env file is fine, the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitializeAndConfigure(cfg.LogLevel)

	defaults := migrations.DefaultConfig()
	var (
		dbURLFlag = flag.String("db", "", "Database URL (optional, defaults to env vars)")
		down      = flag.Bool("down", false, "Roll back migrations")
		steps     = flag.Int("steps", 0, "Number of migrations to apply (up or down)")
		force     = flag.Int("force", -1, "Force a specific version")
		retries   = flag.Int("retries", defaults.RetryAttempts, "Number of connection retries")
		retryWait = flag.Duration("retry-wait", defaults.RetryDelay, "Wait time between retries")
	)
	flag.Parse()

	// Use command line flag if provided, otherwise use env vars
	dbURL := *dbURLFlag
	if dbURL == "" {
		dbURL = db.URL(db.Options{
			Host:       cfg.DB.Host,
			User:       cfg.DB.User,
			Password:   cfg.DB.Password,
			DBName:     cfg.DB.Name,
			Port:       cfg.DB.Port,
			SSLEnabled: &cfg.DB.SSLEnabled,
		})
	}

	service, err := migrations.NewMigrationService(migrations.Config{
		DatabaseURL:   dbURL,
		RetryAttempts: *retries,
		RetryDelay:    *retryWait,
	})
	if err != nil {
		logger.Fatalf("Failed to create migration service: %v", err)
	}
	defer func() {
		if err := service.Close(); err != nil {
			logger.Warnf("Failed to close migration service: %v", err)
		}
	}()

	if err := run(service, *down, *steps, *force); err != nil {
		logger.Error(err)
		os.Exit(1)
	}

	version, dirty, err := service.Version()
	if err != nil {
		logger.Warnf("Could not get final version: %v", err)
	} else {
		logger.Infof("Current migration version: %d (dirty: %v)", version, dirty)
	}
}

func run(service *migrations.MigrationService, down bool, steps, force int) error {
	start := time.Now()
	defer func() { logger.Debugf("Migration command took %s", time.Since(start)) }()

	switch {
	case force >= 0:
		if err := service.Force(force); err != nil {
			return err
		}
		logger.Infof("Successfully forced version to %d", force)
	case steps != 0:
		if err := service.Steps(steps); err != nil {
			return err
		}
		logger.Infof("Successfully applied %d steps", steps)
	case down:
		return service.Down()
	default:
		return service.Up()
	}
	return nil
}
