// Command migrate applies the database schema without starting the API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"bizportal/internal/config"
	"bizportal/internal/database"
	"bizportal/internal/database/migration"
	"bizportal/internal/logger"
)

func main() {
	envFile := pflag.String("env-file", "", "load environment variables from this file before reading configuration")
	timeout := pflag.Duration("timeout", time.Minute, "abort when migration takes longer than this")
	logLevel := pflag.String("log-level", "", "override LOG_LEVEL")
	pflag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(2)
		}
	}

	cfg := config.Load()
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log, *timeout); err != nil {
		log.Error("migration aborted", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, log *zap.Logger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	return migration.EnsureMigrated(ctx, db, log, cfg.Database.Host)
}
