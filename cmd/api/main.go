package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/crucial707/expense-tracker/internal/config"
	"github.com/crucial707/expense-tracker/internal/db"
	"github.com/crucial707/expense-tracker/internal/repo"
	"github.com/crucial707/expense-tracker/internal/scheduler"
)

func main() {

	// Load configuration
	cfg := config.Load()

	// Secrets are required; never fall back to a built-in signing key.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	setupLogger(cfg.LogFormat)

	// Connect to database FIRST
	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)

	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	// Apply pending migrations
	if err := db.Run(cfg.DatabaseURL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Background stats collector keeps the user/expense gauges fresh
	cronJob, err := scheduler.Run(cfg.StatsCron, repo.NewUserRepo(database), repo.NewExpenseRepo(database))
	if err != nil {
		log.Fatalf("Failed to start stats collector: %v", err)
	}
	defer cronJob.Stop()

	r := newRouter(database, cfg)

	// Start server LAST
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "port", cfg.Port)
		err = http.ListenAndServeTLS(":"+cfg.Port, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		slog.Info("starting server", "port", cfg.Port)
		err = http.ListenAndServe(":"+cfg.Port, r)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// setupLogger installs the global slog handler ("text" or "json").
func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
