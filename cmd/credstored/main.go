// Command credstored runs the credential-resolution service: the API
// key store with its legacy migration chain, live validation against
// the provider endpoints, and the REST/event surface collaborators use.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	anthropicadapter "github.com/shopscribe/credstore/internal/adapter/driven/anthropic"
	"github.com/shopscribe/credstore/internal/adapter/driven/legacyfile"
	sqliteadapter "github.com/shopscribe/credstore/internal/adapter/driven/sqlite"
	unsplashadapter "github.com/shopscribe/credstore/internal/adapter/driven/unsplash"
	httphandler "github.com/shopscribe/credstore/internal/adapter/driving/http"
	"github.com/shopscribe/credstore/internal/application"
	"github.com/shopscribe/credstore/internal/config"
	"github.com/shopscribe/credstore/internal/domain/model"
	"github.com/shopscribe/credstore/internal/domain/port/driven"
)

// cli defines the command-line flags. Flags override the corresponding
// config file / environment values.
type cli struct {
	ListenAddr string `name:"listen-addr" help:"Address to serve the API on."`
	StateDir   string `name:"state-dir" help:"Directory for durable state; empty runs headless (env-var keys only)."`
	DBPath     string `name:"db-path" help:"SQLite database path (defaults to <state-dir>/credstore.db)."`
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var flags cli
	kong.Parse(&flags,
		kong.Name("credstored"),
		kong.Description("API key resolution service for the shopscribe providers."),
	)

	// 1. Load configuration (defaults <- YAML file <- env <- flags).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flags.ListenAddr != "" {
		cfg.ListenAddr = flags.ListenAddr
	}
	if flags.StateDir != "" {
		cfg.StateDir = flags.StateDir
		if flags.DBPath == "" && cfg.DBPath == "" {
			cfg.DBPath = filepath.Join(cfg.StateDir, config.DBFileName)
		}
	}
	if flags.DBPath != "" {
		cfg.DBPath = flags.DBPath
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"state_dir", cfg.StateDir,
		"db_path", cfg.DBPath,
		"persistent", cfg.Persistent(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()

	// 3. Open durable storage and the legacy migration tiers. A headless
	// process skips all of this: keys then resolve from env vars only.
	var storage driven.StorageRepo
	var legacy []driven.KeySource
	if cfg.Persistent() {
		if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
			return err
		}

		db, err := sqliteadapter.NewDB(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		slog.Info("database opened", "path", cfg.DBPath)

		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			return err
		}
		slog.Info("migrations complete")

		storage = sqliteadapter.NewStorageRepo(db)
		legacy = []driven.KeySource{
			legacyfile.NewSettingsSource(cfg.StateDir, logger),
			legacyfile.NewBackupSource(cfg.StateDir, logger),
			legacyfile.NewKeyFileSource(cfg.StateDir, logger),
		}
	} else {
		slog.Info("no state directory configured, running headless: keys resolve from environment variables and mutations are disabled")
	}

	// 4. Wire the application services.
	notifier := application.NewNotifier(logger)
	store := application.NewStore(storage, legacy, notifier, logger)
	validator := application.NewValidator(store, map[model.Service]driven.KeyChecker{
		model.ServiceAnthropic: anthropicadapter.NewChecker(),
		model.ServiceUnsplash:  unsplashadapter.NewChecker(),
	}, logger)

	// 5. Create the HTTP handler with all routes and middleware.
	apiHandler := httphandler.NewHandler(store, validator, logger)
	handler := httphandler.NewServeMux(apiHandler, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("credstored started", "listen_addr", cfg.ListenAddr)

	// 6. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
