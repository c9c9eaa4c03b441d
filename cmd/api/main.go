package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wichananm65/entries-backend/internal/domain/repository"
	"github.com/wichananm65/entries-backend/internal/infrastructure/config"
	"github.com/wichananm65/entries-backend/internal/infrastructure/database/inmemory"
	"github.com/wichananm65/entries-backend/internal/infrastructure/database/postgres"
	"github.com/wichananm65/entries-backend/internal/infrastructure/logging"
	httpHandler "github.com/wichananm65/entries-backend/internal/interface/http/handler"
	"github.com/wichananm65/entries-backend/internal/interface/http/router"
	"github.com/wichananm65/entries-backend/internal/interface/presenter"
	"github.com/wichananm65/entries-backend/internal/usecase"
)

// main wires dependencies and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeRepo()

	entryUsecase := usecase.NewEntryService(repo,
		usecase.WithListLimits(cfg.Query.DefaultLimit, cfg.Query.MaxLimit))
	entryHandler := httpHandler.NewEntryHandler(entryUsecase, presenter.NewEntryPresenter(), cfg.Query.StrictFilters)

	app := router.New(cfg, logger, entryHandler)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.String("addr", cfg.Server.Addr),
			slog.String("storage", cfg.Database.Storage),
		)
		errCh <- app.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openRepository selects the entry store. For PostgreSQL it opens the pool
// and ensures the schema before the server accepts requests.
func openRepository(ctx context.Context, cfg config.DatabaseConfig) (repository.EntryRepository, func(), error) {
	if cfg.Storage == config.StorageMemory {
		return inmemory.NewEntryRepository(), func() {}, nil
	}

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := postgres.Open(openCtx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.EnsureSchema(openCtx, db); err != nil {
		closeDB(db)
		return nil, nil, err
	}
	return postgres.NewEntryRepository(db), func() { closeDB(db) }, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Warn("close database", slog.String("error", err.Error()))
	}
}
