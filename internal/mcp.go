package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/raido/internal/mcpserver"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/ordering"
	"github.com/starford/raido/internal/store"
	"github.com/starford/raido/internal/taskservice"
)

// RunMCP starts the MCP stdio server over the same store and ordering
// engine the HTTP mode uses. No HTTP server, no SSE broker: stdout belongs
// to the protocol, so logs go to stderr.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	engine := ordering.NewEngine(db, func(models.ScopeID) {})
	auditor := ordering.NewAuditor(db)
	coordinator := ordering.NewCoordinator(db, engine, logger)

	if cfg.Repair.RunOnStart {
		if err := coordinator.RunStartupRepair(ctx); err != nil {
			logger.Warn("startup repair failed", slog.String("error", err.Error()))
		}
	}

	svc := taskservice.NewService(db, engine, auditor, coordinator, nil)

	logger.Info("MCP server starting on stdio", slog.String("sqlite_path", cfg.SQLite.Path))
	return mcpserver.New(svc).ServeStdio()
}
