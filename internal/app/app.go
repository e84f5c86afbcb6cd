package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vk/patchgridgo/internal/ctxlog"
	"github.com/vk/patchgridgo/internal/grid"
	"github.com/vk/patchgridgo/internal/scenario"
	"github.com/vk/patchgridgo/internal/schema"
	"github.com/vk/patchgridgo/internal/session"
	"resty.dev/v3"
)

// App encapsulates the harness's dependencies, configuration, and
// lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	registry   *scenario.Registry
	grid       *schema.Grid
	client     *resty.Client
	sessions   *session.Store
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and scenario
// registry. Critical startup errors (unreadable grid, unknown scenario
// types) panic; the entrypoint recovers and exits cleanly.
func NewApp(outW io.Writer, cfg *Config, modules ...scenario.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	g, err := grid.Load(ctx, cfg.GridPath)
	if err != nil {
		// A failure to load the grid is a fatal startup error.
		panic(fmt.Errorf("failed to load grid: %w", err))
	}
	logger.Debug("Grid configuration loaded.")

	reg := scenario.NewRegistry()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All scenario modules registered.", "count", len(modules))

	// Grid/code mismatches are programmer or config errors, so we panic.
	if err := reg.ValidateGrid(g); err != nil {
		panic(err)
	}
	logger.Debug("Grid validation passed.", "scenarios", reg.Names())

	client := resty.New().SetTimeout(30 * time.Second)

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		grid:     g,
		client:   client,
		sessions: session.NewStore(),
	}
}

// Registry returns the application's scenario registry. This is primarily
// for testing.
func (a *App) Registry() *scenario.Registry {
	return a.registry
}

// Grid returns the loaded grid model. This is primarily for testing.
func (a *App) Grid() *schema.Grid {
	return a.grid
}
