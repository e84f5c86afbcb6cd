package app

import (
	"context"
	"fmt"

	"github.com/vk/patchgridgo/internal/ctxlog"
	"github.com/vk/patchgridgo/internal/grid"
	"github.com/vk/patchgridgo/internal/scenario"
)

// Run executes every scenario declared in the loaded grid, strictly in
// declaration order, failing fast on the first fatal scenario error.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if cfg.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, cfg.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}
	defer func() { _ = a.client.Close() }()

	if len(a.grid.Scenarios) == 0 {
		a.logger.Warn("No scenarios found in grid, execution not required.")
		return nil
	}

	deps := &scenario.Deps{
		Client:    a.client,
		Sessions:  a.sessions,
		MapURL:    cfg.MapServiceURL,
		ConfigURL: cfg.ConfigURL,
	}

	a.logger.Info("🚀 Starting scenario execution...", "scenarios", len(a.grid.Scenarios))
	for _, block := range a.grid.Scenarios {
		registered, ok := a.registry.Lookup(block.Type)
		if !ok {
			// ValidateGrid runs at startup; reaching this means the registry
			// was mutated since.
			return fmt.Errorf("unknown scenario type '%s'", block.Type)
		}

		var input any
		if registered.NewInput != nil {
			input = registered.NewInput()
			if err := grid.DecodeArguments(block, input); err != nil {
				return err
			}
		}

		name := block.Type + "." + block.Name
		if err := scenario.Execute(ctx, name, registered, deps, input); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
	}
	a.logger.Info("🏁 Execution finished.")

	a.logger.Debug("App.Run method finished.")
	return nil
}
