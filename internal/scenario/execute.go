package scenario

import (
	"context"
	"fmt"

	"github.com/vk/patchgridgo/internal/ctxlog"
)

// Execute runs one scenario: it builds the step list, executes the steps
// strictly in order — step k+1 never starts before step k has returned —
// and tears the run down afterwards. Teardown always happens, even when a
// step fails: every applied patch is reverted and the constructed map
// destroyed before Execute returns.
//
// A failing step aborts the sequence unless it is marked BestEffort, in
// which case the failure is logged and the run continues degraded.
func Execute(ctx context.Context, name string, sc *RegisteredScenario, deps *Deps, input any) error {
	run := newRun(name)
	logger := ctxlog.FromContext(ctx).With("scenario", name, "run_id", run.ID)
	ctx = ctxlog.WithLogger(ctx, logger)

	defer func() {
		run.Patches.RestoreAll(ctx)
		if run.Map != nil {
			run.Map.Destroy()
		}
		logger.Debug("Scenario teardown complete.")
	}()

	steps := sc.Steps(deps, input)
	logger.Info("▶️ Starting scenario", "steps", len(steps))

	for i, step := range steps {
		stepLogger := logger.With("step", step.Name)
		stepLogger.Info("▶️ Starting step", "index", i)

		if err := runStep(ctx, step, run); err != nil {
			if step.BestEffort {
				stepLogger.Warn("Step failed, continuing in degraded mode.", "error", err)
				continue
			}
			stepLogger.Error("Step failed, aborting scenario.", "error", err)
			return fmt.Errorf("scenario %s: step %s: %w", name, step.Name, err)
		}
		stepLogger.Info("✅ Finished step")
	}

	logger.Info("🏁 Scenario finished.", "patches_applied", run.Patches.Len())
	return nil
}

// runStep isolates one step invocation so a panicking step degrades to an
// ordinary step failure.
func runStep(ctx context.Context, step Step, run *Run) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("step panicked: %v", r)
		}
	}()
	return step.Run(ctx, run)
}
