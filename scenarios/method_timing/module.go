// Package method_timing is the diagnostics scenario: it wraps every method
// slot across the wrap, control and layer sub-namespaces with logging and
// timing advice, then exercises a few calls so the timings show up. It is
// pure observation — nothing is transformed — and it deliberately runs all
// the way through in degraded mode when the namespace never appears.
package method_timing

import (
	"context"
	"errors"
	"time"

	"github.com/vk/patchgridgo/internal/await"
	"github.com/vk/patchgridgo/internal/mapapi"
	"github.com/vk/patchgridgo/internal/patch"
	"github.com/vk/patchgridgo/internal/scenario"
)

const (
	namespaceAttempts = 30
	namespaceInterval = 100 * time.Millisecond
)

// Module implements the scenario.Module interface for this package.
type Module struct{}

// Register registers the scenario with the application's registry. The
// scenario takes no arguments.
func (m *Module) Register(r *scenario.Registry) {
	r.Register("method_timing", &scenario.RegisteredScenario{
		Description: "Timing advice across every namespace method slot.",
		Steps:       steps,
	})
}

func steps(deps *scenario.Deps, _ any) []scenario.Step {
	loader := mapapi.NewLoader(deps.Client, deps.MapURL)

	return []scenario.Step{
		{
			Name: "load_map_api",
			Run: func(ctx context.Context, run *scenario.Run) error {
				run.Handle = loader.Start(ctx)
				return nil
			},
		},
		{
			Name:       "await_namespace",
			BestEffort: true,
			Run: func(ctx context.Context, run *scenario.Run) error {
				return await.WaitFor(ctx, "mapapi.namespace", run.Handle.Ready, namespaceAttempts, namespaceInterval)
			},
		},
		{
			Name:       "patch_all_namespaces",
			BestEffort: true,
			Run: func(ctx context.Context, run *scenario.Run) error {
				ns := run.Namespace()
				if ns == nil {
					return errors.New("namespace never appeared, nothing to patch")
				}
				run.Patches.Add(patch.MethodsWithLogging(ctx, ns.Wrap, "namespace.wrap")...)
				run.Patches.Add(patch.MethodsWithLogging(ctx, ns.Control, "namespace.control")...)
				run.Patches.Add(patch.MethodsWithLogging(ctx, ns.Layer, "namespace.layer")...)
				return nil
			},
		},
		{
			Name:       "construct_map",
			BestEffort: true,
			Run: func(ctx context.Context, run *scenario.Run) error {
				ns := run.Namespace()
				if ns == nil {
					return errors.New("namespace never appeared, skipping map construction")
				}
				m := mapapi.NewMap(ns, mapapi.MapOptions{})
				if err := m.Load(ctx); err != nil {
					return err
				}
				run.Map = m
				return nil
			},
		},
		{
			Name:       "exercise_patched_calls",
			BestEffort: true,
			Run: func(ctx context.Context, run *scenario.Run) error {
				ns := run.Namespace()
				if ns == nil {
					return errors.New("namespace never appeared, nothing to exercise")
				}

				ns.Wrap.Normalize(mapapi.Extent{XMin: 190, XMax: 200})
				if _, err := ns.Control.FetchBasemaps(ctx); err != nil {
					return err
				}
				_, err := ns.Layer.Legend(ctx)
				return err
			},
		},
	}
}
