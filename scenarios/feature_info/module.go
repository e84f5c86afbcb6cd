// Package feature_info is the demo scenario for the custom feature-info
// popup: it wraps the identify call with a documented response
// transformation that rewrites raw attribute keys to display aliases, and
// points the popup control at the scenario's own template.
package feature_info

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
	namespaceAttempts = 50
	namespaceInterval = 100 * time.Millisecond
)

// Input defines the arguments accepted from the grid file.
type Input struct {
	// Aliases maps raw attribute names to the display names the popup
	// shows. Unmapped attributes pass through unchanged.
	Aliases      map[string]string `hcl:"aliases,optional"`
	Tolerance    int               `hcl:"tolerance,optional"`
	TemplatePath string            `hcl:"template_path,optional"`
}

// Module implements the scenario.Module interface for this package.
type Module struct{}

// Register registers the scenario with the application's registry.
func (m *Module) Register(r *scenario.Registry) {
	r.Register("feature_info", &scenario.RegisteredScenario{
		Description: "Feature-info popup with alias-rewritten identify responses.",
		NewInput:    func() any { return new(Input) },
		Steps:       steps,
	})
}

func steps(deps *scenario.Deps, in any) []scenario.Step {
	input := in.(*Input)
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
			Name: "await_namespace",
			Run: func(ctx context.Context, run *scenario.Run) error {
				return await.WaitFor(ctx, "mapapi.namespace", run.Handle.Ready, namespaceAttempts, namespaceInterval)
			},
		},
		{
			Name:       "override_popup_template",
			BestEffort: true,
			Run: func(ctx context.Context, run *scenario.Run) error {
				if input.TemplatePath == "" {
					return nil
				}
				run.Namespace().Control.SetTemplate("feature_info", input.TemplatePath)
				return nil
			},
		},
		{
			// This patch is deliberately not transparent: it rewrites the
			// identify response's attribute keys to display aliases.
			Name:       "patch_identify_with_aliases",
			BestEffort: true,
			Run: func(ctx context.Context, run *scenario.Run) error {
				undo, ok := patch.Apply(ctx, run.Namespace().Layer, "Identify",
					patch.WithLabel("namespace.layer.Identify"),
					patch.WithTransform(aliasTransform(input.Aliases)))
				if !ok {
					return errors.New("Identify slot not patchable")
				}
				run.Patches.Add(undo)
				return nil
			},
		},
		{
			Name: "construct_map",
			Run: func(ctx context.Context, run *scenario.Run) error {
				m := mapapi.NewMap(run.Namespace(), mapapi.MapOptions{})
				if err := m.Load(ctx); err != nil {
					return err
				}
				run.Map = m
				return nil
			},
		},
		{
			Name:       "identify_at_center",
			BestEffort: true,
			Run: func(ctx context.Context, run *scenario.Run) error {
				extent := run.Namespace().Info.FullExtent
				center := mapapi.Point{
					X: (extent.XMin + extent.XMax) / 2,
					Y: (extent.YMin + extent.YMax) / 2,
				}
				_, err := run.Namespace().Layer.Identify(ctx, mapapi.IdentifyParams{
					Location:  center,
					Tolerance: input.Tolerance,
				})
				return err
			},
		},
	}
}

// aliasTransform rewrites each identify result's attribute keys using the
// configured alias table. Failed calls pass through untouched.
func aliasTransform(aliases map[string]string) func(results []any) []any {
	return func(results []any) []any {
		if len(aliases) == 0 {
			return results
		}
		ir, ok := results[0].(*mapapi.IdentifyResult)
		if !ok || ir == nil {
			return results
		}

		for i, feature := range ir.Results {
			renamed := make(map[string]any, len(feature.Attributes))
			for key, value := range feature.Attributes {
				if alias, ok := aliases[key]; ok {
					key = alias
				}
				renamed[key] = value
			}
			ir.Results[i].Attributes = renamed
		}
		return results
	}
}
