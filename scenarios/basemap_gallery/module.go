// Package basemap_gallery is the demo scenario for the custom basemap
// selector: it loads the map API, swaps in the gallery's own markup
// template, wraps the basemap fetch with logging and timing advice, and
// constructs a map.
package basemap_gallery

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
	Basemap      string `hcl:"basemap,optional"`
	TemplatePath string `hcl:"template_path,optional"`
}

// Module implements the scenario.Module interface for this package.
type Module struct{}

// Register registers the scenario with the application's registry.
func (m *Module) Register(r *scenario.Registry) {
	r.Register("basemap_gallery", &scenario.RegisteredScenario{
		Description: "Basemap gallery control with logged basemap fetches.",
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
			Name:       "override_template_path",
			BestEffort: true,
			Run: func(ctx context.Context, run *scenario.Run) error {
				if input.TemplatePath == "" {
					return nil
				}
				run.Namespace().Control.SetTemplate("basemap_gallery", input.TemplatePath)
				return nil
			},
		},
		{
			Name:       "patch_basemap_fetch",
			BestEffort: true,
			Run: func(ctx context.Context, run *scenario.Run) error {
				undo, ok := patch.Apply(ctx, run.Namespace().Control, "FetchBasemaps",
					patch.WithLabel("namespace.control.FetchBasemaps"))
				if !ok {
					return errors.New("FetchBasemaps slot not patchable")
				}
				run.Patches.Add(undo)
				return nil
			},
		},
		{
			Name: "construct_map",
			Run: func(ctx context.Context, run *scenario.Run) error {
				m := mapapi.NewMap(run.Namespace(), mapapi.MapOptions{Basemap: input.Basemap})
				if err := m.Load(ctx); err != nil {
					return err
				}
				run.Map = m
				return nil
			},
		},
		{
			Name:       "exercise_gallery",
			BestEffort: true,
			Run: func(ctx context.Context, run *scenario.Run) error {
				_, err := run.Namespace().Control.FetchBasemaps(ctx)
				return err
			},
		},
	}
}
