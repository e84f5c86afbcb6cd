// Package layer_catalog is the demo scenario for the custom layer catalog:
// it resolves the viewer configuration URL through the session store,
// fetches the catalog document, arranges it into the folder-grouped tree,
// wraps layer queries with logging advice, and constructs a map from the
// catalog's visible layers.
package layer_catalog

import (
	"context"
	"errors"
	"time"

	"github.com/vk/patchgridgo/internal/await"
	"github.com/vk/patchgridgo/internal/catalog"
	"github.com/vk/patchgridgo/internal/ctxlog"
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
	// ConfigURL overrides the harness-wide configuration document for this
	// run; the chosen URL is persisted in the session store either way.
	ConfigURL string `hcl:"config_url,optional"`
	// Service names the map service whose visible layers the map shows.
	// Defaults to the first service of the catalog document.
	Service string `hcl:"service,optional"`
}

// Module implements the scenario.Module interface for this package.
type Module struct{}

// Register registers the scenario with the application's registry.
func (m *Module) Register(r *scenario.Registry) {
	r.Register("layer_catalog", &scenario.RegisteredScenario{
		Description: "Layer catalog control with folder grouping and logged queries.",
		NewInput:    func() any { return new(Input) },
		Steps:       steps,
	})
}

func steps(deps *scenario.Deps, in any) []scenario.Step {
	input := in.(*Input)
	loader := mapapi.NewLoader(deps.Client, deps.MapURL)

	return []scenario.Step{
		{
			Name: "resolve_config_url",
			Run: func(ctx context.Context, run *scenario.Run) error {
				url := input.ConfigURL
				if url == "" {
					url = deps.ConfigURL
				}
				if url == "" {
					return errors.New("no configuration URL: set config_url in the grid or --config-url on the harness")
				}
				deps.Sessions.Put(run.ID, url)
				return nil
			},
		},
		{
			Name: "load_map_api",
			Run: func(ctx context.Context, run *scenario.Run) error {
				run.Handle = loader.Start(ctx)
				return nil
			},
		},
		{
			Name: "fetch_catalog",
			Run: func(ctx context.Context, run *scenario.Run) error {
				url, ok := deps.Sessions.Get(run.ID)
				if !ok {
					return errors.New("session has no configuration URL")
				}
				doc, err := catalog.Fetch(ctx, deps.Client, url)
				if err != nil {
					return err
				}
				run.Catalog = doc
				return nil
			},
		},
		{
			Name: "build_catalog_tree",
			Run: func(ctx context.Context, run *scenario.Run) error {
				run.CatalogTree = catalog.BuildTree(run.Catalog)
				ctxlog.FromContext(ctx).Info("Catalog tree built.",
					"services", len(run.CatalogTree.Children))
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
			Name:       "patch_layer_query",
			BestEffort: true,
			Run: func(ctx context.Context, run *scenario.Run) error {
				undo, ok := patch.Apply(ctx, run.Namespace().Layer, "Query",
					patch.WithLabel("namespace.layer.Query"))
				if !ok {
					return errors.New("Query slot not patchable")
				}
				run.Patches.Add(undo)
				return nil
			},
		},
		{
			Name: "construct_map",
			Run: func(ctx context.Context, run *scenario.Run) error {
				serviceName := input.Service
				if serviceName == "" && len(run.Catalog.Services) > 0 {
					serviceName = run.Catalog.Services[0].Name
				}
				m := mapapi.NewMap(run.Namespace(), mapapi.MapOptions{
					LayerIDs: run.Catalog.VisibleLayerIDs(serviceName),
				})
				if err := m.Load(ctx); err != nil {
					return err
				}
				run.Map = m
				return nil
			},
		},
		{
			Name:       "query_visible_layers",
			BestEffort: true,
			Run: func(ctx context.Context, run *scenario.Run) error {
				for _, id := range run.Map.Options().LayerIDs {
					if _, err := run.Namespace().Layer.Query(ctx, id, "1=1"); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
