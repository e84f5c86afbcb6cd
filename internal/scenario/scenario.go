// Package scenario defines the harness's demo views and the sequencer that
// runs their initialization steps. Each scenario is an ordered list of
// asynchronous steps — script loading, namespace polling, configuration
// fetches, patch application, map construction — executed strictly one
// after another, because later steps depend on shared state the earlier
// ones establish.
package scenario

import (
	"context"

	"github.com/google/uuid"
	"github.com/vk/patchgridgo/internal/catalog"
	"github.com/vk/patchgridgo/internal/mapapi"
	"github.com/vk/patchgridgo/internal/patch"
	"github.com/vk/patchgridgo/internal/session"
	"resty.dev/v3"
)

// Deps carries the long-lived collaborators a scenario wires its steps to.
type Deps struct {
	// Client is the shared HTTP client for the map service and the config
	// backend.
	Client *resty.Client
	// Sessions stores the per-run configuration URL.
	Sessions *session.Store
	// MapURL is the base URL of the mapping service.
	MapURL string
	// ConfigURL is the default catalog configuration document.
	ConfigURL string
}

// Run is the mutable state of one scenario execution. Steps populate it in
// order; teardown drains Patches and destroys the map.
type Run struct {
	ID       string
	Scenario string

	Patches *patch.Registry

	Handle      *mapapi.Handle
	Catalog     *catalog.Document
	CatalogTree *catalog.Node
	Map         *mapapi.Map
}

func newRun(name string) *Run {
	return &Run{
		ID:       uuid.NewString(),
		Scenario: name,
		Patches:  patch.NewRegistry(),
	}
}

// Namespace returns the published map API namespace, or nil while the
// loader has not finished.
func (r *Run) Namespace() *mapapi.Namespace {
	if r.Handle == nil {
		return nil
	}
	return r.Handle.Get()
}

// Step is one initialization step of a scenario.
type Step struct {
	Name string
	// BestEffort marks steps whose failure leaves the run degraded instead
	// of aborting it: patch application and diagnostics, per the harness's
	// single failure policy.
	BestEffort bool
	Run        func(ctx context.Context, run *Run) error
}

// RegisteredScenario ties a grid scenario type to its Go implementation.
type RegisteredScenario struct {
	Description string
	// NewInput returns a fresh pointer the grid's arguments block decodes
	// into, or nil when the scenario takes no arguments.
	NewInput func() any
	// Steps builds the ordered step list for one run.
	Steps func(deps *Deps, input any) []Step
}
