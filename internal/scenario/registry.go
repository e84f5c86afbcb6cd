package scenario

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/patchgridgo/internal/schema"
)

// Module is the interface scenario packages implement to self-register.
type Module interface {
	Register(r *Registry)
}

// Registry maps grid scenario types to their registered implementations
// for a single application instance.
type Registry struct {
	scenarios map[string]*RegisteredScenario
}

// NewRegistry creates and initializes a new Registry instance.
func NewRegistry() *Registry {
	return &Registry{scenarios: make(map[string]*RegisteredScenario)}
}

// Register adds a scenario under its grid type name. Registering the same
// name twice is a programmer error and panics.
func (r *Registry) Register(name string, sc *RegisteredScenario) {
	if _, exists := r.scenarios[name]; exists {
		panic(fmt.Sprintf("scenario with name '%s' already registered", name))
	}
	if sc.Steps == nil {
		panic(fmt.Sprintf("scenario '%s' registered without a Steps builder", name))
	}
	slog.Debug("Registering scenario.", "name", name)
	r.scenarios[name] = sc
}

// Lookup returns the registered scenario for a grid type name.
func (r *Registry) Lookup(name string) (*RegisteredScenario, bool) {
	sc, ok := r.scenarios[name]
	return sc, ok
}

// Names returns the registered scenario names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateGrid checks that every scenario block of a loaded grid refers to
// a registered scenario, so mismatches between grid files and compiled
// modules fail at startup rather than mid-run.
func (r *Registry) ValidateGrid(g *schema.Grid) error {
	for _, block := range g.Scenarios {
		if _, ok := r.scenarios[block.Type]; !ok {
			return fmt.Errorf("grid references unknown scenario type '%s' (registered: %v)",
				block.Type, r.Names())
		}
	}
	return nil
}
