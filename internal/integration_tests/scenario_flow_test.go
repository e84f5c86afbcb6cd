package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/patchgridgo/internal/app"
	"github.com/vk/patchgridgo/internal/testutil"
)

// TestRun_LayerCatalogEndToEnd drives the layer_catalog scenario against a
// canned map service and configuration backend and expects a clean run:
// catalog fetched, namespace patched, map constructed, patches restored.
func TestRun_LayerCatalogEndToEnd(t *testing.T) {
	t.Parallel()
	mapSrv := testutil.NewMapServer(t)
	cfgSrv := newConfigServer(t)

	gridHCL := `
		scenario "layer_catalog" "city" {
		  arguments {
		    service = "Base"
		  }
		}
	`
	result := runHarness(t, gridHCL, app.Config{
		MapServiceURL: mapSrv.URL,
		ConfigURL:     cfgSrv.URL,
	})

	require.NoError(t, result.Err)
	assert.Contains(t, result.LogOutput, "🚀 Starting scenario execution...")
	assert.Contains(t, result.LogOutput, "▶️ Starting step")
	assert.Contains(t, result.LogOutput, "✅ Finished step")
	assert.Contains(t, result.LogOutput, "Patched method slot.")
	assert.Contains(t, result.LogOutput, "Restoring patched methods.")
	assert.Contains(t, result.LogOutput, "🏁 Execution finished.")
	assert.NotContains(t, result.LogOutput, "level=ERROR")
}

// TestRun_AllCoreScenarios executes every compiled-in scenario from a single
// grid in file order.
func TestRun_AllCoreScenarios(t *testing.T) {
	t.Parallel()
	mapSrv := testutil.NewMapServer(t)
	cfgSrv := newConfigServer(t)

	gridHCL := `
		scenario "basemap_gallery" "gallery" {
		  arguments {
		    basemap = "topo"
		  }
		}

		scenario "layer_catalog" "catalog" {}

		scenario "feature_info" "info" {
		  arguments {
		    aliases = {
		      OBJECTID = "ID"
		    }
		  }
		}

		scenario "method_timing" "timing" {}
	`
	result := runHarness(t, gridHCL, app.Config{
		MapServiceURL: mapSrv.URL,
		ConfigURL:     cfgSrv.URL,
	})

	require.NoError(t, result.Err)
	for _, name := range []string{
		"basemap_gallery.gallery",
		"layer_catalog.catalog",
		"feature_info.info",
		"method_timing.timing",
	} {
		assert.Contains(t, result.LogOutput, name)
	}
	assert.Contains(t, result.LogOutput, "🏁 Execution finished.")
}

// TestRun_UnknownScenarioFailsAtStartup: a grid naming an unregistered
// scenario type must fail before any scenario executes.
func TestRun_UnknownScenarioFailsAtStartup(t *testing.T) {
	t.Parallel()
	mapSrv := testutil.NewMapServer(t)

	gridHCL := `scenario "no_such_view" "x" {}`
	result := runHarness(t, gridHCL, app.Config{MapServiceURL: mapSrv.URL})

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "application startup panicked")
	assert.Contains(t, result.Err.Error(), "no_such_view")
	assert.NotContains(t, result.LogOutput, "🚀 Starting scenario execution...")
}

// TestRun_InvalidArgumentsFailFast: a scenario whose arguments block does
// not decode aborts the run before its steps start.
func TestRun_InvalidArgumentsFailFast(t *testing.T) {
	t.Parallel()
	mapSrv := testutil.NewMapServer(t)

	gridHCL := `
		scenario "basemap_gallery" "bad" {
		  arguments {
		    basemap = ["not", "a", "string"]
		  }
		}
	`
	result := runHarness(t, gridHCL, app.Config{MapServiceURL: mapSrv.URL})

	require.Error(t, result.Err)
	assert.NotContains(t, result.LogOutput, "▶️ Starting step")
}
