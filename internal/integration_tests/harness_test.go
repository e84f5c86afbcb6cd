package integration_tests

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/patchgridgo/internal/app"
	"github.com/vk/patchgridgo/internal/scenario"
	"github.com/vk/patchgridgo/internal/testutil"
)

// harnessResult holds the outcomes of an integration test run.
type harnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// runHarness writes the grid to a temp dir, builds the app around it and
// executes the full run, capturing logs and recovering startup panics the
// way the real entrypoint does. An empty modules list compiles in the core
// scenarios.
func runHarness(t *testing.T, gridHCL string, cfg app.Config, modules ...scenario.Module) *harnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	gridPath := filepath.Join(tmpDir, "main.hcl")
	require.NoError(t, os.WriteFile(gridPath, []byte(gridHCL), 0o644))

	cfg.GridPath = gridPath
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	logBuffer := &testutil.SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, &cfg, modules...)
	}()
	if panicErr != nil {
		return &harnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(context.Background(), &cfg)
	return &harnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}

// newConfigServer serves a fixed catalog configuration document.
func newConfigServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"title": "City Viewer",
			"mapServices": [{
				"name": "Base",
				"url": "http://maps.example.com/Base/MapServer",
				"layers": [
					{"id": 0, "name": "Parcels", "order": 2, "visible": true},
					{"id": 1, "name": "Roads", "group": "Transport", "order": 1, "visible": true},
					{"id": 2, "name": "Hydrants", "group": "Utilities", "order": 3, "visible": false}
				]
			}]
		}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}
