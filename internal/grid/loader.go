// Package grid loads and decodes the harness's HCL grid files.
package grid

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/patchgridgo/internal/ctxlog"
	"github.com/vk/patchgridgo/internal/fsutil"
	"github.com/vk/patchgridgo/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// evalContext exposes the process environment to grid expressions as the
// `env` variable, so grids can say `config_url = env.CONFIG_URL` instead of
// hardcoding deployment-specific values.
func evalContext() *hcl.EvalContext {
	envMap := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		if pair := strings.SplitN(e, "=", 2); len(pair) == 2 {
			envMap[pair[0]] = cty.StringVal(pair[1])
		}
	}
	env := cty.MapValEmpty(cty.String)
	if len(envMap) > 0 {
		env = cty.MapVal(envMap)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}

// Load parses every .hcl file under path — a single file or a directory —
// and merges their scenario blocks into one Grid, preserving file order.
func Load(ctx context.Context, path string) (*schema.Grid, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading grid files.", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to walk grid path %s: %w", path, err)
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl grid files found in path.", "path", path)
		return &schema.Grid{}, nil
	}

	parser := hclparse.NewParser()
	merged := &schema.Grid{}
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse grid file %s: %w", filePath, diags)
		}

		var g schema.Grid
		if diags := gohcl.DecodeBody(hclFile.Body, evalContext(), &g); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode grid file %s: %w", filePath, diags)
		}
		merged.Scenarios = append(merged.Scenarios, g.Scenarios...)
		logger.Debug("Loaded grid file.", "file", filePath, "scenarios", len(g.Scenarios))
	}

	logger.Info("Grid loaded.", "files", len(filePaths), "scenarios", len(merged.Scenarios))
	return merged, nil
}

// DecodeArguments decodes a scenario block's arguments into the input
// struct its implementation registered. A missing arguments block decodes
// against an empty body, so required attributes still surface diagnostics.
func DecodeArguments(block *schema.Scenario, input any) error {
	if input == nil {
		return nil
	}

	body := hcl.EmptyBody()
	if block.Arguments != nil {
		body = block.Arguments.Body
	}
	if diags := gohcl.DecodeBody(body, evalContext(), input); diags.HasErrors() {
		return fmt.Errorf("failed to decode arguments for scenario %s.%s: %w",
			block.Type, block.Name, diags)
	}
	return nil
}
