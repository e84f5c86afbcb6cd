package grid

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_MergesScenarioBlocks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", `
		scenario "layer_catalog" "demo" {
			arguments {
				config_url = "https://config.example.com/viewer.json"
			}
		}
	`)
	writeFile(t, dir, "b.hcl", `
		scenario "method_timing" "diag" {}
	`)

	g, err := Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, g.Scenarios, 2)

	assert.Equal(t, "layer_catalog", g.Scenarios[0].Type)
	assert.Equal(t, "demo", g.Scenarios[0].Name)
	require.NotNil(t, g.Scenarios[0].Arguments)
	assert.Equal(t, "method_timing", g.Scenarios[1].Type)
	assert.Nil(t, g.Scenarios[1].Arguments)
}

func TestLoad_SingleFilePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.hcl", `scenario "basemap_gallery" "g" {}`)

	g, err := Load(context.Background(), filepath.Join(dir, "main.hcl"))
	require.NoError(t, err)
	assert.Len(t, g.Scenarios, 1)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	g, err := Load(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, g.Scenarios)
}

func TestLoad_InvalidHCLIsRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.hcl", `scenario "x" {`)

	_, err := Load(context.Background(), dir)
	require.Error(t, err)
}

func TestDecodeArguments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.hcl", `
		scenario "feature_info" "popup" {
			arguments {
				tolerance = 5
				aliases = {
					"PIN" = "Parcel Number"
				}
			}
		}
	`)

	g, err := Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, g.Scenarios, 1)

	type input struct {
		Tolerance int               `hcl:"tolerance,optional"`
		Aliases   map[string]string `hcl:"aliases,optional"`
	}
	var in input
	require.NoError(t, DecodeArguments(g.Scenarios[0], &in))
	assert.Equal(t, 5, in.Tolerance)
	assert.Equal(t, map[string]string{"PIN": "Parcel Number"}, in.Aliases)
}

func TestDecodeArguments_EnvVariableInterpolation(t *testing.T) {
	t.Setenv("VIEWER_CONFIG_URL", "https://config.example.com/from-env.json")
	dir := t.TempDir()
	writeFile(t, dir, "main.hcl", `
		scenario "layer_catalog" "demo" {
			arguments {
				config_url = env.VIEWER_CONFIG_URL
			}
		}
	`)

	g, err := Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, g.Scenarios, 1)

	type input struct {
		ConfigURL string `hcl:"config_url,optional"`
	}
	var in input
	require.NoError(t, DecodeArguments(g.Scenarios[0], &in))
	assert.Equal(t, "https://config.example.com/from-env.json", in.ConfigURL)
}

func TestDecodeArguments_MissingRequiredAttribute(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.hcl", `scenario "layer_catalog" "demo" {}`)

	g, err := Load(context.Background(), dir)
	require.NoError(t, err)

	type input struct {
		ConfigURL string `hcl:"config_url"`
	}
	err = DecodeArguments(g.Scenarios[0], &input{})
	require.Error(t, err)
}
