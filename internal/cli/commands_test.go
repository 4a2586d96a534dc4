package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotok/internal/cli"
	"github.com/yaklabco/gotok/pkg/config"
)

func TestRulesCommand_Preset(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "rules", "math")
	require.NoError(t, err)
	assert.Contains(t, out, "math rules=5")
	assert.Contains(t, out, "kind=number")
	assert.Contains(t, out, `match="class digit"`)
}

func TestRulesCommand_JSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "rules", "lisp", "--format", "json")
	require.NoError(t, err)

	var got struct {
		Name    string `json:"name"`
		Entries int    `json:"entries"`
		Rules   []struct {
			Index int    `json:"index"`
			Kind  string `json:"kind"`
			Type  string `json:"type"`
			Match string `json:"match"`
		} `json:"rules"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "lisp", got.Name)
	require.Len(t, got.Rules, 6)
	assert.Equal(t, 6, got.Entries)
	assert.Equal(t, "branch", got.Rules[2].Type)
	assert.Equal(t, `"(" .. ")"`, got.Rules[2].Match)
}

func TestRulesCommand_RulesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ops.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: ops\nrules:\n  - kind: op\n    literals: [\"==\", \"=\"]\n"), 0o600))

	out, err := execute(t, "", "rules", "--rules", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"entries": 2`)
}

func TestRulesCommand_DefaultsToFallback(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "c rules=")
}

func TestRulesCommand_UnknownPreset(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "rules", "cobol")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestPresetsCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "presets", "--format", "json")
	require.NoError(t, err)

	var got []struct {
		Name     string `json:"name"`
		Close    string `json:"close"`
		Fallback bool   `json:"fallback"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
		if p.Name == "c" {
			assert.True(t, p.Fallback)
			assert.Equal(t, "delimiter", p.Close)
		}
		if p.Name == "math" {
			assert.Equal(t, "text", p.Close)
		}
	}
	assert.Equal(t, []string{"c", "go", "json", "lisp", "math"}, names)
}

func TestPresetsCommand_Text(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "c (fallback)")
	assert.Contains(t, out, "lisp")
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".gotok.yml")

	_, err := execute(t, "", "init", "--preset", "lisp", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "lisp", cfg.Preset)
	assert.Equal(t, config.ModeTree, cfg.Mode)

	_, err = execute(t, "", "init", "--output", path)
	require.Error(t, err, "existing file without --force")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = execute(t, "", "init", "--full", "--force", "--output", path)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	cfg, err = config.FromYAML(data)
	require.NoError(t, err)
	require.NotNil(t, cfg.Rules)
	assert.Equal(t, "custom", cfg.Rules.Name)
}

func TestInitCommand_UnknownPreset(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "init", "--preset", "cobol", "--output", filepath.Join(t.TempDir(), "x.yml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrUsage)
}
