package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotok/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		t.Parallel()
		original := &config.Config{
			Ignore:     []string{"vendor/**"},
			Extensions: []string{".c"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Extensions[0] = ".h"
		assert.Equal(t, "vendor/**", original.Ignore[0])
		assert.Equal(t, ".c", original.Extensions[0])
	})

	t.Run("deep copies inline rules", func(t *testing.T) {
		t.Parallel()
		original := &config.Config{
			Rules: &config.RuleSet{
				Name: "x",
				Rules: []config.RuleSpec{
					{Kind: "paren", Branch: []string{"(", ")"}},
				},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone.Rules)
		assert.NotSame(t, original.Rules, clone.Rules)

		clone.Rules.Rules[0].Branch[0] = "["
		assert.Equal(t, "(", original.Rules.Rules[0].Branch[0])
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Format = config.FormatJSON
		original.Jobs = 3
		original.Strict = true

		clone := original.Clone()
		assert.Equal(t, config.FormatJSON, clone.Format)
		assert.Equal(t, 3, clone.Jobs)
		assert.True(t, clone.Strict)
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
mode: flat
preset: c
max_depth: 4
close: delimiter
code_blocks: true
extensions: [".c", ".h"]
rules:
  name: inline
  rules:
    - kind: number
      class: digit
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, config.ModeFlat, cfg.Mode)
	assert.Equal(t, "c", cfg.Preset)
	assert.Equal(t, 4, cfg.MaxDepth)
	assert.Equal(t, config.CloseDelimiter, cfg.Close)
	assert.True(t, cfg.CodeBlocks)
	assert.Equal(t, []string{".c", ".h"}, cfg.Extensions)
	require.NotNil(t, cfg.Rules)
	assert.Equal(t, "inline", cfg.Rules.Name)
	require.Len(t, cfg.Rules.Rules, 1)
	assert.Equal(t, "digit", cfg.Rules.Rules[0].Class)
}

func TestFromYAML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("mode: [unclosed"))
	assert.Error(t, err)
}

func TestToYAML_OmitsCLIFields(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Jobs = 8
	cfg.Strict = true

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "mode: tree")
	assert.Contains(t, out, "preset: auto")
	assert.NotContains(t, out, "jobs")
	assert.NotContains(t, out, "strict")
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Regexp(t, `^# header\n\nmode: tree`, string(data))
}

func TestMode_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.ModeTree.IsValid())
	assert.True(t, config.ModeFlat.IsValid())
	assert.False(t, config.Mode("spiral").IsValid())
}
