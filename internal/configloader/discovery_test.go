package configloader

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAncestors(t *testing.T) {
	t.Parallel()

	root := filepath.VolumeName(os.TempDir()) + string(filepath.Separator)
	dir := filepath.Join(root, "a", "b")

	got := slices.Collect(ancestors(dir))
	assert.Equal(t, []string{dir, filepath.Join(root, "a"), root}, got)

	// Stops early when the consumer does.
	for range ancestors(dir) {
		break
	}
}

func TestFindProjectConfig_Preference(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gotok.yaml"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gotok.yaml"), nil, 0o600))

	got, err := FindProjectConfig(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".gotok.yaml"), got)
}

func TestFindProjectConfig_IgnoresDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".gotok.yml"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	got, err := FindProjectConfig(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindProjectConfig_WorktreeMarker(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(parent, ".gotok.yml"), nil, 0o600))
	tree := filepath.Join(parent, "wt")
	require.NoError(t, os.Mkdir(tree, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tree, ".git"), []byte("gitdir: ../.git/worktrees/wt\n"), 0o600))

	got, err := FindProjectConfig(context.Background(), tree)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUserConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", filepath.Join("/xdg", "conf"))
	assert.Equal(t, filepath.Join("/xdg", "conf", "gotok"), UserConfigDir())
}

func TestDiscoverPaths_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "gotok"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "gotok", "config.yml"), []byte("preset: lisp\n"), 0o600))

	paths, err := DiscoverPaths(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "gotok", "config.yml"), paths.User)

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         t.TempDir(),
		IgnoreSystemConfig: true,
		IgnoreEnv:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, "lisp", result.Config.Preset)
}
