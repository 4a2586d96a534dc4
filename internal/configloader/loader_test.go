package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gotok/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Mode != config.ModeTree {
		t.Errorf("expected mode %q, got %q", config.ModeTree, result.Config.Mode)
	}
	if result.Config.Preset != config.PresetAuto {
		t.Errorf("expected preset %q, got %q", config.PresetAuto, result.Config.Preset)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gotok.yml"), `
mode: flat
preset: math
max_depth: 3
`)

	// Search starts in a subdirectory and walks up.
	sub := filepath.Join(tmpDir, "src", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Mode != config.ModeFlat {
		t.Errorf("expected mode flat, got %q", cfg.Mode)
	}
	if cfg.Preset != "math" {
		t.Errorf("expected preset math, got %q", cfg.Preset)
	}
	if cfg.MaxDepth != 3 {
		t.Errorf("expected max_depth 3, got %d", cfg.MaxDepth)
	}
	if len(result.LoadedFrom) != 1 || !strings.HasSuffix(result.LoadedFrom[0], ".gotok.yml") {
		t.Errorf("unexpected LoadedFrom: %v", result.LoadedFrom)
	}
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gotok.yml"), "preset: math\n")
	repo := filepath.Join(tmpDir, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolated(repo))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Preset != config.PresetAuto {
		t.Errorf("config above the VCS root should not load, got preset %q", result.Config.Preset)
	}
}

func TestLoad_RulesFileRelativeToConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "conf", "rules.yaml"), `
name: pipes
rules:
  - kind: pipe
    literal: "|"
`)
	explicit := filepath.Join(tmpDir, "conf", "gotok.yaml")
	writeFile(t, explicit, "rules_file: rules.yaml\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := filepath.Join(tmpDir, "conf", "rules.yaml")
	if result.Config.RulesFile != want {
		t.Errorf("expected rules_file %q, got %q", want, result.Config.RulesFile)
	}
	if result.Paths.Explicit != explicit {
		t.Errorf("expected explicit path %q, got %q", explicit, result.Paths.Explicit)
	}
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gotok.yml"), "mode: flat\npreset: math\n")
	explicit := filepath.Join(tmpDir, "other.yaml")
	writeFile(t, explicit, "preset: lisp\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Preset != "lisp" {
		t.Errorf("expected preset lisp, got %q", result.Config.Preset)
	}
	if result.Config.Mode != config.ModeFlat {
		t.Errorf("project mode should survive, got %q", result.Config.Mode)
	}
	if len(result.LoadedFrom) != 2 {
		t.Errorf("expected 2 loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gotok.yml"), "preset: math\nclose: delimiter\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{Preset: "c", Jobs: 2, Format: config.FormatJSON}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := result.Config
	if cfg.Preset != "c" || cfg.Jobs != 2 || cfg.Format != config.FormatJSON {
		t.Errorf("CLI overrides not applied: %+v", cfg)
	}
	if cfg.Close != config.CloseDelimiter {
		t.Errorf("unset CLI fields should keep config values, got close %q", cfg.Close)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "mode", content: "mode: spiral\n", field: "mode"},
		{name: "close", content: "close: never\n", field: "close"},
		{name: "preset", content: "preset: cobol\n", field: "preset"},
		{name: "depth", content: "max_depth: -1\n", field: "max_depth"},
		{name: "rules", content: "rules:\n  rules:\n    - kind: x\n      class: nope\n", field: "rules"},
		{name: "ignore", content: "ignore: ['[unclosed']\n", field: "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, ".gotok.yml"), tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gotok.yml"), "mode: [unclosed\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	if err == nil || !strings.Contains(err.Error(), "load project config") {
		t.Fatalf("expected project config error, got %v", err)
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gotok.yml"), "extensions: [c]\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "no leading dot") {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
