// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"packager-cli/internal/issue"
	"packager-cli/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if !slices.Equal(cfg.Packages, []string{"."}) {
		t.Errorf("expected default packages [.], got %v", cfg.Packages)
	}
	if cfg.Output != "" {
		t.Errorf("expected default output to be empty, got %q", cfg.Output)
	}
	if cfg.BuildToken != "%build%" {
		t.Errorf("expected default build token %%build%%, got %q", cfg.BuildToken)
	}
	if !cfg.StampBuilds {
		t.Error("expected build stamping to be enabled by default")
	}
	if cfg.StrictProviders {
		t.Error("expected strict providers to be disabled by default")
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Packages = []string{"lib", "  "}
	cfg.BuildToken = ""
	cfg.UI.ColorScheme = "neon"

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *InvalidConfigError, got %T", err)
	}
	if len(cfgErr.FieldErrors) != 3 {
		t.Errorf("expected 3 field errors, got %v", cfgErr.FieldErrors)
	}
	if !errors.Is(cfgErr.FieldErrors[2], ErrInvalidColorScheme) {
		t.Errorf("expected color scheme error last, got %v", cfgErr.FieldErrors[2])
	}
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("expected no config file, got %q", path)
	}
	if !slices.Equal(cfg.Packages, DefaultConfig().Packages) {
		t.Errorf("expected default packages, got %v", cfg.Packages)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, "config.cue"), `
packages: ["core", "ext"]
strict_providers: true
ui: verbose: true
`)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("expected config path in dir, got %q", path)
	}
	if !slices.Equal(cfg.Packages, []string{"core", "ext"}) {
		t.Errorf("expected packages [core ext], got %v", cfg.Packages)
	}
	if !cfg.StrictProviders || !cfg.UI.Verbose {
		t.Errorf("expected strict providers and verbose, got %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.BuildToken != DefaultBuildToken || cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected defaults for unset keys, got %+v", cfg)
	}
}

func TestLoad_CustomPath_NotFound(t *testing.T) {
	t.Parallel()

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "missing.cue")})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %T", err)
	}
	if ae.Operation != "load configuration" || !ae.HasSuggestions() {
		t.Errorf("unexpected actionable error: %+v", ae)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "syntax error", content: `packages: [`},
		{name: "unknown field", content: `compress: true`},
		{name: "wrong type", content: `strict_providers: "yes"`},
		{name: "bad color scheme", content: `ui: color_scheme: "neon"`},
		{name: "empty package path", content: `packages: [""]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.cue")
			writeConfig(t, path, tt.content)

			_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: path})
			if err == nil {
				t.Fatal("expected schema error")
			}
			if !strings.Contains(err.Error(), "failed to load configuration") {
				t.Errorf("expected actionable load error, got %v", err)
			}
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PACKAGER_STRICT_PROVIDERS", "true")
	t.Setenv("PACKAGER_UI_VERBOSE", "true")
	t.Setenv("PACKAGER_OUTPUT", "dist/app.js")

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.StrictProviders || !cfg.UI.Verbose || cfg.Output != "dist/app.js" {
		t.Errorf("expected environment overrides, got %+v", cfg)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := loadWithOptions(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateCUE_RoundTrips(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Packages = []string{"core", "vendor/more"}
	cfg.Output = "dist/all.js"
	cfg.UI.ColorScheme = ColorSchemeDark

	path := filepath.Join(t.TempDir(), "config.cue")
	writeConfig(t, path, GenerateCUE(cfg))

	loaded, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("generated config failed to load: %v", err)
	}
	if !slices.Equal(loaded.Packages, cfg.Packages) || loaded.Output != cfg.Output || loaded.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	cfg := DefaultConfig()
	cfg.StrictProviders = true
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	path, err := ResolvePath(LoadOptions{})
	if err != nil {
		t.Fatalf("ResolvePath() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("ResolvePath() = %q", path)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded.StrictProviders {
		t.Error("expected saved strict_providers to load back")
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoad_WorkingDirectoryFallback(t *testing.T) {
	wd := t.TempDir()
	writeConfig(t, filepath.Join(wd, "config.cue"), `output: "dist/bundle.js"`)
	t.Cleanup(testutil.MustChdir(t, wd))

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "config.cue" {
		t.Errorf("expected working-directory config, got %q", path)
	}
	if cfg.Output != "dist/bundle.js" {
		t.Errorf("expected output from working-directory config, got %q", cfg.Output)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup applies to Linux")
	}
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Cleanup(testutil.MustUnsetenv(t, "XDG_CONFIG_HOME"))

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if dir != filepath.Join(home, ".config", "packager") {
		t.Errorf("ConfigDir() = %q", dir)
	}

	t.Cleanup(testutil.MustSetenv(t, "XDG_CONFIG_HOME", "/xdg"))
	if dir, _ := ConfigDir(); dir != filepath.Join("/xdg", "packager") {
		t.Errorf("ConfigDir() with XDG_CONFIG_HOME = %q", dir)
	}
}
