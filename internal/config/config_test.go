package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "npmlens.toml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Registry.URL != "https://registry.npmjs.org" {
		t.Errorf("registry url = %q", cfg.Registry.URL)
	}
	if cfg.Explore.MaxDepth != 2 {
		t.Errorf("max depth = %d", cfg.Explore.MaxDepth)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Watch.Debounce)
	}
	if cfg.Output.ModuleIcon != "📦" {
		t.Errorf("module icon = %q", cfg.Output.ModuleIcon)
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "npmlens.toml")
	content := `
[registry]
url = "https://registry.example.test"
requests_per_second = 1.5

[explore]
max_depth = 4

[output]
ascii = true
function_icon = "F"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Registry.URL != "https://registry.example.test" {
		t.Errorf("registry url = %q", cfg.Registry.URL)
	}
	if cfg.Registry.RequestsPerSecond != 1.5 {
		t.Errorf("rps = %v", cfg.Registry.RequestsPerSecond)
	}
	if cfg.Explore.MaxDepth != 4 {
		t.Errorf("max depth = %d", cfg.Explore.MaxDepth)
	}

	// Explicit icon wins, the rest fall back to ascii forms.
	if cfg.Output.FunctionIcon != "F" {
		t.Errorf("function icon = %q", cfg.Output.FunctionIcon)
	}
	if cfg.Output.ModuleIcon != "[M]" {
		t.Errorf("module icon = %q", cfg.Output.ModuleIcon)
	}
	if cfg.Output.Format != "pretty" {
		t.Errorf("format = %q", cfg.Output.Format)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "npmlens.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed file")
	}
}
