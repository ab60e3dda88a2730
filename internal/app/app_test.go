package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"npmlens/internal/config"
	"npmlens/internal/output"
	"npmlens/internal/resolver"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := config.Default()
	cfg.Registry.CachePath = filepath.Join(t.TempDir(), "cache.db")
	cfg.Output.ForceASCII()
	cfg.Output.NoColor = true

	a, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func writePackage(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExploreTreeLocalDirectory(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, map[string]string{
		"package.json": `{"name": "demo", "version": "1.2.3", "main": "index.js"}`,
		"index.js": `
export function greet(name) { return "hi " + name; }
export class Greeter {}
`,
	})

	a := newTestApp(t)
	formatter := output.NewFormatter("pretty", a.Config.Output)

	rendered, err := a.ExploreTree(context.Background(), root, formatter)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"greet", "Greeter", "@1.2.3"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("tree output missing %q:\n%s", want, rendered)
		}
	}
}

func TestSignatureFromLocalPackage(t *testing.T) {
	workDir := t.TempDir()
	writePackage(t, filepath.Join(workDir, "node_modules", "mypkg"), map[string]string{
		"package.json": `{"name": "mypkg", "version": "0.1.0", "main": "index.js"}`,
		"index.js":     "export function greet(name, punctuation = '!') { return name; }\n",
	})
	t.Chdir(workDir)

	a := newTestApp(t)
	formatter := output.NewFormatter("pretty", a.Config.Output)

	rendered, err := a.Signature(context.Background(), "mypkg:greet", formatter)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rendered, "greet") {
		t.Errorf("signature output missing symbol name:\n%s", rendered)
	}
	if !strings.Contains(rendered, "punctuation") {
		t.Errorf("signature output missing parameter:\n%s", rendered)
	}
}

func TestSignatureNotAvailable(t *testing.T) {
	workDir := t.TempDir()
	writePackage(t, filepath.Join(workDir, "node_modules", "mypkg"), map[string]string{
		"package.json": `{"name": "mypkg", "version": "0.1.0", "main": "index.js"}`,
		"index.js":     "export function greet() {}\n",
	})
	t.Chdir(workDir)

	a := newTestApp(t)
	formatter := output.NewFormatter("pretty", a.Config.Output)

	rendered, err := a.Signature(context.Background(), "mypkg:missing", formatter)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rendered, "signature not available") {
		t.Errorf("expected graceful fallback, got:\n%s", rendered)
	}
}

func TestSignatureMalformedRequest(t *testing.T) {
	a := newTestApp(t)
	formatter := output.NewFormatter("pretty", a.Config.Output)

	_, err := a.Signature(context.Background(), "no-colon-here", formatter)
	if err == nil {
		t.Fatal("expected error for malformed request")
	}
	var invalid *resolver.InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidRequestError, got %T", err)
	}
}
