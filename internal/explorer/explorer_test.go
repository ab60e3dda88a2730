package explorer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"npmlens/internal/model"
	"npmlens/internal/parser"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newExplorer(t *testing.T, maxDepth int, excludes []string) *Explorer {
	t.Helper()
	e, err := New(parser.NewParser(parser.NewGrammarLoader()), maxDepth, excludes, nil)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestExploreReadsPackageMetadata(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name": "demo", "version": "2.1.0", "main": "lib/main.js"}`)
	writeFile(t, root, "lib/main.js", `
export function start(config) {}
export const NAME = "demo";
`)

	info, err := newExplorer(t, 1, nil).Explore(context.Background(), root, "demo")
	if err != nil {
		t.Fatal(err)
	}

	if info.Version != "2.1.0" {
		t.Errorf("version = %q", info.Version)
	}
	if info.Main != "lib/main.js" {
		t.Errorf("main = %q", info.Main)
	}
	if len(info.Functions) != 1 || info.Functions[0].Name != "start" {
		t.Errorf("functions = %+v", info.Functions)
	}
	if len(info.Constants) != 1 || info.Constants[0].Name != "NAME" {
		t.Errorf("constants = %+v", info.Constants)
	}
}

func TestExploreFallsBackToIndex(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.js", "export function hello(name) {}\n")

	info, err := newExplorer(t, 1, nil).Explore(context.Background(), root, "nopkg")
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Functions) != 1 || info.Functions[0].Name != "hello" {
		t.Errorf("functions = %+v", info.Functions)
	}
}

func TestExploreSubmodules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name": "demo", "version": "1.0.0", "main": "index.js"}`)
	writeFile(t, root, "index.js", "export function top() {}\n")
	writeFile(t, root, "lib/router.js", "export class Router {}\n")
	writeFile(t, root, "lib/helpers.js", "export function helper(x) {}\n")
	writeFile(t, root, "lib/notes.txt", "not source\n")

	info, err := newExplorer(t, 2, nil).Explore(context.Background(), root, "demo")
	if err != nil {
		t.Fatal(err)
	}

	if len(info.Submodules) != 2 {
		t.Fatalf("submodules = %v", submoduleNames(info.Submodules))
	}
	if info.Submodules["router"] == nil || len(info.Submodules["router"].Classes) != 1 {
		t.Errorf("router submodule = %+v", info.Submodules["router"])
	}
	if info.Submodules["helpers"] == nil {
		t.Error("helpers submodule missing")
	}
}

func TestExploreDepthOneSkipsSubmodules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.js", "export function top() {}\n")
	writeFile(t, root, "lib/router.js", "export class Router {}\n")

	info, err := newExplorer(t, 1, nil).Explore(context.Background(), root, "demo")
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Submodules) != 0 {
		t.Errorf("submodules = %v", submoduleNames(info.Submodules))
	}
}

func TestExploreExcludesGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.js", "export function top() {}\n")
	writeFile(t, root, "lib/router.js", "export class Router {}\n")
	writeFile(t, root, "lib/router.test.js", "export function fake() {}\n")

	info, err := newExplorer(t, 2, []string{"**.test.js"}).Explore(context.Background(), root, "demo")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := info.Submodules["router.test"]; ok {
		t.Error("excluded file was explored")
	}
	if _, ok := info.Submodules["router"]; !ok {
		t.Error("router submodule missing")
	}
}

func TestExploreCanceledContextSkipsSubmodules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.js", "export function top() {}\n")
	writeFile(t, root, "lib/router.js", "export class Router {}\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	info, err := newExplorer(t, 2, nil).Explore(ctx, root, "demo")
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Submodules) != 0 {
		t.Errorf("submodules = %v", submoduleNames(info.Submodules))
	}
}

func submoduleNames(subs map[string]*model.ModuleInfo) []string {
	names := make([]string, 0, len(subs))
	for name := range subs {
		names = append(names, name)
	}
	return names
}
