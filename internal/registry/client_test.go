package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryDoc = `{
  "name": "demo",
  "dist-tags": {"latest": "2.0.0"},
  "versions": {
    "1.0.0": {
      "name": "demo",
      "version": "1.0.0",
      "main": "old.js",
      "dist": {"tarball": "https://example.test/demo-1.0.0.tgz"}
    },
    "2.0.0": {
      "name": "demo",
      "version": "2.0.0",
      "main": "index.js",
      "types": "index.d.ts",
      "dist": {"tarball": "https://example.test/demo-2.0.0.tgz"}
    }
  }
}`

func TestGetPackageInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/demo" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(registryDoc))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, nil, nil)

	latest, err := client.GetPackageInfo(context.Background(), "demo", "")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", latest.Version)
	assert.Equal(t, "index.js", latest.Main)
	assert.Equal(t, "index.d.ts", latest.Types)

	pinned, err := client.GetPackageInfo(context.Background(), "demo", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", pinned.Version)

	_, err = client.GetPackageInfo(context.Background(), "demo", "9.9.9")
	assert.Error(t, err)

	_, err = client.GetPackageInfo(context.Background(), "missing", "")
	assert.Error(t, err)
}

func TestGetPackageInfoUsesCache(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(registryDoc))
	}))
	defer server.Close()

	cache := openTestCache(t, 0)
	client := NewClient(server.URL, 0, cache, nil)

	_, err := client.GetPackageInfo(context.Background(), "demo", "")
	require.NoError(t, err)
	_, err = client.GetPackageInfo(context.Background(), "demo", "")
	require.NoError(t, err)

	assert.Equal(t, 1, requests, "second lookup should be served from cache")
}

func TestFindLocalPackage(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "node_modules", "express")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))

	got, ok := FindLocalPackage("express", []string{root})
	assert.True(t, ok)
	assert.Equal(t, pkgDir, got)

	_, ok = FindLocalPackage("react", []string{root})
	assert.False(t, ok)
}

func TestSafeJoinRejectsEscape(t *testing.T) {
	dest := t.TempDir()

	_, err := safeJoin(dest, "../outside.js")
	assert.Error(t, err)

	inside, err := safeJoin(dest, "package/index.js")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "package", "index.js"), inside)
}
