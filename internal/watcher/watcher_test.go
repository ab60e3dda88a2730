package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type collector struct {
	mu      sync.Mutex
	batches [][]string
	notify  chan struct{}
}

func newCollector() *collector {
	return &collector{notify: make(chan struct{}, 16)}
}

func (c *collector) onChange(paths []string) {
	c.mu.Lock()
	c.batches = append(c.batches, paths)
	c.mu.Unlock()
	c.notify <- struct{}{}
}

func (c *collector) wait(t *testing.T) []string {
	t.Helper()
	select {
	case <-c.notify:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change batch")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batches[len(c.batches)-1]
}

func TestWatcherReportsSourceChanges(t *testing.T) {
	root := t.TempDir()
	c := newCollector()

	w, err := New(50*time.Millisecond, nil, c.onChange, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Watch(root); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(root, "index.js")
	if err := os.WriteFile(target, []byte("export function x() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	batch := c.wait(t)
	found := false
	for _, path := range batch {
		if path == target {
			found = true
		}
	}
	if !found {
		t.Errorf("batch %v does not contain %s", batch, target)
	}
}

func TestWatcherIgnoresUnparseableFiles(t *testing.T) {
	root := t.TempDir()
	c := newCollector()

	w, err := New(50*time.Millisecond, nil, c.onChange, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Watch(root); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-c.notify:
		t.Error("unexpected change batch for unparseable file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	root := t.TempDir()
	c := newCollector()

	w, err := New(100*time.Millisecond, nil, c.onChange, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Watch(root); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"a.js", "b.js", "c.js"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("export {};\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	batch := c.wait(t)
	if len(batch) < 2 {
		t.Errorf("expected coalesced batch, got %v", batch)
	}
}

func TestWatcherExcludeGlob(t *testing.T) {
	root := t.TempDir()
	c := newCollector()

	w, err := New(50*time.Millisecond, []string{"*.spec.js"}, c.onChange, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Watch(root); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(root, "thing.spec.js"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-c.notify:
		t.Error("unexpected change batch for excluded file")
	case <-time.After(300 * time.Millisecond):
	}
}
