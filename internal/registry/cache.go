// # internal/registry/cache.go
package registry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Cache persists registry metadata so repeated lookups of the same package
// skip the network. Rows expire after the configured TTL.
type Cache struct {
	path string
	db   *sql.DB
	ttl  time.Duration
	mu   sync.Mutex
}

// OpenCache opens or creates the metadata cache at path. A ttl <= 0 keeps
// rows forever.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("cache path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("cache path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite cache %q: %w", cleanPath, err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize cache schema %q: %w", cleanPath, err)
	}

	return &Cache{path: cleanPath, db: db, ttl: ttl}, nil
}

func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached metadata for (package, requested version) if a row
// exists and has not expired. requestedVersion "" keys the latest lookup.
func (c *Cache) Get(packageName, requestedVersion string) (*PackageInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		info      PackageInfo
		fetchedAt string
	)
	err := c.db.QueryRow(`
SELECT name, version, tarball_url, main_entry, types_entry, fetched_at_utc
FROM package_metadata
WHERE name = ? AND requested_version = ?
`, packageName, requestedVersion).Scan(
		&info.Name, &info.Version, &info.TarballURL, &info.Main, &info.Types, &fetchedAt,
	)
	if err != nil {
		return nil, false
	}

	if c.ttl > 0 {
		fetched, err := time.Parse(time.RFC3339Nano, fetchedAt)
		if err != nil || time.Since(fetched) > c.ttl {
			return nil, false
		}
	}

	return &info, true
}

// Put stores metadata under (package, requested version), replacing any
// previous row.
func (c *Cache) Put(info *PackageInfo, requestedVersion string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(`
INSERT INTO package_metadata (name, requested_version, version, tarball_url, main_entry, types_entry, fetched_at_utc)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(name, requested_version) DO UPDATE SET
  version=excluded.version,
  tarball_url=excluded.tarball_url,
  main_entry=excluded.main_entry,
  types_entry=excluded.types_entry,
  fetched_at_utc=excluded.fetched_at_utc
`, info.Name, requestedVersion, info.Version, info.TarballURL, info.Main, info.Types,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("cache put %s: %w", info.Name, err)
	}
	return nil
}

// Prune removes rows older than the TTL. No-op when rows never expire.
func (c *Cache) Prune() error {
	if c.ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().UTC().Add(-c.ttl).Format(time.RFC3339Nano)
	_, err := c.db.Exec(`DELETE FROM package_metadata WHERE fetched_at_utc < ?`, cutoff)
	if err != nil {
		return fmt.Errorf("cache prune: %w", err)
	}
	return nil
}
