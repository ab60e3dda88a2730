// # internal/registry/client.go
package registry

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cavaliergopher/grab/v3"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"npmlens/internal/shared/observability"
)

const DefaultRegistryURL = "https://registry.npmjs.org"

// maxEntrySize caps one extracted tarball member; npm source files do not
// legitimately approach this.
const maxEntrySize = 64 << 20

// PackageInfo is the metadata needed to fetch and enter one package version.
type PackageInfo struct {
	Name       string
	Version    string
	TarballURL string
	Main       string
	Types      string
}

type Client struct {
	http        *http.Client
	registryURL string
	limiter     *rate.Limiter
	cache       *Cache
	logger      *slog.Logger
}

// NewClient builds a registry client. cache may be nil to disable metadata
// caching; requestsPerSecond <= 0 disables rate limiting.
func NewClient(registryURL string, requestsPerSecond float64, cache *Cache, logger *slog.Logger) *Client {
	if registryURL == "" {
		registryURL = DefaultRegistryURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}

	return &Client{
		http:        &http.Client{Timeout: 30 * time.Second},
		registryURL: strings.TrimSuffix(registryURL, "/"),
		limiter:     limiter,
		cache:       cache,
		logger:      logger,
	}
}

// GetPackageInfo fetches metadata for a package, serving from the cache when
// a fresh row exists. Empty version means the registry's latest tag.
func (c *Client) GetPackageInfo(ctx context.Context, packageName, version string) (*PackageInfo, error) {
	ctx, span := observability.Tracer.Start(ctx, "registry.GetPackageInfo")
	defer span.End()

	if c.cache != nil {
		if info, ok := c.cache.Get(packageName, version); ok {
			observability.CacheHitsTotal.WithLabelValues("hit").Inc()
			return info, nil
		}
		observability.CacheHitsTotal.WithLabelValues("miss").Inc()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := c.registryURL + "/" + packageName
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		observability.RegistryRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.RegistryRequestsTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("package %q not found in registry (status %d)", packageName, resp.StatusCode)
	}
	observability.RegistryRequestsTotal.WithLabelValues("ok").Inc()

	var doc registryDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode registry response for %q: %w", packageName, err)
	}

	info, err := doc.versionInfo(packageName, version)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(info, version); err != nil {
			c.logger.Debug("metadata cache write failed", "package", packageName, "err", err)
		}
	}

	return info, nil
}

// registryDocument is the subset of a registry response this client reads. It
// covers both the all-versions document and a single-version document.
type registryDocument struct {
	Name     string                     `json:"name"`
	Version  string                     `json:"version"`
	DistTags map[string]string          `json:"dist-tags"`
	Versions map[string]json.RawMessage `json:"versions"`
	Dist     distInfo                   `json:"dist"`
	Main     string                     `json:"main"`
	Types    string                     `json:"types"`
	Typings  string                     `json:"typings"`
}

type distInfo struct {
	Tarball string `json:"tarball"`
}

func (d *registryDocument) versionInfo(packageName, version string) (*PackageInfo, error) {
	if len(d.Versions) == 0 {
		// Single-version document.
		return d.toPackageInfo()
	}

	target := version
	if target == "" {
		target = d.DistTags["latest"]
		if target == "" {
			return nil, fmt.Errorf("no latest version for %q", packageName)
		}
	}

	raw, ok := d.Versions[target]
	if !ok {
		return nil, fmt.Errorf("version %q of %q not found", target, packageName)
	}

	var versionDoc registryDocument
	if err := json.Unmarshal(raw, &versionDoc); err != nil {
		return nil, fmt.Errorf("decode version %q of %q: %w", target, packageName, err)
	}
	return versionDoc.toPackageInfo()
}

func (d *registryDocument) toPackageInfo() (*PackageInfo, error) {
	if d.Name == "" || d.Version == "" || d.Dist.Tarball == "" {
		return nil, fmt.Errorf("incomplete registry metadata for %q", d.Name)
	}

	types := d.Types
	if types == "" {
		types = d.Typings
	}
	return &PackageInfo{
		Name:       d.Name,
		Version:    d.Version,
		TarballURL: d.Dist.Tarball,
		Main:       d.Main,
		Types:      types,
	}, nil
}

// DownloadPackage fetches and unpacks the package tarball into a fresh
// directory and returns the path of the unpacked package/ subdirectory. The
// caller removes the directory when done.
func (c *Client) DownloadPackage(ctx context.Context, info *PackageInfo) (string, error) {
	ctx, span := observability.Tracer.Start(ctx, "registry.DownloadPackage")
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	jobID := uuid.NewString()
	workDir := filepath.Join(os.TempDir(), "npmlens-"+jobID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", err
	}

	c.logger.Info("downloading package",
		"package", info.Name, "version", info.Version, "job", jobID)

	req, err := grab.NewRequest(workDir, info.TarballURL)
	if err != nil {
		os.RemoveAll(workDir)
		return "", err
	}
	req = req.WithContext(ctx)

	resp := grab.DefaultClient.Do(req)
	if err := resp.Err(); err != nil {
		os.RemoveAll(workDir)
		return "", fmt.Errorf("download %s: %w", info.TarballURL, err)
	}
	observability.RegistryDownloadBytes.Add(float64(resp.BytesComplete()))

	if err := extractTarball(resp.Filename, workDir); err != nil {
		os.RemoveAll(workDir)
		return "", fmt.Errorf("extract %s: %w", resp.Filename, err)
	}
	os.Remove(resp.Filename)

	// npm tarballs unpack under package/.
	packageDir := filepath.Join(workDir, "package")
	if stat, err := os.Stat(packageDir); err != nil || !stat.IsDir() {
		return workDir, nil
	}
	return packageDir, nil
}

func extractTarball(tarballPath, destDir string) error {
	f, err := os.Open(tarballPath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := safeJoin(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, io.LimitReader(tr, maxEntrySize)); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		}
	}
}

// safeJoin rejects tarball entries that would escape the destination.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.Clean("/"+name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(filepath.Separator)) {
		return "", fmt.Errorf("tarball entry %q escapes destination", name)
	}
	return target, nil
}
