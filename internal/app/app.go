// # internal/app/app.go

// Package app wires the pieces together: package location, exploration,
// signature resolution, and rendering.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"npmlens/internal/config"
	"npmlens/internal/explorer"
	"npmlens/internal/model"
	"npmlens/internal/output"
	"npmlens/internal/parser"
	"npmlens/internal/registry"
	"npmlens/internal/resolver"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger

	parser   *parser.Parser
	explorer *explorer.Explorer
	sigs     *resolver.Service
	client   *registry.Client
	cache    *registry.Cache
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	p := parser.NewParser(parser.NewGrammarLoader())

	exp, err := explorer.New(p, cfg.Explore.MaxDepth, cfg.Explore.Exclude, logger)
	if err != nil {
		return nil, fmt.Errorf("build explorer: %w", err)
	}

	var cache *registry.Cache
	if cfg.Registry.CachePath != "" {
		cache, err = registry.OpenCache(cfg.Registry.CachePath, cfg.Registry.CacheTTL)
		if err != nil {
			// Degrade to uncached operation rather than refusing to run.
			logger.Warn("metadata cache unavailable", "path", cfg.Registry.CachePath, "err", err)
			cache = nil
		}
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		parser:   p,
		explorer: exp,
		sigs:     resolver.NewService(p, logger),
		client:   registry.NewClient(cfg.Registry.URL, cfg.Registry.RequestsPerSecond, cache, logger),
		cache:    cache,
	}, nil
}

func (a *App) Close() error {
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}

// LocatePackage finds the package's files on disk, downloading from the
// registry when no local copy exists. cleanup removes any temporary unpack
// directory and is always safe to call.
func (a *App) LocatePackage(ctx context.Context, spec string) (root string, cleanup func(), err error) {
	cleanup = func() {}

	name, version := registry.ParsePackageSpec(spec)

	if local, ok := registry.FindLocalPackage(name, registry.DefaultSearchPaths()); ok {
		a.Logger.Info("using locally installed package", "package", name, "path", local)
		return local, cleanup, nil
	}

	info, err := a.client.GetPackageInfo(ctx, name, version)
	if err != nil {
		return "", cleanup, err
	}

	dir, err := a.client.DownloadPackage(ctx, info)
	if err != nil {
		return "", cleanup, err
	}

	cleanup = func() { os.RemoveAll(dir) }
	return dir, cleanup, nil
}

// ExploreTree renders the module tree for a package spec or a local
// directory.
func (a *App) ExploreTree(ctx context.Context, spec string, formatter output.Formatter) (string, error) {
	root, name, cleanup, err := a.locateTreeTarget(ctx, spec)
	if err != nil {
		return "", err
	}
	defer cleanup()

	info, err := a.explorer.Explore(ctx, root, name)
	if err != nil {
		return "", err
	}

	return formatter.FormatTree(info)
}

// ExploreLocalRoot explores an already-located directory. Used by watch mode
// where the root stays fixed across refreshes.
func (a *App) ExploreLocalRoot(ctx context.Context, root, name string) (*model.ModuleInfo, error) {
	return a.explorer.Explore(ctx, root, name)
}

// Signature resolves a "modulePath:symbolName" request and renders it. A
// symbol that cannot be found renders the "not available" fallback, not an
// error; only a malformed request errors.
func (a *App) Signature(ctx context.Context, request string, formatter output.Formatter) (string, error) {
	modulePath, symbolName, err := resolver.ParseSignatureRequest(request)
	if err != nil {
		return "", err
	}

	basePackage := registry.ExtractBasePackage(modulePath)

	root, cleanup, err := a.LocatePackage(ctx, basePackage)
	if err != nil {
		a.Logger.Debug("package not locatable", "package", basePackage, "err", err)
		// The well-known table can still answer without any files on disk.
		if sig := resolver.LookupWellKnown(modulePath, symbolName); sig != nil {
			return formatter.FormatSignature(sig)
		}
		return formatter.FormatSignatureNotAvailable(symbolName), nil
	}
	defer cleanup()

	sig := a.sigs.ExtractSignature(root, modulePath, symbolName)
	if sig == nil {
		return formatter.FormatSignatureNotAvailable(symbolName), nil
	}

	return formatter.FormatSignature(sig)
}

// locateTreeTarget treats an existing directory path as a local package root
// and anything else as a registry spec.
func (a *App) locateTreeTarget(ctx context.Context, spec string) (string, string, func(), error) {
	if stat, err := os.Stat(spec); err == nil && stat.IsDir() {
		return spec, filepath.Base(spec), func() {}, nil
	}
	name, _ := registry.ParsePackageSpec(spec)
	root, cleanup, err := a.LocatePackage(ctx, spec)
	return root, name, cleanup, err
}
