// # internal/explorer/explorer.go

// Package explorer builds the module tree for one unpacked package: metadata
// from package.json, symbols from the entry point, and a bounded walk over
// conventional source directories.
package explorer

import (
	"context"
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"npmlens/internal/model"
	"npmlens/internal/parser"
	"npmlens/internal/shared/observability"
	"npmlens/internal/shared/util"
)

// subdirs lists the directories probed for submodules, in a fixed order.
var subdirs = []string{"lib", "src", "dist", "build", "types"}

// commonEntries is the fallback entry-point list used when package.json names
// no usable main file.
var commonEntries = []string{
	"index.js",
	"index.ts",
	"index.d.ts",
	"lib/index.js",
	"lib/index.ts",
	"src/index.js",
	"src/index.ts",
	"dist/index.js",
	"build/index.js",
}

// typeEntries is probed separately so declaration symbols surface even when
// the main entry is plain JavaScript.
var typeEntries = []string{
	"index.d.ts",
	"lib/index.d.ts",
	"types/index.d.ts",
	"dist/index.d.ts",
}

// walkDepth caps how deep inside each subdirectory the file walk descends.
const walkDepth = 2

type Explorer struct {
	parser   *parser.Parser
	maxDepth int
	excludes []glob.Glob
	logger   *slog.Logger
}

func New(p *parser.Parser, maxDepth int, excludePatterns []string, logger *slog.Logger) (*Explorer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if maxDepth < 1 {
		maxDepth = 1
	}

	excludes := make([]glob.Glob, 0, len(excludePatterns))
	for _, pattern := range excludePatterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		excludes = append(excludes, g)
	}

	return &Explorer{
		parser:   p,
		maxDepth: maxDepth,
		excludes: excludes,
		logger:   logger,
	}, nil
}

// Explore walks packageRoot and returns the package's module tree. Individual
// unreadable or unparseable files contribute nothing and do not abort the
// walk.
func (e *Explorer) Explore(ctx context.Context, packageRoot, packageName string) (*model.ModuleInfo, error) {
	ctx, span := observability.Tracer.Start(ctx, "explorer.Explore")
	defer span.End()

	root := model.NewModuleInfo(packageName)

	if err := e.readPackageJSON(packageRoot, root); err != nil {
		e.logger.Debug("package.json not usable", "root", packageRoot, "err", err)
	}

	entries := e.findEntryPoints(packageRoot, root)

	if main, ok := entries["main"]; ok {
		if info, err := e.parser.ParseFile(main); err == nil {
			root.Merge(info)
		} else {
			e.logger.Debug("entry point skipped", "file", main, "err", err)
		}
	}
	if types, ok := entries["types"]; ok && types != entries["main"] {
		if info, err := e.parser.ParseFile(types); err == nil {
			root.Merge(info)
		}
	}

	if e.maxDepth > 1 {
		e.exploreSubmodules(ctx, packageRoot, root)
	}

	count := 1 + len(root.Submodules)
	observability.ExploredModules.Set(float64(count))
	e.logger.Info("package explored",
		"package", packageName,
		"modules", count,
		"exports", len(root.Exports))

	return root, nil
}

func (e *Explorer) readPackageJSON(packageRoot string, root *model.ModuleInfo) error {
	data, err := os.ReadFile(filepath.Join(packageRoot, "package.json"))
	if err != nil {
		return err
	}

	var pkg struct {
		Version string `json:"version"`
		Main    string `json:"main"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return err
	}

	root.Version = pkg.Version
	root.Main = pkg.Main
	return nil
}

// findEntryPoints locates the main entry and, separately, a declaration
// entry. The declared main wins; the common list is a fallback only.
func (e *Explorer) findEntryPoints(packageRoot string, root *model.ModuleInfo) map[string]string {
	entries := make(map[string]string)

	if root.Main != "" {
		mainPath := filepath.Join(packageRoot, root.Main)
		if fileExists(mainPath) {
			entries["main"] = mainPath
		} else if fileExists(mainPath + ".js") {
			entries["main"] = mainPath + ".js"
		}
	}

	if _, ok := entries["main"]; !ok {
		for _, entry := range commonEntries {
			path := filepath.Join(packageRoot, entry)
			if fileExists(path) {
				entries["main"] = path
				break
			}
		}
	}

	for _, entry := range typeEntries {
		path := filepath.Join(packageRoot, entry)
		if fileExists(path) {
			entries["types"] = path
			break
		}
	}

	return entries
}

func (e *Explorer) exploreSubmodules(ctx context.Context, packageRoot string, root *model.ModuleInfo) {
	for _, subdir := range subdirs {
		if ctx.Err() != nil {
			return
		}
		dir := filepath.Join(packageRoot, subdir)
		if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
			continue
		}
		e.exploreDirectory(ctx, dir, packageRoot, root)
	}
}

func (e *Explorer) exploreDirectory(ctx context.Context, dir, packageRoot string, root *model.ModuleInfo) {
	baseDepth := strings.Count(dir, string(filepath.Separator))

	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if err != nil {
			return nil
		}

		rel, relErr := filepath.Rel(packageRoot, path)
		if relErr != nil {
			return nil
		}
		rel = util.NormalizePatternPath(rel)

		if d.IsDir() {
			if strings.Count(path, string(filepath.Separator))-baseDepth >= walkDepth {
				return filepath.SkipDir
			}
			if e.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if e.excluded(rel) || !parser.IsParseable(path) {
			return nil
		}
		// The main entry already merged into the root module.
		if root.Main != "" && strings.HasSuffix(rel, root.Main) {
			return nil
		}

		info, err := e.parser.ParseFile(path)
		if err != nil {
			e.logger.Debug("submodule skipped", "file", rel, "err", err)
			return nil
		}

		root.AddSubmodule(info.Name, info)
		return nil
	})
}

func (e *Explorer) excluded(rel string) bool {
	for _, g := range e.excludes {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}
