// # internal/resolver/resolver.go

// Package resolver follows import chains through a package's files to find
// the signature behind an exported symbol.
package resolver

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"npmlens/internal/model"
	"npmlens/internal/parser"
	"npmlens/internal/shared/observability"
)

// maxHops bounds the import-chain recursion. Circular re-exports otherwise
// loop forever; past this depth the chain is abandoned and the resolution
// fails closed as "not found".
const maxHops = 8

type Resolver struct {
	parser *parser.Parser
	logger *slog.Logger
}

func New(p *parser.Parser, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{parser: p, logger: logger}
}

// Resolve finds the signature of symbolName starting from modulePath inside
// packageRoot. A nil result is the normal "not found" outcome; Resolve never
// fails for a missing symbol.
func (r *Resolver) Resolve(packageRoot, modulePath, symbolName string) *model.SignatureInfo {
	started := time.Now()
	defer func() {
		observability.ResolutionDuration.Observe(time.Since(started).Seconds())
	}()

	visited := make(map[string]bool)
	sig := r.resolve(packageRoot, modulePath, symbolName, visited, 0)
	if sig == nil {
		observability.ResolutionMissesTotal.Inc()
	}
	return sig
}

func (r *Resolver) resolve(packageRoot, modulePath, symbolName string, visited map[string]bool, hops int) *model.SignatureInfo {
	if hops >= maxHops {
		observability.ResolutionHopLimitTotal.Inc()
		r.logger.Debug("import chain hop limit reached",
			"module", modulePath, "symbol", symbolName)
		return nil
	}

	key := modulePath + ":" + symbolName
	if visited[key] {
		r.logger.Debug("import chain cycle detected",
			"module", modulePath, "symbol", symbolName)
		return nil
	}
	visited[key] = true

	info, err := r.parseModuleAt(packageRoot, modulePath)
	if err != nil {
		r.logger.Debug("module not parseable", "module", modulePath, "err", err)
		// The well-known table answers independently of what is on disk.
		if sig := LookupWellKnown(modulePath, symbolName); sig != nil {
			observability.ResolutionStrategyHits.WithLabelValues("fallback").Inc()
			return sig
		}
		return nil
	}

	if sig := findSymbolInModule(info, symbolName); sig != nil {
		observability.ResolutionStrategyHits.WithLabelValues("direct").Inc()
		return sig
	}

	if sig := r.searchSubmodules(packageRoot, symbolName); sig != nil {
		observability.ResolutionStrategyHits.WithLabelValues("submodule").Inc()
		return sig
	}

	if imp := findImportForSymbol(info, symbolName); imp != nil {
		if target, ok := resolveImportPath(modulePath, imp); ok {
			if targetInfo, err := r.parseModuleAt(packageRoot, target); err == nil {
				if sig := findSymbolInModule(targetInfo, imp.ImportName); sig != nil {
					observability.ResolutionStrategyHits.WithLabelValues("import_chain").Inc()
					return sig
				}
				// Re-exported again; chase the nested name from the target.
				if nested := findImportForSymbol(targetInfo, imp.ImportName); nested != nil {
					if sig := r.resolve(packageRoot, target, nested.ImportName, visited, hops+1); sig != nil {
						observability.ResolutionStrategyHits.WithLabelValues("import_chain").Inc()
						return sig
					}
				}
			}
		}
	}

	if sig := LookupWellKnown(modulePath, symbolName); sig != nil {
		observability.ResolutionStrategyHits.WithLabelValues("fallback").Inc()
		return sig
	}

	return nil
}

// parseModuleAt maps a dot-separated module path to a file within the package
// root and parses it. Path "" or "." means the package index.
func (r *Resolver) parseModuleAt(packageRoot, modulePath string) (*model.ModuleInfo, error) {
	var candidates []string
	if modulePath == "" || modulePath == "." {
		candidates = []string{
			filepath.Join(packageRoot, "index.js"),
			filepath.Join(packageRoot, "index.ts"),
			filepath.Join(packageRoot, "index.d.ts"),
		}
	} else {
		base := filepath.Join(packageRoot, strings.ReplaceAll(modulePath, ".", "/"))
		candidates = []string{
			base + ".js",
			base + ".ts",
			base + ".d.ts",
			filepath.Join(base, "index.js"),
			filepath.Join(base, "index.ts"),
			filepath.Join(base, "index.d.ts"),
		}
	}

	for _, candidate := range candidates {
		if stat, err := os.Stat(candidate); err != nil || stat.IsDir() {
			continue
		}
		return r.parser.ParseFile(candidate)
	}

	return nil, &parser.ReadError{Path: modulePath, Err: os.ErrNotExist}
}

// searchSubmodules probes conventional file locations for the symbol, then
// scans lib/ for any filename containing the lowercased symbol.
func (r *Resolver) searchSubmodules(packageRoot, symbolName string) *model.SignatureInfo {
	lower := strings.ToLower(symbolName)
	patterns := []string{
		"lib/" + lower,
		"src/" + lower,
		lower,
		"lib/router",
		"lib/express",
		"router",
	}

	for _, pattern := range patterns {
		if info, err := r.parseModuleAt(packageRoot, pattern); err == nil {
			if sig := findSymbolInModule(info, symbolName); sig != nil {
				return sig
			}
		}
	}

	entries, err := os.ReadDir(filepath.Join(packageRoot, "lib"))
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.Contains(strings.ToLower(name), lower) {
			continue
		}
		module := "lib/" + strings.TrimSuffix(strings.TrimSuffix(name, ".js"), ".ts")
		if info, err := r.parseModuleAt(packageRoot, module); err == nil {
			if sig := findSymbolInModule(info, symbolName); sig != nil {
				return sig
			}
		}
	}

	return nil
}

// findSymbolInModule searches one parsed module's records for an exact,
// case-sensitive name match.
func findSymbolInModule(info *model.ModuleInfo, symbolName string) *model.SignatureInfo {
	for _, fn := range info.Functions {
		if fn.Name == symbolName {
			return &model.SignatureInfo{
				Name:       fn.Name,
				Kind:       model.SignatureFunction,
				Parameters: fn.Parameters,
				ReturnType: fn.ReturnType,
				DocComment: fn.DocComment,
			}
		}
	}

	for _, cls := range info.Classes {
		if cls.Name == symbolName {
			sig := &model.SignatureInfo{
				Name:       cls.Name,
				Kind:       model.SignatureConstructor,
				Parameters: []model.Parameter{},
				ReturnType: cls.Name,
				DocComment: cls.DocComment,
			}
			if cls.Constructor != nil {
				sig.Parameters = cls.Constructor.Parameters
			}
			return sig
		}

		for _, method := range cls.Methods {
			if method.Name == symbolName {
				return &model.SignatureInfo{
					Name:       cls.Name + "." + method.Name,
					Kind:       model.SignatureMethod,
					Parameters: method.Parameters,
					ReturnType: method.ReturnType,
					DocComment: method.DocComment,
				}
			}
		}
	}

	for _, constant := range info.Constants {
		if constant.Name == symbolName {
			// Constants surface as zero-parameter functions; callers cannot
			// tell a callable from a value at this level.
			return &model.SignatureInfo{
				Name:       constant.Name,
				Kind:       model.SignatureFunction,
				Parameters: []model.Parameter{},
				ReturnType: constant.ValueType,
				DocComment: constant.DocComment,
			}
		}
	}

	return nil
}
