// # internal/resolver/service.go
package resolver

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"npmlens/internal/model"
	"npmlens/internal/parser"
)

// entrySweep lists conventional entry points tried before the import-chain
// walk. Ordering matters: the package's declared entry always goes first.
var entrySweep = []string{
	"index.js",
	"index.ts",
	"index.d.ts",
	"lib/index.js",
	"lib/index.ts",
	"lib/index.d.ts",
	"src/index.js",
	"src/index.ts",
	"src/index.d.ts",
	"lib/express.js",
	"lib/router/index.js",
	"lodash.js",
}

// Service is the signature use case: locate a symbol anywhere in an unpacked
// package, sweeping entry points first and falling back to the import-chain
// resolver.
type Service struct {
	parser   *parser.Parser
	resolver *Resolver
	logger   *slog.Logger
}

func NewService(p *parser.Parser, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		parser:   p,
		resolver: New(p, logger),
		logger:   logger,
	}
}

// ExtractSignature searches packageRoot for symbolName. Returns nil when the
// symbol is not found anywhere; that is the normal outcome, not an error.
func (s *Service) ExtractSignature(packageRoot, modulePath, symbolName string) *model.SignatureInfo {
	for _, file := range s.candidateFiles(packageRoot, symbolName) {
		info, err := s.parser.ParseFile(file)
		if err != nil {
			s.logger.Debug("entry candidate skipped", "file", file, "err", err)
			continue
		}
		if sig := findSymbolInModule(info, symbolName); sig != nil {
			return sig
		}
	}

	// Declaration files at the package root often hold what the entry sweep
	// missed.
	if sig := s.sweepDeclarations(packageRoot, symbolName); sig != nil {
		return sig
	}

	return s.resolver.Resolve(packageRoot, modulePath, symbolName)
}

// candidateFiles builds the ordered list of files worth parsing: the declared
// main entry, conventional entry points, then lib/ files whose name mentions
// the symbol.
func (s *Service) candidateFiles(packageRoot, symbolName string) []string {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if seen[path] {
			return
		}
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			seen[path] = true
			files = append(files, path)
		}
	}

	add(filepath.Join(packageRoot, mainEntry(packageRoot)))
	for _, entry := range entrySweep {
		add(filepath.Join(packageRoot, entry))
	}

	lower := strings.ToLower(symbolName)
	if entries, err := os.ReadDir(filepath.Join(packageRoot, "lib")); err == nil {
		for _, entry := range entries {
			name := entry.Name()
			if strings.Contains(strings.ToLower(name), lower) && parser.IsParseable(name) {
				add(filepath.Join(packageRoot, "lib", name))
			}
		}
	}

	return files
}

func (s *Service) sweepDeclarations(packageRoot, symbolName string) *model.SignatureInfo {
	entries, err := os.ReadDir(packageRoot)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".d.ts") {
			continue
		}
		info, err := s.parser.ParseFile(filepath.Join(packageRoot, entry.Name()))
		if err != nil {
			continue
		}
		if sig := findSymbolInModule(info, symbolName); sig != nil {
			return sig
		}
	}
	return nil
}

// mainEntry reads the package's declared entry point, preferring main over
// types over typings, defaulting to index.js.
func mainEntry(packageRoot string) string {
	data, err := os.ReadFile(filepath.Join(packageRoot, "package.json"))
	if err != nil {
		return "index.js"
	}

	var pkg struct {
		Main    string `json:"main"`
		Types   string `json:"types"`
		Typings string `json:"typings"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "index.js"
	}

	for _, entry := range []string{pkg.Main, pkg.Types, pkg.Typings} {
		if entry != "" {
			return entry
		}
	}
	return "index.js"
}
