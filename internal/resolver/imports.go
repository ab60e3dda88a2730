// # internal/resolver/imports.go
package resolver

import (
	"path"
	"strings"

	"npmlens/internal/model"
)

// ImportInfo is one classified import statement: where the symbol comes from
// and under which name it travels.
type ImportInfo struct {
	FromModule string
	ImportName string
	AsName     string
	IsRelative bool
}

// findImportForSymbol scans a module's raw import entries for one that
// mentions the symbol and classifies it.
func findImportForSymbol(info *model.ModuleInfo, symbolName string) *ImportInfo {
	for _, raw := range info.Imports {
		if !strings.Contains(raw, symbolName) {
			continue
		}
		if imp := parseImportStatement(raw, symbolName); imp != nil {
			return imp
		}
	}
	return nil
}

// parseImportStatement classifies a raw statement as an ES-module import or a
// CommonJS require call and extracts the specifier.
func parseImportStatement(stmt, symbolName string) *ImportInfo {
	// import { Router } from 'express'  /  export { X } from './b'
	if fromPos := strings.Index(stmt, " from "); fromPos >= 0 {
		importPart := stmt[:fromPos]
		specifier := strings.Trim(strings.TrimSpace(stmt[fromPos+6:]), "\"';")

		if strings.Contains(importPart, symbolName) {
			return &ImportInfo{
				FromModule: specifier,
				ImportName: importedName(importPart, symbolName),
				IsRelative: strings.HasPrefix(specifier, "."),
			}
		}
	}

	// const { Router } = require('express')
	if strings.Contains(stmt, "require(") && strings.Contains(stmt, symbolName) {
		if specifier, ok := requireSpecifier(stmt); ok {
			return &ImportInfo{
				FromModule: specifier,
				ImportName: symbolName,
				IsRelative: strings.HasPrefix(specifier, "."),
			}
		}
	}

	return nil
}

// importedName handles alias clauses: for "import { X as Y }" asked about Y,
// the name to chase in the source module is X.
func importedName(importPart, symbolName string) string {
	for _, entry := range strings.Split(strings.Trim(importPart, "{} \t"), ",") {
		entry = strings.TrimSpace(entry)
		if idx := strings.Index(entry, " as "); idx >= 0 {
			alias := strings.TrimSpace(entry[idx+4:])
			if alias == symbolName {
				return strings.TrimSpace(entry[:idx])
			}
		}
	}
	return symbolName
}

func requireSpecifier(stmt string) (string, bool) {
	for _, quote := range []string{"require('", "require(\""} {
		start := strings.Index(stmt, quote)
		if start < 0 {
			continue
		}
		rest := stmt[start+len(quote):]
		if end := strings.IndexByte(rest, quote[len(quote)-1]); end >= 0 {
			return rest[:end], true
		}
	}
	return "", false
}

// resolveImportPath maps an import specifier to a module path inside the same
// package root. Relative specifiers are joined to the importing module's
// directory and expressed dot-separated; bare specifiers are taken as-is,
// which models workspace-internal absolute imports.
func resolveImportPath(currentModule string, imp *ImportInfo) (string, bool) {
	if imp.FromModule == "" {
		return "", false
	}

	if !imp.IsRelative {
		return imp.FromModule, true
	}

	currentDir := ""
	if currentModule != "" && currentModule != "." {
		currentDir = path.Dir(strings.ReplaceAll(currentModule, ".", "/"))
		if currentDir == "." {
			currentDir = ""
		}
	}

	joined := path.Join(currentDir, strings.TrimPrefix(imp.FromModule, "./"))
	joined = strings.TrimPrefix(joined, "/")
	if joined == "" || joined == "." || strings.HasPrefix(joined, "..") {
		// Escapes the package root; nothing to chase.
		return "", false
	}
	return strings.ReplaceAll(joined, "/", "."), true
}
