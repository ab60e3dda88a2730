// # internal/parser/parser.go
package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"npmlens/internal/model"
	"npmlens/internal/shared/observability"
)

// FileKind classifies how a source file is parsed: executable sources get a
// full syntax tree, declaration files go through pattern extraction.
type FileKind int

const (
	KindUnsupported FileKind = iota
	KindSource
	KindDeclaration
)

// KindOf derives the file kind from the path's extension.
func KindOf(path string) FileKind {
	name := filepath.Base(path)
	if strings.HasSuffix(name, ".d.ts") {
		return KindDeclaration
	}
	switch filepath.Ext(name) {
	case ".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx":
		return KindSource
	default:
		return KindUnsupported
	}
}

// IsParseable reports whether the path is a JavaScript/TypeScript file this
// parser understands.
func IsParseable(path string) bool {
	return KindOf(path) != KindUnsupported
}

type Parser struct {
	loader *GrammarLoader
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{loader: loader}
}

// ParseFile reads and parses one file into a ModuleInfo named after the file
// stem. Failures surface as *ReadError or *SyntaxError; the caller decides
// whether to skip the file.
func (p *Parser) ParseFile(path string) (*model.ModuleInfo, error) {
	kind := KindOf(path)
	started := time.Now()
	defer func() {
		observability.ParsingDuration.WithLabelValues(kindLabel(kind)).Observe(time.Since(started).Seconds())
	}()

	content, err := os.ReadFile(path)
	if err != nil {
		observability.ParseFailuresTotal.WithLabelValues(kindLabel(kind)).Inc()
		return nil, &ReadError{Path: path, Err: err}
	}
	if !utf8.Valid(content) {
		observability.ParseFailuresTotal.WithLabelValues(kindLabel(kind)).Inc()
		return nil, &ReadError{Path: path, Err: errors.New("not valid UTF-8")}
	}

	info, err := p.Parse(content, moduleStem(path), kind, path)
	if err != nil {
		observability.ParseFailuresTotal.WithLabelValues(kindLabel(kind)).Inc()
	}
	return info, err
}

func kindLabel(kind FileKind) string {
	switch kind {
	case KindSource:
		return "source"
	case KindDeclaration:
		return "declaration"
	default:
		return "unsupported"
	}
}

// Parse extracts a ModuleInfo from raw file content of the given kind.
func (p *Parser) Parse(content []byte, moduleName string, kind FileKind, path string) (*model.ModuleInfo, error) {
	switch kind {
	case KindDeclaration:
		return ExtractDeclarations(content, moduleName), nil
	case KindSource:
		return p.parseTree(content, moduleName, path)
	default:
		return nil, &SyntaxError{Path: path, Err: errors.New("unsupported file type")}
	}
}

func (p *Parser) parseTree(content []byte, moduleName, path string) (*model.ModuleInfo, error) {
	lang, err := p.loader.Language(languageFor(path))
	if err != nil {
		return nil, &SyntaxError{Path: path, Err: err}
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, &SyntaxError{Path: path, Err: errors.New("parse failed")}
	}
	defer tree.Close()

	e := &sourceExtractor{source: content}
	return e.extract(tree.RootNode(), moduleName), nil
}

func languageFor(path string) string {
	switch filepath.Ext(path) {
	case ".ts":
		return "typescript"
	case ".tsx":
		return "tsx"
	default:
		// .jsx shares the javascript grammar.
		return "javascript"
	}
}

// moduleStem returns the file stem: "lib/router.js" -> "router",
// "index.d.ts" -> "index".
func moduleStem(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".d.ts")
	return strings.TrimSuffix(name, filepath.Ext(name))
}
