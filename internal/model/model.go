// # internal/model/model.go
package model

// ModuleInfo is the unit of knowledge about one file or package. Each parse
// produces an independent owned tree; records are appended during a single
// pass and never mutated after the pass returns.
type ModuleInfo struct {
	Name       string                 `json:"name"`
	Version    string                 `json:"version,omitempty"`
	Main       string                 `json:"main,omitempty"`
	Exports    []string               `json:"exports"`
	Imports    []string               `json:"imports"`
	Functions  []FunctionInfo         `json:"functions"`
	Classes    []ClassInfo            `json:"classes"`
	Types      []TypeInfo             `json:"types"`
	Constants  []ConstantInfo         `json:"constants"`
	Submodules map[string]*ModuleInfo `json:"submodules,omitempty"`
}

type FunctionInfo struct {
	Name        string      `json:"name"`
	Parameters  []Parameter `json:"parameters"`
	ReturnType  string      `json:"return_type,omitempty"`
	IsAsync     bool        `json:"is_async"`
	IsGenerator bool        `json:"is_generator"`
	DocComment  string      `json:"doc_comment,omitempty"`
}

type ClassInfo struct {
	Name        string         `json:"name"`
	Constructor *FunctionInfo  `json:"constructor,omitempty"`
	Methods     []FunctionInfo `json:"methods"`
	Properties  []PropertyInfo `json:"properties"`
	Extends     string         `json:"extends,omitempty"`
	Implements  []string       `json:"implements,omitempty"`
	DocComment  string         `json:"doc_comment,omitempty"`
}

type TypeKind string

const (
	KindInterface TypeKind = "interface"
	KindTypeAlias TypeKind = "type"
	KindEnum      TypeKind = "enum"
)

type TypeInfo struct {
	Name       string   `json:"name"`
	Kind       TypeKind `json:"kind"`
	Definition string   `json:"definition"`
	DocComment string   `json:"doc_comment,omitempty"`
}

type ConstantInfo struct {
	Name       string `json:"name"`
	ValueType  string `json:"value_type,omitempty"`
	DocComment string `json:"doc_comment,omitempty"`
}

type PropertyInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	IsReadonly bool   `json:"is_readonly"`
	IsStatic   bool   `json:"is_static"`
	DocComment string `json:"doc_comment,omitempty"`
}

// Parameter describes one entry of a parameter list. IsRest and a non-empty
// DefaultValue are mutually exclusive; a default value implies IsOptional.
type Parameter struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	IsOptional   bool   `json:"is_optional"`
	IsRest       bool   `json:"is_rest"`
	DefaultValue string `json:"default_value,omitempty"`
}

type SignatureKind string

const (
	SignatureFunction      SignatureKind = "function"
	SignatureMethod        SignatureKind = "method"
	SignatureConstructor   SignatureKind = "constructor"
	SignatureArrowFunction SignatureKind = "arrow_function"
)

// SignatureInfo is the resolver's output unit, produced fresh per call.
type SignatureInfo struct {
	Name       string        `json:"name"`
	Kind       SignatureKind `json:"kind"`
	Parameters []Parameter   `json:"parameters"`
	ReturnType string        `json:"return_type,omitempty"`
	DocComment string        `json:"doc_comment,omitempty"`
}

func NewModuleInfo(name string) *ModuleInfo {
	return &ModuleInfo{
		Name:      name,
		Exports:   []string{},
		Imports:   []string{},
		Functions: []FunctionInfo{},
		Classes:   []ClassInfo{},
		Types:     []TypeInfo{},
		Constants: []ConstantInfo{},
	}
}

func (m *ModuleInfo) AddFunction(fn FunctionInfo) {
	m.Functions = append(m.Functions, fn)
}

func (m *ModuleInfo) AddClass(cls ClassInfo) {
	m.Classes = append(m.Classes, cls)
}

func (m *ModuleInfo) AddType(t TypeInfo) {
	m.Types = append(m.Types, t)
}

func (m *ModuleInfo) AddConstant(c ConstantInfo) {
	m.Constants = append(m.Constants, c)
}

func (m *ModuleInfo) AddSubmodule(name string, sub *ModuleInfo) {
	if m.Submodules == nil {
		m.Submodules = make(map[string]*ModuleInfo)
	}
	m.Submodules[name] = sub
}

// AddExport appends name in declaration order, suppressing duplicates at the
// point of insertion.
func (m *ModuleInfo) AddExport(name string) {
	if name == "" {
		return
	}
	for _, existing := range m.Exports {
		if existing == name {
			return
		}
	}
	m.Exports = append(m.Exports, name)
}

// AddImport records the raw text of an import or require statement.
func (m *ModuleInfo) AddImport(raw string) {
	if raw == "" {
		return
	}
	m.Imports = append(m.Imports, raw)
}

// Merge copies the symbol records of src into m by value. Submodules are not
// merged; they stay owned by their parent record.
func (m *ModuleInfo) Merge(src *ModuleInfo) {
	if src == nil {
		return
	}
	for _, e := range src.Exports {
		m.AddExport(e)
	}
	m.Imports = append(m.Imports, src.Imports...)
	m.Functions = append(m.Functions, src.Functions...)
	m.Classes = append(m.Classes, src.Classes...)
	m.Types = append(m.Types, src.Types...)
	m.Constants = append(m.Constants, src.Constants...)
}
