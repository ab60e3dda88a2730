// # internal/parser/declaration.go
package parser

import (
	"regexp"
	"strings"

	"npmlens/internal/model"
)

// Declaration files are close enough to a line-oriented format that pattern
// matching beats a full parse: .d.ts bodies carry no executable code, and the
// interesting declarations all start at column zero.
var (
	declInterfaceRe = regexp.MustCompile(`(?m)^export\s+interface\s+(\w+)`)
	declTypeRe      = regexp.MustCompile(`(?m)^export\s+type\s+(\w+)`)
	declEnumRe      = regexp.MustCompile(`(?m)^export\s+(?:declare\s+)?(?:const\s+)?enum\s+(\w+)`)
	declFunctionRe  = regexp.MustCompile(`(?m)^export\s+(?:declare\s+)?function\s+(\w+)\s*\(([^)]*)\)\s*:?\s*([^;{\n]*)`)
	declClassRe     = regexp.MustCompile(`(?m)^export\s+(?:declare\s+)?(?:abstract\s+)?class\s+(\w+)`)
	declConstRe     = regexp.MustCompile(`(?m)^export\s+(?:declare\s+)?const\s+(\w+)\s*:`)
	declClauseRe    = regexp.MustCompile(`export\s*\{\s*([^}]+)\s*\}`)
)

// ExtractDeclarations pulls exported symbols out of a .d.ts file.
func ExtractDeclarations(content []byte, moduleName string) *model.ModuleInfo {
	info := model.NewModuleInfo(moduleName)
	text := string(content)

	for _, m := range declInterfaceRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		info.AddExport(name)
		info.AddType(model.TypeInfo{Name: name, Kind: model.KindInterface, Definition: "interface " + name})
	}

	for _, m := range declTypeRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		info.AddExport(name)
		info.AddType(model.TypeInfo{Name: name, Kind: model.KindTypeAlias, Definition: "type " + name})
	}

	for _, m := range declEnumRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		info.AddExport(name)
		info.AddType(model.TypeInfo{Name: name, Kind: model.KindEnum, Definition: "enum " + name})
	}

	for _, m := range declFunctionRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		info.AddExport(name)

		segments := SplitParameters(m[2])
		params := make([]model.Parameter, 0, len(segments))
		for _, seg := range segments {
			params = append(params, ParseParameter(seg))
		}

		info.AddFunction(model.FunctionInfo{
			Name:       name,
			Parameters: params,
			ReturnType: strings.TrimSpace(m[3]),
		})
	}

	for _, m := range declClassRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		info.AddExport(name)
		info.AddClass(model.ClassInfo{
			Name:       name,
			Methods:    []model.FunctionInfo{},
			Properties: []model.PropertyInfo{},
		})
	}

	for _, m := range declConstRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		info.AddExport(name)
		info.AddConstant(model.ConstantInfo{Name: name})
	}

	for _, m := range declClauseRe.FindAllStringSubmatch(text, -1) {
		for _, entry := range strings.Split(m[1], ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			// "X as Y" exports under the alias.
			if idx := strings.Index(entry, " as "); idx >= 0 {
				entry = strings.TrimSpace(entry[idx+4:])
			}
			info.AddExport(strings.TrimPrefix(entry, "type "))
		}
	}

	return info
}
