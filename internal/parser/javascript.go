// # internal/parser/javascript.go
package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"npmlens/internal/model"
)

// sourceExtractor walks the top-level items of a parsed JavaScript or
// TypeScript tree into a ModuleInfo. Nested scopes are never visited; only
// declarations directly under the program node contribute.
type sourceExtractor struct {
	source []byte
}

func (e *sourceExtractor) extract(root *sitter.Node, moduleName string) *model.ModuleInfo {
	info := model.NewModuleInfo(moduleName)

	var prevDoc string
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)

		if child.Kind() == "comment" {
			text := e.text(child)
			if strings.HasPrefix(text, "/**") {
				prevDoc = cleanDocComment(text)
			} else {
				prevDoc = ""
			}
			continue
		}

		e.processTopLevel(child, info, prevDoc)
		prevDoc = ""
	}

	return info
}

func (e *sourceExtractor) processTopLevel(node *sitter.Node, info *model.ModuleInfo, doc string) {
	switch node.Kind() {
	case "import_statement":
		info.AddImport(e.text(node))

	case "export_statement":
		e.processExport(node, info, doc)

	case "function_declaration", "generator_function_declaration":
		info.AddFunction(e.extractFunction(node, doc))

	case "class_declaration", "abstract_class_declaration":
		info.AddClass(e.extractClass(node, doc))

	case "interface_declaration":
		if name := e.fieldText(node, "name"); name != "" {
			info.AddType(model.TypeInfo{Name: name, Kind: model.KindInterface, Definition: "interface " + name, DocComment: doc})
		}

	case "type_alias_declaration":
		if name := e.fieldText(node, "name"); name != "" {
			info.AddType(model.TypeInfo{Name: name, Kind: model.KindTypeAlias, Definition: "type " + name, DocComment: doc})
		}

	case "enum_declaration":
		if name := e.fieldText(node, "name"); name != "" {
			info.AddType(model.TypeInfo{Name: name, Kind: model.KindEnum, Definition: "enum " + name, DocComment: doc})
		}

	case "lexical_declaration", "variable_declaration":
		// CommonJS imports arrive as const bindings around require().
		if strings.Contains(e.text(node), "require(") {
			info.AddImport(e.text(node))
		}
		e.processVariableDeclaration(node, info, doc, false)

	case "expression_statement":
		// module.exports assignments and bare require() calls.
		if strings.Contains(e.text(node), "require(") {
			info.AddImport(e.text(node))
		}
	}
}

func (e *sourceExtractor) processExport(node *sitter.Node, info *model.ModuleInfo, doc string) {
	// export <declaration>
	if decl := node.ChildByFieldName("declaration"); decl != nil {
		// A default export is named "default", never by its identifier.
		if hasDefaultKeyword(node) {
			e.processDefaultDecl(decl, info, doc)
		} else {
			e.processExportedDecl(decl, info, doc)
		}
		return
	}

	isDefault := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "default":
			isDefault = true
		case "export_clause":
			e.processExportClause(child, info)
		case "function_declaration", "generator_function_declaration":
			info.AddFunction(e.extractFunction(child, doc))
		case "class_declaration":
			info.AddClass(e.extractClass(child, doc))
		}
	}

	if isDefault {
		info.AddExport("default")
	}

	// export { X } from './b' is a re-export; keep the raw text so the
	// import chain can be followed.
	if node.ChildByFieldName("source") != nil {
		info.AddImport(e.text(node))
	}
}

// processDefaultDecl records a default-exported declaration. The symbol record
// keeps its identifier, but the export list gets the literal "default".
func (e *sourceExtractor) processDefaultDecl(decl *sitter.Node, info *model.ModuleInfo, doc string) {
	info.AddExport("default")

	switch decl.Kind() {
	case "function_declaration", "generator_function_declaration":
		info.AddFunction(e.extractFunction(decl, doc))
	case "class_declaration", "abstract_class_declaration":
		info.AddClass(e.extractClass(decl, doc))
	}
}

func hasDefaultKeyword(node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "default" {
			return true
		}
	}
	return false
}

func (e *sourceExtractor) processExportedDecl(decl *sitter.Node, info *model.ModuleInfo, doc string) {
	switch decl.Kind() {
	case "function_declaration", "generator_function_declaration":
		fn := e.extractFunction(decl, doc)
		info.AddExport(fn.Name)
		info.AddFunction(fn)

	case "class_declaration", "abstract_class_declaration":
		cls := e.extractClass(decl, doc)
		info.AddExport(cls.Name)
		info.AddClass(cls)

	case "interface_declaration":
		if name := e.fieldText(decl, "name"); name != "" {
			info.AddExport(name)
			info.AddType(model.TypeInfo{Name: name, Kind: model.KindInterface, Definition: "interface " + name, DocComment: doc})
		}

	case "type_alias_declaration":
		if name := e.fieldText(decl, "name"); name != "" {
			info.AddExport(name)
			info.AddType(model.TypeInfo{Name: name, Kind: model.KindTypeAlias, Definition: "type " + name, DocComment: doc})
		}

	case "enum_declaration":
		if name := e.fieldText(decl, "name"); name != "" {
			info.AddExport(name)
			info.AddType(model.TypeInfo{Name: name, Kind: model.KindEnum, Definition: "enum " + name, DocComment: doc})
		}

	case "lexical_declaration", "variable_declaration":
		e.processVariableDeclaration(decl, info, doc, true)
	}
}

func (e *sourceExtractor) processExportClause(clause *sitter.Node, info *model.ModuleInfo) {
	for i := uint(0); i < clause.ChildCount(); i++ {
		spec := clause.Child(i)
		if spec.Kind() != "export_specifier" {
			continue
		}
		name := e.fieldText(spec, "alias")
		if name == "" {
			name = e.fieldText(spec, "name")
		}
		info.AddExport(strings.Trim(name, "\"'"))
	}
}

// processVariableDeclaration classifies each top-level const/let/var binding:
// a function or arrow initializer yields a function record, anything else a
// constant record.
func (e *sourceExtractor) processVariableDeclaration(node *sitter.Node, info *model.ModuleInfo, doc string, exported bool) {
	for i := uint(0); i < node.ChildCount(); i++ {
		declarator := node.Child(i)
		if declarator.Kind() != "variable_declarator" {
			continue
		}

		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil || nameNode.Kind() != "identifier" {
			continue
		}
		name := e.text(nameNode)
		if exported {
			info.AddExport(name)
		}

		value := declarator.ChildByFieldName("value")
		if value == nil {
			info.AddConstant(model.ConstantInfo{Name: name, DocComment: doc})
			continue
		}

		// require() bindings were already recorded as imports.
		if strings.Contains(e.text(value), "require(") {
			continue
		}

		switch value.Kind() {
		case "arrow_function", "function_expression", "function", "generator_function":
			fn := e.extractFunction(value, doc)
			fn.Name = name
			info.AddFunction(fn)
		default:
			info.AddConstant(model.ConstantInfo{
				Name:       name,
				ValueType:  inferValueType(value.Kind()),
				DocComment: doc,
			})
		}
	}
}

func (e *sourceExtractor) extractFunction(node *sitter.Node, doc string) model.FunctionInfo {
	fn := model.FunctionInfo{
		Name:       e.fieldText(node, "name"),
		Parameters: e.extractParameters(node.ChildByFieldName("parameters")),
		ReturnType: e.returnType(node),
		DocComment: doc,
	}

	kind := node.Kind()
	fn.IsGenerator = kind == "generator_function_declaration" || kind == "generator_function"

	for i := uint(0); i < node.ChildCount(); i++ {
		switch node.Child(i).Kind() {
		case "async":
			fn.IsAsync = true
		case "*":
			fn.IsGenerator = true
		}
	}

	return fn
}

func (e *sourceExtractor) extractClass(node *sitter.Node, doc string) model.ClassInfo {
	cls := model.ClassInfo{
		Name:       e.fieldText(node, "name"),
		Methods:    []model.FunctionInfo{},
		Properties: []model.PropertyInfo{},
		DocComment: doc,
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "class_heritage":
			e.extractHeritage(child, &cls)
		case "class_body":
			e.extractClassBody(child, &cls)
		}
	}

	return cls
}

func (e *sourceExtractor) extractHeritage(node *sitter.Node, cls *model.ClassInfo) {
	sawClause := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "extends_clause":
			sawClause = true
			cls.Extends = strings.TrimSpace(strings.TrimPrefix(e.text(child), "extends"))
		case "implements_clause":
			sawClause = true
			list := strings.TrimSpace(strings.TrimPrefix(e.text(child), "implements"))
			for _, part := range strings.Split(list, ",") {
				if part = strings.TrimSpace(part); part != "" {
					cls.Implements = append(cls.Implements, part)
				}
			}
		}
	}

	// The javascript grammar puts "extends X" directly on the heritage node.
	if !sawClause {
		text := strings.TrimSpace(e.text(node))
		cls.Extends = strings.TrimSpace(strings.TrimPrefix(text, "extends"))
	}
}

func (e *sourceExtractor) extractClassBody(body *sitter.Node, cls *model.ClassInfo) {
	var prevDoc string
	for i := uint(0); i < body.ChildCount(); i++ {
		member := body.Child(i)

		switch member.Kind() {
		case "comment":
			if text := e.text(member); strings.HasPrefix(text, "/**") {
				prevDoc = cleanDocComment(text)
			} else {
				prevDoc = ""
			}
			continue

		case "method_definition", "method_signature", "abstract_method_signature":
			fn := e.extractFunction(member, prevDoc)
			if fn.Name == "constructor" {
				ctor := fn
				cls.Constructor = &ctor
			} else if fn.Name != "" {
				cls.Methods = append(cls.Methods, fn)
			}

		case "public_field_definition", "field_definition", "property_signature":
			if prop, ok := e.extractProperty(member, prevDoc); ok {
				cls.Properties = append(cls.Properties, prop)
			}
		}

		prevDoc = ""
	}
}

func (e *sourceExtractor) extractProperty(node *sitter.Node, doc string) (model.PropertyInfo, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		nameNode = node.ChildByFieldName("property")
	}
	if nameNode == nil {
		return model.PropertyInfo{}, false
	}

	prop := model.PropertyInfo{
		Name:       e.text(nameNode),
		Type:       trimTypeAnnotation(e.fieldText(node, "type")),
		DocComment: doc,
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		switch node.Child(i).Kind() {
		case "readonly":
			prop.IsReadonly = true
		case "static":
			prop.IsStatic = true
		}
	}

	return prop, true
}

// extractParameters handles both grammar shapes: the typescript grammar wraps
// each entry in required_parameter/optional_parameter, the javascript grammar
// exposes patterns directly.
func (e *sourceExtractor) extractParameters(formal *sitter.Node) []model.Parameter {
	if formal == nil {
		return []model.Parameter{}
	}

	params := []model.Parameter{}
	for i := uint(0); i < formal.ChildCount(); i++ {
		child := formal.Child(i)

		switch child.Kind() {
		case "required_parameter", "optional_parameter":
			p := e.extractTypedParameter(child)
			if child.Kind() == "optional_parameter" {
				p.IsOptional = true
			}
			params = append(params, p)

		case "identifier":
			params = append(params, model.Parameter{Name: e.text(child)})

		case "assignment_pattern":
			params = append(params, e.extractAssignmentPattern(child))

		case "rest_pattern":
			params = append(params, e.extractRestPattern(child))

		case "object_pattern", "array_pattern":
			params = append(params, model.Parameter{Name: "unknown"})
		}
	}

	return params
}

func (e *sourceExtractor) extractTypedParameter(node *sitter.Node) model.Parameter {
	p := model.Parameter{Name: "unknown"}

	pattern := node.ChildByFieldName("pattern")
	if pattern != nil {
		switch pattern.Kind() {
		case "identifier", "this":
			p.Name = e.text(pattern)
		case "rest_pattern":
			rest := e.extractRestPattern(pattern)
			p.Name = rest.Name
			p.IsRest = true
		}
	}

	p.Type = trimTypeAnnotation(e.fieldText(node, "type"))

	if value := node.ChildByFieldName("value"); value != nil && !p.IsRest {
		p.DefaultValue = e.text(value)
		p.IsOptional = true
	}

	return p
}

func (e *sourceExtractor) extractAssignmentPattern(node *sitter.Node) model.Parameter {
	p := model.Parameter{Name: "unknown", IsOptional: true}

	if left := node.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
		p.Name = e.text(left)
	}
	if right := node.ChildByFieldName("right"); right != nil {
		p.DefaultValue = e.text(right)
	}

	return p
}

func (e *sourceExtractor) extractRestPattern(node *sitter.Node) model.Parameter {
	p := model.Parameter{Name: "unknown", IsRest: true}
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child.Kind() == "identifier" {
			p.Name = e.text(child)
			break
		}
	}
	return p
}

func (e *sourceExtractor) returnType(node *sitter.Node) string {
	return trimTypeAnnotation(e.fieldText(node, "return_type"))
}

func (e *sourceExtractor) fieldText(node *sitter.Node, field string) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return e.text(child)
}

func (e *sourceExtractor) text(node *sitter.Node) string {
	return string(e.source[node.StartByte():node.EndByte()])
}

// trimTypeAnnotation strips the leading ':' a type_annotation node carries.
func trimTypeAnnotation(text string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), ":"))
}

func inferValueType(kind string) string {
	switch kind {
	case "string", "template_string":
		return "string"
	case "number":
		return "number"
	case "true", "false":
		return "boolean"
	case "object":
		return "object"
	case "array":
		return "array"
	case "null":
		return "null"
	default:
		return ""
	}
}

// cleanDocComment strips the comment markers of a JSDoc block and collapses
// the body to plain lines.
func cleanDocComment(text string) string {
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
