// # internal/parser/params.go
package parser

import (
	"strings"

	"npmlens/internal/model"
)

// SplitParameters splits a comma separated parameter list while respecting
// nested brackets, quotes and generic type arguments such as Array<T>.
// A comma only separates when bracket depth, angle depth and quote state are
// all zero; everything else is kept verbatim inside the accumulating segment.
func SplitParameters(params string) []string {
	var result []string
	var current strings.Builder

	depth := 0
	angleDepth := 0
	inQuotes := false
	var quoteChar rune
	var prevChar rune

	for _, ch := range params {
		switch {
		case (ch == '\'' || ch == '"' || ch == '`') && prevChar != '\\':
			if !inQuotes {
				inQuotes = true
				quoteChar = ch
			} else if ch == quoteChar {
				inQuotes = false
				quoteChar = 0
			}
		case (ch == '[' || ch == '(' || ch == '{') && !inQuotes:
			depth++
		case (ch == ']' || ch == ')' || ch == '}') && !inQuotes:
			depth--
		case ch == '<' && !inQuotes:
			angleDepth++
		case ch == '>' && !inQuotes:
			angleDepth--
		case ch == ',' && depth == 0 && angleDepth == 0 && !inQuotes:
			if seg := strings.TrimSpace(current.String()); seg != "" {
				result = append(result, seg)
			}
			current.Reset()
			prevChar = ch
			continue
		}
		current.WriteRune(ch)
		prevChar = ch
	}

	if seg := strings.TrimSpace(current.String()); seg != "" {
		result = append(result, seg)
	}

	return result
}

// ParseParameter turns one parameter segment into a structured record.
// Priority order: rest prefix, default value, optional marker, name/type
// split. Unparsable patterns degrade to the placeholder name "unknown".
func ParseParameter(paramStr string) model.Parameter {
	trimmed := strings.TrimSpace(paramStr)

	if strings.HasPrefix(trimmed, "...") {
		name, typ := extractNameAndType(trimmed[3:])
		return model.Parameter{
			Name:   name,
			Type:   typ,
			IsRest: true,
		}
	}

	if eqPos := findAssignmentOperator(trimmed); eqPos >= 0 {
		paramPart := strings.TrimSpace(trimmed[:eqPos])
		defaultPart := strings.TrimSpace(trimmed[eqPos+1:])
		name, typ := extractNameAndType(paramPart)
		return model.Parameter{
			Name:         name,
			Type:         typ,
			IsOptional:   true,
			DefaultValue: defaultPart,
		}
	}

	nameTypePart := trimmed
	isOptional := false
	if strings.HasSuffix(nameTypePart, "?") {
		nameTypePart = nameTypePart[:len(nameTypePart)-1]
		isOptional = true
	}

	name, typ := extractNameAndType(nameTypePart)

	// The marker may instead sit on the name fragment (name?: Type).
	if strings.HasSuffix(name, "?") {
		name = name[:len(name)-1]
		isOptional = true
	}

	return model.Parameter{
		Name:       name,
		Type:       typ,
		IsOptional: isOptional,
	}
}

// ParseParametersFromSignature extracts the parameter list between the first
// '(' and the last ')' of a signature string and parses each segment.
func ParseParametersFromSignature(signature string) []model.Parameter {
	start := strings.Index(signature, "(")
	end := strings.LastIndex(signature, ")")
	if start < 0 || end < 0 || start >= end {
		return nil
	}

	segments := SplitParameters(signature[start+1 : end])
	params := make([]model.Parameter, 0, len(segments))
	for _, seg := range segments {
		params = append(params, ParseParameter(seg))
	}
	return params
}

func extractNameAndType(paramStr string) (string, string) {
	paramStr = strings.TrimSpace(paramStr)

	if colonPos := findTypeSeparator(paramStr); colonPos >= 0 {
		name := strings.TrimSpace(paramStr[:colonPos])
		typ := strings.TrimSpace(paramStr[colonPos+1:])
		if name == "" || !isPlainPattern(name) {
			name = "unknown"
			typ = ""
		}
		return name, typ
	}

	if paramStr == "" || !isPlainPattern(paramStr) {
		return "unknown", ""
	}
	return paramStr, ""
}

// isPlainPattern reports whether the name fragment is a simple binding rather
// than a destructuring pattern like {a, b} or [x, y].
func isPlainPattern(name string) bool {
	return !strings.ContainsAny(name, "{}[]()")
}

func findTypeSeparator(paramStr string) int {
	return findTopLevel(paramStr, func(s string, i int) bool {
		return s[i] == ':'
	})
}

// findAssignmentOperator locates a top-level '=' that is not part of '=='
// or '==='; a '=' nested in a default value's own generics or brackets is
// never matched.
func findAssignmentOperator(paramStr string) int {
	return findTopLevel(paramStr, func(s string, i int) bool {
		if s[i] != '=' {
			return false
		}
		if i+1 < len(s) && s[i+1] == '=' {
			return false
		}
		return true
	})
}

// findTopLevel scans with the same depth and quote tracking as
// SplitParameters and returns the first index where match fires at depth
// zero, or -1.
func findTopLevel(s string, match func(string, int) bool) int {
	depth := 0
	angleDepth := 0
	inQuotes := false
	var quoteChar byte
	var prevChar byte

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case (ch == '\'' || ch == '"' || ch == '`') && prevChar != '\\':
			if !inQuotes {
				inQuotes = true
				quoteChar = ch
			} else if ch == quoteChar {
				inQuotes = false
				quoteChar = 0
			}
		case (ch == '[' || ch == '(' || ch == '{') && !inQuotes:
			depth++
		case (ch == ']' || ch == ')' || ch == '}') && !inQuotes:
			depth--
		case ch == '<' && !inQuotes:
			angleDepth++
		case ch == '>' && !inQuotes:
			angleDepth--
		default:
			if depth == 0 && angleDepth == 0 && !inQuotes && match(s, i) {
				return i
			}
		}
		prevChar = ch
	}

	return -1
}
