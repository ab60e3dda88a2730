// # internal/resolver/fallback.go
package resolver

import (
	"strings"

	"npmlens/internal/model"
)

// LookupWellKnown answers for a short list of well-known symbols whose real
// definitions are hard to reach structurally. Consulted only after every
// file-based strategy has failed.
func LookupWellKnown(modulePath, symbolName string) *model.SignatureInfo {
	switch modulePath {
	case "express":
		switch symbolName {
		case "Router":
			return &model.SignatureInfo{
				Name:       "Router",
				Kind:       model.SignatureConstructor,
				Parameters: []model.Parameter{},
				ReturnType: "Router",
				DocComment: "Express router constructor",
			}
		case "Express":
			return &model.SignatureInfo{
				Name:       "Express",
				Kind:       model.SignatureFunction,
				Parameters: []model.Parameter{},
				ReturnType: "Application",
				DocComment: "Express application factory",
			}
		}

	case "react":
		switch symbolName {
		case "useState":
			return &model.SignatureInfo{
				Name: "useState",
				Kind: model.SignatureFunction,
				Parameters: []model.Parameter{
					{Name: "initialState", Type: "T"},
				},
				ReturnType: "[T, Dispatch<SetStateAction<T>>]",
				DocComment: "React state hook",
			}
		case "useEffect":
			return &model.SignatureInfo{
				Name: "useEffect",
				Kind: model.SignatureFunction,
				Parameters: []model.Parameter{
					{Name: "effect", Type: "EffectCallback"},
					{Name: "deps", Type: "DependencyList", IsOptional: true},
				},
				ReturnType: "void",
				DocComment: "React effect hook",
			}
		}
	}

	// Lodash exposes hundreds of near-uniform helpers; a generic variadic
	// shape is more useful than nothing.
	if strings.HasPrefix(modulePath, "lodash") {
		return &model.SignatureInfo{
			Name: symbolName,
			Kind: model.SignatureFunction,
			Parameters: []model.Parameter{
				{Name: "args", Type: "any[]", IsRest: true},
			},
			ReturnType: "any",
			DocComment: "Lodash " + symbolName + " function",
		}
	}

	return nil
}
