// # internal/output/json.go
package output

import (
	"encoding/json"

	"npmlens/internal/model"
)

type JSONFormatter struct{}

func (f *JSONFormatter) FormatTree(tree *model.ModuleInfo) (string, error) {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *JSONFormatter) FormatSignature(sig *model.SignatureInfo) (string, error) {
	data, err := json.MarshalIndent(sig, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *JSONFormatter) FormatSignatureNotAvailable(symbolName string) string {
	fallback := map[string]any{
		"name":        symbolName,
		"kind":        string(model.SignatureFunction),
		"parameters":  []model.Parameter{},
		"doc_comment": "signature not available",
	}
	data, err := json.MarshalIndent(fallback, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
