// # internal/output/formatter.go

// Package output renders module trees and signatures for the terminal or as
// JSON. Formatters only present; they never compute.
package output

import (
	"strings"

	"npmlens/internal/config"
	"npmlens/internal/model"
)

type Formatter interface {
	FormatTree(tree *model.ModuleInfo) (string, error)
	FormatSignature(sig *model.SignatureInfo) (string, error)
	// FormatSignatureNotAvailable renders the graceful fallback shown when a
	// symbol cannot be resolved.
	FormatSignatureNotAvailable(symbolName string) string
}

// NewFormatter picks a formatter by name; anything but "json" or "tsv" gets
// the pretty printer.
func NewFormatter(format string, out config.Output) Formatter {
	switch {
	case strings.EqualFold(format, "json"):
		return &JSONFormatter{}
	case strings.EqualFold(format, "tsv"):
		return &TSVFormatter{}
	default:
		return NewTreeFormatter(out)
	}
}
