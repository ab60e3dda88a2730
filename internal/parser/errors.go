// # internal/parser/errors.go
package parser

import "fmt"

// ReadError reports a file that could not be read or decoded. Callers treat
// it as "this file contributes nothing" and keep going.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// SyntaxError reports a grammar-level parse failure. Handled identically to
// ReadError by every caller.
type SyntaxError struct {
	Path string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
