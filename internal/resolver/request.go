// # internal/resolver/request.go
package resolver

import (
	"fmt"
	"strings"
)

// InvalidRequestError reports a malformed signature request. Rejected before
// any file I/O happens.
type InvalidRequestError struct {
	Request string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid signature request %q: expected modulePath:symbolName", e.Request)
}

// ParseSignatureRequest splits a "modulePath:symbolName" request string. The
// module path may be empty ("":symbol targets the package index) but the
// separator is mandatory.
func ParseSignatureRequest(request string) (modulePath, symbolName string, err error) {
	idx := strings.Index(request, ":")
	if idx < 0 {
		return "", "", &InvalidRequestError{Request: request}
	}

	modulePath = strings.TrimSpace(request[:idx])
	symbolName = strings.TrimSpace(request[idx+1:])
	if symbolName == "" {
		return "", "", &InvalidRequestError{Request: request}
	}

	return modulePath, symbolName, nil
}
