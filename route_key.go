package hypermock

import (
	"strings"

	"golang.org/x/net/http/httpguts"
)

// RouteKey identifies a registration. An empty Method makes the key method-agnostic:
// it matches the path for every method that has no registration of its own.
//
// Use NewRouteKey to obtain a normalized key. Two normalized keys are equal when they
// refer to the same registration.
type RouteKey struct {
	Method string
	Path   string
}

// NewRouteKey normalizes method and path into a RouteKey.
// The method is trimmed and upper-cased; an empty method yields a method-agnostic key.
// It fails with ErrInvalidArgument when path is empty or method isn't a valid HTTP token.
func NewRouteKey(method, path string) (RouteKey, error) {
	if path == "" {
		return RouteKey{}, invalidArgument("empty path")
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if method != "" && !httpguts.ValidHeaderFieldName(method) {
		return RouteKey{}, invalidArgument("method %q is not a valid token", method)
	}
	return RouteKey{Method: method, Path: path}, nil
}

// IsMethodAgnostic reports whether the key matches any method.
func (k RouteKey) IsMethodAgnostic() bool {
	return k.Method == ""
}

// Agnostic returns the method-agnostic key for the same path.
func (k RouteKey) Agnostic() RouteKey {
	return RouteKey{Path: k.Path}
}

func (k RouteKey) String() string {
	if k.IsMethodAgnostic() {
		return "* " + k.Path
	}
	return k.Method + " " + k.Path
}

// optionalMethod turns the variadic method argument of the registration API into a single value.
func optionalMethod(method []string) string {
	if len(method) == 0 {
		return ""
	}
	return method[0]
}
