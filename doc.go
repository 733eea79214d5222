// Package hypermock replaces the network layer of an http.Client with scripted responses.
// It is designed for tests of components that depend on the go standard library http.Client
// and need deterministic answers from the APIs they integrate with.
//
// Responses are registered per route: a path, optionally narrowed to an HTTP method.
// Every request matching a route gets the next response from its list, and after the last
// one the list starts over. A method-specific route always wins over a method-agnostic one
// registered for the same path. Requests matching nothing get a 404 with a plain text body,
// so a test never silently reaches a real server.
//
// Quickstart:
//
//	client, mock := hypermock.TestClient(t)
//	err := mock.Register("/users/1", []hypermock.MockResponse{
//		hypermock.JSON(http.StatusOK, map[string]any{"id": 1}),
//		hypermock.PlainText(http.StatusServiceUnavailable, "try later"),
//	}, http.MethodGet)
//
// Status codes are returned as data. Classifying a 4xx or 5xx answer as a failure is left to the
// code under test; CheckStatus is available for callers that want an error for non-2xx responses.
//
// See examples directory for a real-world sample of its use.
package hypermock
