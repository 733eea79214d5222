package hypermock

import (
	"fmt"
	"sort"
	"sync"
)

type registration struct {
	responses []MockResponse
	cursor    int
}

// advance returns the response under the cursor together with its index and moves the cursor forward,
// wrapping around after the last response.
func (r *registration) advance() (MockResponse, int) {
	idx := r.cursor
	r.cursor = (r.cursor + 1) % len(r.responses)
	return r.responses[idx], idx
}

// MockTable keeps the registered responses and a replay cursor per RouteKey.
// The zero value is not usable, use NewMockTable.
//
// All methods are safe for concurrent use. Resolution and advancing happen under the same lock,
// so concurrent requests for one route receive the registered responses exactly in order.
type MockTable struct {
	mu            sync.Mutex
	registrations map[RouteKey]*registration
}

// NewMockTable returns an empty MockTable.
func NewMockTable() *MockTable {
	return &MockTable{
		registrations: make(map[RouteKey]*registration),
	}
}

// Register sets the responses returned for path. With a method, only requests using that method match;
// without one, the registration serves every method that has no registration of its own.
//
// Any previous registration for the same key is replaced and replay starts from the first response.
// Register fails with ErrInvalidArgument when responses is empty, the key is invalid,
// or one of the responses carries a status code outside of 100-599 or a payload other than Text or Structured.
// The table is unchanged in that case.
func (m *MockTable) Register(path string, responses []MockResponse, method ...string) error {
	key, err := NewRouteKey(optionalMethod(method), path)
	if err != nil {
		return err
	}
	if len(responses) == 0 {
		return invalidArgument("no responses for %s", key)
	}
	copied := make([]MockResponse, len(responses))
	for i, resp := range responses {
		if resp.StatusCode < 100 || resp.StatusCode > 599 {
			return invalidArgument("response %d for %s: status code %d out of range", i, key, resp.StatusCode)
		}
		if !knownPayload(resp.Payload) {
			return invalidArgument("response %d for %s: unsupported payload type %T", i, key, resp.Payload)
		}
		copied[i] = resp.clone()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations[key] = &registration{responses: copied}
	return nil
}

// Unregister removes registrations for path. With a method only that exact registration is removed.
// Without one, the method-agnostic registration and all method-specific ones for path are removed.
// Removing something that isn't registered is not an error.
func (m *MockTable) Unregister(path string, method ...string) {
	key, err := NewRouteKey(optionalMethod(method), path)
	if err != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !key.IsMethodAgnostic() {
		delete(m.registrations, key)
		return
	}
	for k := range m.registrations {
		if k.Path == key.Path {
			delete(m.registrations, k)
		}
	}
}

// Resolve finds the registration serving a request. A registration for the exact method wins,
// then the method-agnostic one for path. ok is false if neither exists.
func (m *MockTable) Resolve(method, path string) (key RouteKey, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, _, ok = m.resolveLocked(method, path)
	return key, ok
}

func (m *MockTable) resolveLocked(method, path string) (RouteKey, *registration, bool) {
	key, err := NewRouteKey(method, path)
	if err != nil {
		return RouteKey{}, nil, false
	}
	if reg, ok := m.registrations[key]; ok {
		return key, reg, true
	}
	key = key.Agnostic()
	if reg, ok := m.registrations[key]; ok {
		return key, reg, true
	}
	return RouteKey{}, nil, false
}

// Advance returns the next response registered under key and its position in the registered list.
// key should come from Resolve; ErrNoMatch is returned if it was removed in the meantime.
func (m *MockTable) Advance(key RouteKey) (MockResponse, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.registrations[key]
	if !ok {
		return MockResponse{}, 0, fmt.Errorf("advance %s: %w", key, ErrNoMatch)
	}
	resp, idx := reg.advance()
	return resp.clone(), idx, nil
}

// Next resolves the registration for a request and advances it in a single step.
func (m *MockTable) Next(method, path string) (key RouteKey, resp MockResponse, idx int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, reg, ok := m.resolveLocked(method, path)
	if !ok {
		return RouteKey{}, MockResponse{}, 0, false
	}
	resp, idx = reg.advance()
	return key, resp.clone(), idx, true
}

// ResetCursor makes the registration serving method and path start over from its first response.
// The registration is picked the same way Resolve does. It is a no-op if nothing matches.
func (m *MockTable) ResetCursor(path string, method ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, reg, ok := m.resolveLocked(optionalMethod(method), path); ok {
		reg.cursor = 0
	}
}

// Clear removes all registrations.
func (m *MockTable) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations = make(map[RouteKey]*registration)
}

// Keys returns registered keys sorted by path, with the method-agnostic key first for each path.
func (m *MockTable) Keys() []RouteKey {
	m.mu.Lock()
	keys := make([]RouteKey, 0, len(m.registrations))
	for k := range m.registrations {
		keys = append(keys, k)
	}
	m.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Path != keys[j].Path {
			return keys[i].Path < keys[j].Path
		}
		return keys[i].Method < keys[j].Method
	})
	return keys
}
