package hypermock

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Call is a journal entry for one intercepted request.
type Call struct {
	ID uuid.UUID
	At time.Time
	// Key is the registration that served the request. It is zero if nothing matched.
	Key     RouteKey
	Matched bool
	// Index is the position of the served response within the registered list.
	Index      int
	StatusCode int
	// Request is sanitized with the interceptor's RequestSanitizer.
	Request RequestData
}

type journal struct {
	mu    sync.Mutex
	calls []Call
}

func (j *journal) record(c Call) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, c)
}

func (j *journal) snapshot() []Call {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Call(nil), j.calls...)
}

func (j *journal) count(match func(Call) bool) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for _, c := range j.calls {
		if match(c) {
			n++
		}
	}
	return n
}

func (j *journal) reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = nil
}
