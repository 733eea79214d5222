package hypermock

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CallIDHeader is set on every response produced by the Interceptor. Its value is the ID of the journal entry.
const CallIDHeader = "X-Hypermock-Call-Id"

const defaultNotFoundFormat = "hypermock: no mock registered for %s %s"

// Interceptor is an http.RoundTripper answering requests with responses registered in its MockTable.
// It never performs network I/O, retries or waits.
//
// Every request is answered synchronously: a matched request with the next registered response,
// an unmatched one with a 404 and a plain text body. Status codes are not interpreted in any way,
// a registered 500 is returned like a 200 would be.
type Interceptor struct {
	table       *MockTable
	synthesizer *Synthesizer
	journal     journal

	t            T
	logger       *slog.Logger
	parentClient *http.Client
	transform    ResponseTransform
	validator    RequestValidator
	sanitizer    RequestSanitizer
	notFoundBody string
}

// Table returns the MockTable the Interceptor serves from.
func (i *Interceptor) Table() *MockTable {
	return i.table
}

// Client returns a copy of the parent http.Client that sends all requests through the Interceptor.
func (i *Interceptor) Client() *http.Client {
	c := *i.parentClient
	c.Transport = i
	return &c
}

// Register sets the responses for path, optionally narrowed to a method. See MockTable.Register.
func (i *Interceptor) Register(path string, responses []MockResponse, method ...string) error {
	if err := i.table.Register(path, responses, method...); err != nil {
		return fmt.Errorf("hypermock: register: %w", err)
	}
	i.logger.Debug("hypermock: registered mock",
		slog.String("method", optionalMethod(method)),
		slog.String("path", path),
		slog.Int("responses", len(responses)),
	)
	return nil
}

// Unregister removes registrations for path. See MockTable.Unregister.
func (i *Interceptor) Unregister(path string, method ...string) {
	i.table.Unregister(path, method...)
}

// Clear removes all registrations. The call journal is kept, use ResetCalls to drop it.
func (i *Interceptor) Clear() {
	i.table.Clear()
}

// ResetCounter makes the registration serving path start over from its first response.
func (i *Interceptor) ResetCounter(path string, method ...string) {
	i.table.ResetCursor(path, method...)
}

// Calls returns the journal of intercepted requests in arrival order.
func (i *Interceptor) Calls() []Call {
	return i.journal.snapshot()
}

// CallCount returns how many requests with method and path were intercepted, matched or not.
// An empty method counts requests regardless of their method.
func (i *Interceptor) CallCount(method, path string) int {
	key, err := NewRouteKey(method, path)
	if err != nil {
		return 0
	}
	return i.journal.count(func(c Call) bool {
		if c.Request.URL == nil || c.Request.URL.Path != key.Path {
			return false
		}
		return key.IsMethodAgnostic() || c.Request.Method == key.Method
	})
}

// ResetCalls drops the call journal.
func (i *Interceptor) ResetCalls() {
	i.journal.reset()
}

// RoundTrip implements http.RoundTripper.
func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil || req.URL == nil {
		return nil, errors.New("hypermock: request without URL")
	}
	data, err := requestDataFromRequest(req)
	if err != nil {
		return nil, fmt.Errorf("hypermock: %w", err)
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	method = strings.ToUpper(method)
	data.Method = method
	path := req.URL.Path
	if path == "" {
		path = "/"
	}

	call := Call{
		ID:      uuid.New(),
		At:      time.Now(),
		Request: data.sanitized(i.sanitizer),
	}

	key, mockResp, idx, ok := i.table.Next(method, path)
	if !ok {
		call.StatusCode = http.StatusNotFound
		i.journal.record(call)
		i.logger.Warn("hypermock: no mock registered",
			slog.String("method", method),
			slog.String("url", call.Request.URL.String()),
		)
		return i.notFound(req, call.ID, method, path), nil
	}

	if i.validator != nil && i.t != nil {
		i.validator.Validate(i.t, key, data)
	}

	rendered := i.synthesizer.Render(mockResp)
	resp := newResponse(req, rendered.StatusCode, rendered.Header, rendered.Body)
	resp.Header.Set(CallIDHeader, call.ID.String())
	if i.transform != nil {
		if transformed := i.transform.TransformResponse(resp); transformed != nil {
			resp = transformed
		}
	}

	call.Key = key
	call.Matched = true
	call.Index = idx
	call.StatusCode = resp.StatusCode
	i.journal.record(call)
	i.logger.Debug("hypermock: served mock",
		slog.String("key", key.String()),
		slog.Int("index", idx),
		slog.Int("status", resp.StatusCode),
		slog.String("url", call.Request.URL.String()),
	)
	return resp, nil
}

func (i *Interceptor) notFound(req *http.Request, id uuid.UUID, method, path string) *http.Response {
	body := i.notFoundBody
	if body == "" {
		body = fmt.Sprintf(defaultNotFoundFormat, method, path)
	}
	header := make(http.Header)
	header.Set("Content-Type", ContentTypeText)
	header.Set(CallIDHeader, id.String())
	return newResponse(req, http.StatusNotFound, header, []byte(body))
}

func newResponse(req *http.Request, statusCode int, header http.Header, body []byte) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		StatusCode:    statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}

var _ http.RoundTripper = (*Interceptor)(nil)
