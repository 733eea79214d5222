package hypermock

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockT struct {
	T
	mu     sync.Mutex
	failed bool
	fatal  bool
	msg    string
	logs   []string
}

func (m *mockT) Helper() {}

func (m *mockT) Name() string {
	return "mockT"
}

func (m *mockT) Log(args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, fmt.Sprint(args...))
}

func (m *mockT) Logf(format string, args ...any) {
	m.Log(fmt.Sprintf(format, args...))
}

func (m *mockT) Errorf(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = true
	m.msg = fmt.Sprintf(format, args...)
}

func (m *mockT) Fatalf(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = true
	m.fatal = true
	m.msg = fmt.Sprintf(format, args...)
}

func doRequest(t *testing.T, c *http.Client, method, url string, body io.Reader) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}
