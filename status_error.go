package hypermock

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// StatusError is returned by CheckStatus for responses outside of the 2xx range.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s failed with status %d", e.Method, e.Path, e.StatusCode)
}

// CheckStatus is a helper for code that treats non-2xx responses as errors.
// The Interceptor never calls it: which status codes are failures is decided by the client.
//
// For a 2xx response it returns nil and leaves the body untouched. Otherwise it reads and closes the body
// and returns a *StatusError carrying it.
func CheckStatus(resp *http.Response) error {
	if resp == nil {
		return errors.New("nil response")
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	statusErr := &StatusError{StatusCode: resp.StatusCode}
	if resp.Request != nil {
		statusErr.Method = resp.Request.Method
		if resp.Request.URL != nil {
			statusErr.Path = resp.Request.URL.Path
		}
	}
	if resp.Body != nil {
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err == nil {
			statusErr.Body = string(body)
		}
	}
	return statusErr
}

// IsStatus checks whether err is a StatusError with given status code.
func IsStatus(err error, statusCode int) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == statusCode
	}
	return false
}
