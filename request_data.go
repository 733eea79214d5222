package hypermock

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// RequestData is a snapshot of an intercepted request, used by the call journal and by RequestValidator.
// The fields are cloned from request's fields and their modification will not affect actual request's values.
type RequestData struct {
	Method    string
	Header    http.Header
	URL       *url.URL
	BodyBytes []byte
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	var userInfo *url.Userinfo
	if u.User != nil {
		userInfoCopy := *u.User
		userInfo = &userInfoCopy
	}
	uCopy := *u
	uCopy.User = userInfo
	return &uCopy
}

// requestDataFromRequest consumes and closes the request body, as http.RoundTripper implementations do.
func requestDataFromRequest(req *http.Request) (RequestData, error) {
	data := RequestData{
		Method: req.Method,
		Header: req.Header.Clone(),
		URL:    cloneURL(req.URL),
	}
	if req.Body == nil || req.Body == http.NoBody {
		return data, nil
	}
	defer req.Body.Close()
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return data, fmt.Errorf("reading request body: %w", err)
	}
	data.BodyBytes = body
	return data, nil
}

// asRequest builds a throwaway request carrying the snapshot, so that RequestSanitizers can operate on it.
func (d RequestData) asRequest() *http.Request {
	u := cloneURL(d.URL)
	if u == nil {
		u = &url.URL{}
	}
	return &http.Request{
		Method: d.Method,
		URL:    u,
		Header: d.Header.Clone(),
		Body:   io.NopCloser(bytes.NewReader(d.BodyBytes)),
	}
}

// sanitized returns a copy of d that went through s.
func (d RequestData) sanitized(s RequestSanitizer) RequestData {
	if s == nil {
		return d
	}
	req := s.SanitizeRequest(d.asRequest())
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	return RequestData{
		Method:    req.Method,
		Header:    req.Header,
		URL:       req.URL,
		BodyBytes: d.BodyBytes,
	}
}
