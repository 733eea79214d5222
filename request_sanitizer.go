package hypermock

import "net/http"

// RequestSanitizer removes sensitive data from requests before they are logged or stored in the call journal.
// It operates on a copy, so the request seen by the code under test is never modified.
// It is allowed to mutate the request it gets in place.
type RequestSanitizer interface {
	SanitizeRequest(req *http.Request) *http.Request
}

// DefaultRequestSanitizer returns a RequestSanitizer that sanitizes headers and query parameters.
func DefaultRequestSanitizer() RequestSanitizer {
	return ComposedRequestSanitizer(
		DefaultHeadersSanitizer(),
		DefaultQueryParamsSanitizer(),
	)
}

// NoopRequestSanitizer keeps requests intact.
func NoopRequestSanitizer() RequestSanitizer {
	return RequestSanitizerFunc(func(req *http.Request) *http.Request {
		return req
	})
}

type RequestSanitizerFunc func(req *http.Request) *http.Request

func (f RequestSanitizerFunc) SanitizeRequest(req *http.Request) *http.Request {
	return f(req)
}

func ComposedRequestSanitizer(s ...RequestSanitizer) RequestSanitizer {
	return RequestSanitizerFunc(func(req *http.Request) *http.Request {
		for _, s := range s {
			req = s.SanitizeRequest(req)
		}
		return req
	})
}

const sanitizedValue = "SANITIZED"

func HeadersSanitizer(headers ...string) RequestSanitizer {
	return RequestSanitizerFunc(func(req *http.Request) *http.Request {
		for _, header := range headers {
			if req.Header.Get(header) != "" {
				req.Header.Set(header, sanitizedValue)
			}
		}
		return req
	})
}

func DefaultHeadersSanitizer() RequestSanitizer {
	return HeadersSanitizer(
		"Authorization",
		"Cookie",
		"Proxy-Authorization",
		"X-Api-Key",
		"X-Auth-Token",
		"X-Access-Token",
		"X-Client-Secret",
	)
}

func QueryParamsSanitizer(params ...string) RequestSanitizer {
	return RequestSanitizerFunc(func(req *http.Request) *http.Request {
		if req.URL == nil {
			return req
		}
		q := req.URL.Query()
		changed := false
		for _, param := range params {
			if q.Has(param) {
				q.Set(param, sanitizedValue)
				changed = true
			}
		}
		if changed {
			req.URL.RawQuery = q.Encode()
		}
		return req
	})
}

func DefaultQueryParamsSanitizer() RequestSanitizer {
	return QueryParamsSanitizer(
		"access_token",
		"api_key",
		"apikey",
		"client_secret",
		"key",
		"password",
		"secret",
		"signature",
		"token",
	)
}
