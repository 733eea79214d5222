package hypermock

import "net/http"

// Payload is the body of a MockResponse. It is either Text or Structured;
// no other implementations exist.
type Payload interface {
	isPayload()
}

// Text is a payload that is sent as is. If it happens to be valid JSON, it is labeled as such.
type Text string

// Structured is a payload that is encoded as JSON when the response is rendered.
type Structured struct {
	Value any
}

func (Text) isPayload()       {}
func (Structured) isPayload() {}

// knownPayload reports whether p is nil, Text or Structured.
// Pointers to them and types embedding them satisfy Payload too, but can't be rendered.
func knownPayload(p Payload) bool {
	switch p.(type) {
	case nil, Text, Structured:
		return true
	}
	return false
}

// TextPayload wraps s in a Text payload.
func TextPayload(s string) Payload {
	return Text(s)
}

// JSONPayload wraps v in a Structured payload.
func JSONPayload(v any) Payload {
	return Structured{Value: v}
}

// MockResponse is a single scripted answer.
type MockResponse struct {
	Payload    Payload
	StatusCode int
	// Header is merged on top of the inferred headers; values set here always win.
	Header http.Header
}

// JSON returns a MockResponse with a structured payload.
// Optional headers are merged into a single http.Header, later ones overriding earlier.
func JSON(statusCode int, v any, headers ...http.Header) MockResponse {
	return MockResponse{
		Payload:    JSONPayload(v),
		StatusCode: statusCode,
		Header:     mergeHeaders(headers),
	}
}

// PlainText returns a MockResponse with a text payload.
func PlainText(statusCode int, s string, headers ...http.Header) MockResponse {
	return MockResponse{
		Payload:    TextPayload(s),
		StatusCode: statusCode,
		Header:     mergeHeaders(headers),
	}
}

func (r MockResponse) clone() MockResponse {
	r.Header = r.Header.Clone()
	return r
}

func mergeHeaders(headers []http.Header) http.Header {
	if len(headers) == 0 {
		return nil
	}
	merged := make(http.Header)
	for _, h := range headers {
		for k, v := range h {
			merged[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
		}
	}
	return merged
}
