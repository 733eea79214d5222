package hypermock

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
)

// RenderedResponse is a MockResponse ready to be sent to the client.
type RenderedResponse struct {
	StatusCode int
	Body       []byte
	Header     http.Header

	// Fallback is set when a structured payload couldn't be encoded and its textual form was sent instead.
	// It wraps ErrSerialization.
	Fallback error
}

// Synthesizer renders MockResponses. The zero value is usable and doesn't log.
type Synthesizer struct {
	logger *slog.Logger
}

// NewSynthesizer returns a Synthesizer that reports serialization fallbacks to logger.
func NewSynthesizer(logger *slog.Logger) *Synthesizer {
	return &Synthesizer{logger: logger}
}

// Render turns resp into its wire form.
//
// Structured payloads are encoded as JSON. Text payloads are sent verbatim, labeled application/json
// if they parse as JSON and text/plain otherwise. Headers of resp are applied last, so an explicit
// Content-Type always wins over the inferred one.
//
// Render always produces a response: a structured payload that can't be encoded is sent in its
// textual form, labeled text/plain, and the reason is stored in RenderedResponse.Fallback.
func (s *Synthesizer) Render(resp MockResponse) RenderedResponse {
	out := RenderedResponse{
		StatusCode: resp.StatusCode,
		Header:     make(http.Header),
	}

	var contentType string
	switch p := resp.Payload.(type) {
	case nil:
		contentType = ContentTypeText
	case Text:
		out.Body = []byte(p)
		contentType = ContentTypeText
		if json.Valid(out.Body) {
			contentType = ContentTypeJSON
		}
	case Structured:
		body, err := encodeStructured(p.Value)
		if err != nil {
			out.Body = []byte(fmt.Sprint(p.Value))
			out.Fallback = err
			contentType = ContentTypeText
			if s != nil && s.logger != nil {
				s.logger.Warn("hypermock: rendering payload as text", slog.String("error", err.Error()))
			}
		} else {
			out.Body = body
			contentType = ContentTypeJSON
		}
	default:
		out.Body = []byte(fmt.Sprint(p))
		out.Fallback = fmt.Errorf("%w: unsupported payload type %T", ErrInvalidArgument, p)
		contentType = ContentTypeText
		if s != nil && s.logger != nil {
			s.logger.Warn("hypermock: rendering payload as text", slog.String("error", out.Fallback.Error()))
		}
	}

	out.Header.Set("Content-Type", contentType)
	for k, v := range resp.Header {
		out.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}
	return out
}

// Render renders resp with a Synthesizer that doesn't log.
func Render(resp MockResponse) RenderedResponse {
	var s Synthesizer
	return s.Render(resp)
}

func encodeStructured(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, &SerializationError{Value: v, Err: err}
	}
	return body, nil
}
