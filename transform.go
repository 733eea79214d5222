package hypermock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/itchyny/gojq"
)

// ResponseTransform is a type that can transform a mocked response before it reaches the client,
// e.g. to adjust fixtures shared between tests. Use WithResponseTransform option to apply it.
// Transforms are applied to matched responses only, never to the 404 answer for unmatched requests.
// Returning nil keeps the untransformed response.
type ResponseTransform interface {
	TransformResponse(r *http.Response) *http.Response
}

// ResponseTransformFunc is a convenience type that implements ResponseTransform interface.
type ResponseTransformFunc func(r *http.Response) *http.Response

func (f ResponseTransformFunc) TransformResponse(r *http.Response) *http.Response {
	return f(r)
}

// ComposeTransforms composes multiple transforms into a single one.
func ComposeTransforms(transforms ...ResponseTransform) ResponseTransform {
	return ResponseTransformFunc(func(r *http.Response) *http.Response {
		for _, transform := range transforms {
			if transformed := transform.TransformResponse(r); transformed != nil {
				r = transformed
			}
		}
		return r
	})
}

// TransformResponseFormatJSON formats json so it's easier to read.
func TransformResponseFormatJSON() ResponseTransform {
	return ResponseTransformFunc(func(r *http.Response) *http.Response {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			return r
		}
		var prettyJSON bytes.Buffer
		if err := json.Indent(&prettyJSON, bodyBytes, "", "  "); err != nil {
			setBody(r, bodyBytes)
			return r
		}
		setBody(r, prettyJSON.Bytes())
		return r
	})
}

// TransformResponseJQ runs a jq query over JSON response bodies and replaces the body with the first result.
// Bodies that aren't JSON, and queries that yield nothing or fail, leave the response unchanged.
// It returns an error if query doesn't parse or compile.
func TransformResponseJQ(query string) (ResponseTransform, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("parsing jq query %q: %w", query, err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("compiling jq query %q: %w", query, err)
	}

	return ResponseTransformFunc(func(r *http.Response) *http.Response {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			return r
		}
		setBody(r, bodyBytes)

		var input any
		if err := json.Unmarshal(bodyBytes, &input); err != nil {
			return r
		}
		v, ok := code.Run(input).Next()
		if !ok {
			return r
		}
		if _, isErr := v.(error); isErr {
			return r
		}
		out, err := json.Marshal(v)
		if err != nil {
			return r
		}
		setBody(r, out)
		r.Header.Set("Content-Type", ContentTypeJSON)
		return r
	}), nil
}

func setBody(r *http.Response, body []byte) {
	r.Body = io.NopCloser(bytes.NewReader(body))
	r.ContentLength = int64(len(body))
	if r.Header == nil {
		r.Header = make(http.Header)
	}
}
