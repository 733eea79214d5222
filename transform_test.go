package hypermock

import (
	"bytes"
	"io"
	"net/http"
	"testing"
)

func TestTransformResponseFormatJSON(t *testing.T) {
	type User struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	tests := []struct {
		name      string
		body      string
		want      string
		transform ResponseTransform
	}{
		{
			name: "Simple JSON",
			body: `{"name":"John","age":30}`,
			want: `{
  "name": "John",
  "age": 30
}`,
			transform: TransformResponseFormatJSON(),
		},
		{
			name: "JSON with nested object",
			body: `{"name":"John","age":30,"address":{"city":"New York","country":"USA"}}`,
			want: `{
  "name": "John",
  "age": 30,
  "address": {
    "city": "New York",
    "country": "USA"
  }
}`,
			transform: TransformResponseFormatJSON(),
		},
		{
			name: "composed",
			body: `"wassup`,
			want: `{
  "initial": "transformation"
}`,
			transform: ComposeTransforms(
				ResponseTransformFunc(func(r *http.Response) *http.Response {
					r.Body = io.NopCloser(bytes.NewBufferString(`{"initial":"transformation"}`))
					return r
				}),
				TransformResponseFormatJSON(),
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := &http.Response{Body: io.NopCloser(bytes.NewBufferString(tt.body))}
			tt.transform.TransformResponse(got)
			bodyBytes, err := io.ReadAll(got.Body)
			if err != nil {
				t.Fatalf("Failed to read response body: %v", err)
			}
			got.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			if string(bodyBytes) != tt.want {
				t.Errorf("Response body = %v, want %v", string(bodyBytes), tt.want)
			}
		})
	}
}

func TestTransformResponseJQ(t *testing.T) {
	tests := []struct {
		name  string
		query string
		body  string
		want  string
	}{
		{
			name:  "select field",
			query: ".items[0]",
			body:  `{"items":[{"id":1},{"id":2}]}`,
			want:  `{"id":1}`,
		},
		{
			name:  "rewrite value",
			query: `.redirect_url = "http://localhost/callback"`,
			body:  `{"redirect_url":"https://prod.example.com/callback","state":"x"}`,
			want:  `{"redirect_url":"http://localhost/callback","state":"x"}`,
		},
		{
			name:  "not json is left alone",
			query: ".a",
			body:  `plain text`,
			want:  `plain text`,
		},
		{
			name:  "empty result is left alone",
			query: "empty",
			body:  `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "runtime error is left alone",
			query: ".a.b",
			body:  `{"a":"string"}`,
			want:  `{"a":"string"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transform, err := TransformResponseJQ(tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := transform.TransformResponse(&http.Response{Body: io.NopCloser(bytes.NewBufferString(tt.body))})
			bodyBytes, err := io.ReadAll(got.Body)
			if err != nil {
				t.Fatalf("Failed to read response body: %v", err)
			}
			if string(bodyBytes) != tt.want {
				t.Errorf("Response body = %v, want %v", string(bodyBytes), tt.want)
			}
			if got.ContentLength != int64(len(tt.want)) {
				t.Errorf("ContentLength = %d, want %d", got.ContentLength, len(tt.want))
			}
		})
	}
}

func TestComposeTransforms_SkipsNilResults(t *testing.T) {
	transform := ComposeTransforms(
		ResponseTransformFunc(func(r *http.Response) *http.Response { return nil }),
		ResponseTransformFunc(func(r *http.Response) *http.Response {
			r.Header.Set("X-Second", "yes")
			return r
		}),
	)
	original := &http.Response{Header: make(http.Header)}
	got := transform.TransformResponse(original)
	if got != original {
		t.Fatalf("expected the original response, got %v", got)
	}
	if got.Header.Get("X-Second") != "yes" {
		t.Errorf("second transform wasn't applied")
	}
}

func TestTransformResponseJQ_InvalidQuery(t *testing.T) {
	if _, err := TransformResponseJQ(".a |||"); err == nil {
		t.Fatal("expected error for invalid query")
	}
	if _, err := TransformResponseJQ("$undefined"); err == nil {
		t.Fatal("expected error for undefined variable")
	}
}

func TestTransformResponseJQ_WithInterceptor(t *testing.T) {
	transform, err := TransformResponseJQ(".data")
	if err != nil {
		t.Fatal(err)
	}
	i, err := New(WithResponseTransform(transform))
	if err != nil {
		t.Fatal(err)
	}
	if err := i.Register("/wrapped", []MockResponse{JSON(http.StatusOK, map[string]any{"data": []int{1, 2}})}); err != nil {
		t.Fatal(err)
	}

	resp, body := doRequest(t, i.Client(), http.MethodGet, "http://host/wrapped", nil)
	if body != "[1,2]" {
		t.Errorf("expected [1,2], got %s", body)
	}
	if resp.Header.Get("Content-Type") != ContentTypeJSON {
		t.Errorf("expected %s content type, got %s", ContentTypeJSON, resp.Header.Get("Content-Type"))
	}
}
