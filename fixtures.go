package hypermock

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixture is a registration described as data, e.g. loaded from a YAML file.
type Fixture struct {
	Method    string
	Path      string
	Responses []MockResponse
}

// RegisterFixtures registers every fixture in order. Later fixtures for the same key replace earlier ones.
// It stops at the first fixture that fails to register.
func (i *Interceptor) RegisterFixtures(fixtures ...Fixture) error {
	for _, f := range fixtures {
		var method []string
		if f.Method != "" {
			method = []string{f.Method}
		}
		if err := i.Register(f.Path, f.Responses, method...); err != nil {
			return fmt.Errorf("fixture %s %s: %w", f.Method, f.Path, err)
		}
	}
	return nil
}

type fixtureFile struct {
	Mocks []fixtureEntry `yaml:"mocks"`
}

type fixtureEntry struct {
	Method    string            `yaml:"method"`
	Path      string            `yaml:"path"`
	Responses []fixtureResponse `yaml:"responses"`
}

type fixtureResponse struct {
	Status  int                   `yaml:"status"`
	JSON    yaml.Node             `yaml:"json"`
	Text    *string               `yaml:"text"`
	Headers map[string]stringList `yaml:"headers"`
}

// stringList accepts both a single scalar and a sequence of scalars.
type stringList []string

func (l *stringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = stringList{node.Value}
		return nil
	}
	var values []string
	if err := node.Decode(&values); err != nil {
		return err
	}
	*l = values
	return nil
}

// LoadFixtures reads fixtures from a YAML document of the following form:
//
//	mocks:
//	  - method: GET          # optional, omit to match any method
//	    path: /users/1
//	    responses:
//	      - status: 200
//	        json: {id: 1, name: Ann}
//	      - status: 503
//	        text: try again later
//	        headers:
//	          Retry-After: "1"
//
// Each response holds either json or text. A response with neither has an empty body.
// Unknown fields are rejected, to catch typos early.
func LoadFixtures(r io.Reader) ([]Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file fixtureFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding fixtures: %w", err)
	}

	fixtures := make([]Fixture, 0, len(file.Mocks))
	for n, entry := range file.Mocks {
		f := Fixture{
			Method:    entry.Method,
			Path:      entry.Path,
			Responses: make([]MockResponse, 0, len(entry.Responses)),
		}
		for m, resp := range entry.Responses {
			mockResp, err := resp.toMockResponse()
			if err != nil {
				return nil, fmt.Errorf("mock %d (%s %s), response %d: %w", n, entry.Method, entry.Path, m, err)
			}
			f.Responses = append(f.Responses, mockResp)
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

func (r fixtureResponse) toMockResponse() (MockResponse, error) {
	resp := MockResponse{StatusCode: r.Status}
	if resp.StatusCode == 0 {
		resp.StatusCode = http.StatusOK
	}
	hasJSON := r.JSON.Kind != 0
	switch {
	case hasJSON && r.Text != nil:
		return MockResponse{}, invalidArgument("both json and text set")
	case hasJSON:
		var v any
		if err := r.JSON.Decode(&v); err != nil {
			return MockResponse{}, fmt.Errorf("decoding json payload: %w", err)
		}
		resp.Payload = JSONPayload(stringKeys(v))
	case r.Text != nil:
		resp.Payload = TextPayload(*r.Text)
	}
	if len(r.Headers) > 0 {
		resp.Header = make(http.Header, len(r.Headers))
		for k, v := range r.Headers {
			resp.Header[http.CanonicalHeaderKey(k)] = v
		}
	}
	return resp, nil
}

// LoadFixtureFile reads fixtures from the YAML file at path. See LoadFixtures for the format.
func LoadFixtureFile(path string) ([]Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fixture file: %w", err)
	}
	defer f.Close()
	fixtures, err := LoadFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fixtures, nil
}

// DefaultFixtureFile returns fully qualified file name following <your package directory>/testdata/<name of the test>.yaml convention.
//
// Note, that it relies on runtime.Caller function to find the first _test.go file in the call stack.
// Because of that, usually you'd want to call this function directly in a file that belongs to a directory
// that the test data directory should be placed in.
func DefaultFixtureFile(t T) string {
	t.Helper()
	for i := 0; i < 8; i++ {
		_, file, _, ok := runtime.Caller(i)
		if !ok {
			t.Fatalf("failed to get caller")
			return ""
		}
		if strings.HasSuffix(file, "_test.go") {
			return filepath.Join(filepath.Dir(file), "testdata", t.Name()+".yaml")
		}
	}
	t.Fatalf("failed to get testdata path")
	return ""
}

// stringKeys rewrites YAML mappings with non-string keys, which encoding/json can't encode,
// into maps keyed by the keys' textual form.
func stringKeys(v any) any {
	switch v := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case map[string]any:
		for k, val := range v {
			v[k] = stringKeys(val)
		}
		return v
	case []any:
		for i, val := range v {
			v[i] = stringKeys(val)
		}
		return v
	default:
		return v
	}
}
