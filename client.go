package hypermock

import (
	"log/slog"
	"net/http"
)

type config struct {
	logger           *slog.Logger
	parentHTTPClient *http.Client
	transform        ResponseTransform
	requestValidator RequestValidator
	requestSanitizer RequestSanitizer
	notFoundBody     string
	fixtureFiles     []string
	fixtures         []Fixture
}

// Option can be used to customize Interceptor behaviour. See With* functions to find customization options
type Option func(*config)

// WithLogger sets the logger used to report served and unmatched requests.
// By default, New discards logs and TestClient writes them through t.Log.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithParentHTTPClient allows user to set the custom parent http client.
// Clients returned by the Interceptor are copies of it with the transport replaced.
func WithParentHTTPClient(c *http.Client) Option {
	return func(cfg *config) {
		cfg.parentHTTPClient = c
	}
}

// WithResponseTransform sets a transform applied to every matched response.
func WithResponseTransform(transform ResponseTransform) Option {
	return func(cfg *config) {
		cfg.transform = transform
	}
}

// WithRequestValidator sets a validator run for every matched request. It only takes effect with TestClient,
// which provides the T to report failures to.
func WithRequestValidator(v RequestValidator) Option {
	return func(cfg *config) {
		cfg.requestValidator = v
	}
}

// WithRequestSanitizer configures RequestSanitizer applied before requests are logged or stored in the call journal.
// You may consider using RequestSanitizerFunc, ComposedRequestSanitizer, NoopRequestSanitizer,
// QueryParamsSanitizer, HeadersSanitizer helper functions to compose sanitization rules or implement your own, custom sanitizer.
func WithRequestSanitizer(sanitizer RequestSanitizer) Option {
	return func(cfg *config) {
		cfg.requestSanitizer = sanitizer
	}
}

// WithNotFoundBody replaces the body sent for unmatched requests.
func WithNotFoundBody(body string) Option {
	return func(cfg *config) {
		cfg.notFoundBody = body
	}
}

// WithFixtures registers given fixtures when the Interceptor is created.
func WithFixtures(fixtures ...Fixture) Option {
	return func(cfg *config) {
		cfg.fixtures = append(cfg.fixtures, fixtures...)
	}
}

// WithFixtureFile registers the fixtures stored in a YAML file when the Interceptor is created.
// See LoadFixtures for the file format and DefaultFixtureFile for a sane default location.
func WithFixtureFile(path string) Option {
	return func(cfg *config) {
		cfg.fixtureFiles = append(cfg.fixtureFiles, path)
	}
}

// New returns an Interceptor with an empty MockTable.
// It returns an error only when a fixture passed with WithFixtures or WithFixtureFile can't be loaded or registered.
func New(opts ...Option) (*Interceptor, error) {
	cfg := configWithDefaults(opts)
	return newInterceptor(nil, cfg)
}

func newInterceptor(t T, cfg *config) (*Interceptor, error) {
	i := &Interceptor{
		table:        NewMockTable(),
		synthesizer:  NewSynthesizer(cfg.logger),
		t:            t,
		logger:       cfg.logger,
		parentClient: cfg.parentHTTPClient,
		transform:    cfg.transform,
		validator:    cfg.requestValidator,
		sanitizer:    cfg.requestSanitizer,
		notFoundBody: cfg.notFoundBody,
	}

	fixtures := cfg.fixtures
	for _, path := range cfg.fixtureFiles {
		loaded, err := LoadFixtureFile(path)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, loaded...)
	}
	if err := i.RegisterFixtures(fixtures...); err != nil {
		return nil, err
	}
	return i, nil
}

// TestClient returns an http.Client answering with mocked responses and the Interceptor to register them with.
// It is the main entrypoint for using hypermock in tests.
//
// Logs go through t.Log unless WithLogger is passed, and RequestValidator failures are reported to t.
// Failing to load fixtures is fatal for the test.
//
// The returned *http.Client should be injected to given component before the tests are run.
func TestClient(t T, opts ...Option) (*http.Client, *Interceptor) {
	t.Helper()
	cfg := configWithDefaults(append([]Option{WithLogger(testLogger(t))}, opts...))
	i, err := newInterceptor(t, cfg)
	if err != nil {
		t.Fatalf("hypermock: %s", err.Error())
		return nil, nil
	}
	t.Log("hypermock: requests will be answered with registered mocks")
	return i.Client(), i
}

func configWithDefaults(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger()
	}
	if cfg.parentHTTPClient == nil {
		cfg.parentHTTPClient = &http.Client{}
	}
	if cfg.requestSanitizer == nil {
		cfg.requestSanitizer = DefaultRequestSanitizer()
	}
	return cfg
}

// T is a subset of testing.T interface that is used by hypermock's functions.
// custom T's implementation can be used to e.g. make logs silent, stop failing on errors and others.
type T interface {
	Helper()
	Name() string
	Log(args ...any)
	Logf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
}
