package hypermock

// RequestValidator makes assertions on requests that matched a registration.
// It is called before the response is returned, with the key that matched and an unsanitized snapshot of the request.
// Failures should be reported through t.
type RequestValidator interface {
	Validate(t T, key RouteKey, got RequestData)
}

type RequestValidatorFunc func(t T, key RouteKey, got RequestData)

func (f RequestValidatorFunc) Validate(t T, key RouteKey, got RequestData) {
	f(t, key, got)
}

func ComposedRequestValidator(validators ...RequestValidator) RequestValidator {
	return RequestValidatorFunc(func(t T, key RouteKey, got RequestData) {
		for _, validator := range validators {
			validator.Validate(t, key, got)
		}
	})
}

// HeadersValidator checks that every matched request carries all given headers.
func HeadersValidator(headers ...string) RequestValidator {
	return RequestValidatorFunc(func(t T, key RouteKey, got RequestData) {
		t.Helper()
		for _, h := range headers {
			if got.Header.Get(h) == "" {
				t.Errorf("hypermock: request matched by %s is missing header %s", key, h)
			}
		}
	})
}

// BodyPresentValidator fails the test when a request for one of given methods arrives without a body.
func BodyPresentValidator(methods ...string) RequestValidator {
	return RequestValidatorFunc(func(t T, key RouteKey, got RequestData) {
		t.Helper()
		for _, m := range methods {
			if got.Method == m && len(got.BodyBytes) == 0 {
				t.Errorf("hypermock: %s request matched by %s has an empty body", got.Method, key)
			}
		}
	})
}
