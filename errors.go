package hypermock

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a registration can't be accepted,
	// e.g. an empty response list, an empty path or an out of range status code.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSerialization is wrapped by SerializationError. The synthesizer never returns it to the caller,
	// it renders the payload as text instead.
	ErrSerialization = errors.New("payload is not representable as JSON")

	// ErrNoMatch is returned by MockTable.Advance when there is no registration for the given key.
	// RoundTrip never returns it: unmatched requests are answered with a 404.
	ErrNoMatch = errors.New("no mock registered")
)

// SerializationError describes a structured payload that couldn't be encoded.
type SerializationError struct {
	Value any
	Err   error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s: %T: %v", ErrSerialization.Error(), e.Value, e.Err)
}

func (e *SerializationError) Unwrap() []error {
	return []error{ErrSerialization, e.Err}
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
