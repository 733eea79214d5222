package internal

import (
	"github.com/areknoster/hypermock"
)

// WrapDefaultFixtureFile calls hypermock.DefaultFixtureFile through given number of wrapping functions,
// to simulate helpers sitting between a test and the lookup.
func WrapDefaultFixtureFile(t hypermock.T, wraps int) string {
	wrap := func(prev func(t hypermock.T) string) func(t hypermock.T) string {
		return func(t hypermock.T) string {
			return prev(t)
		}
	}
	wrapped := hypermock.DefaultFixtureFile
	for i := 0; i < wraps; i++ {
		wrapped = wrap(wrapped)
	}
	return wrapped(t)
}
