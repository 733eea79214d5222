package hypermock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouteKey(t *testing.T) {
	testCases := []struct {
		name     string
		method   string
		path     string
		want     RouteKey
		wantErr  bool
		agnostic bool
		str      string
	}{
		{name: "upper cases method", method: "get", path: "/a", want: RouteKey{Method: "GET", Path: "/a"}, str: "GET /a"},
		{name: "trims method", method: " post ", path: "/a", want: RouteKey{Method: "POST", Path: "/a"}, str: "POST /a"},
		{name: "no method", method: "", path: "/a", want: RouteKey{Path: "/a"}, agnostic: true, str: "* /a"},
		{name: "blank method", method: "  ", path: "/a", want: RouteKey{Path: "/a"}, agnostic: true, str: "* /a"},
		{name: "custom method", method: "purge", path: "/cache", want: RouteKey{Method: "PURGE", Path: "/cache"}, str: "PURGE /cache"},
		{name: "path containing a space is kept verbatim", method: "GET", path: "/a b", want: RouteKey{Method: "GET", Path: "/a b"}, str: "GET /a b"},
		{name: "empty path", method: "GET", path: "", wantErr: true},
		{name: "method with separator", method: "GET /a", path: "/b", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewRouteKey(tc.method, tc.path)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.agnostic, got.IsMethodAgnostic())
			assert.Equal(t, tc.str, got.String())
		})
	}
}

func TestRouteKey_Equality(t *testing.T) {
	a, err := NewRouteKey("get", "/x")
	require.NoError(t, err)
	b, err := NewRouteKey("GET", "/x")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, RouteKey{Path: "/x"}, a.Agnostic())

	// keys are not concatenated strings, so a path holding the separator can't collide with a method
	c, err := NewRouteKey("", "GET /x")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
