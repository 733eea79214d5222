package hypermock

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBody struct {
	closed bool
}

func (b *failingBody) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func (b *failingBody) Close() error {
	b.closed = true
	return nil
}

func TestRequestDataFromRequest_ClosesBodyOnReadError(t *testing.T) {
	body := &failingBody{}
	req, err := http.NewRequest(http.MethodPost, "http://host/a", body)
	require.NoError(t, err)

	_, err = requestDataFromRequest(req)
	assert.Error(t, err)
	assert.True(t, body.closed)
}

func TestRequestDataFromRequest_ClosesBody(t *testing.T) {
	body := &closeTrackingBody{Reader: strings.NewReader("payload")}
	req, err := http.NewRequest(http.MethodPost, "http://host/a", body)
	require.NoError(t, err)

	data, err := requestDataFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data.BodyBytes))
	assert.True(t, body.closed)
}

type closeTrackingBody struct {
	io.Reader
	closed bool
}

func (b *closeTrackingBody) Close() error {
	b.closed = true
	return nil
}
