package http

import (
	nethttp "net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	c := NewHTTPClient(7 * time.Second)

	assert.Equal(t, 7*time.Second, c.Timeout)
	tr, ok := c.Transport.(*nethttp.Transport)
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, tr.TLSHandshakeTimeout)
	assert.NotNil(t, tr.Proxy)
}
