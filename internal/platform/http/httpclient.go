// Package http builds HTTP clients with explicit timeouts.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client for calling the employee API.
// http.DefaultClient has no timeout, so callers always go through here.
// The dialer and TLS handshake are capped at 5s; timeout bounds the whole request.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
