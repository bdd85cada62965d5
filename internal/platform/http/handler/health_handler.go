// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

const checkTimeout = 2 * time.Second

// Health returns the /healthz handler. GET answers {"status":"ok"} when every
// check passes and 503 {"status":"unavailable"} otherwise; HEAD and OPTIONS
// answer without a body. Responses are never cached.
func Health(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		status := http.StatusOK
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()
		for _, check := range checks {
			if err := check(ctx); err != nil {
				_ = c.Error(err)
				status = http.StatusServiceUnavailable
				break
			}
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		if status != http.StatusOK {
			c.JSON(status, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(status, gin.H{"status": "ok"})
	}
}
