package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"assistant-kit/internal/metrics"
	"assistant-kit/pkg/log"
)

// HeaderRequestID carries the request trace id in and out.
const HeaderRequestID = "X-Request-ID"

// Trace puts a request id into the request context, so every log line of
// the request carries it, and echoes it back.
func (m Middleware) Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(log.WithTraceID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// Observe logs each request and counts it by route and status.
func (m Middleware) Observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		m.l.Infof(c.Request.Context(), "%s %s %d %s", c.Request.Method, route, status, time.Since(start))
	}
}
