package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"assistant-kit/config"
	"assistant-kit/pkg/log"
)

func newEngine(m Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Trace(), m.Observe())
	r.POST("/sessions/:id/chat", m.RateLimit(), func(c *gin.Context) {
		c.String(http.StatusOK, log.TraceIDFromContext(c.Request.Context()))
	})
	return r
}

func do(r *gin.Engine, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTrace(t *testing.T) {
	r := newEngine(New(log.NewNop(), config.RateLimitConfig{}))

	w := do(r, "/sessions/a/chat", map[string]string{HeaderRequestID: "req-1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "req-1", w.Body.String())
	require.Equal(t, "req-1", w.Header().Get(HeaderRequestID))

	w = do(r, "/sessions/a/chat", nil)
	require.NotEmpty(t, w.Header().Get(HeaderRequestID))
	require.Equal(t, w.Header().Get(HeaderRequestID), w.Body.String())
}

func TestRateLimit(t *testing.T) {
	r := newEngine(New(log.NewNop(), config.RateLimitConfig{Enabled: true, RequestsPerMin: 60, Burst: 2}))

	require.Equal(t, http.StatusOK, do(r, "/sessions/a/chat", nil).Code)
	require.Equal(t, http.StatusOK, do(r, "/sessions/a/chat", nil).Code)
	require.Equal(t, http.StatusTooManyRequests, do(r, "/sessions/a/chat", nil).Code)

	// Buckets are per session.
	require.Equal(t, http.StatusOK, do(r, "/sessions/b/chat", nil).Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newEngine(New(log.NewNop(), config.RateLimitConfig{Enabled: false, RequestsPerMin: 1}))
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, do(r, "/sessions/a/chat", nil).Code)
	}
}
