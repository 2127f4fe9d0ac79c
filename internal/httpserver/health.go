package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assistant-kit/pkg/response"
)

const (
	ServiceName   = "assistant-kit"
	HealthVersion = "1.0.0"
)

func (srv HTTPServer) probe(status string) gin.H {
	return gin.H{
		"status":      status,
		"service":     ServiceName,
		"version":     HealthVersion,
		"environment": srv.environment,
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, srv.probe("healthy"))
}

// readyCheck reports 503 once shutdown has started.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is ready"
// @Failure 503 {object} response.Resp "API is draining"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if srv.draining.Load() {
		c.JSON(http.StatusServiceUnavailable, response.Resp{
			ErrorCode: http.StatusServiceUnavailable,
			Message:   "draining",
			Data:      srv.probe("draining"),
		})
		return
	}
	response.OK(c, srv.probe("ready"))
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.probe("alive"))
}
