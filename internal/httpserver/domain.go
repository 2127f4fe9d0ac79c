package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	assistantHTTP "assistant-kit/internal/assistant/delivery/http"
	"assistant-kit/internal/middleware"
)

// setupAssistantDomain registers /api/v1/sessions.
func (srv HTTPServer) setupAssistantDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	h := assistantHTTP.New(srv.l, srv.assistantUC)
	assistantHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Assistant domain registered at /api/v1/sessions")
	return nil
}
