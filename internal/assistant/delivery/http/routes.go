package http

import (
	"github.com/gin-gonic/gin"

	"assistant-kit/internal/middleware"
)

// RegisterRoutes maps /sessions routes. Turn endpoints are rate limited per session.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.NewSession)
		sessions.POST("/:id/chat", mw.RateLimit(), h.Chat)
		sessions.POST("/:id/order", mw.RateLimit(), h.Order)
		sessions.GET("/:id/order", h.OrderDetails)
		sessions.GET("/:id/history", h.History)
		sessions.DELETE("/:id", h.Reset)
	}
}
