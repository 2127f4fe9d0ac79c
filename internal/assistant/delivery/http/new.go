package http

import (
	"github.com/gin-gonic/gin"

	"assistant-kit/internal/assistant"
	"assistant-kit/pkg/log"
)

// Handler is the public interface for the assistant HTTP delivery layer.
type Handler interface {
	NewSession(c *gin.Context)
	Chat(c *gin.Context)
	Order(c *gin.Context)
	OrderDetails(c *gin.Context)
	History(c *gin.Context)
	Reset(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc assistant.UseCase
}

var _ Handler = (*handler)(nil)

// New creates a new HTTP handler for the assistant domain.
func New(l log.Logger, uc assistant.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
