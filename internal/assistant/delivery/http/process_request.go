package http

import (
	"github.com/gin-gonic/gin"

	"assistant-kit/internal/assistant"
)

// processMessageReq binds the message body and the session id URI param.
func (h *handler) processMessageReq(c *gin.Context) (messageReq, error) {
	var req messageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, errInvalidBody
	}
	req.SessionID = c.Param("id")
	if req.SessionID == "" {
		return req, assistant.ErrEmptySessionID
	}
	return req, req.validate()
}
