package http

import (
	"github.com/gin-gonic/gin"

	"assistant-kit/pkg/response"
)

// NewSession godoc
// @Summary     Start a session
// @Description Creates a session with an empty order record and returns its id.
// @Tags        Sessions
// @Produce     json
// @Success     201 {object} sessionResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sessions [POST]
func (h *handler) NewSession(c *gin.Context) {
	ctx := c.Request.Context()

	s, err := h.uc.NewSession(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.NewSession: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, h.newSessionResp(s))
}

// Chat godoc
// @Summary     Send a chat message
// @Description Routes the message to the best-matching intent and returns the reply.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       id   path string     true "Session ID"
// @Param       body body messageReq true "Message"
// @Success     200 {object} chatResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Session Not Found"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     502 {object} response.Resp "Language Model Unavailable"
// @Router      /api/v1/sessions/{id}/chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processMessageReq(c)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	out, err := h.uc.Chat(ctx, req.toChatInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Chat: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newChatResp(out))
}

// Order godoc
// @Summary     Send an order message
// @Description Runs one shoe sales turn and returns the reply with the order collected so far.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       id   path string     true "Session ID"
// @Param       body body messageReq true "Message"
// @Success     200 {object} orderResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Session Not Found"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     502 {object} response.Resp "Language Model Unavailable"
// @Router      /api/v1/sessions/{id}/order [POST]
func (h *handler) Order(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processMessageReq(c)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	out, err := h.uc.Order(ctx, req.toOrderInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Order: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newOrderResp(out))
}

// OrderDetails godoc
// @Summary     Get the order record
// @Description Returns the order fields collected so far and the ones still missing.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} orderResp
// @Failure     404 {object} response.Resp "Session Not Found"
// @Router      /api/v1/sessions/{id}/order [GET]
func (h *handler) OrderDetails(c *gin.Context) {
	ctx := c.Request.Context()

	out, err := h.uc.OrderDetails(ctx, c.Param("id"))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newOrderDetailsResp(out))
}

// History godoc
// @Summary     Get the conversation history
// @Description Returns the chat and order turns of a session in order.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} historyResp
// @Failure     404 {object} response.Resp "Session Not Found"
// @Router      /api/v1/sessions/{id}/history [GET]
func (h *handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	out, err := h.uc.History(ctx, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.History: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newHistoryResp(out))
}

// Reset godoc
// @Summary     Delete a session
// @Description Clears the session's logs and order record.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Session Not Found"
// @Router      /api/v1/sessions/{id} [DELETE]
func (h *handler) Reset(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.ResetSession(ctx, c.Param("id")); err != nil {
		h.l.Errorf(ctx, "uc.ResetSession: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}
