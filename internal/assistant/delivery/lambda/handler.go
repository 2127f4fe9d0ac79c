// Package lambda serves the assistant behind API Gateway.
package lambda

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"

	"assistant-kit/internal/assistant"
	"assistant-kit/internal/extraction"
	"assistant-kit/internal/router"
	"assistant-kit/pkg/log"
	"assistant-kit/pkg/response"
)

const LogPrefix = "internal.assistant.delivery.lambda"

type messageReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Handler routes API Gateway proxy requests to the use case. Sessions are
// keyed by the client-supplied session_id, so the use case should be built
// with AutoCreate.
type Handler struct {
	l  log.Logger
	uc assistant.UseCase
}

// New creates the lambda handler.
func New(l log.Logger, uc assistant.UseCase) *Handler {
	return &Handler{l: l, uc: uc}
}

// Handle serves POST /chat, POST /order and GET /order?session_id=.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if id := req.RequestContext.RequestID; id != "" {
		ctx = log.WithTraceID(ctx, id)
	}
	path := strings.TrimSuffix(req.Path, "/")

	switch {
	case req.HTTPMethod == http.MethodPost && strings.HasSuffix(path, "/chat"):
		in, err := decode(req.Body)
		if err != nil {
			return h.fail(ctx, err)
		}
		out, err := h.uc.Chat(ctx, assistant.ChatInput{SessionID: in.SessionID, Message: in.Message})
		if err != nil {
			return h.fail(ctx, err)
		}
		return reply(http.StatusOK, response.NewOKResp(map[string]any{
			"reply": out.Reply, "intent": out.Intent, "score": out.Score, "fallback": out.Fallback,
		}))

	case req.HTTPMethod == http.MethodPost && strings.HasSuffix(path, "/order"):
		in, err := decode(req.Body)
		if err != nil {
			return h.fail(ctx, err)
		}
		out, err := h.uc.Order(ctx, assistant.OrderInput{SessionID: in.SessionID, Message: in.Message})
		if err != nil {
			return h.fail(ctx, err)
		}
		return reply(http.StatusOK, response.NewOKResp(map[string]any{
			"reply": out.Reply, "order": out.Order, "missing": out.Missing,
		}))

	case req.HTTPMethod == http.MethodGet && strings.HasSuffix(path, "/order"):
		out, err := h.uc.OrderDetails(ctx, req.QueryStringParameters["session_id"])
		if err != nil {
			return h.fail(ctx, err)
		}
		return reply(http.StatusOK, response.NewOKResp(map[string]any{
			"order": out.Order, "missing": out.Missing,
		}))

	default:
		return reply(http.StatusNotFound, response.Resp{ErrorCode: response.ErrorCodeNotFound, Message: "route not found"})
	}
}

func decode(body string) (messageReq, error) {
	var in messageReq
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return in, response.NewHTTPError(http.StatusBadRequest, "request body must be JSON")
	}
	return in, nil
}

func (h *Handler) fail(ctx context.Context, err error) (events.APIGatewayProxyResponse, error) {
	status := statusOf(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		h.l.Errorf(ctx, "%s.Handle: %v", LogPrefix, err)
		msg = response.DefaultErrorMessage
	}
	return reply(status, response.Resp{ErrorCode: status, Message: msg})
}

func statusOf(err error) int {
	var (
		httpErr       *response.HTTPError
		completionErr *router.CompletionError
		extractionErr *extraction.ExtractionError
	)
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.Is(err, assistant.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, assistant.ErrEmptySessionID), errors.Is(err, assistant.ErrEmptyMessage),
		errors.Is(err, router.ErrEmptyUtterance):
		return http.StatusBadRequest
	case errors.As(err, &completionErr), errors.As(err, &extractionErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func reply(status int, body response.Resp) (events.APIGatewayProxyResponse, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(b),
	}, nil
}
