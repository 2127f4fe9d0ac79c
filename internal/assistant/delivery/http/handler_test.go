package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"assistant-kit/config"
	"assistant-kit/internal/assistant"
	"assistant-kit/internal/extraction"
	"assistant-kit/internal/middleware"
	"assistant-kit/internal/model"
	"assistant-kit/internal/router"
	"assistant-kit/pkg/log"
	"assistant-kit/pkg/response"
)

type fakeUseCase struct {
	err      error
	lastChat assistant.ChatInput
}

func (f *fakeUseCase) NewSession(context.Context) (assistant.Session, error) {
	return assistant.Session{ID: "s1", CreatedAt: time.Now()}, f.err
}

func (f *fakeUseCase) Chat(_ context.Context, in assistant.ChatInput) (assistant.ChatOutput, error) {
	f.lastChat = in
	if f.err != nil {
		return assistant.ChatOutput{}, f.err
	}
	return assistant.ChatOutput{Reply: "hi!", Intent: "purchase a widget", Fallback: true}, nil
}

func (f *fakeUseCase) Order(_ context.Context, in assistant.OrderInput) (assistant.OrderOutput, error) {
	if f.err != nil {
		return assistant.OrderOutput{}, f.err
	}
	return assistant.OrderOutput{
		Reply: "What size?",
		Order: map[string]any{"item": map[string]any{"color": "black"}},
	}, nil
}

func (f *fakeUseCase) OrderDetails(context.Context, string) (assistant.OrderDetailsOutput, error) {
	return assistant.OrderDetailsOutput{Order: map[string]any{}, Missing: []string{"item.size"}}, f.err
}

func (f *fakeUseCase) History(context.Context, string) (assistant.HistoryOutput, error) {
	return assistant.HistoryOutput{Chat: []model.Turn{model.HumanTurn("hi"), model.AssistantTurn("hello")}}, f.err
}

func (f *fakeUseCase) ResetSession(context.Context, string) error {
	return f.err
}

func newTestEngine(uc assistant.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := middleware.New(log.NewNop(), config.RateLimitConfig{})
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc), mw)
	return r
}

func call(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, response.Resp) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.Resp
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestHandlers_Success(t *testing.T) {
	uc := &fakeUseCase{}
	r := newTestEngine(uc)

	w, resp := call(r, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "s1", resp.Data.(map[string]any)["id"])

	w, resp = call(r, http.MethodPost, "/api/v1/sessions/s1/chat", `{"message":"I want a widget"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "s1", uc.lastChat.SessionID)
	require.Equal(t, "I want a widget", uc.lastChat.Message)
	data := resp.Data.(map[string]any)
	require.Equal(t, "hi!", data["reply"])
	require.Equal(t, true, data["fallback"])

	w, resp = call(r, http.MethodPost, "/api/v1/sessions/s1/order", `{"message":"black please"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]any{"item": map[string]any{"color": "black"}}, resp.Data.(map[string]any)["order"])
	require.Equal(t, []any{}, resp.Data.(map[string]any)["missing"])

	w, resp = call(r, http.MethodGet, "/api/v1/sessions/s1/order", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []any{"item.size"}, resp.Data.(map[string]any)["missing"])

	w, resp = call(r, http.MethodGet, "/api/v1/sessions/s1/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	chat := resp.Data.(map[string]any)["chat"].([]any)
	require.Len(t, chat, 2)
	require.Equal(t, "ai", chat[1].(map[string]any)["role"])

	w, _ = call(r, http.MethodDelete, "/api/v1/sessions/s1", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandlers_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"missing body", nil, http.MethodPost, "/api/v1/sessions/s1/chat", `{}`, http.StatusBadRequest},
		{"blank message", nil, http.MethodPost, "/api/v1/sessions/s1/order", `{"message":"   "}`, http.StatusBadRequest},
		{"unknown session", assistant.ErrSessionNotFound, http.MethodGet, "/api/v1/sessions/x/order", "", http.StatusNotFound},
		{"completion failure", &router.CompletionError{Intent: "x", Err: errors.New("down")}, http.MethodPost, "/api/v1/sessions/s1/chat", `{"message":"hi"}`, http.StatusBadGateway},
		{"extraction failure", &extraction.ExtractionError{Schema: "Order", Err: errors.New("down")}, http.MethodPost, "/api/v1/sessions/s1/order", `{"message":"hi"}`, http.StatusBadGateway},
		{"unexpected", errors.New("redis: connection refused"), http.MethodGet, "/api/v1/sessions/s1/history", "", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine(&fakeUseCase{err: tt.err})
			w, resp := call(r, tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus >= http.StatusInternalServerError {
				require.Equal(t, response.DefaultErrorMessage, resp.Message)
			}
		})
	}
}
