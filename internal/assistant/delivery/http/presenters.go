package http

import (
	"strings"

	"assistant-kit/internal/assistant"
	"assistant-kit/internal/model"
	"assistant-kit/pkg/response"
)

// --- Request DTOs ---

type messageReq struct {
	SessionID string `json:"-"` // populated from URI param
	Message   string `json:"message" binding:"required,max=4000"`
}

func (r messageReq) validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return assistant.ErrEmptyMessage
	}
	return nil
}

func (r messageReq) toChatInput() assistant.ChatInput {
	return assistant.ChatInput{SessionID: r.SessionID, Message: r.Message}
}

func (r messageReq) toOrderInput() assistant.OrderInput {
	return assistant.OrderInput{SessionID: r.SessionID, Message: r.Message}
}

// --- Response DTOs ---

type sessionResp struct {
	ID        string            `json:"id"`
	CreatedAt response.DateTime `json:"created_at"`
}

func (h *handler) newSessionResp(s assistant.Session) sessionResp {
	return sessionResp{ID: s.ID, CreatedAt: response.DateTime(s.CreatedAt)}
}

type chatResp struct {
	Reply    string  `json:"reply"`
	Intent   string  `json:"intent"`
	Score    float64 `json:"score"`
	Fallback bool    `json:"fallback"`
}

func (h *handler) newChatResp(out assistant.ChatOutput) chatResp {
	return chatResp{
		Reply:    out.Reply,
		Intent:   out.Intent,
		Score:    out.Score,
		Fallback: out.Fallback,
	}
}

type orderResp struct {
	Reply   string         `json:"reply,omitempty"`
	Order   map[string]any `json:"order"`
	Missing []string       `json:"missing"`
}

func (h *handler) newOrderResp(out assistant.OrderOutput) orderResp {
	return orderResp{Reply: out.Reply, Order: out.Order, Missing: nonNil(out.Missing)}
}

func (h *handler) newOrderDetailsResp(out assistant.OrderDetailsOutput) orderResp {
	return orderResp{Order: out.Order, Missing: nonNil(out.Missing)}
}

type turnResp struct {
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	CreatedAt response.DateTime `json:"created_at"`
}

type historyResp struct {
	Chat  []turnResp `json:"chat"`
	Order []turnResp `json:"order"`
}

func (h *handler) newHistoryResp(out assistant.HistoryOutput) historyResp {
	return historyResp{Chat: newTurns(out.Chat), Order: newTurns(out.Order)}
}

func newTurns(turns []model.Turn) []turnResp {
	out := make([]turnResp, len(turns))
	for i, t := range turns {
		out[i] = turnResp{Role: string(t.Role), Content: t.Content, CreatedAt: response.DateTime(t.CreatedAt)}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
