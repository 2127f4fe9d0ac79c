package router

import (
	"context"
	"fmt"
	"strings"

	"assistant-kit/internal/conversation"
	"assistant-kit/internal/metrics"
	"assistant-kit/internal/model"
)

// Decide picks the intent for utterance without completing it. An index
// error is returned as is; only "no confident match" selects the default.
func (r *Router) Decide(ctx context.Context, utterance string) (Decision, error) {
	match, ok, err := r.idx.Query(ctx, utterance)
	if err != nil {
		return Decision{}, fmt.Errorf("%s.Decide: %s: %w", LogPrefix, ErrMsgIndexQuery, err)
	}

	if ok {
		if rt, known := r.routes[match.Key]; known {
			return Decision{Intent: match.Key, Template: rt.template, Score: match.Score}, nil
		}
		r.l.Warnf(ctx, "%s.Decide: %s: %q", LogPrefix, ErrMsgUnknownMatch, match.Key)
	}

	return Decision{
		Intent:   r.defaultKey,
		Template: r.routes[r.defaultKey].template,
		Score:    match.Score,
		Fallback: true,
	}, nil
}

// Route selects an intent, renders its prompt with {input} and
// {chat_history}, and returns the completion. With a memory configured and a
// session id given, the user turn and the reply are appended afterwards; if
// that append fails the response is still returned alongside the error.
func (r *Router) Route(ctx context.Context, in RouteInput) (Response, error) {
	if strings.TrimSpace(in.Utterance) == "" {
		return Response{}, ErrEmptyUtterance
	}

	decision, err := r.Decide(ctx, in.Utterance)
	if err != nil {
		return Response{}, err
	}
	metrics.ObserveRoute(decision.Intent, decision.Fallback)

	history := in.History
	if history == nil && r.memory != nil && in.SessionID != "" {
		history, err = r.memory.ReadAll(ctx, in.SessionID)
		if err != nil {
			return Response{}, fmt.Errorf("%s.Route: %s: %w", LogPrefix, ErrMsgReadHistory, err)
		}
	}

	vars := map[string]string{
		VarInput:       in.Utterance,
		VarChatHistory: conversation.FormatBuffer(conversation.Window(history, r.historyWindow)),
	}
	for name, fn := range r.vars {
		vars[name] = fn()
	}

	text, err := r.completer.Complete(ctx, decision.Template.Render(vars))
	if err != nil {
		r.l.Errorf(ctx, "%s.Route: intent=%s: %v", LogPrefix, decision.Intent, err)
		return Response{}, &CompletionError{Intent: decision.Intent, Err: err}
	}

	resp := Response{Text: text, Intent: decision.Intent, Score: decision.Score, Fallback: decision.Fallback}
	r.l.Debugf(ctx, "%s.Route: intent=%s fallback=%t score=%.3f", LogPrefix, decision.Intent, decision.Fallback, decision.Score)

	if r.memory != nil && in.SessionID != "" {
		if err := r.memory.Append(ctx, in.SessionID, model.HumanTurn(in.Utterance), model.AssistantTurn(text)); err != nil {
			return resp, fmt.Errorf("%s.Route: %s: %w", LogPrefix, ErrMsgAppendMemory, err)
		}
	}
	return resp, nil
}
