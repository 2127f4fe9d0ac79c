// Package router routes an utterance to the prompt of its best-matching
// intent and completes it.
package router

import (
	"context"
	"fmt"

	"assistant-kit/internal/conversation"
	"assistant-kit/internal/router/index"
	"assistant-kit/pkg/llmprovider"
	"assistant-kit/pkg/log"
)

type route struct {
	def      IntentDefinition
	template *Template
}

// Router owns the routing index and one prompt template per intent.
// It is safe for concurrent use; per-session ordering is the caller's job.
type Router struct {
	l         log.Logger
	idx       index.Index
	completer llmprovider.Completer

	routes     map[string]route
	order      []string
	defaultKey string

	memory        conversation.Log
	historyWindow int
	vars          map[string]func() string
}

// Option configures a Router.
type Option func(*Router)

// WithMemory appends every routed turn to memory and reads history from it
// when RouteInput.History is nil.
func WithMemory(memory conversation.Log) Option {
	return func(r *Router) {
		r.memory = memory
	}
}

// WithHistoryWindow renders only the last n turns into {chat_history}.
func WithHistoryWindow(n int) Option {
	return func(r *Router) {
		r.historyWindow = n
	}
}

// WithVariable makes {name} available to templates, evaluated per turn.
func WithVariable(name string, fn func() string) Option {
	return func(r *Router) {
		r.vars[name] = fn
	}
}

// New validates the catalog, parses every template and builds the index.
// Any failure is a ConfigurationError.
func New(ctx context.Context, l log.Logger, catalog []IntentDefinition, idx index.Index, completer llmprovider.Completer, opts ...Option) (*Router, error) {
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}

	r := &Router{
		l:         l,
		idx:       idx,
		completer: completer,
		routes:    make(map[string]route, len(catalog)),
		vars:      make(map[string]func() string),
	}
	for _, opt := range opts {
		opt(r)
	}

	allowed := map[string]struct{}{VarInput: {}, VarChatHistory: {}}
	for name := range r.vars {
		allowed[name] = struct{}{}
	}

	entries := make([]index.Entry, 0, len(catalog))
	for _, def := range catalog {
		tmpl, err := ParseTemplate(def.Prompt)
		if err != nil {
			return nil, configErr(fmt.Sprintf("intent %q", def.Intent), err)
		}
		if err := tmpl.Check(allowed); err != nil {
			return nil, configErr(fmt.Sprintf("intent %q", def.Intent), err)
		}

		r.routes[def.Intent] = route{def: def, template: tmpl}
		r.order = append(r.order, def.Intent)
		if def.Default {
			r.defaultKey = def.Intent
		}
		entries = append(entries, index.Entry{Key: def.Intent, Description: def.Description})
	}

	if err := idx.Build(ctx, entries); err != nil {
		return nil, configErr(ErrMsgIndexBuild, err)
	}

	l.Infof(ctx, "%s.New: %d intents, default %q", LogPrefix, len(r.order), r.defaultKey)
	return r, nil
}

// Intents returns the catalog in declaration order.
func (r *Router) Intents() []IntentDefinition {
	out := make([]IntentDefinition, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.routes[key].def)
	}
	return out
}

// Default returns the default intent key.
func (r *Router) Default() string {
	return r.defaultKey
}
