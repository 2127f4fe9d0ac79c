package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"assistant-kit/internal/assistant"
	"assistant-kit/internal/conversation"
	"assistant-kit/internal/extraction"
	"assistant-kit/internal/router"
	"assistant-kit/pkg/llmprovider"
	pkgLog "assistant-kit/pkg/log"
)

// Router is the part of *router.Router the use case needs.
type Router interface {
	Route(ctx context.Context, in router.RouteInput) (router.Response, error)
}

// Config tunes the session table and the order agent.
type Config struct {
	Backend       string // conversation log backend, used as a metrics label
	HistoryWindow int
	MaxSessions   int
	SessionTTL    time.Duration
	// AutoCreate starts a session on first use of an unknown id instead of
	// failing with ErrSessionNotFound.
	AutoCreate bool
}

type session struct {
	mu sync.Mutex
	// closed is set under mu once ResetSession has cleared the logs.
	closed    bool
	id        string
	createdAt time.Time
	order     *extraction.Memory
}

type implUseCase struct {
	l         pkgLog.Logger
	router    Router
	completer llmprovider.Completer
	extractor extraction.Extractor
	log       conversation.Log
	schema    *extraction.Schema
	sales     *router.Template
	cfg       Config

	mu       sync.Mutex
	sessions *expirable.LRU[string, *session]
}

var _ assistant.UseCase = (*implUseCase)(nil)

// New creates the assistant UseCase. The router must share log as its memory
// so chat history and order history live in the same backend.
func New(
	l pkgLog.Logger,
	rt Router,
	completer llmprovider.Completer,
	extractor extraction.Extractor,
	log conversation.Log,
	schema *extraction.Schema,
	salesTemplate string,
	cfg Config,
) (*implUseCase, error) {
	tmpl, err := router.ParseTemplate(salesTemplate)
	if err != nil {
		return nil, fmt.Errorf("%s.New: sales template: %w", LogPrefix, err)
	}
	allowed := map[string]struct{}{
		varOrderDetails:       {},
		varMissing:            {},
		router.VarChatHistory: {},
		router.VarInput:       {},
	}
	if err := tmpl.Check(allowed); err != nil {
		return nil, fmt.Errorf("%s.New: sales template: %w", LogPrefix, err)
	}

	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}

	return &implUseCase{
		l:         l,
		router:    rt,
		completer: completer,
		extractor: extractor,
		log:       log,
		schema:    schema,
		sales:     tmpl,
		cfg:       cfg,
		sessions:  expirable.NewLRU[string, *session](cfg.MaxSessions, nil, cfg.SessionTTL),
	}, nil
}
