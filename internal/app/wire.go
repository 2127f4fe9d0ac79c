// Package app assembles the assistant from configuration. Every entrypoint
// (HTTP API, Lambda, CLI) goes through Build.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"assistant-kit/config"
	"assistant-kit/internal/assistant"
	assistantUC "assistant-kit/internal/assistant/usecase"
	"assistant-kit/internal/conversation"
	"assistant-kit/internal/conversation/repository"
	"assistant-kit/internal/extraction"
	"assistant-kit/internal/metrics"
	"assistant-kit/internal/order"
	"assistant-kit/internal/router"
	"assistant-kit/internal/router/index"
	"assistant-kit/pkg/embedding"
	"assistant-kit/pkg/llmprovider"
	"assistant-kit/pkg/log"
	"assistant-kit/pkg/openai"
	pkgQdrant "assistant-kit/pkg/qdrant"
	"assistant-kit/pkg/voyage"
)

// App is the assembled assistant.
type App struct {
	Config    *config.Config
	Logger    log.Logger
	Manager   *llmprovider.Manager
	Router    *router.Router
	Log       conversation.Log
	Assistant assistant.UseCase

	closeLog repository.CloseFunc
}

// Options adjust Build per entrypoint.
type Options struct {
	// Backend overrides memory.backend.
	Backend string
	// AutoCreate lets unknown session ids start a session (stateless callers).
	AutoCreate bool
}

// NewLogger builds the zap logger from cfg.Logger.
func NewLogger(cfg *config.Config) log.Logger {
	return log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
}

// Build wires providers, the router, the conversation log and the assistant.
func Build(ctx context.Context, cfg *config.Config, l log.Logger, opts Options) (*App, error) {
	manager, err := NewManager(cfg, l)
	if err != nil {
		return nil, err
	}

	backend := opts.Backend
	if backend == "" {
		backend = cfg.Memory.Backend
	}
	convLog, closeLog, err := repository.Open(ctx, backend, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s.Build: conversation log: %w", LogPrefix, err)
	}

	rt, err := NewRouter(ctx, cfg, l, manager, router.WithMemory(convLog))
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	ttl, _ := time.ParseDuration(cfg.Memory.SessionTTL)
	uc, err := assistantUC.New(l, rt, manager, extraction.NewLLMExtractor(manager, l), convLog,
		order.Order, order.SalesTemplate, assistantUC.Config{
			Backend:       backend,
			HistoryWindow: cfg.Router.HistoryWindow,
			MaxSessions:   cfg.Memory.MaxSessions,
			SessionTTL:    ttl,
			AutoCreate:    opts.AutoCreate,
		})
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	l.Infof(ctx, "%s.Build: backend=%s index=%s embedding=%s", LogPrefix, backend, cfg.Router.IndexKind, cfg.Embedding.Provider)
	return &App{
		Config:    cfg,
		Logger:    l,
		Manager:   manager,
		Router:    rt,
		Log:       convLog,
		Assistant: uc,
		closeLog:  closeLog,
	}, nil
}

// Close releases backend connections.
func (a *App) Close() error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

// NewManager builds the provider fallback chain from cfg.LLM.
func NewManager(cfg *config.Config, l log.Logger) (*llmprovider.Manager, error) {
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("%s.NewManager: %w", LogPrefix, err)
	}
	managerCfg, err := llmprovider.ManagerConfig(&cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("%s.NewManager: %w", LogPrefix, err)
	}
	managerCfg.Observer = metrics.ObserveLLM
	for _, p := range providers {
		l.Infof(context.Background(), "%s.NewManager: provider %s (%s)", LogPrefix, p.Name(), p.Model())
	}
	return llmprovider.NewManager(providers, managerCfg, l), nil
}

// NewRouter loads the catalog and builds the configured index. The {today}
// variable renders the current date in environment.timezone.
func NewRouter(ctx context.Context, cfg *config.Config, l log.Logger, completer llmprovider.Completer, opts ...router.Option) (*router.Router, error) {
	catalog, err := router.LoadCatalog(cfg.Router.CatalogPath)
	if err != nil {
		return nil, err
	}
	idx, err := NewIndex(cfg, l, completer)
	if err != nil {
		return nil, err
	}

	today, err := Today(cfg.Environment.Timezone)
	if err != nil {
		l.Warnf(ctx, "%s.NewRouter: %v, using UTC", LogPrefix, err)
		today, _ = Today("UTC")
	}
	opts = append([]router.Option{
		router.WithHistoryWindow(cfg.Router.HistoryWindow),
		router.WithVariable("today", today),
	}, opts...)

	return router.New(ctx, l, catalog, idx, completer, opts...)
}

// NewIndex builds router.index_kind.
func NewIndex(cfg *config.Config, l log.Logger, completer llmprovider.Completer) (index.Index, error) {
	switch strings.ToLower(cfg.Router.IndexKind) {
	case IndexVector, "":
		embedder, _, err := NewEmbedder(cfg)
		if err != nil {
			return nil, err
		}
		return index.NewVector(embedder, cfg.Router.Threshold), nil

	case IndexQdrant:
		embedder, dims, err := NewEmbedder(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Qdrant.URL == "" {
			return nil, errors.New("qdrant.url is required for the qdrant index")
		}
		if dims == 0 {
			dims = cfg.Qdrant.VectorSize
		}
		return index.NewQdrant(pkgQdrant.NewClient(cfg.Qdrant.URL), embedder, cfg.Qdrant.CollectionName, dims, cfg.Router.Threshold), nil

	case IndexClassifier:
		return index.NewClassifier(completer, cfg.Router.MinConfidence, l), nil

	default:
		return nil, fmt.Errorf("unknown router.index_kind %q", cfg.Router.IndexKind)
	}
}

// NewEmbedder builds embedding.provider wrapped in the vector cache. dims is
// the known vector size, or 0 when only the remote model knows it.
func NewEmbedder(cfg *config.Config) (embedding.Embedder, int, error) {
	var (
		inner embedding.Embedder
		dims  int
	)
	switch strings.ToLower(cfg.Embedding.Provider) {
	case EmbeddingHash, "":
		h := embedding.NewHashEmbedder(cfg.Embedding.Dimensions)
		inner, dims = h, h.Dimensions()

	case EmbeddingVoyage:
		key := cfg.Voyage.APIKey
		if key == "" {
			key = cfg.Embedding.APIKey
		}
		client, err := voyage.New(key)
		if err != nil {
			return nil, 0, err
		}
		if cfg.Embedding.Model != "" {
			client = client.WithModel(cfg.Embedding.Model)
		}
		if cfg.Embedding.BaseURL != "" {
			client = client.WithBaseURL(cfg.Embedding.BaseURL)
		}
		inner = client

	case EmbeddingOpenAI:
		client, err := openai.New(openai.Config{
			APIKey:         cfg.Embedding.APIKey,
			BaseURL:        cfg.Embedding.BaseURL,
			EmbeddingModel: cfg.Embedding.Model,
		})
		if err != nil {
			return nil, 0, err
		}
		inner = client

	default:
		return nil, 0, fmt.Errorf("unknown embedding.provider %q", cfg.Embedding.Provider)
	}

	ttl, err := time.ParseDuration(cfg.Embedding.CacheTTL)
	if err != nil || ttl <= 0 {
		return inner, dims, nil
	}
	return embedding.NewCached(inner, ttl), dims, nil
}

// Today returns a variable function rendering the current date in timezone.
func Today(timezone string) (func() string, error) {
	if timezone == "" {
		timezone = "UTC"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return func() string {
		return time.Now().In(loc).Format("2006-01-02")
	}, nil
}

// IndexCatalog embeds the configured catalog into the Qdrant collection so
// the qdrant index can serve without re-embedding at startup.
func IndexCatalog(ctx context.Context, cfg *config.Config, l log.Logger) (int, error) {
	catalog, err := router.LoadCatalog(cfg.Router.CatalogPath)
	if err != nil {
		return 0, err
	}
	if err := router.ValidateCatalog(catalog); err != nil {
		return 0, err
	}

	qcfg := *cfg
	qcfg.Router.IndexKind = IndexQdrant
	idx, err := NewIndex(&qcfg, l, nil)
	if err != nil {
		return 0, err
	}

	entries := make([]index.Entry, 0, len(catalog))
	for _, def := range catalog {
		entries = append(entries, index.Entry{Key: def.Intent, Description: def.Description})
	}
	if err := idx.Build(ctx, entries); err != nil {
		return 0, fmt.Errorf("%s.IndexCatalog: %w", LogPrefix, err)
	}
	l.Infof(ctx, "%s.IndexCatalog: %d intents into %s", LogPrefix, len(entries), cfg.Qdrant.CollectionName)
	return len(entries), nil
}
