package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-kit/config"
	"assistant-kit/internal/router/index"
	"assistant-kit/pkg/embedding"
	"assistant-kit/pkg/log"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: config.EnvironmentConfig{Name: "test", Timezone: "UTC"},
		LLM: config.LLMConfig{
			Providers: []config.ProviderConfig{
				{Name: "openai", Enabled: true, Priority: 1, APIKey: "sk-test", Model: "gpt-4o-mini"},
				{Name: "gemini", Enabled: false, Priority: 2, Model: "gemini-2.5-flash"},
			},
			RetryAttempts:   1,
			RetryDelay:      "10ms",
			MaxTotalTimeout: "1s",
		},
		Embedding: config.EmbeddingConfig{Provider: EmbeddingHash, Dimensions: 64, CacheTTL: "1m"},
		Router: config.RouterConfig{
			IndexKind:   IndexVector,
			Threshold:   0.2,
			CatalogPath: "../../config/intents.toml",
		},
		Memory: config.MemoryConfig{Backend: "memory", SessionTTL: "1h", MaxSessions: 16},
		AWS:    config.AWSConfig{ParamPrefix: "/assistant-kit/"},
	}
}

type fakeParams struct {
	values map[string]string
	err    error
	prefix string
}

func (f *fakeParams) GetByPath(_ context.Context, prefix string) (map[string]string, error) {
	f.prefix = prefix
	return f.values, f.err
}

type fixedCompleter struct{}

func (fixedCompleter) Complete(context.Context, string) (string, error) { return "ok", nil }

func TestLoadSecrets(t *testing.T) {
	cfg := testConfig()
	params := &fakeParams{values: map[string]string{
		"llm/gemini":        "g-key",
		"voyage/api_key":    "v-key",
		"embedding/api_key": "e-key",
		"redis/password":    "r-pass",
		"unrelated":         "x",
	}}

	require.NoError(t, LoadSecrets(context.Background(), cfg, params))
	assert.Equal(t, "/assistant-kit/", params.prefix)
	assert.Equal(t, "sk-test", cfg.LLM.Providers[0].APIKey)
	assert.Equal(t, "g-key", cfg.LLM.Providers[1].APIKey)
	assert.Equal(t, "v-key", cfg.Voyage.APIKey)
	assert.Equal(t, "e-key", cfg.Embedding.APIKey)
	assert.Equal(t, "r-pass", cfg.Redis.Password)

	err := LoadSecrets(context.Background(), cfg, &fakeParams{err: errors.New("denied")})
	assert.Error(t, err)
}

func TestNewEmbedder(t *testing.T) {
	cfg := testConfig()

	e, dims, err := NewEmbedder(cfg)
	require.NoError(t, err)
	assert.Equal(t, 64, dims)
	assert.IsType(t, &embedding.CachedEmbedder{}, e)

	cfg.Embedding.CacheTTL = ""
	e, _, err = NewEmbedder(cfg)
	require.NoError(t, err)
	assert.IsType(t, &embedding.HashEmbedder{}, e)

	cfg.Embedding.Provider = EmbeddingOpenAI
	cfg.Embedding.APIKey = ""
	_, _, err = NewEmbedder(cfg)
	assert.Error(t, err, "openai embedder needs a key")

	cfg.Embedding.Provider = "word2vec"
	_, _, err = NewEmbedder(cfg)
	assert.Error(t, err)
}

func TestNewIndex(t *testing.T) {
	cfg := testConfig()
	l := log.NewNop()

	idx, err := NewIndex(cfg, l, fixedCompleter{})
	require.NoError(t, err)
	assert.IsType(t, &index.Vector{}, idx)

	cfg.Router.IndexKind = IndexClassifier
	idx, err = NewIndex(cfg, l, fixedCompleter{})
	require.NoError(t, err)
	assert.IsType(t, &index.Classifier{}, idx)

	cfg.Router.IndexKind = IndexQdrant
	_, err = NewIndex(cfg, l, fixedCompleter{})
	assert.Error(t, err, "qdrant index needs a url")

	cfg.Qdrant.URL = "http://localhost:6333"
	idx, err = NewIndex(cfg, l, fixedCompleter{})
	require.NoError(t, err)
	assert.IsType(t, &index.Qdrant{}, idx)

	cfg.Router.IndexKind = "bm25"
	_, err = NewIndex(cfg, l, fixedCompleter{})
	assert.Error(t, err)
}

func TestToday(t *testing.T) {
	fn, err := Today("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	_, err = time.Parse("2006-01-02", fn())
	assert.NoError(t, err)

	_, err = Today("Mars/Olympus")
	assert.Error(t, err)
}

func TestNewRouter(t *testing.T) {
	rt, err := NewRouter(context.Background(), testConfig(), log.NewNop(), fixedCompleter{})
	require.NoError(t, err)
	assert.Equal(t, "purchase a widget", rt.Default())
	assert.Len(t, rt.Intents(), 2)
}

func TestBuild(t *testing.T) {
	a, err := Build(context.Background(), testConfig(), log.NewNop(), Options{AutoCreate: true})
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Manager)
	assert.NotNil(t, a.Router)
	assert.NotNil(t, a.Log)

	s, err := a.Assistant.NewSession(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)

	_, err = Build(context.Background(), testConfig(), log.NewNop(), Options{Backend: "cassandra"})
	assert.Error(t, err)
}
