package app

import (
	"context"
	"fmt"
	"strings"

	"assistant-kit/config"
)

// ParamReader lists parameters under a prefix.
// *paramstore.Client satisfies it.
type ParamReader interface {
	GetByPath(ctx context.Context, prefix string) (map[string]string, error)
}

// LoadSecrets overlays API keys stored under cfg.AWS.ParamPrefix:
// llm/<provider> for each LLM provider, voyage/api_key, embedding/api_key
// and redis/password. Missing parameters leave the config value alone.
func LoadSecrets(ctx context.Context, cfg *config.Config, params ParamReader) error {
	values, err := params.GetByPath(ctx, cfg.AWS.ParamPrefix)
	if err != nil {
		return fmt.Errorf("%s.LoadSecrets: %w", LogPrefix, err)
	}
	ApplySecrets(cfg, values)
	return nil
}

// ApplySecrets copies known keys from values into cfg.
func ApplySecrets(cfg *config.Config, values map[string]string) {
	for i := range cfg.LLM.Providers {
		p := &cfg.LLM.Providers[i]
		if v := values[paramProviderKeyPrefix+strings.ToLower(p.Name)]; v != "" {
			p.APIKey = v
		}
	}
	if v := values[paramVoyageKey]; v != "" {
		cfg.Voyage.APIKey = v
	}
	if v := values[paramEmbeddingKey]; v != "" {
		cfg.Embedding.APIKey = v
	}
	if v := values[paramRedisPassword]; v != "" {
		cfg.Redis.Password = v
	}
}
