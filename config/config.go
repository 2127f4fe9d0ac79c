package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Retrieval
	Embedding EmbeddingConfig
	Voyage    VoyageConfig
	Qdrant    QdrantConfig
	Router    RouterConfig

	// Conversation memory
	Memory   MemoryConfig
	Redis    RedisConfig
	DynamoDB DynamoDBConfig

	// Cloud
	AWS AWSConfig

	Bench BenchConfig
}

type EnvironmentConfig struct {
	Name     string
	Timezone string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int
	Burst          int
}

// EmbeddingConfig selects the embedder behind vector routing.
// Provider is one of "voyage", "openai" or "hash".
type EmbeddingConfig struct {
	Provider   string
	Model      string
	APIKey     string
	BaseURL    string
	Dimensions int
	CacheTTL   string
}

type VoyageConfig struct {
	APIKey string
}

type QdrantConfig struct {
	URL            string
	CollectionName string
	VectorSize     int
}

// RouterConfig drives the intent router.
// IndexKind is one of "vector", "qdrant" or "classifier".
type RouterConfig struct {
	IndexKind     string
	Threshold     float64
	MinConfidence float64
	CatalogPath   string
	HistoryWindow int
}

// MemoryConfig selects the conversation log backend.
// Backend is one of "memory", "redis" or "dynamodb".
type MemoryConfig struct {
	Backend     string
	SessionTTL  string
	MaxSessions int
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type DynamoDBConfig struct {
	TableName string
	Endpoint  string
}

type AWSConfig struct {
	Region      string
	ParamPrefix string
}

type BenchConfig struct {
	Runs          int
	Backends      []string
	Memory        string // buffer | summary | retriever
	SummaryTokens int
	TopK          int
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // Global timeout for entire fallback chain
	Temperature     float64          `yaml:"temperature"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/.
// CONFIG_PATH points at an explicit file instead.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/app/")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.Environment.Timezone = viper.GetString("environment.timezone")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.RateLimit.Enabled = viper.GetBool("rate_limit.enabled")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.Burst = viper.GetInt("rate_limit.burst")

	// Retrieval
	cfg.Embedding.Provider = viper.GetString("embedding.provider")
	cfg.Embedding.Model = viper.GetString("embedding.model")
	cfg.Embedding.APIKey = expandEnvVar(viper.GetString("embedding.api_key"))
	cfg.Embedding.BaseURL = viper.GetString("embedding.base_url")
	cfg.Embedding.Dimensions = viper.GetInt("embedding.dimensions")
	cfg.Embedding.CacheTTL = viper.GetString("embedding.cache_ttl")

	cfg.Voyage.APIKey = viper.GetString("voyage.api_key")
	if voyageKey := viper.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}

	cfg.Qdrant.URL = viper.GetString("qdrant.url")
	cfg.Qdrant.CollectionName = viper.GetString("qdrant.collection_name")
	cfg.Qdrant.VectorSize = viper.GetInt("qdrant.vector_size")
	if qdrantURL := viper.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	cfg.Router.IndexKind = viper.GetString("router.index_kind")
	cfg.Router.Threshold = viper.GetFloat64("router.threshold")
	cfg.Router.MinConfidence = viper.GetFloat64("router.min_confidence")
	cfg.Router.CatalogPath = viper.GetString("router.catalog_path")
	cfg.Router.HistoryWindow = viper.GetInt("router.history_window")

	// Conversation memory
	cfg.Memory.Backend = viper.GetString("memory.backend")
	cfg.Memory.SessionTTL = viper.GetString("memory.session_ttl")
	cfg.Memory.MaxSessions = viper.GetInt("memory.max_sessions")

	cfg.Redis.Addr = viper.GetString("redis.addr")
	cfg.Redis.Password = expandEnvVar(viper.GetString("redis.password"))
	cfg.Redis.DB = viper.GetInt("redis.db")
	cfg.Redis.KeyPrefix = viper.GetString("redis.key_prefix")
	if redisURL := viper.GetString("redis_addr"); redisURL != "" {
		cfg.Redis.Addr = redisURL
	}

	cfg.DynamoDB.TableName = viper.GetString("dynamodb.table_name")
	cfg.DynamoDB.Endpoint = viper.GetString("dynamodb.endpoint")

	cfg.AWS.Region = viper.GetString("aws.region")
	cfg.AWS.ParamPrefix = viper.GetString("aws.param_prefix")

	cfg.Bench.Runs = viper.GetInt("bench.runs")
	cfg.Bench.Backends = viper.GetStringSlice("bench.backends")
	cfg.Bench.Memory = viper.GetString("bench.memory")
	cfg.Bench.SummaryTokens = viper.GetInt("bench.summary_tokens")
	cfg.Bench.TopK = viper.GetInt("bench.top_k")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")
	cfg.LLM.Temperature = viper.GetFloat64("llm.temperature")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		cfg.LLM.Providers = parseProviders(viper.Get("llm.providers"))
	}

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, fmt.Errorf("invalid llm config: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("environment.timezone", "UTC")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_min", 60)
	viper.SetDefault("rate_limit.burst", 10)

	viper.SetDefault("embedding.provider", "hash")
	viper.SetDefault("embedding.dimensions", 256)
	viper.SetDefault("embedding.cache_ttl", "1h")
	viper.SetDefault("qdrant.collection_name", "intents")
	viper.SetDefault("qdrant.vector_size", 1024)

	viper.SetDefault("router.index_kind", "vector")
	viper.SetDefault("router.threshold", 0.3)
	viper.SetDefault("router.min_confidence", 0.6)
	viper.SetDefault("router.catalog_path", "config/intents.toml")
	viper.SetDefault("router.history_window", 0)

	viper.SetDefault("memory.backend", "memory")
	viper.SetDefault("memory.session_ttl", "24h")
	viper.SetDefault("memory.max_sessions", 10000)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.key_prefix", "assistant:history:")
	viper.SetDefault("dynamodb.table_name", "assistant-conversations")
	viper.SetDefault("aws.region", "us-east-1")
	viper.SetDefault("aws.param_prefix", "/assistant-kit/")

	viper.SetDefault("bench.runs", 3)
	viper.SetDefault("bench.backends", []string{"memory"})
	viper.SetDefault("bench.memory", "buffer")
	viper.SetDefault("bench.summary_tokens", 400)
	viper.SetDefault("bench.top_k", 5)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
	viper.SetDefault("llm.temperature", 0.0)
}

func parseProviders(raw interface{}) []ProviderConfig {
	providersList, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	var providers []ProviderConfig
	for _, p := range providersList {
		providerMap, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		providers = append(providers, ProviderConfig{
			Name:     getStringFromMap(providerMap, "name"),
			Enabled:  getBoolFromMap(providerMap, "enabled"),
			Priority: getIntFromMap(providerMap, "priority"),
			APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
			BaseURL:  getStringFromMap(providerMap, "base_url"),
			Model:    getStringFromMap(providerMap, "model"),
			Timeout:  getStringFromMap(providerMap, "timeout"),
		})
	}
	return providers
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}
		if !provider.Enabled {
			continue
		}
		enabledCount++

		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
