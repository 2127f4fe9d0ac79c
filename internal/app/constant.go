package app

const LogPrefix = "internal.app"

// Embedding providers.
const (
	EmbeddingHash   = "hash"
	EmbeddingVoyage = "voyage"
	EmbeddingOpenAI = "openai"
)

// Routing index kinds.
const (
	IndexVector     = "vector"
	IndexQdrant     = "qdrant"
	IndexClassifier = "classifier"
)

// Parameter Store keys, relative to aws.param_prefix.
const (
	paramProviderKeyPrefix = "llm/"
	paramVoyageKey         = "voyage/api_key"
	paramEmbeddingKey      = "embedding/api_key"
	paramRedisPassword     = "redis/password"
)
