package openai

import "time"

// Known OpenAI-compatible endpoints.
const (
	DefaultBaseURL  = "https://api.openai.com/v1"
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
	QwenBaseURL     = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"

	DefaultModel          = "gpt-4o-mini"
	DefaultEmbeddingModel = "text-embedding-3-small"

	DefaultTimeout = 30 * time.Second
)

// BaseURLFor returns the default endpoint for a provider name.
func BaseURLFor(provider string) string {
	switch provider {
	case "deepseek":
		return DeepSeekBaseURL
	case "qwen", "alibaba":
		return QwenBaseURL
	default:
		return DefaultBaseURL
	}
}
