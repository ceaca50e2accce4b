package ai

import (
	"strconv"

	"github.com/sitemint/sitemint-backend/pkg/env"
)

type OpenAIConfig struct {
	apiKey    string
	model     string
	maxTokens int64
}

func NewOpenAIConfig() OpenAIConfig {
	maxTokens, err := strconv.Atoi(env.GetEnv("OPENAI_TOKENS", "4096"))
	if err != nil {
		maxTokens = 4096
	}
	return OpenAIConfig{
		apiKey:    env.GetEnv("OPENAI_KEY", ""),
		model:     env.GetEnv("OPENAI_MODEL", "gpt-4o-2024-08-06"),
		maxTokens: int64(maxTokens),
	}
}
