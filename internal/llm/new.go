package llm

import (
	"fmt"
	"os"

	"subflow/internal/config"
	"subflow/internal/logger"
)

// NewGenerator builds the configured backend. Gemini keys come from the
// config file (or GEMINI_API_KEY as a fallback); the OpenAI key is only
// ever read from the environment.
func NewGenerator(cfg config.LLMConfig, log logger.Logger) (Generator, error) {
	switch cfg.Provider {
	case "gemini":
		keys := cfg.GeminiAPIKeys
		if len(keys) == 0 {
			if k := os.Getenv("GEMINI_API_KEY"); k != "" {
				keys = []string{k}
			}
		}
		return NewGeminiGenerator(keys, cfg.Model, cfg.Temperature, log)
	case "openai":
		apiKey := os.Getenv(cfg.APIKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("openai: environment variable %s is not set", cfg.APIKeyEnv)
		}
		return NewOpenAIGenerator(apiKey, cfg.APIBase, cfg.Model, cfg.Temperature, cfg.MaxTokens)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
