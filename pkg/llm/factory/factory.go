package factory

import (
	"time"

	"communityhub-be/pkg/llm"
	"communityhub-be/pkg/llm/gemini"
	"communityhub-be/pkg/llm/huggingface"
	"communityhub-be/pkg/llm/ollama"
)

// ProviderConfig carries the credentials for every supported backend. A
// backend counts as configured when its key (or base URL for ollama) is
// non-empty.
type ProviderConfig struct {
	GeminiAPIKey      string
	GeminiModel       string
	HuggingFaceAPIKey string
	HuggingFaceModel  string
	OllamaBaseURL     string
	OllamaModel       string
	RequestTimeout    time.Duration
}

// SelectProvider picks the first configured backend by fixed precedence:
// gemini, then huggingface, then ollama. Returns nil when none is configured;
// the caller decides how to degrade.
func SelectProvider(cfg ProviderConfig) llm.Provider {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	if cfg.GeminiAPIKey != "" {
		return gemini.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel, timeout)
	}
	if cfg.HuggingFaceAPIKey != "" {
		return huggingface.NewHuggingFaceProvider(cfg.HuggingFaceAPIKey, "", cfg.HuggingFaceModel, timeout)
	}
	if cfg.OllamaBaseURL != "" {
		return ollama.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel, timeout)
	}
	return nil
}
