package factory

import (
	"fmt"

	"ai-reportgen-be/pkg/llm"
	"ai-reportgen-be/pkg/llm/huggingface"
	"ai-reportgen-be/pkg/llm/ollama"
	"ai-reportgen-be/pkg/llm/openai"
)

// NewLLMProvider builds the provider named by the generation config. Admins
// can repoint provider/model/baseURL at runtime, so every supported backend
// stays constructible here.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
