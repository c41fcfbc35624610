package entity

import (
	"time"

	"github.com/google/uuid"
)

// GenerationSetting stores generation behavior settings (key-value pairs)
type GenerationSetting struct {
	Id          uuid.UUID
	Key         string // e.g., "llm_model", "system_prompt"
	Value       string // JSON-encoded value
	ValueType   string // "string", "number", "boolean", "json"
	Description string // Human-readable description
	Category    string // "llm", "prompt", "ingest"
	IsSecret    bool   // If true, value is masked in admin responses
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReportStyle stores reusable prompt presets selectable at generation time
type ReportStyle struct {
	Id            uuid.UUID
	Key           string  // e.g., "academic", "business", "concise"
	Name          string  // Display name
	Description   string  // Admin description
	SystemPrompt  string  // Injected system prompt
	ModelOverride *string // Optional: use a different model for this style
	IsActive      bool
	SortOrder     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Category constants for GenerationSetting
const (
	GenerationConfigCategoryLLM     = "llm"
	GenerationConfigCategoryPrompt  = "prompt"
	GenerationConfigCategoryIngest  = "ingest"
	GenerationConfigCategoryGeneral = "general"
)

// ValueType constants for GenerationSetting
const (
	GenerationConfigValueTypeString  = "string"
	GenerationConfigValueTypeNumber  = "number"
	GenerationConfigValueTypeBoolean = "boolean"
	GenerationConfigValueTypeJSON    = "json"
)

// Default configuration keys
const (
	GenerationConfigKeyLLMProvider    = "llm_provider"
	GenerationConfigKeyLLMModel       = "llm_model"
	GenerationConfigKeyLLMBaseURL     = "llm_base_url"
	GenerationConfigKeyLLMAPIKey      = "llm_api_key"
	GenerationConfigKeyLLMTemperature = "llm_temperature"
	GenerationConfigKeySystemPrompt   = "system_prompt"
	GenerationConfigKeyPromptRowCap   = "prompt_row_cap"
)
