package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	ExportDir          string
	// Fixed-window limiter applied to generation and export routes
	RateLimitRequests   int
	RateLimitWindowSecs int
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	OpenAI      string
	HuggingFace string
	RenderTopic string // Watermill re-render topic
}

type AIConfig struct {
	LLMProvider  string // "openai", "ollama", "huggingface"
	LLMModel     string
	LLMBaseURL   string // OpenAI-compatible base URL override, or the Ollama host
	Temperature  float64
	PromptRowCap int // Max dataset rows shown to the model
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:                getEnv("APP_PORT", "3000"),
			BaseURL:             getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:           getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:         getEnv("GO_ENV", "development"),
			LogFilePath:         getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:             getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379"),
			ExportDir:           getEnv("EXPORT_DIR", "./exports"),
			RateLimitRequests:   getEnvAsInt("RATE_LIMIT_REQUESTS", 10),
			RateLimitWindowSecs: getEnvAsInt("RATE_LIMIT_WINDOW_SECS", 60),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "ReportFiber"),
		},
		Keys: APIKeys{
			OpenAI:      getEnv("OPENAI_API_KEY", ""),
			HuggingFace: getEnv("HUGGINGFACE_API_KEY", ""),
			RenderTopic: getEnv("DOCUMENT_RENDER_TOPIC_NAME", "DOCUMENT_RENDER"),
		},
		Ai: AIConfig{
			LLMProvider:  getEnv("LLM_PROVIDER", "openai"),
			LLMModel:     getEnv("LLM_MODEL", "gpt-4o-mini"),
			LLMBaseURL:   getEnv("LLM_BASE_URL", ""),
			Temperature:  getEnvAsFloat("LLM_TEMPERATURE", 0.3),
			PromptRowCap: getEnvAsInt("GENERATION_PROMPT_ROW_CAP", 100),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
