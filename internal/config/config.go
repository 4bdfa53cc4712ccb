package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Notion  NotionConfig
	OpenAI  OpenAIConfig
	Webhook WebhookConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type NotionConfig struct {
	Token   string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
}

type WebhookConfig struct {
	// ClientToken, when set, must be echoed by the caller as the
	// client_token query parameter.
	ClientToken string
	// DebugDumpDir, when set, makes the webhook write the rendered prompt
	// and changed documents to disk before querying the model.
	DebugDumpDir string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Notion: NotionConfig{
			Token:   getEnv("NOTION_TOKEN", ""),
			BaseURL: getEnv("NOTION_BASE_URL", "https://api.notion.com/v1"),
		},
		OpenAI: OpenAIConfig{
			APIKey:       getEnv("OPENAI_API_KEY", ""),
			BaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			DefaultModel: getEnv("DEFAULT_MODEL", "gpt-4o"),
		},
		Webhook: WebhookConfig{
			ClientToken:  getEnv("CLIENT_TOKEN", ""),
			DebugDumpDir: getEnv("DEBUG_DUMP_DIR", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
