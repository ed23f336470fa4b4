package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Text-generation providers selectable via LLM_PROVIDER.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Config holds the configuration for the application.
type Config struct {
	// LLMProvider selects the text-generation backend. Only the selected
	// provider's API key is required.
	LLMProvider  string
	GroqAPIKey   string
	GeminiAPIKey string

	// Ghost publishing (optional; publish commands are disabled without it)
	GhostURL      string
	GhostAdminKey string

	DatabasePath  string
	ListStorePath string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = ProviderGroq
	}

	groqAPIKey := os.Getenv("GROQ_API_KEY")
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")

	switch provider {
	case ProviderGroq:
		if groqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
		}
	case ProviderGemini:
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", provider)
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "data/assistant.db"
	}

	listStorePath := os.Getenv("LIST_STORE_PATH")
	if listStorePath == "" {
		listStorePath = "data/lists"
	}

	// Ghost publishing is optional; the clipper can still extract without it.
	ghostURL := os.Getenv("GHOST_API_URL")
	ghostAdminKey := os.Getenv("GHOST_ADMIN_API_KEY")

	// Telegram Config (Optional for CLI, required for Bot)
	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramWebhookURL := os.Getenv("TELEGRAM_WEBHOOK_URL")
	allowedUserIDs, err := parseUserIDs(os.Getenv("TELEGRAM_ALLOWED_USER_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS: %w", err)
	}

	return &Config{
		LLMProvider:            provider,
		GroqAPIKey:             groqAPIKey,
		GeminiAPIKey:           geminiAPIKey,
		GhostURL:               ghostURL,
		GhostAdminKey:          ghostAdminKey,
		DatabasePath:           databasePath,
		ListStorePath:          listStorePath,
		TelegramBotToken:       telegramBotToken,
		TelegramWebhookURL:     telegramWebhookURL,
		TelegramAllowedUserIDs: allowedUserIDs,
	}, nil
}

// PublishingEnabled reports whether the Ghost publishing credentials are set.
func (c *Config) PublishingEnabled() bool {
	return c.GhostURL != "" && c.GhostAdminKey != ""
}

func parseUserIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("user ID %q is not a number", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
