package config

import "testing"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GROQ_API_KEY", "groq-key")
	t.Setenv("GEMINI_API_KEY", "gem-key")
}

func TestNewFromEnv(t *testing.T) {
	t.Run("requires groq api key", func(t *testing.T) {
		setRequired(t)
		t.Setenv("GROQ_API_KEY", "")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("expected error for missing GROQ_API_KEY")
		}
	})

	t.Run("defaults to the groq provider", func(t *testing.T) {
		setRequired(t)
		t.Setenv("LLM_PROVIDER", "")
		t.Setenv("GEMINI_API_KEY", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.LLMProvider != ProviderGroq {
			t.Errorf("LLMProvider = %q, want %q", cfg.LLMProvider, ProviderGroq)
		}
	})

	t.Run("gemini provider requires gemini api key", func(t *testing.T) {
		setRequired(t)
		t.Setenv("LLM_PROVIDER", ProviderGemini)
		t.Setenv("GEMINI_API_KEY", "")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("expected error for missing GEMINI_API_KEY")
		}
	})

	t.Run("gemini provider does not require groq api key", func(t *testing.T) {
		setRequired(t)
		t.Setenv("LLM_PROVIDER", ProviderGemini)
		t.Setenv("GROQ_API_KEY", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.LLMProvider != ProviderGemini {
			t.Errorf("LLMProvider = %q, want %q", cfg.LLMProvider, ProviderGemini)
		}
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		setRequired(t)
		t.Setenv("LLM_PROVIDER", "openai")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("expected error for unsupported provider")
		}
	})

	t.Run("applies defaults for paths", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DATABASE_PATH", "")
		t.Setenv("LIST_STORE_PATH", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DatabasePath != "data/assistant.db" {
			t.Errorf("expected default database path, got %q", cfg.DatabasePath)
		}
		if cfg.ListStorePath != "data/lists" {
			t.Errorf("expected default list store path, got %q", cfg.ListStorePath)
		}
	})

	t.Run("parses allowed telegram user IDs", func(t *testing.T) {
		setRequired(t)
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "123, 456")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.TelegramAllowedUserIDs) != 2 || cfg.TelegramAllowedUserIDs[0] != 123 || cfg.TelegramAllowedUserIDs[1] != 456 {
			t.Errorf("unexpected user IDs: %v", cfg.TelegramAllowedUserIDs)
		}
	})

	t.Run("rejects malformed user IDs", func(t *testing.T) {
		setRequired(t)
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "123,abc")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("expected error for malformed user ID list")
		}
	})

	t.Run("publishing disabled without ghost credentials", func(t *testing.T) {
		setRequired(t)
		t.Setenv("GHOST_API_URL", "")
		t.Setenv("GHOST_ADMIN_API_KEY", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.PublishingEnabled() {
			t.Error("expected publishing to be disabled")
		}
	})

	t.Run("publishing enabled with ghost credentials", func(t *testing.T) {
		setRequired(t)
		t.Setenv("GHOST_API_URL", "https://blog.example.com")
		t.Setenv("GHOST_ADMIN_API_KEY", "id:secret")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.PublishingEnabled() {
			t.Error("expected publishing to be enabled")
		}
	})
}
