package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// LLM Configuration
	LLMProvider  string
	LLMModel     string
	LLMBaseURL   string
	LLMTimeout   time.Duration
	LLMMaxTokens int
	PromptsFile  string
	// Reasoning-trace markers stripped from answers
	TraceOpenMarker  string
	TraceCloseMarker string
	// Provider API keys
	GroqAPIKey       string
	OpenAIAPIKey     string
	GeminiAPIKey     string
	AnthropicAPIKey  string
	OpenRouterAPIKey string
	// Preferences storage
	PreferencesBackend string
	DatabaseURL        string
	TablePrefix        string
	RedisURL           string
	SQLitePath         string
	// Logging
	LogDir      string
	LogMaxFiles int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present (ignored in production).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LLM_PROVIDER", "groq")
	v.SetDefault("LLM_TIMEOUT", "60s")
	v.SetDefault("LLM_MAX_TOKENS", 1024)
	v.SetDefault("TRACE_OPEN_MARKER", "<think>")
	v.SetDefault("TRACE_CLOSE_MARKER", "</think>")
	v.SetDefault("PREFERENCES_BACKEND", "memory")
	v.SetDefault("SQLITE_PATH", "readease.db")
	v.SetDefault("LOG_MAX_FILES", 10)

	// Keys without defaults still need binding so AutomaticEnv picks them up in Unmarshal-free access.
	for _, key := range []string{
		"LLM_MODEL", "LLM_BASE_URL", "PROMPTS_FILE",
		"GROQ_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"DATABASE_URL", "TABLE_PREFIX", "REDIS_URL", "LOG_DIR",
	} {
		_ = v.BindEnv(key)
	}
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	env := v.GetString("ENVIRONMENT")

	timeout := v.GetDuration("LLM_TIMEOUT")
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid LLM_TIMEOUT %q", v.GetString("LLM_TIMEOUT"))
	}

	cfg := &Config{
		Port:               v.GetString("PORT"),
		Environment:        env,
		CORSOrigins:        v.GetString("CORS_ORIGINS"),
		LLMProvider:        strings.ToLower(v.GetString("LLM_PROVIDER")),
		LLMModel:           v.GetString("LLM_MODEL"),
		LLMBaseURL:         v.GetString("LLM_BASE_URL"),
		LLMTimeout:         timeout,
		LLMMaxTokens:       v.GetInt("LLM_MAX_TOKENS"),
		PromptsFile:        v.GetString("PROMPTS_FILE"),
		TraceOpenMarker:    v.GetString("TRACE_OPEN_MARKER"),
		TraceCloseMarker:   v.GetString("TRACE_CLOSE_MARKER"),
		GroqAPIKey:         v.GetString("GROQ_API_KEY"),
		OpenAIAPIKey:       v.GetString("OPENAI_API_KEY"),
		GeminiAPIKey:       v.GetString("GEMINI_API_KEY"),
		AnthropicAPIKey:    v.GetString("ANTHROPIC_API_KEY"),
		OpenRouterAPIKey:   v.GetString("OPENROUTER_API_KEY"),
		PreferencesBackend: strings.ToLower(v.GetString("PREFERENCES_BACKEND")),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		TablePrefix:        getTablePrefix(v.GetString("TABLE_PREFIX"), env),
		RedisURL:           v.GetString("REDIS_URL"),
		SQLitePath:         v.GetString("SQLITE_PATH"),
		LogDir:             v.GetString("LOG_DIR"),
		LogMaxFiles:        v.GetInt("LOG_MAX_FILES"),
	}

	if cfg.TraceOpenMarker == "" || cfg.TraceCloseMarker == "" {
		return nil, fmt.Errorf("TRACE_OPEN_MARKER and TRACE_CLOSE_MARKER must not be empty")
	}

	switch cfg.PreferencesBackend {
	case "memory", "sqlite":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable not set (required by PREFERENCES_BACKEND=postgres)")
		}
	case "redis":
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL environment variable not set (required by PREFERENCES_BACKEND=redis)")
		}
	default:
		return nil, fmt.Errorf("unsupported PREFERENCES_BACKEND %q", cfg.PreferencesBackend)
	}

	return cfg, nil
}

// IsDev reports whether the service runs in the development environment.
func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(override, env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if override != "" {
		return override
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}
