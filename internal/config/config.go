package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/neweraservicez/startup-os/internal/adapters/sessionexchange"
)

type Mode string

const (
	ModeLocal      Mode = "local"
	ModeProduction Mode = "production"
)

const (
	StorageMemory    = "memory"
	StorageMongo     = "mongo"
	StorageFirestore = "firestore"
)

const (
	LLMMock   = "mock"
	LLMOpenAI = "openai"
	LLMGemini = "gemini"
	LLMVertex = "vertex"
)

type Config struct {
	Mode Mode

	Port        string
	APIPrefix   string
	LogLevel    string
	CORSOrigins []string

	StorageBackend string // "memory", "mongo" or "firestore"
	MongoURL       string
	DBName         string
	GCPProjectID   string
	GCPLocation    string

	LLMProvider   string // "mock", "openai", "gemini" or "vertex"
	LLMModel      string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string

	SessionExchangeURL string
	CookieSecure       bool
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads all env vars, builds the config and validates it.
func Load() (*Config, error) {
	mode := ModeLocal
	if getEnv("APP_MODE", "local") == string(ModeProduction) {
		mode = ModeProduction
	}

	defaultProvider := LLMOpenAI
	if mode == ModeLocal {
		defaultProvider = LLMMock
	}

	cfg := &Config{
		Mode: mode,

		Port:        getEnv("PORT", "8001"),
		APIPrefix:   strings.TrimRight(getEnv("API_PREFIX", "/api"), "/"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageMemory)),
		MongoURL:       getEnv("MONGO_URL", ""),
		DBName:         getEnv("DB_NAME", ""),
		GCPProjectID:   getEnv("GCP_PROJECT", ""),
		GCPLocation:    getEnv("GCP_LOCATION", "us-central1"),

		LLMProvider:   strings.ToLower(getEnv("LLM_PROVIDER", defaultProvider)),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),

		SessionExchangeURL: getEnv("SESSION_EXCHANGE_URL", sessionexchange.DefaultURL),
		CookieSecure:       getBoolEnv("COOKIE_SECURE", true),
	}

	switch cfg.LLMProvider {
	case LLMOpenAI:
		cfg.LLMModel = getEnv("LLM_MODEL", "gpt-4o-mini")
	case LLMGemini, LLMVertex:
		cfg.LLMModel = getEnv("LLM_MODEL", "gemini-2.5-flash")
	default:
		cfg.LLMModel = getEnv("LLM_MODEL", "")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every selected backend has what it needs.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}

	switch c.StorageBackend {
	case StorageMemory:
	case StorageMongo:
		if c.MongoURL == "" || c.DBName == "" {
			errs = append(errs, errors.New("MONGO_URL and DB_NAME are required for the mongo storage backend"))
		}
	case StorageFirestore:
		if c.GCPProjectID == "" {
			errs = append(errs, errors.New("GCP_PROJECT is required for the firestore storage backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}

	switch c.LLMProvider {
	case LLMMock:
	case LLMOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai provider"))
		}
	case LLMGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required for the gemini provider"))
		}
	case LLMVertex:
		if c.GCPProjectID == "" {
			errs = append(errs, errors.New("GCP_PROJECT is required for the vertex provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider))
	}

	if c.SessionExchangeURL == "" {
		errs = append(errs, errors.New("SESSION_EXCHANGE_URL must not be empty"))
	}

	return errors.Join(errs...)
}
