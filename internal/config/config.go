package config

import (
	"os"
	"strconv"
	"time"

	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	AI        AIConfig
	Retriever RetrieverConfig
	Auth      AuthConfig
	Server    ServerConfig
	Seed      SeedConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// AIConfig holds oracle/LLM related settings
type AIConfig struct {
	OpenAIKey   string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	// Timeout bounds the oracle call during claim submission; the
	// external judge is the only potentially slow step in the core.
	Timeout time.Duration
}

// RetrieverConfig holds evidence-store settings
type RetrieverConfig struct {
	Host   string
	Scheme string
	Class  string
	TopK   int
}

// AuthConfig holds token issuance settings
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port       string
	CORSOrigin string
}

// SeedConfig controls demo-data seeding at startup
type SeedConfig struct {
	DemoData bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	aiConfig, err := loadAIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AI configuration")
	}
	config.AI = *aiConfig

	config.Retriever = *loadRetrieverConfig()

	authConfig, err := loadAuthConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load auth configuration")
	}
	config.Auth = *authConfig

	config.Server = *loadServerConfig()
	config.Seed = SeedConfig{DemoData: getEnvBoolOrDefault("SEED_DEMO_DATA", true)}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}
	return &DatabaseConfig{URL: url}, nil
}

func loadAIConfig() (*AIConfig, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, errors.ConfigInvalid("OPENAI_API_KEY is required")
	}

	return &AIConfig{
		OpenAIKey:   key,
		Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		BaseURL:     getEnvOrDefault("LLM_BASE_URL", ""),
		Temperature: 0, // deterministic judging
		MaxTokens:   getEnvIntOrDefault("LLM_MAX_TOKENS", 512),
		Timeout:     time.Duration(getEnvIntOrDefault("ORACLE_TIMEOUT_SECONDS", 30)) * time.Second,
	}, nil
}

func loadRetrieverConfig() *RetrieverConfig {
	return &RetrieverConfig{
		Host:   getEnvOrDefault("WEAVIATE_HOST", "localhost:8080"),
		Scheme: getEnvOrDefault("WEAVIATE_SCHEME", "http"),
		Class:  getEnvOrDefault("WEAVIATE_CLASS", "DairyFact"),
		TopK:   getEnvIntOrDefault("RETRIEVER_TOP_K", 5),
	}
}

func loadAuthConfig() (*AuthConfig, error) {
	secret := getEnvOrDefault("JWT_SECRET", "dev-secret-change-me")
	ttlMin := getEnvIntOrDefault("JWT_TTL_MIN", 120)
	if ttlMin <= 0 {
		return nil, errors.ConfigInvalid("JWT_TTL_MIN must be positive")
	}

	return &AuthConfig{
		JWTSecret: secret,
		TokenTTL:  time.Duration(ttlMin) * time.Minute,
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:       getEnvOrDefault("PORT", "8080"),
		CORSOrigin: getEnvOrDefault("CORS_ORIGIN", "http://localhost:5173"),
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBoolOrDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
