package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	ImageProviderUnsplash = "unsplash"
	ImageProviderPlaces   = "places"
	ImageProviderNone     = "none"

	TokenBackendMemory = "memory"
	TokenBackendRedis  = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	Logging       LoggingConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	Generation    GenerationConfig
	Images        ImagesConfig
	Auth          AuthConfig
	RequestTokens RequestTokensConfig
}

type ServerConfig struct {
	Port            string
	GinMode         string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type LoggingConfig struct {
	Level  string
	Pretty bool
}

// PostgresConfig is optional; an empty DSN keeps saved searches in memory.
type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type GenerationConfig struct {
	Provider            string
	OpenAIKey           string
	OpenAIBaseURL       string
	OpenAIModel         string
	GeminiKey           string
	GeminiModel         string
	NormalTemperature   float64
	SurpriseTemperature float64
	MaxTokens           int
	Timeout             time.Duration
}

type ImagesConfig struct {
	Provider       string
	UnsplashKey    string
	UnsplashURL    string
	GoogleMapsKey  string
	Timeout        time.Duration
	MaxConcurrency int
}

type AuthConfig struct {
	JWTSecret string
}

type RequestTokensConfig struct {
	Backend string
	TTL     time.Duration
}

// Load reads configuration from environment variables, after an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			GinMode:         getEnv("GIN_MODE", "release"),
			AllowedOrigins:  getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvAsBool("LOG_PRETTY", false),
		},
		Postgres: PostgresConfig{
			DSN: getEnv("POSTGRES_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Generation: GenerationConfig{
			Provider:            strings.ToLower(getEnv("GENERATION_PROVIDER", ProviderOpenAI)),
			OpenAIKey:           getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:       getEnv("OPENAI_API_BASE", ""),
			OpenAIModel:         getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			GeminiKey:           getEnv("GEMINI_API_KEY", ""),
			GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			NormalTemperature:   getEnvAsFloat("GENERATION_TEMPERATURE", 0.9),
			SurpriseTemperature: getEnvAsFloat("GENERATION_SURPRISE_TEMPERATURE", 0.95),
			MaxTokens:           getEnvAsInt("GENERATION_MAX_TOKENS", 4096),
			Timeout:             getEnvAsDuration("GENERATION_TIMEOUT", 60*time.Second),
		},
		Images: ImagesConfig{
			Provider:       strings.ToLower(getEnv("IMAGE_PROVIDER", ImageProviderNone)),
			UnsplashKey:    getEnv("UNSPLASH_ACCESS_KEY", ""),
			UnsplashURL:    getEnv("UNSPLASH_API_URL", "https://api.unsplash.com"),
			GoogleMapsKey:  getEnv("GOOGLE_MAPS_API_KEY", ""),
			Timeout:        getEnvAsDuration("IMAGE_TIMEOUT", 5*time.Second),
			MaxConcurrency: getEnvAsInt("IMAGE_MAX_CONCURRENCY", 6),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		RequestTokens: RequestTokensConfig{
			Backend: strings.ToLower(getEnv("REQUEST_TOKEN_BACKEND", TokenBackendMemory)),
			TTL:     getEnvAsDuration("REQUEST_TOKEN_TTL", 30*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that defaults can't guarantee.
func (c *Config) Validate() error {
	switch c.Generation.Provider {
	case ProviderOpenAI:
		if c.Generation.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when GENERATION_PROVIDER=%s", ProviderOpenAI)
		}
	case ProviderGemini:
		if c.Generation.GeminiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when GENERATION_PROVIDER=%s", ProviderGemini)
		}
	default:
		return fmt.Errorf("unsupported generation provider %q, use %q or %q", c.Generation.Provider, ProviderOpenAI, ProviderGemini)
	}

	if c.Generation.SurpriseTemperature <= c.Generation.NormalTemperature {
		return fmt.Errorf("GENERATION_SURPRISE_TEMPERATURE (%.2f) must be greater than GENERATION_TEMPERATURE (%.2f)",
			c.Generation.SurpriseTemperature, c.Generation.NormalTemperature)
	}

	switch c.Images.Provider {
	case ImageProviderNone:
	case ImageProviderUnsplash:
		if c.Images.UnsplashKey == "" {
			return fmt.Errorf("UNSPLASH_ACCESS_KEY is required when IMAGE_PROVIDER=%s", ImageProviderUnsplash)
		}
	case ImageProviderPlaces:
		if c.Images.GoogleMapsKey == "" {
			return fmt.Errorf("GOOGLE_MAPS_API_KEY is required when IMAGE_PROVIDER=%s", ImageProviderPlaces)
		}
	default:
		return fmt.Errorf("unsupported image provider %q", c.Images.Provider)
	}
	if c.Images.MaxConcurrency < 1 {
		return fmt.Errorf("IMAGE_MAX_CONCURRENCY must be >= 1, got %d", c.Images.MaxConcurrency)
	}

	switch c.RequestTokens.Backend {
	case TokenBackendMemory:
	case TokenBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when REQUEST_TOKEN_BACKEND=%s", TokenBackendRedis)
		}
	default:
		return fmt.Errorf("unsupported request token backend %q", c.RequestTokens.Backend)
	}
	// A session's counter restarts once its TTL lapses, so it must outlive any
	// request still waiting on the generator.
	if c.RequestTokens.TTL <= c.Generation.Timeout {
		return fmt.Errorf("REQUEST_TOKEN_TTL (%s) must be longer than GENERATION_TIMEOUT (%s)",
			c.RequestTokens.TTL, c.Generation.Timeout)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid bool value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
