package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Address  string `env:"ADDRESS" envDefault:":8000"`
	Env      string `env:"ENV" envDefault:"local"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// gemini|openai
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"gemini"`
	Gemini      GeminiConfig
	OpenAI      OpenAIConfig

	// Empty DSN leaves the wardrobe store unconfigured, recommendations then answer 503.
	WardrobeDSN   string `env:"SUPABASE_DB_URL"`
	WardrobeTable string `env:"WARDROBE_TABLE" envDefault:"kiyafetler"`

	VisionTimeout time.Duration `env:"VISION_TIMEOUT" envDefault:"60s"`
	TextTimeout   time.Duration `env:"TEXT_TIMEOUT" envDefault:"60s"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT" envDefault:"10s"`

	MaxUploadSize     string  `env:"MAX_UPLOAD_SIZE" envDefault:"10M"`
	ImageMaxDimension int     `env:"IMAGE_MAX_DIMENSION" envDefault:"2048"`
	ImageMaxPixels    int     `env:"IMAGE_MAX_PIXELS" envDefault:"40000000"`
	RateLimit         float64 `env:"RATE_LIMIT" envDefault:"10"`

	SentryDSN string `env:"SENTRY_DSN"`
}

type GeminiConfig struct {
	APIKey      string `env:"GOOGLE_API_KEY"`
	VisionModel string `env:"GEMINI_VISION_MODEL" envDefault:"gemini-1.5-flash"`
	TextModel   string `env:"GEMINI_TEXT_MODEL" envDefault:"gemini-1.5-flash"`
}

type OpenAIConfig struct {
	APIKey      string `env:"OPENAI_API_KEY"`
	BaseURL     string `env:"OPENAI_BASE_URL"`
	VisionModel string `env:"OPENAI_VISION_MODEL" envDefault:"gpt-4o"`
	TextModel   string `env:"OPENAI_TEXT_MODEL" envDefault:"gpt-4o-mini"`
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY environment variable is not set")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q, expected %s or %s", c.LLMProvider, ProviderGemini, ProviderOpenAI)
	}
	if c.ImageMaxDimension < 0 {
		return fmt.Errorf("IMAGE_MAX_DIMENSION must not be negative")
	}
	if c.ImageMaxPixels < 0 {
		return fmt.Errorf("IMAGE_MAX_PIXELS must not be negative")
	}
	return nil
}

// LLMConfigured reports whether the selected provider has credentials.
func (c *Config) LLMConfigured() bool {
	if c.LLMProvider == ProviderOpenAI {
		return c.OpenAI.APIKey != ""
	}
	return c.Gemini.APIKey != ""
}

func (c *Config) WardrobeConfigured() bool {
	return c.WardrobeDSN != ""
}
