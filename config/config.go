package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Gemini configuration
	Gemini GeminiConfig

	// Synthetic market data configuration
	Market MarketConfig

	// HTTP configuration
	HTTP HTTPConfig
}

// GeminiConfig holds the Gemini API configuration. The API key is an
// explicit value handed to the client at construction; nothing reads the
// environment after Load.
type GeminiConfig struct {
	APIKey          string
	Model           string
	BaseURL         string
	MaxOutputTokens int
	TimeoutSeconds  int
}

// MarketConfig holds synthetic series generation parameters
type MarketConfig struct {
	SeriesLength   int     // bars per generated series
	AnalysisWindow int     // most recent bars sent for technical analysis
	StartPriceMin  float64 // randomized start price lower bound (inclusive)
	StartPriceMax  float64 // randomized start price upper bound (exclusive)
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port               string
	CORSAllowedOrigins string
	TimeoutSeconds     int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Gemini: GeminiConfig{
			APIKey:          os.Getenv("GEMINI_API_KEY"),
			Model:           getEnvString("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL:         getEnvString("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			MaxOutputTokens: getEnvInt("GEMINI_MAX_OUTPUT_TOKENS", 4096),
			TimeoutSeconds:  getEnvInt("GEMINI_TIMEOUT_SECONDS", 60),
		},
		Market: MarketConfig{
			SeriesLength:   getEnvInt("MARKET_SERIES_LENGTH", 100),
			AnalysisWindow: getEnvInt("MARKET_ANALYSIS_WINDOW", 40),
			StartPriceMin:  getEnvFloat("MARKET_START_PRICE_MIN", 100),
			StartPriceMax:  getEnvFloat("MARKET_START_PRICE_MAX", 150),
		},
		HTTP: HTTPConfig{
			Port:               getEnvString("HTTP_PORT", "8080"),
			CORSAllowedOrigins: getEnvString("CORS_ALLOWED_ORIGINS", "*"),
			TimeoutSeconds:     getEnvInt("HTTP_TIMEOUT_SECONDS", 120),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Market.SeriesLength < 1 {
		return fmt.Errorf("MARKET_SERIES_LENGTH must be at least 1, got %d", c.Market.SeriesLength)
	}
	if c.Market.AnalysisWindow < 1 {
		return fmt.Errorf("MARKET_ANALYSIS_WINDOW must be at least 1, got %d", c.Market.AnalysisWindow)
	}
	if c.Market.StartPriceMin <= 0 {
		return fmt.Errorf("MARKET_START_PRICE_MIN must be positive, got %.2f", c.Market.StartPriceMin)
	}
	if c.Market.StartPriceMax <= c.Market.StartPriceMin {
		return fmt.Errorf("MARKET_START_PRICE_MAX must exceed MARKET_START_PRICE_MIN, got %.2f <= %.2f",
			c.Market.StartPriceMax, c.Market.StartPriceMin)
	}
	if c.Gemini.TimeoutSeconds <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT_SECONDS must be positive, got %d", c.Gemini.TimeoutSeconds)
	}
	return nil
}

// HasGemini returns true if Gemini configuration is available
func (c *Config) HasGemini() bool {
	return c.Gemini.APIKey != ""
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		Gemini: GeminiConfig{
			APIKey:          "",
			Model:           "gemini-2.5-flash",
			BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
			MaxOutputTokens: 4096,
			TimeoutSeconds:  60,
		},
		Market: MarketConfig{
			SeriesLength:   100,
			AnalysisWindow: 40,
			StartPriceMin:  100,
			StartPriceMax:  150,
		},
		HTTP: HTTPConfig{
			Port:               "8080",
			CORSAllowedOrigins: "*",
			TimeoutSeconds:     120,
		},
	}
}
