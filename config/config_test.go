package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %s, want gemini-2.5-flash", cfg.Gemini.Model)
	}
	if cfg.Market.SeriesLength != 100 {
		t.Errorf("Market.SeriesLength = %d, want 100", cfg.Market.SeriesLength)
	}
	if cfg.Market.AnalysisWindow != 40 {
		t.Errorf("Market.AnalysisWindow = %d, want 40", cfg.Market.AnalysisWindow)
	}
	if cfg.Market.StartPriceMin != 100 || cfg.Market.StartPriceMax != 150 {
		t.Errorf("start price bounds = [%v, %v), want [100, 150)",
			cfg.Market.StartPriceMin, cfg.Market.StartPriceMax)
	}
	if cfg.HTTP.Port != "8080" {
		t.Errorf("HTTP.Port = %s, want 8080", cfg.HTTP.Port)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("MARKET_SERIES_LENGTH", "50")
	t.Setenv("HTTP_PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("Gemini.Model = %s, want gemini-2.5-pro", cfg.Gemini.Model)
	}
	if cfg.Market.SeriesLength != 50 {
		t.Errorf("Market.SeriesLength = %d, want 50", cfg.Market.SeriesLength)
	}
	if cfg.HTTP.Port != "9000" {
		t.Errorf("HTTP.Port = %s, want 9000", cfg.HTTP.Port)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("MARKET_SERIES_LENGTH", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Market.SeriesLength != 100 {
		t.Errorf("Market.SeriesLength = %d, want default 100", cfg.Market.SeriesLength)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid config", func(c *Config) {}, ""},
		{"zero series length", func(c *Config) { c.Market.SeriesLength = 0 }, "MARKET_SERIES_LENGTH"},
		{"zero analysis window", func(c *Config) { c.Market.AnalysisWindow = 0 }, "MARKET_ANALYSIS_WINDOW"},
		{"negative start price", func(c *Config) { c.Market.StartPriceMin = -1 }, "MARKET_START_PRICE_MIN"},
		{"inverted price bounds", func(c *Config) { c.Market.StartPriceMax = 50 }, "MARKET_START_PRICE_MAX"},
		{"zero timeout", func(c *Config) { c.Gemini.TimeoutSeconds = 0 }, "GEMINI_TIMEOUT_SECONDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewTestConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestHasGemini(t *testing.T) {
	cfg := NewTestConfig()
	if cfg.HasGemini() {
		t.Error("HasGemini should be false without an API key")
	}
	cfg.Gemini.APIKey = "test-key"
	if !cfg.HasGemini() {
		t.Error("HasGemini should be true with an API key")
	}
}
