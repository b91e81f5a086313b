package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appconfig "github.com/kayratasci4/BorsaAI/config"
	"github.com/kayratasci4/BorsaAI/models"
	"github.com/kayratasci4/BorsaAI/observability"
)

// httpDoer is the interface the Gemini client needs from an HTTP client
// (for testing)
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GeminiService handles communication with the Gemini generateContent API
type GeminiService struct {
	apiKey          string
	model           string
	baseURL         string
	maxOutputTokens int
	httpClient      httpDoer
}

// NewGeminiService creates a new GeminiService instance
func NewGeminiService(cfg *appconfig.Config) (*GeminiService, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	return &GeminiService{
		apiKey:          cfg.Gemini.APIKey,
		model:           cfg.Gemini.Model,
		baseURL:         cfg.Gemini.BaseURL,
		maxOutputTokens: cfg.Gemini.MaxOutputTokens,
		httpClient:      &http.Client{Timeout: time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second},
	}, nil
}

// newGeminiServiceWithClient creates a GeminiService with a custom HTTP
// client (for testing)
func newGeminiServiceWithClient(client httpDoer, model string, maxOutputTokens int) *GeminiService {
	return &GeminiService{
		apiKey:          "test-key",
		model:           model,
		baseURL:         "https://generativelanguage.googleapis.com/v1beta",
		maxOutputTokens: maxOutputTokens,
		httpClient:      client,
	}
}

// Wire types for the generateContent endpoint.

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiTool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
	MaxOutputTokens  int             `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Tools             []geminiTool            `json:"tools,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// GenerateResult carries the free-text answer plus any grounding citations
// the model reported for a search-augmented call.
type GenerateResult struct {
	Text    string
	Sources []models.GroundingSource
}

// GenerateWithSearch sends a prompt with live web search enabled and returns
// the response text together with its grounding citations. Citations missing
// a title or a uri are dropped.
func (s *GeminiService) GenerateWithSearch(ctx context.Context, systemInstruction, prompt string) (*GenerateResult, error) {
	req := geminiRequest{
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}},
		Tools:             []geminiTool{{GoogleSearch: &struct{}{}}},
		GenerationConfig:  &geminiGenerationConfig{MaxOutputTokens: s.maxOutputTokens},
	}

	resp, err := s.generate(ctx, "search", req)
	if err != nil {
		return nil, err
	}

	text := candidateText(resp)
	if text == "" {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	result := &GenerateResult{Text: text, Sources: []models.GroundingSource{}}
	if gm := resp.Candidates[0].GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" || chunk.Web.Title == "" {
				continue
			}
			result.Sources = append(result.Sources, models.GroundingSource{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		}
	}

	return result, nil
}

// GenerateStructured sends a prompt constrained to the given response schema
// and returns the raw JSON text. Callers must still decode and validate the
// result; the schema is a request-time hint, not a response-side guarantee.
func (s *GeminiService) GenerateStructured(ctx context.Context, prompt string, schema json.RawMessage) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
			MaxOutputTokens:  s.maxOutputTokens,
		},
	}

	resp, err := s.generate(ctx, "structured", req)
	if err != nil {
		return "", err
	}

	text := candidateText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}

	return text, nil
}

// generate performs one generateContent call through the circuit breaker
func (s *GeminiService) generate(ctx context.Context, operation string, reqBody geminiRequest) (*geminiResponse, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerGemini, operation)
	timer := metrics.NewTimer()

	result, err := WithCircuitBreaker(ctx, BreakerGemini, func() (*geminiResponse, error) {
		payload, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}

		url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", s.apiKey)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to invoke Gemini: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return nil, fmt.Errorf("Gemini returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		var geminiResp geminiResponse
		if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if len(geminiResp.Candidates) == 0 {
			return nil, fmt.Errorf("empty response from Gemini")
		}

		return &geminiResp, nil
	})

	timer.ObserveExternalAPI(BreakerGemini, operation)
	if err != nil {
		metrics.RecordExternalAPIError(BreakerGemini, operation, categorizeAPIError(err))
	}
	return result, err
}

// candidateText joins the text parts of the first candidate
func candidateText(resp *geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// categorizeAPIError categorizes an error for metrics purposes
func categorizeAPIError(err error) string {
	if err == nil {
		return "none"
	}
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "timeout"), strings.Contains(errStr, "deadline"):
		return "timeout"
	case strings.Contains(errStr, "rate limit"), strings.Contains(errStr, "429"):
		return "rate_limit"
	case strings.Contains(errStr, "unauthorized"), strings.Contains(errStr, "401"), strings.Contains(errStr, "403"):
		return "auth_error"
	case strings.Contains(errStr, "circuit breaker"):
		return "circuit_breaker"
	case strings.Contains(errStr, "connection"), strings.Contains(errStr, "network"):
		return "connection_error"
	default:
		return "unknown"
	}
}
