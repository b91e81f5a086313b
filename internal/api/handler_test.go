package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kayratasci4/BorsaAI/config"
	"github.com/kayratasci4/BorsaAI/internal/app"
	"github.com/kayratasci4/BorsaAI/models"
	"github.com/kayratasci4/BorsaAI/services"
)

// stubGenerator implements app.SeriesGenerator for testing
type stubGenerator struct{}

func (stubGenerator) Generate(length int, startPrice float64) models.Series {
	series := make(models.Series, length)
	for i := range series {
		series[i] = models.PriceBar{
			Time:   fmt.Sprintf("2026-%02d-%02d", i/28+1, i%28+1),
			Open:   startPrice,
			High:   startPrice + 1,
			Low:    startPrice - 1,
			Close:  startPrice,
			Volume: 100_000,
		}
	}
	return series
}

func (stubGenerator) StartPrice(min, max float64) float64 {
	return (min + max) / 2
}

// stubSentiment implements app.SentimentFetcher for testing
type stubSentiment struct{}

func (stubSentiment) Fetch(ctx context.Context, query string) *models.MarketSentiment {
	return &models.MarketSentiment{
		Summary:        "Piyasa sakin.",
		Sources:        []models.GroundingSource{},
		SentimentScore: 50,
	}
}

// stubTechnical implements app.TechnicalAnalyzer for testing
type stubTechnical struct{}

func (stubTechnical) Analyze(ctx context.Context, query string, series models.Series) *models.AnalysisResult {
	return &models.AnalysisResult{
		Summary:          "Yatay seyir.",
		SupportLevels:    []float64{},
		ResistanceLevels: []float64{},
		Signals:          []models.TradeSignal{},
		Trend:            models.TrendFlat,
		RiskLevel:        models.RiskMedium,
	}
}

func testApp() *app.App {
	return app.New(config.NewTestConfig(), stubGenerator{}, stubSentiment{}, stubTechnical{})
}

func testRouter(application *app.App) http.Handler {
	cfg := config.NewTestConfig()
	handler := NewHandler(application, cfg)
	return NewRouter(handler, cfg)
}

func TestHandler_Index(t *testing.T) {
	router := testRouter(testApp())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "borsaai") {
		t.Error("expected body to identify the service")
	}
}

func TestHandler_Health(t *testing.T) {
	services.SetGlobalRegistry(services.NewCircuitBreakerRegistry(services.DefaultCircuitBreakerConfig))
	router := testRouter(testApp())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	// Test config carries no API key, so health reports degraded
	if body["status"] != "degraded" {
		t.Errorf("status = %v, want degraded", body["status"])
	}
	if body["gemini"] != "not_configured" {
		t.Errorf("gemini = %v, want not_configured", body["gemini"])
	}
	if _, ok := body["circuit_breakers"]; !ok {
		t.Error("expected circuit_breakers in health response")
	}
}

func TestHandler_GetState(t *testing.T) {
	router := testRouter(testApp())

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var state app.ViewState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if state.Asset != models.DefaultAssetContext {
		t.Errorf("asset = %+v, want default context", state.Asset)
	}
	if state.Loading {
		t.Error("initial state should not be loading")
	}
}

func TestHandler_Analyze(t *testing.T) {
	router := testRouter(testApp())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"query": "bitcoin"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var state app.ViewState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if state.Asset.Query != "bitcoin" {
		t.Errorf("query = %q, want bitcoin", state.Asset.Query)
	}
	if state.Asset.DisplayName != "BITCOIN" {
		t.Errorf("displayName = %q, want BITCOIN", state.Asset.DisplayName)
	}
	if len(state.Series) != 100 {
		t.Errorf("series length = %d, want 100", len(state.Series))
	}
	if state.Analysis == nil || state.Sentiment == nil {
		t.Error("settled state should carry analysis and sentiment")
	}
	if state.Loading {
		t.Error("settled state should not be loading")
	}
}

func TestHandler_Analyze_EmptyQueryIsNoOp(t *testing.T) {
	application := testApp()
	router := testRouter(application)
	before := application.Snapshot()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"query": "   "}`))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var state app.ViewState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if state.FetchID != before.FetchID {
		t.Error("empty query should not trigger a fetch")
	}
}

func TestHandler_Analyze_InvalidBody(t *testing.T) {
	router := testRouter(testApp())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandler_Suggestions(t *testing.T) {
	router := testRouter(testApp())

	req := httptest.NewRequest(http.MethodGet, "/api/suggestions", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var suggestions []string
	if err := json.Unmarshal(w.Body.Bytes(), &suggestions); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(suggestions) != 6 {
		t.Errorf("suggestions = %d, want 6", len(suggestions))
	}
}

func TestHandler_Instruments(t *testing.T) {
	router := testRouter(testApp())

	req := httptest.NewRequest(http.MethodGet, "/api/instruments", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var instruments []models.Instrument
	if err := json.Unmarshal(w.Body.Bytes(), &instruments); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(instruments) == 0 {
		t.Error("instrument catalog should not be empty")
	}
}

func TestHandler_CORSPreflight(t *testing.T) {
	router := testRouter(testApp())

	req := httptest.NewRequest(http.MethodOptions, "/api/state", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("unexpected allow-origin header %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}
