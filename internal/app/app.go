// Package app owns the current-view state and the fetch cycle that fills it:
// regenerate the synthetic series, fan out the two reasoning calls, and merge
// the settled results atomically.
package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kayratasci4/BorsaAI/config"
	"github.com/kayratasci4/BorsaAI/models"
	"github.com/kayratasci4/BorsaAI/observability"
)

// fetchErrorMessage is the generic banner shown only when something escapes
// both clients' internal handling.
const fetchErrorMessage = "Veriler alınırken bir hata oluştu. Lütfen bağlantınızı kontrol edin."

// SeriesGenerator produces the synthetic chart data for a fetch cycle
type SeriesGenerator interface {
	Generate(length int, startPrice float64) models.Series
	StartPrice(min, max float64) float64
}

// SentimentFetcher retrieves market sentiment; implementations resolve with
// a fallback value instead of failing
type SentimentFetcher interface {
	Fetch(ctx context.Context, query string) *models.MarketSentiment
}

// TechnicalAnalyzer produces a technical analysis over a series;
// implementations resolve with a fallback value instead of failing
type TechnicalAnalyzer interface {
	Analyze(ctx context.Context, query string, series models.Series) *models.AnalysisResult
}

// ViewState is the presentation-ready snapshot of one asset view. It is
// replaced wholesale per fetch cycle, never merged incrementally.
type ViewState struct {
	FetchID   uuid.UUID               `json:"fetchId"`
	Asset     models.AssetContext     `json:"asset"`
	Series    models.Series           `json:"series"`
	Analysis  *models.AnalysisResult  `json:"analysis"`
	Sentiment *models.MarketSentiment `json:"sentiment"`
	Loading   bool                    `json:"loading"`
	Error     string                  `json:"error,omitempty"`
}

// App orchestrates fetch cycles and owns the mutable current-view state
type App struct {
	cfg       *config.Config
	generator SeriesGenerator
	sentiment SentimentFetcher
	technical TechnicalAnalyzer

	mu    sync.Mutex
	state ViewState

	// seq tags each fetch cycle; a cycle whose tag is no longer current at
	// merge time is stale and must not overwrite newer state.
	seq atomic.Uint64
}

// New creates a new App with the initial default asset context
func New(cfg *config.Config, generator SeriesGenerator, sentiment SentimentFetcher, technical TechnicalAnalyzer) *App {
	return &App{
		cfg:       cfg,
		generator: generator,
		sentiment: sentiment,
		technical: technical,
		state: ViewState{
			Asset:  models.DefaultAssetContext,
			Series: models.Series{},
		},
	}
}

// Snapshot returns a copy of the current view state
func (a *App) Snapshot() ViewState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Analyze resolves the raw query and runs a full fetch cycle for it. Empty
// or whitespace-only input is a silent no-op: the current state is returned
// unchanged and the second return value is false.
func (a *App) Analyze(ctx context.Context, raw string) (ViewState, bool) {
	asset, ok := models.ResolveAssetContext(raw)
	if !ok {
		return a.Snapshot(), false
	}
	return a.fetch(ctx, asset), true
}

// FetchDefault runs a fetch cycle for the initial default context
func (a *App) FetchDefault(ctx context.Context) ViewState {
	return a.fetch(ctx, models.DefaultAssetContext)
}

// fetch runs one cycle: fresh series immediately, then both reasoning calls
// concurrently, merging only after both settle. Loading always ends false
// for the cycle that owns the current state.
func (a *App) fetch(ctx context.Context, asset models.AssetContext) ViewState {
	metrics := observability.GetMetrics()
	timer := metrics.NewTimer()

	seq := a.seq.Add(1)
	fetchID := uuid.New()

	startPrice := a.generator.StartPrice(a.cfg.Market.StartPriceMin, a.cfg.Market.StartPriceMax)
	series := a.generator.Generate(a.cfg.Market.SeriesLength, startPrice)

	// Publish the new series with cleared analysis/sentiment before the
	// network calls resolve: the chart updates immediately and stale
	// commentary is never shown during reload.
	a.mu.Lock()
	if seq == a.seq.Load() {
		a.state = ViewState{
			FetchID: fetchID,
			Asset:   asset,
			Series:  series,
			Loading: true,
		}
	}
	a.mu.Unlock()

	observability.Info("fetch cycle started",
		"query", asset.Query,
		"fetch_id", fetchID,
		"bars", len(series))

	var (
		sentiment *models.MarketSentiment
		analysis  *models.AnalysisResult
		sentErr   error
		techErr   error
	)

	// Both clients guarantee they resolve rather than fail; the recover is
	// the belt-and-suspenders path for anything escaping their handling.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				sentErr = fmt.Errorf("sentiment fetch panicked: %v", r)
			}
		}()
		sentiment = a.sentiment.Fetch(ctx, asset.Query)
	}()
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				techErr = fmt.Errorf("technical analysis panicked: %v", r)
			}
		}()
		analysis = a.technical.Analyze(ctx, asset.Query, series)
	}()
	wg.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()

	if seq != a.seq.Load() {
		// A newer cycle superseded this one while it was in flight; its
		// results must not overwrite the newer context's state.
		metrics.RecordStaleFetch()
		observability.Warn("discarding stale fetch cycle",
			"query", asset.Query,
			"fetch_id", fetchID)
		return a.state
	}

	if sentErr != nil || techErr != nil {
		observability.Error("fetch cycle failed",
			"query", asset.Query,
			"fetch_id", fetchID,
			"sentiment_error", sentErr,
			"technical_error", techErr)
		a.state.Analysis = nil
		a.state.Sentiment = nil
		a.state.Error = fetchErrorMessage
		a.state.Loading = false
		timer.ObserveFetch("error")
		return a.state
	}

	a.state.Analysis = analysis
	a.state.Sentiment = sentiment
	a.state.Error = ""
	a.state.Loading = false
	timer.ObserveFetch("success")

	observability.Info("fetch cycle completed",
		"query", asset.Query,
		"fetch_id", fetchID,
		"signals", len(analysis.Signals),
		"sources", len(sentiment.Sources))

	return a.state
}
