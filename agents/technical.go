package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kayratasci4/BorsaAI/models"
	"github.com/kayratasci4/BorsaAI/observability"
)

const technicalFallbackSummary = "Teknik analiz oluşturulurken bir hata oluştu."

// analysisResponseSchema constrains the structured call. The schema is only
// a request-time hint; the decoded response is validated again at runtime.
var analysisResponseSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "summary": {"type": "STRING", "description": "Teknik analiz yorumu (Türkçe)"},
    "supportLevels": {"type": "ARRAY", "items": {"type": "NUMBER"}},
    "resistanceLevels": {"type": "ARRAY", "items": {"type": "NUMBER"}},
    "trend": {"type": "STRING", "enum": ["Yükseliş", "Düşüş", "Yatay"]},
    "riskLevel": {"type": "STRING", "enum": ["Düşük", "Orta", "Yüksek"]},
    "signals": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "index": {"type": "INTEGER", "description": "Verilen dizideki index"},
          "price": {"type": "NUMBER"},
          "type": {"type": "STRING", "enum": ["AL", "SAT", "TUT", "NÖTR"]},
          "description": {"type": "STRING", "description": "Sinyal nedeni"}
        }
      }
    }
  }
}`)

// TechnicalAnalyst asks the reasoning service for a technical commentary
// over the most recent slice of the synthetic series.
type TechnicalAnalyst struct {
	gemini GeminiServiceInterface
	window int
}

// NewTechnicalAnalyst creates a new TechnicalAnalyst. window is the number
// of most recent bars submitted for analysis.
func NewTechnicalAnalyst(gemini GeminiServiceInterface, window int) *TechnicalAnalyst {
	return &TechnicalAnalyst{gemini: gemini, window: window}
}

// Analyze returns a technical analysis for the series. It never fails: any
// error (network, malformed response, schema violation) is converted into
// the localized fallback. Signal indices in the returned result are absolute
// positions in the full series.
func (a *TechnicalAnalyst) Analyze(ctx context.Context, query string, series models.Series) *models.AnalysisResult {
	metrics := observability.GetMetrics()
	timer := metrics.NewTimer()
	defer timer.ObserveAgent(AgentTypeTechnical)

	slice := series.Tail(a.window)
	// Clamps to 0 when the series is shorter than the window, so slice
	// indices map 1:1 to absolute indices.
	offset := len(series) - len(slice)

	payload, err := json.Marshal(slice)
	if err != nil {
		observability.Warn("failed to encode series slice", "query", query, "error", err)
		metrics.RecordAgentFallback(AgentTypeTechnical, "encode_error")
		return fallbackAnalysis()
	}

	prompt := fmt.Sprintf(`Aşağıdaki JSON verisi sanal bir grafik verisidir. Ancak sen "%[1]s" için GENEL PİYASA BİLGİNİ kullanarak ve aşağıdaki matematiksel verilere bakarak teknik bir yorum yap.

Veri (Son %[2]d mum): %[3]s

Görevin:
1. Verilen matematiksel veriyi analiz et (RSI, MACD benzeri mantık).
2. Destek ve Direnç seviyelerini sayısal verilere göre belirle.
3. Alım (AL) veya satım (SAT) noktalarını tespit et ve her sinyali verilen dizideki bir index'e (0-%[4]d arası) bağla.
4. "%[1]s" varlığının gerçek dünyadaki genel trendini de göz önünde bulundurarak (örneğin son haberler pozitifse yükseliş eğilimi olabilir) bir trend belirle.

Yanıtını SADECE verilen JSON şemasına uygun ver.`, query, len(slice), payload, len(slice)-1)

	text, err := a.gemini.GenerateStructured(ctx, prompt, analysisResponseSchema)
	if err != nil {
		observability.Warn("technical analysis call failed, using fallback",
			"query", query,
			"error", err)
		metrics.RecordAgentFallback(AgentTypeTechnical, "service_error")
		return fallbackAnalysis()
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		observability.Warn("technical analysis response is not valid JSON, using fallback",
			"query", query,
			"error", err)
		metrics.RecordAgentFallback(AgentTypeTechnical, "parse_error")
		return fallbackAnalysis()
	}

	if err := result.Validate(len(slice)); err != nil {
		observability.Warn("technical analysis response failed validation, using fallback",
			"query", query,
			"error", err)
		metrics.RecordAgentFallback(AgentTypeTechnical, "validation_error")
		return fallbackAnalysis()
	}

	// Translate slice-relative signal indices to absolute positions; the
	// chart indexes the full series, not the slice.
	for i := range result.Signals {
		result.Signals[i].Index += offset
	}

	if result.SupportLevels == nil {
		result.SupportLevels = []float64{}
	}
	if result.ResistanceLevels == nil {
		result.ResistanceLevels = []float64{}
	}
	if result.Signals == nil {
		result.Signals = []models.TradeSignal{}
	}

	return &result
}

// Name returns the agent name
func (a *TechnicalAnalyst) Name() string {
	return "Technical Analyst"
}

func fallbackAnalysis() *models.AnalysisResult {
	return &models.AnalysisResult{
		Summary:          technicalFallbackSummary,
		SupportLevels:    []float64{},
		ResistanceLevels: []float64{},
		Signals:          []models.TradeSignal{},
		Trend:            models.TrendFlat,
		RiskLevel:        models.RiskMedium,
	}
}
