package agents

import (
	"context"
	"fmt"

	"github.com/kayratasci4/BorsaAI/models"
	"github.com/kayratasci4/BorsaAI/observability"
)

const sentimentSystemInstruction = "Sen profesyonel bir piyasa analistisin. Türkçe yanıt ver. Yanıtın kısa, öz ve bilgi verici olsun."

const sentimentFallbackSummary = "Haber verilerine şu an ulaşılamıyor. Lütfen daha sonra tekrar deneyiniz."

// neutralSentimentScore is used because no explicit numeric score is
// derivable from the free-text answer.
const neutralSentimentScore = 50

// SentimentAnalyst retrieves free-text market sentiment with grounding
// citations through a search-augmented reasoning call.
type SentimentAnalyst struct {
	gemini GeminiServiceInterface
}

// NewSentimentAnalyst creates a new SentimentAnalyst
func NewSentimentAnalyst(gemini GeminiServiceInterface) *SentimentAnalyst {
	return &SentimentAnalyst{gemini: gemini}
}

// Fetch returns market sentiment for the query. It never fails: every error
// is converted into the localized fallback so one data source's outage never
// blanks the other's result.
func (a *SentimentAnalyst) Fetch(ctx context.Context, query string) *models.MarketSentiment {
	metrics := observability.GetMetrics()
	timer := metrics.NewTimer()
	defer timer.ObserveAgent(AgentTypeSentiment)

	prompt := fmt.Sprintf(`"%s" hakkında finansal piyasalardaki son durumu, güncel fiyat hareketlerini, önemli haberleri ve uzman yorumlarını araştır.
Eğer bu bir hisse senedi, emtia veya kripto para ise, yatırımcıların genel hissiyatını (bullish/bearish) özetle.`, query)

	result, err := a.gemini.GenerateWithSearch(ctx, sentimentSystemInstruction, prompt)
	if err != nil {
		observability.Warn("sentiment retrieval failed, using fallback",
			"query", query,
			"error", err)
		metrics.RecordAgentFallback(AgentTypeSentiment, "service_error")
		return &models.MarketSentiment{
			Summary:        sentimentFallbackSummary,
			Sources:        []models.GroundingSource{},
			SentimentScore: neutralSentimentScore,
		}
	}

	return &models.MarketSentiment{
		Summary:        result.Text,
		Sources:        result.Sources,
		SentimentScore: neutralSentimentScore,
	}
}

// Name returns the agent name
func (a *SentimentAnalyst) Name() string {
	return "Sentiment Analyst"
}
