package models

import "fmt"

// PriceBar represents one day of OHLCV price data for the charted asset.
// Time is an ISO 8601 calendar date (YYYY-MM-DD).
type PriceBar struct {
	Time   string  `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Series is an ordered sequence of price bars, oldest first, with strictly
// increasing dates. A series is replaced wholesale on every fetch cycle and
// never mutated in place.
type Series []PriceBar

// Tail returns the last n bars, or the whole series if it is shorter.
func (s Series) Tail(n int) Series {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// SignalType classifies a trade signal. Wire values are the Turkish labels
// the analysis schema constrains the model to.
type SignalType string

const (
	SignalBuy     SignalType = "AL"
	SignalSell    SignalType = "SAT"
	SignalHold    SignalType = "TUT"
	SignalNeutral SignalType = "NÖTR"
)

// Valid reports whether the signal type is one of the four allowed values.
func (t SignalType) Valid() bool {
	switch t {
	case SignalBuy, SignalSell, SignalHold, SignalNeutral:
		return true
	}
	return false
}

// Trend is the overall price direction judgement.
type Trend string

const (
	TrendUp   Trend = "Yükseliş"
	TrendDown Trend = "Düşüş"
	TrendFlat Trend = "Yatay"
)

func (t Trend) Valid() bool {
	switch t {
	case TrendUp, TrendDown, TrendFlat:
		return true
	}
	return false
}

// RiskLevel is the model's risk assessment for the asset.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Düşük"
	RiskMedium RiskLevel = "Orta"
	RiskHigh   RiskLevel = "Yüksek"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// TradeSignal marks a buy/sell/hold/neutral point on the chart. Index
// references a bar by position in the series. Signals arrive from the model
// relative to the analysed slice and are translated to absolute positions
// before they reach the presentation layer. Multiple signals may reference
// the same bar.
type TradeSignal struct {
	Index       int        `json:"index"`
	Price       float64    `json:"price"`
	Type        SignalType `json:"type"`
	Description string     `json:"description"`
}

// AnalysisResult is the structured technical-analysis output for the current
// asset. Owned by the fetch orchestrator; replaced or nulled on each cycle.
type AnalysisResult struct {
	Summary          string        `json:"summary"`
	SupportLevels    []float64     `json:"supportLevels"`
	ResistanceLevels []float64     `json:"resistanceLevels"`
	Signals          []TradeSignal `json:"signals"`
	Trend            Trend         `json:"trend"`
	RiskLevel        RiskLevel     `json:"riskLevel"`
}

// Validate checks a decoded analysis result field by field. The model's
// output is untrusted input: a request-time schema hint is not a
// response-side guarantee. sliceLen is the length of the bar slice the
// signal indices are relative to.
func (r *AnalysisResult) Validate(sliceLen int) error {
	if r.Summary == "" {
		return fmt.Errorf("analysis summary is empty")
	}
	if !r.Trend.Valid() {
		return fmt.Errorf("invalid trend value %q", r.Trend)
	}
	if !r.RiskLevel.Valid() {
		return fmt.Errorf("invalid risk level %q", r.RiskLevel)
	}
	for i, sig := range r.Signals {
		if !sig.Type.Valid() {
			return fmt.Errorf("signal %d: invalid type %q", i, sig.Type)
		}
		if sig.Index < 0 || sig.Index >= sliceLen {
			return fmt.Errorf("signal %d: index %d out of range [0,%d)", i, sig.Index, sliceLen)
		}
	}
	return nil
}

// GroundingSource is a citation the search-augmented model claims to have
// used. Both fields are required; citations missing either are dropped at
// the service boundary.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// MarketSentiment is the free-text market commentary for the current asset,
// with grounding citations. SentimentScore is 0-100 (0 bearish, 100 bullish);
// the neutral midpoint 50 is used when no explicit score is derivable.
type MarketSentiment struct {
	Summary        string            `json:"summary"`
	Sources        []GroundingSource `json:"sources"`
	SentimentScore int               `json:"sentimentScore"`
}
