// Package marketdata produces the synthetic price series shown on the chart.
// The series is for visualization only; the analytical ground truth comes
// from the reasoning service's own world knowledge.
package marketdata

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kayratasci4/BorsaAI/models"
)

const (
	volumeMin   = 50_000
	volumeRange = 1_000_000
)

// Generator produces randomized OHLCV series with a bounded random walk and
// a slight upward drift.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator seeded from the current time.
func NewGenerator() *Generator {
	return NewGeneratorWithSource(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewGeneratorWithSource creates a Generator with an explicit random source
// so tests can control the stream.
func NewGeneratorWithSource(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate returns exactly length bars ending today, one bar per calendar
// day, oldest first. Each bar opens at the previous close; the relative step
// is drawn from roughly [-2.4%, +2.6%] with a slightly bullish bias, and the
// wicks extend up to 2% beyond the body. All price fields are rounded to two
// fractional digits before storage.
func (g *Generator) Generate(length int, startPrice float64) models.Series {
	series := make(models.Series, 0, length)
	startDate := time.Now().AddDate(0, 0, -length)

	currentPrice := startPrice
	for i := 0; i < length; i++ {
		date := startDate.AddDate(0, 0, i)

		changePercent := (g.rng.Float64() - 0.48) * 0.05
		open := currentPrice
		close := currentPrice * (1 + changePercent)
		high := max(open, close) * (1 + g.rng.Float64()*0.02)
		low := min(open, close) * (1 - g.rng.Float64()*0.02)
		volume := int64(g.rng.Intn(volumeRange)) + volumeMin

		series = append(series, models.PriceBar{
			Time:   date.Format("2006-01-02"),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(close),
			Volume: volume,
		})

		currentPrice = close
	}

	return series
}

// StartPrice draws a randomized starting price in [min, max).
func (g *Generator) StartPrice(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
