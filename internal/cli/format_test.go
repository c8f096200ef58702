package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slzp03/BuyWise/internal/model"
	"github.com/slzp03/BuyWise/internal/scoring"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0"},
		{950, "950"},
		{4500, "4,500"},
		{1250000, "1,250,000"},
		{-38000, "-38,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-ten", truncate("exactly-ten", 11))
	assert.Equal(t, "a very lo...", truncate("a very long product name", 12))
}

func TestRenderScoreTable(t *testing.T) {
	engine := scoring.NewEngine(scoring.DefaultConfig())

	rows := []scoring.Scored{
		{
			Purchase: model.Purchase{
				Date:     time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
				Category: "electronics",
				Product:  "mechanical keyboard",
				Amount:   180000,
			},
			Scores: scoring.Breakdown{Total: 62.5},
		},
	}

	out := RenderScoreTable(engine, rows)
	assert.Contains(t, out, "2024-05-02")
	assert.Contains(t, out, "mechanical keyboard")
	assert.Contains(t, out, "62.5")
	assert.Contains(t, out, "Disappointed")
}

func TestRenderScoreTableEmpty(t *testing.T) {
	engine := scoring.NewEngine(scoring.DefaultConfig())
	out := RenderScoreTable(engine, nil)
	assert.Contains(t, out, "No purchases")
}

func TestRenderBreakdown(t *testing.T) {
	scores := scoring.Breakdown{
		NecessityGap: 20,
		Recency:      6,
		Total:        26,
	}

	out := RenderBreakdown(scores)
	assert.Contains(t, out, "necessity_gap")
	assert.Contains(t, out, "recency")
	assert.Contains(t, out, "total")
	assert.NotContains(t, out, "late_night")
}

func TestRenderReport(t *testing.T) {
	engine := scoring.NewEngine(scoring.DefaultConfig())

	p := scoring.Portfolio{
		Interpretation:    engine.Interpret(46.3),
		MainCause:         scoring.MainCause{Factor: scoring.FactorNecessityGap, Score: 18.5},
		Distribution:      scoring.Distribution{Satisfied: 2, Neutral: 1, Regretful: 1},
		TotalPurchases:    4,
		TotalAmount:       620000,
		AvgRegretScore:    46.3,
		RegretCount:       1,
		RegretAmount:      230000,
		RegretRatio:       25,
		RegretAmountRatio: 37.1,
	}

	out := RenderReport(p)
	assert.Contains(t, out, "46.3 / 100")
	assert.Contains(t, out, "620,000")
	assert.Contains(t, out, "necessity_gap")
	assert.Contains(t, out, "Very satisfied")
}

func TestRenderReportEmpty(t *testing.T) {
	out := RenderReport(scoring.Portfolio{})
	assert.Contains(t, out, "No purchases")
}
