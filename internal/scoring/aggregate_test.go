package scoring

import (
	"testing"

	"github.com/slzp03/BuyWise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredRow(amount, total float64) Scored {
	return Scored{
		Purchase: model.Purchase{Amount: amount},
		Scores:   Breakdown{Total: total},
	}
}

func TestAggregateEmptyTable(t *testing.T) {
	e := NewEngine(DefaultConfig())

	p := e.Aggregate(nil)
	assert.True(t, p.Empty())
	assert.Equal(t, 0, p.TotalPurchases)
}

func TestAggregateDistribution(t *testing.T) {
	e := NewEngine(DefaultConfig())

	rows := []Scored{
		scoredRow(1000, 0),
		scoredRow(1000, 20),   // inclusive upper bound of the first bucket
		scoredRow(1000, 20.5), // just over
		scoredRow(1000, 35),
		scoredRow(1000, 50),
		scoredRow(1000, 65),
		scoredRow(1000, 66),
		scoredRow(1000, 100),
	}

	p := e.Aggregate(rows)

	assert.Equal(t, 2, p.Distribution.VerySatisfied)
	assert.Equal(t, 2, p.Distribution.Satisfied)
	assert.Equal(t, 1, p.Distribution.Neutral)
	assert.Equal(t, 1, p.Distribution.Regretful)
	assert.Equal(t, 2, p.Distribution.VeryRegretful)
	assert.Equal(t, p.TotalPurchases, p.Distribution.Total())
}

func TestAggregateRegretStatistics(t *testing.T) {
	e := NewEngine(DefaultConfig())

	rows := []Scored{
		scoredRow(10000, 30),
		scoredRow(20000, 50), // exactly at the threshold is not regretful
		scoredRow(30000, 51),
		scoredRow(40000, 90),
	}

	p := e.Aggregate(rows)

	assert.Equal(t, 2, p.RegretCount)
	assert.Equal(t, 70000.0, p.RegretAmount)
	assert.Equal(t, 50.0, p.RegretRatio)
	assert.Equal(t, 100000.0, p.TotalAmount)
	assert.Equal(t, 70.0, p.RegretAmountRatio)
	assert.Equal(t, 55.3, p.AvgRegretScore)

	count := 0
	for _, row := range rows {
		if row.Scores.Total > e.Config().RegretThreshold {
			count++
		}
	}
	assert.Equal(t, count, p.RegretCount)
}

func TestAggregateMainCause(t *testing.T) {
	e := NewEngine(DefaultConfig())

	rows := []Scored{
		{Scores: Breakdown{NecessityGap: 5, PriceWeight: 12, Total: 17}},
		{Scores: Breakdown{NecessityGap: 5, PriceWeight: 18, Total: 23}},
	}

	p := e.Aggregate(rows)
	assert.Equal(t, FactorPriceWeight, p.MainCause.Factor)
	assert.Equal(t, 15.0, p.MainCause.Score)
}

func TestAggregateMainCauseTieBreak(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// On an exact tie, the first factor in declaration order wins.
	rows := []Scored{
		{Scores: Breakdown{NecessityGap: 10, PriceWeight: 10, Total: 20}},
	}

	p := e.Aggregate(rows)
	assert.Equal(t, FactorNecessityGap, p.MainCause.Factor)
	assert.Equal(t, 10.0, p.MainCause.Score)
}

func TestAggregateInterpretation(t *testing.T) {
	e := NewEngine(DefaultConfig())

	rows := []Scored{scoredRow(1000, 10), scoredRow(1000, 14)}
	p := e.Aggregate(rows)

	require.Equal(t, 12.0, p.AvgRegretScore)
	assert.Equal(t, GradeVerySatisfied, p.Interpretation.Grade)
}

func TestAggregateConsistencyWithScoring(t *testing.T) {
	e := NewEngine(DefaultConfig())

	table := []model.Purchase{
		purchase("2023-11-28", "electronics", 300000, 5, 1),
		purchase("2024-06-14", "coffee", 4500, 2, 2),
		purchase("2024-06-10", "toys", 25000, 4, 1),
		purchase("2024-06-08", "toys", 12000, 4, 2),
		purchase("2024-06-05", "toys", 30000, 3, 1),
	}

	scored := e.ScoreAll(table, scoreRef)
	p := e.Aggregate(scored)

	assert.Equal(t, len(table), p.TotalPurchases)
	assert.Equal(t, p.TotalPurchases, p.Distribution.Total())

	regret := 0
	for _, row := range scored {
		if row.Scores.Total > e.Config().RegretThreshold {
			regret++
		}
	}
	assert.Equal(t, regret, p.RegretCount)
}
