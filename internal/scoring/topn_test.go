package scoring

import (
	"testing"

	"github.com/slzp03/BuyWise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedRow(product string, amount, total float64) Scored {
	return Scored{
		Purchase: model.Purchase{Product: product, Amount: amount},
		Scores:   Breakdown{Total: total},
	}
}

func TestTopByScore(t *testing.T) {
	rows := []Scored{
		namedRow("keyboard", 100, 30),
		namedRow("monitor", 300, 80),
		namedRow("mouse", 50, 55),
	}

	top := TopByScore(rows, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "monitor", top[0].Purchase.Product)
	assert.Equal(t, "mouse", top[1].Purchase.Product)

	// Asking for more rows than exist returns them all.
	assert.Len(t, TopByScore(rows, 10), 3)
}

func TestTopByScoreDoesNotMutateInput(t *testing.T) {
	rows := []Scored{
		namedRow("a", 1, 10),
		namedRow("b", 2, 90),
	}

	_ = TopByScore(rows, 1)
	assert.Equal(t, "a", rows[0].Purchase.Product)
}

func TestTopByAmount(t *testing.T) {
	rows := []Scored{
		namedRow("keyboard", 100, 30),
		namedRow("monitor", 300, 80),
		namedRow("mouse", 50, 55),
	}

	top := TopByAmount(rows, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "monitor", top[0].Purchase.Product)
}

func TestAdviceTargetsDeduplicates(t *testing.T) {
	// The monitor is both the most regretted and the most expensive row; it
	// must appear only once in the combined selection.
	rows := []Scored{
		namedRow("keyboard", 100, 30),
		namedRow("monitor", 300, 80),
		namedRow("mouse", 50, 55),
		namedRow("desk", 250, 10),
	}

	targets := AdviceTargets(rows, 2, 2)
	require.Len(t, targets, 3)

	seen := make(map[string]int)
	for _, row := range targets {
		seen[row.Purchase.Product]++
	}
	assert.Equal(t, 1, seen["monitor"])
	assert.Equal(t, 1, seen["mouse"])
	assert.Equal(t, 1, seen["desk"])
}

func TestAdviceTargetsEmpty(t *testing.T) {
	assert.Empty(t, AdviceTargets(nil, 5, 3))
}
