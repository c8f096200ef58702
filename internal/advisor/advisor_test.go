package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slzp03/BuyWise/internal/common"
	"github.com/slzp03/BuyWise/internal/llm"
	"github.com/slzp03/BuyWise/internal/model"
	"github.com/slzp03/BuyWise/internal/scoring"
)

type mockClient struct {
	lastRequest llm.Request
	response    llm.Response
	err         error
	calls       int
}

func (m *mockClient) Generate(_ context.Context, req llm.Request) (llm.Response, error) {
	m.calls++
	m.lastRequest = req
	return m.response, m.err
}

func testPortfolio() scoring.Portfolio {
	return scoring.Portfolio{
		TotalPurchases: 12,
		TotalAmount:    1840000,
		AvgRegretScore: 46.3,
		RegretCount:    4,
		RegretRatio:    33.3,
		MainCause:      scoring.MainCause{Factor: scoring.FactorNecessityGap, Score: 18.5},
	}
}

func testTargets() []scoring.Scored {
	return []scoring.Scored{
		{
			Purchase: model.Purchase{Category: "electronics", Product: "wireless earbuds", Amount: 230000, Necessity: 2, Usage: 1},
			Scores:   scoring.Breakdown{Total: 72.5},
		},
		{
			Purchase: model.Purchase{Category: "fashion", Product: "jacket", Amount: 180000, Necessity: 3, Usage: 2},
			Scores:   scoring.Breakdown{Total: 58.0},
		},
	}
}

func TestFeedback(t *testing.T) {
	client := &mockClient{response: llm.Response{Text: "some advice"}}
	svc := NewService(client)

	got, err := svc.Feedback(context.Background(), testPortfolio(), testTargets(), LanguageEN)
	require.NoError(t, err)
	assert.Equal(t, "some advice", got)
	assert.Equal(t, 1, client.calls)

	assert.Contains(t, client.lastRequest.System, "financial counselor")
	assert.Contains(t, client.lastRequest.Prompt, "46.3/100")
	assert.Contains(t, client.lastRequest.Prompt, "wireless earbuds")
	assert.Contains(t, client.lastRequest.Prompt, "necessity_gap")
}

func TestFeedbackNilClient(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.Feedback(context.Background(), testPortfolio(), testTargets(), LanguageEN)
	assert.ErrorIs(t, err, common.ErrAdvisorUnavailable)
}

func TestFeedbackEmptyPortfolio(t *testing.T) {
	client := &mockClient{response: llm.Response{Text: "unused"}}
	svc := NewService(client)

	_, err := svc.Feedback(context.Background(), scoring.Portfolio{}, nil, LanguageEN)
	assert.ErrorIs(t, err, common.ErrNoPurchases)
	assert.Zero(t, client.calls)
}

func TestFeedbackProviderError(t *testing.T) {
	client := &mockClient{err: errors.New("provider down")}
	svc := NewService(client)
	svc.retry.MaxAttempts = 1

	_, err := svc.Feedback(context.Background(), testPortfolio(), testTargets(), LanguageEN)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate advice")
}

func TestInsights(t *testing.T) {
	client := &mockClient{response: llm.Response{Text: "insight text"}}
	svc := NewService(client)

	categories := map[string]CategoryStat{
		"electronics": {Count: 3, Amount: 540000},
		"fashion":     {Count: 2, Amount: 310000},
	}

	got, err := svc.Insights(context.Background(), testPortfolio(), testTargets(), categories, LanguageKO)
	require.NoError(t, err)
	assert.Equal(t, "insight text", got)

	assert.Contains(t, client.lastRequest.Prompt, "necessity 2, usage 1")
	assert.Contains(t, client.lastRequest.Prompt, "electronics: 540000 (3 purchases)")
	assert.Contains(t, client.lastRequest.Prompt, "Korean")
	assert.Contains(t, client.lastRequest.System, "Korean")
}

func TestSummarizeCategories(t *testing.T) {
	rows := []scoring.Scored{
		{Purchase: model.Purchase{Category: "food", Amount: 12000}},
		{Purchase: model.Purchase{Category: "food", Amount: 8000}},
		{Purchase: model.Purchase{Category: "hobby", Amount: 45000}},
	}

	stats := SummarizeCategories(rows)
	require.Len(t, stats, 2)
	assert.Equal(t, CategoryStat{Count: 2, Amount: 20000}, stats["food"])
	assert.Equal(t, CategoryStat{Count: 1, Amount: 45000}, stats["hobby"])
}

func TestQuickTips(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{name: "very satisfied", score: 12, want: "Great spending habits"},
		{name: "satisfied", score: 30, want: "Mostly sensible"},
		{name: "neutral", score: 47, want: "Impulse buying is creeping in"},
		{name: "regretful", score: 60, want: "needs attention"},
		{name: "very regretful", score: 88, want: "needs real work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tips := QuickTips(tt.score)
			require.NotEmpty(t, tips)
			assert.Contains(t, strings.Join(tips, " "), tt.want)
		})
	}
}
