// Package advisor turns portfolio analysis results into narrative guidance,
// either through an LLM provider or with offline score-banded tips.
package advisor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slzp03/BuyWise/internal/common"
	"github.com/slzp03/BuyWise/internal/llm"
	"github.com/slzp03/BuyWise/internal/scoring"
	"github.com/slzp03/BuyWise/internal/service"
)

// Language selects the response language for generated narratives. It is
// always passed explicitly; there is no process-wide language state.
type Language string

const (
	// LanguageEN requests English responses.
	LanguageEN Language = "en"
	// LanguageKO requests Korean responses.
	LanguageKO Language = "ko"
	// LanguageJA requests Japanese responses.
	LanguageJA Language = "ja"
)

// CategoryStat summarizes one category's spending for prompt context.
type CategoryStat struct {
	Count  int
	Amount float64
}

// Service generates narrative advice from scored purchase data.
type Service struct {
	client llm.Client
	retry  service.RetryOptions
}

// NewService creates an advisor backed by the given LLM client. A nil client
// is allowed; only the offline QuickTips path works in that case.
func NewService(client llm.Client) *Service {
	return &Service{
		client: client,
		retry:  service.RetryOptions{MaxAttempts: 3},
	}
}

// Feedback generates the spending-psychology analysis for a portfolio.
func (s *Service) Feedback(ctx context.Context, portfolio scoring.Portfolio, targets []scoring.Scored, lang Language) (string, error) {
	if s.client == nil {
		return "", common.ErrAdvisorUnavailable
	}
	if portfolio.Empty() {
		return "", common.ErrNoPurchases
	}

	req := llm.Request{
		System: systemMessage(lang),
		Prompt: buildFeedbackPrompt(portfolio, targets, lang),
	}

	return s.generate(ctx, req)
}

// Insights generates purchase-level pattern insights for the advice targets
// (the union of top-regretted and top-expensive rows).
func (s *Service) Insights(ctx context.Context, portfolio scoring.Portfolio, targets []scoring.Scored, categories map[string]CategoryStat, lang Language) (string, error) {
	if s.client == nil {
		return "", common.ErrAdvisorUnavailable
	}
	if portfolio.Empty() {
		return "", common.ErrNoPurchases
	}

	req := llm.Request{
		System: systemMessage(lang),
		Prompt: buildInsightsPrompt(portfolio, targets, categories, lang),
	}

	return s.generate(ctx, req)
}

func (s *Service) generate(ctx context.Context, req llm.Request) (string, error) {
	var resp llm.Response

	err := common.WithRetry(ctx, func() error {
		var genErr error
		resp, genErr = s.client.Generate(ctx, req)
		return genErr
	}, s.retry)
	if err != nil {
		return "", fmt.Errorf("failed to generate advice: %w", err)
	}

	slog.Debug("Generated advice",
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens)

	return resp.Text, nil
}

// SummarizeCategories aggregates scored rows into per-category spending stats
// for prompt context.
func SummarizeCategories(rows []scoring.Scored) map[string]CategoryStat {
	stats := make(map[string]CategoryStat)
	for _, row := range rows {
		s := stats[row.Purchase.Category]
		s.Count++
		s.Amount += row.Purchase.Amount
		stats[row.Purchase.Category] = s
	}
	return stats
}

// QuickTips returns score-banded advice without calling any provider.
func QuickTips(score float64) []string {
	switch {
	case score <= 20:
		return []string{
			"Great spending habits, keep them up!",
			"Your deliberate purchase routine is working.",
			"Consider sharing your buying checklist with others.",
		}
	case score <= 35:
		return []string{
			"Mostly sensible purchases.",
			"Try a 24-hour cooling-off period before buying.",
			"Keep a shopping list and stick to it.",
		}
	case score <= 50:
		return []string{
			"Impulse buying is creeping in.",
			"Avoid shopping late at night.",
			"Leave items in the cart and revisit after three days.",
		}
	case score <= 65:
		return []string{
			"Your purchase pattern needs attention.",
			"Set a monthly spending budget and track it.",
			"Ask yourself three times whether you really need it.",
		}
	default:
		return []string{
			"The impulse-buying habit needs real work.",
			"Keep payment methods physically out of reach.",
			"Ask a friend or family member before any big purchase.",
			"Turn off every shopping app notification.",
		}
	}
}
