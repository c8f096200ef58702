package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slzp03/BuyWise/internal/advisor"
	"github.com/slzp03/BuyWise/internal/cli"
	"github.com/slzp03/BuyWise/internal/config"
	"github.com/slzp03/BuyWise/internal/llm"
	"github.com/slzp03/BuyWise/internal/scoring"
	"github.com/slzp03/BuyWise/internal/service"
)

const (
	adviceTopByScore  = 5
	adviceTopByAmount = 3
)

func adviseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Get spending advice from your purchase history",
		Long: `Generate narrative advice from scored purchases.

Modes:
  feedback  - spending-psychology analysis with an improvement plan (LLM)
  insights  - per-purchase pattern classification and savings estimates (LLM)
  tips      - offline score-banded tips, no API key needed`,
		RunE: runAdvise,
	}

	cmd.Flags().StringP("mode", "m", "feedback", "Advice mode (feedback, insights, tips)")
	cmd.Flags().StringP("language", "l", "en", "Response language (en, ko, ja)")
	cmd.Flags().String("csv", "", "Advise on a CSV file directly instead of the database")
	cmd.Flags().String("as-of", "", "Reference date for time-based factors (format: 2006-01-02, default: today)")

	return cmd
}

func runAdvise(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	mode, _ := cmd.Flags().GetString("mode")
	langFlag, _ := cmd.Flags().GetString("language")
	csvPath, _ := cmd.Flags().GetString("csv")
	asOfFlag, _ := cmd.Flags().GetString("as-of")

	lang, err := parseLanguage(langFlag)
	if err != nil {
		return err
	}

	asOf, err := parseAsOf(asOfFlag)
	if err != nil {
		return err
	}

	purchases, err := loadPurchases(ctx, csvPath, service.PurchaseFilter{})
	if err != nil {
		return err
	}

	engine := buildEngine()
	rows := engine.ScoreAll(purchases, asOf)
	portfolio := engine.Aggregate(rows)

	if mode == "tips" {
		if portfolio.Empty() {
			fmt.Println(cli.StyleInfo("No purchases to advise on. Run 'buywise import' first."))
			return nil
		}
		fmt.Println(cli.FormatTitle("Quick tips"))
		for _, tip := range advisor.QuickTips(portfolio.AvgRegretScore) {
			fmt.Println("  • " + tip)
		}
		return nil
	}

	client, err := llm.NewClient(config.LoadLLMConfig())
	if err != nil {
		return fmt.Errorf("failed to create advice provider: %w", err)
	}

	svc := advisor.NewService(client)
	targets := scoring.AdviceTargets(rows, adviceTopByScore, adviceTopByAmount)

	var advice string
	switch mode {
	case "feedback":
		advice, err = svc.Feedback(ctx, portfolio, targets, lang)
	case "insights":
		advice, err = svc.Insights(ctx, portfolio, targets, advisor.SummarizeCategories(rows), lang)
	default:
		return fmt.Errorf("unknown mode %q (expected feedback, insights, or tips)", mode)
	}
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderBox(cli.RobotIcon+" Spending advice", advice))

	return nil
}

func parseLanguage(value string) (advisor.Language, error) {
	switch advisor.Language(value) {
	case advisor.LanguageEN, advisor.LanguageKO, advisor.LanguageJA:
		return advisor.Language(value), nil
	default:
		return "", fmt.Errorf("unknown language %q (expected en, ko, or ja)", value)
	}
}
