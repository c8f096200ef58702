package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slzp03/BuyWise/internal/cli"
	"github.com/slzp03/BuyWise/internal/scoring"
	"github.com/slzp03/BuyWise/internal/service"
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score purchases for regret",
		Long: `Score each purchase on a 0-100 regret scale built from seven behavioral
factors: necessity gap, time decay, price weight, recency, category
repetition, late-night buying, and impulse streaks.

By default purchases are loaded from the database; pass --csv to score a
file directly without importing it.`,
		RunE: runScore,
	}

	cmd.Flags().String("csv", "", "Score a CSV file directly instead of the database")
	cmd.Flags().String("as-of", "", "Reference date for time-based factors (format: 2006-01-02, default: today)")
	cmd.Flags().StringP("category", "c", "", "Only score purchases in this category")
	cmd.Flags().StringP("start-date", "s", "", "Only score purchases on or after this date")
	cmd.Flags().StringP("end-date", "e", "", "Only score purchases on or before this date")
	cmd.Flags().IntP("top", "t", 0, "Show only the N most regretted purchases")
	cmd.Flags().Bool("breakdown", false, "Show per-factor scores for each purchase")
	cmd.Flags().Bool("save", false, "Save the resulting portfolio as a snapshot")

	return cmd
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	csvPath, _ := cmd.Flags().GetString("csv")
	asOfFlag, _ := cmd.Flags().GetString("as-of")
	category, _ := cmd.Flags().GetString("category")
	startFlag, _ := cmd.Flags().GetString("start-date")
	endFlag, _ := cmd.Flags().GetString("end-date")
	top, _ := cmd.Flags().GetInt("top")
	breakdown, _ := cmd.Flags().GetBool("breakdown")
	save, _ := cmd.Flags().GetBool("save")

	asOf, err := parseAsOf(asOfFlag)
	if err != nil {
		return err
	}

	startDate, err := parseDateFlag(startFlag, "start-date")
	if err != nil {
		return err
	}
	endDate, err := parseDateFlag(endFlag, "end-date")
	if err != nil {
		return err
	}

	purchases, err := loadPurchases(ctx, csvPath, service.PurchaseFilter{
		StartDate: startDate,
		EndDate:   endDate,
		Category:  category,
	})
	if err != nil {
		return err
	}

	if len(purchases) == 0 {
		fmt.Println(cli.StyleInfo("No purchases to score. Run 'buywise import' first."))
		return nil
	}

	engine := buildEngine()
	rows := engine.ScoreAll(purchases, asOf)

	if top > 0 {
		rows = scoring.TopByScore(rows, top)
	}

	fmt.Println(cli.FormatTitle("Purchase regret scores"))
	fmt.Print(cli.RenderScoreTable(engine, rows))

	if breakdown {
		fmt.Println()
		for _, row := range rows {
			fmt.Println(cli.SubtitleStyle.Render(fmt.Sprintf("%s (%s)", row.Purchase.Product, row.Purchase.Date.Format("2006-01-02"))))
			fmt.Print(cli.RenderBreakdown(row.Scores))
		}
	}

	portfolio := engine.Aggregate(rows)
	fmt.Printf("\n%d of %d purchases scored above %.0f.\n",
		portfolio.RegretCount, portfolio.TotalPurchases, engine.Config().RegretThreshold)

	if save {
		if csvPath != "" {
			return fmt.Errorf("--save requires database-backed purchases, not --csv")
		}
		if err := saveSnapshot(ctx, asOf, portfolio); err != nil {
			return err
		}
	}

	return nil
}
