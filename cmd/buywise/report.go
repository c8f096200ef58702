package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slzp03/BuyWise/internal/cli"
	"github.com/slzp03/BuyWise/internal/service"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the portfolio regret report",
		Long: `Aggregate all scored purchases into a portfolio report: average regret
score, grade, score distribution, regretted-spend ratios, and the factor
driving the most regret.

Pass --save to persist the report as a snapshot for later comparison, or
--history to list previously saved snapshots.`,
		RunE: runReport,
	}

	cmd.Flags().String("csv", "", "Report on a CSV file directly instead of the database")
	cmd.Flags().String("as-of", "", "Reference date for time-based factors (format: 2006-01-02, default: today)")
	cmd.Flags().Bool("save", false, "Save the report as a snapshot")
	cmd.Flags().Bool("history", false, "List saved snapshots instead of computing a new report")
	cmd.Flags().Int("limit", 10, "Number of snapshots to show with --history")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	csvPath, _ := cmd.Flags().GetString("csv")
	asOfFlag, _ := cmd.Flags().GetString("as-of")
	save, _ := cmd.Flags().GetBool("save")
	history, _ := cmd.Flags().GetBool("history")
	limit, _ := cmd.Flags().GetInt("limit")

	if history {
		return showHistory(cmd, limit)
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

	fmt.Println(cli.RenderReport(portfolio))

	if portfolio.Empty() {
		return nil
	}

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

func showHistory(cmd *cobra.Command, limit int) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snapshots, err := store.ListSnapshots(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		fmt.Println(cli.StyleInfo("No snapshots saved yet. Run 'buywise report --save'."))
		return nil
	}

	fmt.Println(cli.FormatTitle("Snapshot history"))
	for _, s := range snapshots {
		fmt.Printf("#%-4d %s  score %5.1f (%s)  %d purchases, %s spent\n",
			s.ID,
			s.AsOf.Format("2006-01-02"),
			s.Portfolio.AvgRegretScore,
			s.Portfolio.Interpretation.Label,
			s.Portfolio.TotalPurchases,
			cli.FormatAmount(s.Portfolio.TotalAmount))
	}

	return nil
}
