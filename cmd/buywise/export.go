package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/slzp03/BuyWise/internal/cli"
	"github.com/slzp03/BuyWise/internal/scoring"
	"github.com/slzp03/BuyWise/internal/service"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export scored purchases as CSV",
		Long: `Export every purchase with its regret score and per-factor breakdown as
CSV, suitable for spreadsheets or further analysis. Writes to stdout unless
--output is given.`,
		RunE: runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().String("csv", "", "Export from a CSV file directly instead of the database")
	cmd.Flags().String("as-of", "", "Reference date for time-based factors (format: 2006-01-02, default: today)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	output, _ := cmd.Flags().GetString("output")
	csvPath, _ := cmd.Flags().GetString("csv")
	asOfFlag, _ := cmd.Flags().GetString("as-of")

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

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output) //nolint:gosec // user-chosen export path
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := writeScoredCSV(w, engine, rows); err != nil {
		return err
	}

	if output != "" {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d purchases to %s", len(rows), output)))
	}

	return nil
}

func writeScoredCSV(w io.Writer, engine *scoring.Engine, rows []scoring.Scored) error {
	cw := csv.NewWriter(w)

	header := []string{"date", "category", "product_name", "amount", "necessity", "usage_frequency"}
	for _, factor := range scoring.Factors {
		header = append(header, string(factor))
	}
	header = append(header, "regret_score", "grade")

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		dateFormat := "2006-01-02"
		if row.Purchase.HasTime {
			dateFormat = "2006-01-02 15:04:05"
		}

		record := []string{
			row.Purchase.Date.Format(dateFormat),
			row.Purchase.Category,
			row.Purchase.Product,
			strconv.FormatFloat(row.Purchase.Amount, 'f', -1, 64),
			strconv.Itoa(row.Purchase.Necessity),
			strconv.Itoa(row.Purchase.Usage),
		}
		for _, factor := range scoring.Factors {
			record = append(record, strconv.FormatFloat(row.Scores.Get(factor), 'f', 1, 64))
		}
		record = append(record,
			strconv.FormatFloat(row.Scores.Total, 'f', 1, 64),
			string(engine.Interpret(row.Scores.Total).Grade))

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
