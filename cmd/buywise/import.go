package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/slzp03/BuyWise/internal/cli"
	"github.com/slzp03/BuyWise/internal/ingest"
	"github.com/slzp03/BuyWise/internal/model"
)

const importBatchSize = 100

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import purchases from a CSV file",
		Long: `Import purchase history from a CSV export.

Two column layouts are accepted: one carrying a pre-rated necessity column,
and one carrying deliberation columns (thinking_days, repurchase_intent) from
which necessity is derived. Duplicate rows are skipped automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "Parse and report without saving to the database")

	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	fmt.Println(cli.FormatTitle("Importing purchases"))

	purchases, format, err := ingest.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	slog.Info("Parsed purchase file",
		"file", path,
		"format", format.String(),
		"purchases", len(purchases))

	if viper.GetBool("import.dry_run") {
		fmt.Println(cli.FormatWarning("Dry run mode - not saving to database"))
		displayImportSummary(purchases)
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.NewOptions(len(purchases),
		progressbar.OptionSetDescription("Saving purchases..."),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
	)

	saved := 0
	for start := 0; start < len(purchases); start += importBatchSize {
		end := start + importBatchSize
		if end > len(purchases) {
			end = len(purchases)
		}

		n, err := store.SavePurchases(ctx, purchases[start:end])
		if err != nil {
			return fmt.Errorf("failed to save purchases: %w", err)
		}
		saved += n
		_ = bar.Add(end - start)
	}
	fmt.Println()

	skipped := len(purchases) - saved
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d purchases (%d duplicates skipped)", saved, skipped)))

	return nil
}

func displayImportSummary(purchases []model.Purchase) {
	if len(purchases) == 0 {
		fmt.Println(cli.StyleInfo("No purchases found in file."))
		return
	}

	var total float64
	categories := make(map[string]int)
	for _, p := range purchases {
		total += p.Amount
		categories[p.Category]++
	}

	// Rows arrive sorted newest first.
	newest := purchases[0].Date
	oldest := purchases[len(purchases)-1].Date

	fmt.Printf("  Purchases:  %d\n", len(purchases))
	fmt.Printf("  Total:      %s\n", cli.FormatAmount(total))
	fmt.Printf("  Date range: %s to %s\n", oldest.Format("2006-01-02"), newest.Format("2006-01-02"))
	fmt.Printf("  Categories: %d\n", len(categories))
}
