package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slzp03/BuyWise/internal/cli"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all imported purchases",
		Long: `Reset removes every purchase from the database so a fresh import can start
from scratch. Saved report snapshots are preserved for comparison.`,
		RunE: runReset,
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	force, _ := cmd.Flags().GetBool("force")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	count, err := store.CountPurchases(ctx)
	if err != nil {
		return fmt.Errorf("failed to count purchases: %w", err)
	}

	if count == 0 {
		fmt.Println(cli.StyleInfo("No purchases found. Nothing to reset."))
		return nil
	}

	if !force {
		fmt.Printf("This will delete %d purchases.\n", count)
		fmt.Print("Are you sure you want to continue? [y/N]: ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Println(cli.StyleInfo("Reset cancelled."))
			return nil
		}
	}

	if err := store.DeletePurchases(ctx); err != nil {
		return fmt.Errorf("failed to delete purchases: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %d purchases", count)))
	return nil
}
