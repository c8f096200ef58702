package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/slzp03/BuyWise/internal/cli"
	"github.com/slzp03/BuyWise/internal/config"
	"github.com/slzp03/BuyWise/internal/ingest"
	"github.com/slzp03/BuyWise/internal/model"
	"github.com/slzp03/BuyWise/internal/scoring"
	"github.com/slzp03/BuyWise/internal/service"
	"github.com/slzp03/BuyWise/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(_ context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", dbPath, err)
	}

	return store, nil
}

// buildEngine constructs the scoring engine, applying config overrides.
func buildEngine() *scoring.Engine {
	cfg := scoring.DefaultConfig()

	if extra := viper.GetStringSlice("scoring.food_keywords"); len(extra) > 0 {
		cfg.FoodKeywords = append(cfg.FoodKeywords, extra...)
	}
	if threshold := viper.GetFloat64("scoring.regret_threshold"); threshold > 0 {
		cfg.RegretThreshold = threshold
	}

	return scoring.NewEngine(cfg)
}

// parseAsOf parses the --as-of flag, defaulting to now.
func parseAsOf(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	asOf, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q (expected 2006-01-02): %w", value, err)
	}
	// Score as of end of that day so same-day purchases count as elapsed day 0.
	return asOf.Add(24*time.Hour - time.Second), nil
}

// loadPurchases reads purchases either from a CSV file or from the database.
func loadPurchases(ctx context.Context, csvPath string, filter service.PurchaseFilter) ([]model.Purchase, error) {
	if csvPath != "" {
		purchases, _, err := ingest.ReadFile(csvPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", csvPath, err)
		}
		return purchases, nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	purchases, err := store.GetPurchases(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchases: %w", err)
	}

	return purchases, nil
}

// saveSnapshot persists the portfolio aggregate for later comparison.
func saveSnapshot(ctx context.Context, asOf time.Time, portfolio scoring.Portfolio) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snapshot := &service.Snapshot{
		AsOf:      asOf,
		Portfolio: portfolio,
		CreatedAt: time.Now(),
	}
	if err := store.SaveSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	slog.Info("Saved snapshot", "id", snapshot.ID, "as_of", snapshot.AsOf.Format("2006-01-02"))
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Snapshot #%d saved", snapshot.ID)))
	return nil
}

// parseDateFlag parses an optional date flag into a filter pointer.
func parseDateFlag(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q (expected 2006-01-02): %w", name, value, err)
	}
	return &t, nil
}
