package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/slzp03/BuyWise/internal/common"
	"github.com/slzp03/BuyWise/internal/model"
	"github.com/slzp03/BuyWise/internal/scoring"
	"github.com/slzp03/BuyWise/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func testPurchase(date string, category string, amount float64) model.Purchase {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	p := model.Purchase{
		Date:      d,
		Category:  category,
		Product:   category,
		Amount:    amount,
		Necessity: 3,
		Usage:     2,
	}
	p.Hash = p.GenerateHash()
	p.ID = p.Hash
	return p
}

func TestMigrations(t *testing.T) {
	store := testStorage(t)

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSaveAndGetPurchases(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	purchases := []model.Purchase{
		testPurchase("2024-06-01", "electronics", 250000),
		testPurchase("2024-06-10", "coffee", 4500),
		testPurchase("2024-05-20", "toys", 30000),
	}

	inserted, err := store.SavePurchases(ctx, purchases)
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	got, err := store.GetPurchases(ctx, service.PurchaseFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	assert.Equal(t, "coffee", got[0].Category)
	assert.Equal(t, "electronics", got[1].Category)
	assert.Equal(t, "toys", got[2].Category)

	count, err := store.CountPurchases(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSavePurchasesDeduplicates(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	purchases := []model.Purchase{testPurchase("2024-06-01", "electronics", 250000)}

	inserted, err := store.SavePurchases(ctx, purchases)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	// Importing the same row again is a no-op.
	inserted, err = store.SavePurchases(ctx, purchases)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	count, err := store.CountPurchases(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetPurchasesFilters(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	_, err := store.SavePurchases(ctx, []model.Purchase{
		testPurchase("2024-06-01", "electronics", 250000),
		testPurchase("2024-06-10", "coffee", 4500),
		testPurchase("2024-05-20", "toys", 30000),
	})
	require.NoError(t, err)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	got, err := store.GetPurchases(ctx, service.PurchaseFilter{StartDate: &start})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.GetPurchases(ctx, service.PurchaseFilter{Category: "toys"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "toys", got[0].Category)

	got, err = store.GetPurchases(ctx, service.PurchaseFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "coffee", got[0].Category)
}

func TestPurchaseRoundTripPreservesFields(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	p := model.Purchase{
		Date:      time.Date(2024, 6, 15, 2, 30, 0, 0, time.UTC),
		Category:  "games",
		Product:   "Deluxe Edition",
		Amount:    64000,
		Necessity: 2,
		Usage:     1,
		HasTime:   true,
	}
	p.Hash = p.GenerateHash()
	p.ID = p.Hash

	_, err := store.SavePurchases(ctx, []model.Purchase{p})
	require.NoError(t, err)

	got, err := store.GetPurchases(ctx, service.PurchaseFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p, got[0])
}

func TestDeletePurchases(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	_, err := store.SavePurchases(ctx, []model.Purchase{testPurchase("2024-06-01", "toys", 100)})
	require.NoError(t, err)

	require.NoError(t, store.DeletePurchases(ctx))

	count, err := store.CountPurchases(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	_, err := store.GetLatestSnapshot(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)

	engine := scoring.NewEngine(scoring.DefaultConfig())
	portfolio := engine.Aggregate([]scoring.Scored{
		{Purchase: testPurchase("2024-06-01", "electronics", 250000), Scores: scoring.Breakdown{NecessityGap: 30, Total: 60}},
		{Purchase: testPurchase("2024-06-10", "coffee", 4500), Scores: scoring.Breakdown{Total: 10}},
	})

	snapshot := &service.Snapshot{
		AsOf:      time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		Portfolio: portfolio,
	}
	require.NoError(t, store.SaveSnapshot(ctx, snapshot))
	assert.NotZero(t, snapshot.ID)

	got, err := store.GetLatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.AsOf, got.AsOf)
	assert.Equal(t, portfolio, got.Portfolio)
}

func TestSnapshotCorruptCreatedAt(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, `
		INSERT INTO snapshots (as_of, portfolio, created_at)
		VALUES (?, ?, ?)
	`, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC).Format(time.RFC3339), "{}", "not-a-timestamp")
	require.NoError(t, err)

	_, err = store.GetLatestSnapshot(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_at")
}

func TestListSnapshots(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		snapshot := &service.Snapshot{
			AsOf:      time.Date(2024, 6, 10+i, 0, 0, 0, 0, time.UTC),
			Portfolio: scoring.Portfolio{TotalPurchases: i + 1},
		}
		require.NoError(t, store.SaveSnapshot(ctx, snapshot))
	}

	snapshots, err := store.ListSnapshots(ctx, 2)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	// Newest first.
	assert.Equal(t, 3, snapshots[0].Portfolio.TotalPurchases)
	assert.Equal(t, 2, snapshots[1].Portfolio.TotalPurchases)
}
