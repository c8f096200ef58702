// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/slzp03/BuyWise/internal/model"
	"github.com/slzp03/BuyWise/internal/scoring"
)

// PurchaseFilter defines filtering options for purchase queries.
type PurchaseFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Limit     int
}

// Snapshot is a persisted portfolio analysis: the aggregate computed over the
// purchase table as of a reference date.
type Snapshot struct {
	CreatedAt time.Time
	AsOf      time.Time
	Portfolio scoring.Portfolio
	ID        int64
}

// Storage defines the contract for the persistence layer. The scoring engine
// never touches storage; commands load purchases, score them, and save results
// explicitly.
type Storage interface {
	// Purchase operations
	SavePurchases(ctx context.Context, purchases []model.Purchase) (int, error)
	GetPurchases(ctx context.Context, filter PurchaseFilter) ([]model.Purchase, error)
	CountPurchases(ctx context.Context) (int, error)
	DeletePurchases(ctx context.Context) error

	// Snapshot operations
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
	GetLatestSnapshot(ctx context.Context) (*Snapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error)

	Close() error
}

// RetryOptions configures retry behavior for operations against flaky
// collaborators.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
