package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/slzp03/BuyWise/internal/common"
	"github.com/slzp03/BuyWise/internal/scoring"
	"github.com/slzp03/BuyWise/internal/service"
)

// SaveSnapshot persists a portfolio analysis. The portfolio is stored as JSON;
// snapshots are append-only history, never updated in place.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, snapshot *service.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if snapshot == nil {
		return errors.New("snapshot must not be nil")
	}

	portfolioJSON, err := json.Marshal(snapshot.Portfolio)
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (as_of, portfolio) VALUES (?, ?)
	`, snapshot.AsOf.Format(time.RFC3339), string(portfolioJSON))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	if id, idErr := result.LastInsertId(); idErr == nil {
		snapshot.ID = id
	}

	return nil
}

// GetLatestSnapshot returns the most recent snapshot, or ErrNotFound when no
// analysis has been saved yet.
func (s *SQLiteStorage) GetLatestSnapshot(ctx context.Context) (*service.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, as_of, portfolio, created_at
		FROM snapshots
		ORDER BY id DESC
		LIMIT 1
	`)

	snapshot, err := scanSnapshot(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	return snapshot, nil
}

// ListSnapshots returns up to limit snapshots, newest first.
func (s *SQLiteStorage) ListSnapshots(ctx context.Context, limit int) ([]service.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, as_of, portfolio, created_at
		FROM snapshots
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshots []service.Snapshot
	for rows.Next() {
		snapshot, scanErr := scanSnapshot(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		snapshots = append(snapshots, *snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	return snapshots, nil
}

func scanSnapshot(scan func(dest ...any) error) (*service.Snapshot, error) {
	var snapshot service.Snapshot
	var asOf, portfolioJSON, createdAt string

	if err := scan(&snapshot.ID, &asOf, &portfolioJSON, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot as_of %q: %w", asOf, err)
	}
	snapshot.AsOf = parsed

	created, createdErr := time.Parse("2006-01-02 15:04:05", createdAt)
	if createdErr != nil {
		created, createdErr = time.Parse(time.RFC3339, createdAt)
	}
	if createdErr != nil {
		return nil, fmt.Errorf("failed to parse snapshot created_at %q: %w", createdAt, createdErr)
	}
	snapshot.CreatedAt = created

	var portfolio scoring.Portfolio
	if err := json.Unmarshal([]byte(portfolioJSON), &portfolio); err != nil {
		return nil, fmt.Errorf("failed to unmarshal portfolio: %w", err)
	}
	snapshot.Portfolio = portfolio

	return &snapshot, nil
}
