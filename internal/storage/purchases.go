package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/slzp03/BuyWise/internal/model"
	"github.com/slzp03/BuyWise/internal/service"
)

// SavePurchases saves purchases to the database, skipping rows whose hash is
// already present. It returns the number of newly inserted rows.
func (s *SQLiteStorage) SavePurchases(ctx context.Context, purchases []model.Purchase) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validatePurchases(purchases); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO purchases (
			id, hash, date, has_time, category, product, amount, necessity, usage_frequency
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, p := range purchases {
		if p.Hash == "" {
			p.Hash = p.GenerateHash()
		}
		if p.ID == "" {
			p.ID = p.Hash
		}

		result, execErr := stmt.ExecContext(ctx,
			p.ID,
			p.Hash,
			p.Date.Format(time.RFC3339),
			p.HasTime,
			p.Category,
			p.Product,
			p.Amount,
			p.Necessity,
			p.Usage,
		)
		if execErr != nil {
			return 0, fmt.Errorf("failed to save purchase %s: %w", p.ID, execErr)
		}

		if n, affectedErr := result.RowsAffected(); affectedErr == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return inserted, nil
}

// GetPurchases returns purchases matching the filter, newest first.
func (s *SQLiteStorage) GetPurchases(ctx context.Context, filter service.PurchaseFilter) ([]model.Purchase, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, hash, date, has_time, category, product, amount, necessity, usage_frequency
		FROM purchases`

	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.StartDate.Format(time.RFC3339))
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.EndDate.Format(time.RFC3339))
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var purchases []model.Purchase
	for rows.Next() {
		p, scanErr := scanPurchase(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchases: %w", err)
	}

	return purchases, nil
}

// CountPurchases returns the number of stored purchases.
func (s *SQLiteStorage) CountPurchases(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM purchases").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count purchases: %w", err)
	}
	return count, nil
}

// DeletePurchases removes all stored purchases.
func (s *SQLiteStorage) DeletePurchases(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM purchases"); err != nil {
		return fmt.Errorf("failed to delete purchases: %w", err)
	}
	return nil
}

func scanPurchase(rows *sql.Rows) (model.Purchase, error) {
	var p model.Purchase
	var date string

	if err := rows.Scan(
		&p.ID,
		&p.Hash,
		&date,
		&p.HasTime,
		&p.Category,
		&p.Product,
		&p.Amount,
		&p.Necessity,
		&p.Usage,
	); err != nil {
		return p, fmt.Errorf("failed to scan purchase: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return p, fmt.Errorf("failed to parse purchase date %q: %w", date, err)
	}
	p.Date = parsed

	return p, nil
}
