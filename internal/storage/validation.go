package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/slzp03/BuyWise/internal/model"
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context must not be nil")
	}
	return ctx.Err()
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", name)
	}
	return nil
}

func validatePurchases(purchases []model.Purchase) error {
	if len(purchases) == 0 {
		return errors.New("no purchases to save")
	}

	for i, p := range purchases {
		if p.Date.IsZero() {
			return fmt.Errorf("purchase %d has no date", i)
		}
		if p.Category == "" {
			return fmt.Errorf("purchase %d has no category", i)
		}
		if p.Amount < 0 {
			return fmt.Errorf("purchase %d has a negative amount", i)
		}
	}

	return nil
}
