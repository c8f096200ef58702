package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Purchase represents a single purchase from any source (CSV import or manual entry).
type Purchase struct {
	Date     time.Time
	ID       string
	Category string
	Product  string // Defaults to Category when the source row has no product name
	Hash     string

	Amount    float64
	Necessity int // 1-5, supplied directly or derived from deliberation inputs
	Usage     int // 1-5, self-reported usage frequency

	// HasTime is true when the source row carried a clock component.
	// Date-only rows parse to midnight, which must not be mistaken for
	// an actual small-hours purchase.
	HasTime bool
}

// GenerateHash creates a unique hash for duplicate detection.
func (p *Purchase) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		p.Date.Format("2006-01-02 15:04:05"),
		p.Amount,
		p.Product,
		p.Category)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// ElapsedDays returns the number of whole days between the purchase date
// and the given reference date.
func (p *Purchase) ElapsedDays(ref time.Time) int {
	return int(ref.Sub(p.Date).Hours() / 24)
}
