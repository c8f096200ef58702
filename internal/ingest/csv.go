// Package ingest reads purchase history CSV files into model records.
//
// Two schemas are supported and detected from the header row: the current
// format carries deliberation inputs (thinking_days, repurchase_intent) from
// which necessity is derived, and the legacy format carries a necessity column
// directly. Both resolve to the same canonical Purchase record.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/slzp03/BuyWise/internal/model"
	"github.com/slzp03/BuyWise/internal/scoring"
)

// Format identifies which CSV schema a file uses.
type Format int

const (
	// FormatUnknown means the header matched neither schema.
	FormatUnknown Format = iota
	// FormatNecessity is the legacy schema with a direct necessity column.
	FormatNecessity
	// FormatDeliberation is the current schema with thinking_days and
	// repurchase_intent columns.
	FormatDeliberation
)

// String returns a human-readable schema name.
func (f Format) String() string {
	switch f {
	case FormatNecessity:
		return "necessity"
	case FormatDeliberation:
		return "deliberation"
	default:
		return "unknown"
	}
}

// Column names of the canonical schema.
const (
	colDate       = "date"
	colCategory   = "category"
	colProduct    = "product_name"
	colAmount     = "amount"
	colNecessity  = "necessity"
	colThinking   = "thinking_days"
	colRepurchase = "repurchase_intent"
	colUsage      = "usage_frequency"
)

// ErrEmptyFile indicates a CSV with a header but no data rows.
var ErrEmptyFile = errors.New("csv file has no data rows")

// ErrUnknownFormat indicates a header matching neither supported schema.
var ErrUnknownFormat = errors.New("csv header matches no supported format: need either a necessity column or thinking_days and repurchase_intent columns")

// RowError reports a cell that failed validation or numeric coercion. It names
// the line and column so the caller can point the user at the bad data instead
// of silently scoring a zero.
type RowError struct {
	Err    error
	Column string
	Line   int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Date layouts accepted for the date column. Layouts with a clock component
// mark the purchase as having time-of-day information, which enables the
// late-night factor.
var dateLayouts = []struct {
	layout  string
	hasTime bool
}{
	{layout: "2006-01-02 15:04:05", hasTime: true},
	{layout: "2006-01-02 15:04", hasTime: true},
	{layout: time.RFC3339, hasTime: true},
	{layout: "2006-01-02", hasTime: false},
	{layout: "2006/01/02", hasTime: false},
}

var truthyRepurchase = map[string]bool{
	"예": true, "y": true, "yes": true, "1": true, "true": true, "o": true, "はい": true,
	"아니오": false, "n": false, "no": false, "0": false, "false": false, "x": false, "いいえ": false,
}

// DetectFormat inspects a normalized header and returns the schema it matches.
// The deliberation format wins when both necessity and deliberation columns
// are present.
func DetectFormat(header []string) Format {
	cols := make(map[string]bool, len(header))
	for _, h := range header {
		cols[normalizeHeader(h)] = true
	}

	if cols[colThinking] && cols[colRepurchase] {
		return FormatDeliberation
	}
	if cols[colNecessity] {
		return FormatNecessity
	}
	return FormatUnknown
}

// ReadFile reads and validates a purchase CSV from disk.
func ReadFile(path string) ([]model.Purchase, Format, error) {
	f, err := os.Open(path) // #nosec G304 -- user-supplied import path
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Read reads and validates a purchase CSV. Rows are returned newest first.
func Read(r io.Reader) ([]model.Purchase, Format, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, FormatUnknown, ErrEmptyFile
		}
		return nil, FormatUnknown, fmt.Errorf("failed to read csv header: %w", err)
	}

	format := DetectFormat(header)
	if format == FormatUnknown {
		return nil, FormatUnknown, ErrUnknownFormat
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[normalizeHeader(h)] = i
	}

	required := []string{colDate, colCategory, colAmount, colUsage}
	if format == FormatDeliberation {
		required = append(required, colThinking, colRepurchase)
	} else {
		required = append(required, colNecessity)
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, format, fmt.Errorf("missing required column %q", col)
		}
	}

	var purchases []model.Purchase
	line := 1
	for {
		record, readErr := cr.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, format, fmt.Errorf("failed to read csv: %w", readErr)
		}
		line++

		p, rowErr := parseRow(record, idx, format, line)
		if rowErr != nil {
			return nil, format, rowErr
		}
		purchases = append(purchases, p)
	}

	if len(purchases) == 0 {
		return nil, format, ErrEmptyFile
	}

	// Newest first, matching how the history is presented.
	sort.SliceStable(purchases, func(i, j int) bool {
		return purchases[i].Date.After(purchases[j].Date)
	})

	return purchases, format, nil
}

func parseRow(record []string, idx map[string]int, format Format, line int) (model.Purchase, error) {
	var p model.Purchase

	cell := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, hasTime, err := parseDate(cell(colDate))
	if err != nil {
		return p, &RowError{Line: line, Column: colDate, Err: err}
	}
	p.Date = date
	p.HasTime = hasTime

	p.Category = cell(colCategory)
	if p.Category == "" {
		return p, &RowError{Line: line, Column: colCategory, Err: errors.New("category is required")}
	}

	p.Product = cell(colProduct)
	if p.Product == "" {
		p.Product = p.Category
	}

	amount, err := parseAmount(cell(colAmount))
	if err != nil {
		return p, &RowError{Line: line, Column: colAmount, Err: err}
	}
	if amount < 0 {
		return p, &RowError{Line: line, Column: colAmount, Err: errors.New("amount must not be negative")}
	}
	p.Amount = amount

	usage, err := parseRating(cell(colUsage))
	if err != nil {
		return p, &RowError{Line: line, Column: colUsage, Err: err}
	}
	p.Usage = usage

	switch format {
	case FormatDeliberation:
		thinking, thinkErr := strconv.Atoi(cell(colThinking))
		if thinkErr != nil {
			return p, &RowError{Line: line, Column: colThinking, Err: fmt.Errorf("must be a whole number of days: %w", thinkErr)}
		}
		if thinking < 0 {
			return p, &RowError{Line: line, Column: colThinking, Err: errors.New("must not be negative")}
		}

		repurchase, ok := truthyRepurchase[strings.ToLower(cell(colRepurchase))]
		if !ok {
			return p, &RowError{Line: line, Column: colRepurchase, Err: fmt.Errorf("unrecognized value %q, use yes/no", cell(colRepurchase))}
		}

		p.Necessity = scoring.DeriveNecessity(thinking, repurchase)

	case FormatNecessity:
		necessity, necErr := parseRating(cell(colNecessity))
		if necErr != nil {
			return p, &RowError{Line: line, Column: colNecessity, Err: necErr}
		}
		p.Necessity = necessity

	case FormatUnknown:
		return p, ErrUnknownFormat
	}

	p.Hash = p.GenerateHash()
	p.ID = p.Hash

	return p, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
}

func parseDate(value string) (time.Time, bool, error) {
	if value == "" {
		return time.Time{}, false, errors.New("date is required")
	}
	for _, l := range dateLayouts {
		if d, err := time.Parse(l.layout, value); err == nil {
			return d, l.hasTime, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognized date %q, use YYYY-MM-DD", value)
}

// parseAmount coerces a currency cell to a number once, tolerating thousands
// separators and a leading currency symbol.
func parseAmount(value string) (float64, error) {
	if value == "" {
		return 0, errors.New("amount is required")
	}
	cleaned := strings.NewReplacer(",", "", "₩", "", "$", "", "¥", "").Replace(value)
	amount, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0, fmt.Errorf("must be numeric: %w", err)
	}
	return amount, nil
}

func parseRating(value string) (int, error) {
	rating, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("must be an integer between 1 and 5: %w", err)
	}
	if rating < 1 || rating > 5 {
		return 0, fmt.Errorf("must be between 1 and 5, got %d", rating)
	}
	return rating, nil
}
