package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/slzp03/BuyWise/internal/scoring"
)

// gradeColors maps interpretation color names to terminal colors.
var gradeColors = map[string]lipgloss.Color{
	"green":      lipgloss.Color("#4ECDC4"),
	"lightgreen": lipgloss.Color("#95E1D3"),
	"yellow":     lipgloss.Color("#FFE66D"),
	"orange":     lipgloss.Color("#FFA94D"),
	"red":        lipgloss.Color("#FF6B6B"),
	"darkred":    lipgloss.Color("#C92A2A"),
}

// GradeStyle returns a style colored for the given interpretation.
func GradeStyle(interp scoring.Interpretation) lipgloss.Style {
	color, ok := gradeColors[interp.Color]
	if !ok {
		color = SubtleColor
	}
	return lipgloss.NewStyle().Foreground(color)
}

// FormatAmount renders a monetary amount with thousands separators.
func FormatAmount(amount float64) string {
	whole := fmt.Sprintf("%.0f", amount)
	negative := strings.HasPrefix(whole, "-")
	if negative {
		whole = whole[1:]
	}

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}

// RenderScoreTable renders scored purchases as an aligned table, one row per
// purchase, colored by regret grade.
func RenderScoreTable(engine *scoring.Engine, rows []scoring.Scored) string {
	if len(rows) == 0 {
		return SubtleStyle.Render("No purchases to display.")
	}

	var b strings.Builder

	header := fmt.Sprintf("%-12s %-14s %-28s %12s %7s  %s",
		"DATE", "CATEGORY", "PRODUCT", "AMOUNT", "SCORE", "GRADE")
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, row := range rows {
		interp := engine.Interpret(row.Scores.Total)
		line := fmt.Sprintf("%-12s %-14s %-28s %12s %7.1f  %s %s",
			row.Purchase.Date.Format("2006-01-02"),
			truncate(row.Purchase.Category, 14),
			truncate(row.Purchase.Product, 28),
			FormatAmount(row.Purchase.Amount),
			row.Scores.Total,
			interp.Emoji,
			interp.Label)
		b.WriteString(GradeStyle(interp).Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderBreakdown renders one purchase's factor scores as labeled lines.
func RenderBreakdown(scores scoring.Breakdown) string {
	var b strings.Builder
	for _, factor := range scoring.Factors {
		value := scores.Get(factor)
		if value == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %-20s %5.1f\n", factor, value)
	}
	fmt.Fprintf(&b, "  %-20s %5.1f\n", "total", scores.Total)
	return b.String()
}

// RenderReport renders the portfolio aggregate as a styled summary box.
func RenderReport(p scoring.Portfolio) string {
	if p.Empty() {
		return SubtleStyle.Render("No purchases recorded yet.")
	}

	interp := p.Interpretation
	style := GradeStyle(interp)

	var b strings.Builder

	fmt.Fprintf(&b, "%s  Regret score: %s\n",
		interp.Emoji,
		style.Bold(true).Render(fmt.Sprintf("%.1f / 100 (%s)", p.AvgRegretScore, interp.Label)))
	b.WriteString(style.Render(interp.Message))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Purchases:        %d\n", p.TotalPurchases)
	fmt.Fprintf(&b, "Total spend:      %s\n", FormatAmount(p.TotalAmount))
	fmt.Fprintf(&b, "Regretted:        %d (%.1f%% of purchases, %.1f%% of spend)\n",
		p.RegretCount, p.RegretRatio, p.RegretAmountRatio)
	fmt.Fprintf(&b, "Regretted spend:  %s\n", FormatAmount(p.RegretAmount))
	fmt.Fprintf(&b, "Main cause:       %s (avg %.1f)\n", p.MainCause.Factor, p.MainCause.Score)

	b.WriteString("\n")
	b.WriteString(renderDistribution(p.Distribution))

	return RenderBox(ChartIcon+" Purchase Report", b.String())
}

func renderDistribution(d scoring.Distribution) string {
	total := d.Total()
	if total == 0 {
		return ""
	}

	buckets := []struct {
		label string
		count int
	}{
		{"Very satisfied", d.VerySatisfied},
		{"Satisfied", d.Satisfied},
		{"Neutral", d.Neutral},
		{"Regretful", d.Regretful},
		{"Very regretful", d.VeryRegretful},
	}

	var b strings.Builder
	for _, bucket := range buckets {
		width := bucket.count * 20 / total
		bar := strings.Repeat("█", width)
		fmt.Fprintf(&b, "%-16s %-20s %d\n", bucket.label, bar, bucket.count)
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
