package advisor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/slzp03/BuyWise/internal/scoring"
)

func systemMessage(lang Language) string {
	base := "You are a consumer-psychology expert and financial counselor with twenty years of experience. " +
		"You give warm, empathetic, and actionable advice based on purchase data."

	switch lang {
	case LanguageKO:
		return base + " Respond in Korean, using the polite 해요체 register."
	case LanguageJA:
		return base + " Respond in Japanese, using the polite です/ます register."
	default:
		return base + " Respond in English."
	}
}

func languageDirective(lang Language) string {
	switch lang {
	case LanguageKO:
		return "Important: write the entire response in Korean."
	case LanguageJA:
		return "Important: write the entire response in Japanese."
	default:
		return ""
	}
}

// buildFeedbackPrompt assembles the spending-psychology analysis prompt from
// the portfolio aggregate and the highest-regret purchases.
func buildFeedbackPrompt(p scoring.Portfolio, targets []scoring.Scored, lang Language) string {
	var b strings.Builder

	b.WriteString("# Purchase data\n\n")
	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "- Regret score: %.1f/100\n", p.AvgRegretScore)
	fmt.Fprintf(&b, "- Total purchases: %d\n", p.TotalPurchases)
	fmt.Fprintf(&b, "- Total spend: %.0f\n", p.TotalAmount)
	fmt.Fprintf(&b, "- Regretted purchase ratio: %.1f%%\n", p.RegretRatio)
	fmt.Fprintf(&b, "- Main regret cause: %s\n", p.MainCause.Factor)

	b.WriteString("\n## Most regretted purchases\n")
	if len(targets) == 0 {
		b.WriteString("(none)\n")
	}
	for i, row := range targets {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "%d. %s - %s (%.0f, regret score %.1f)\n",
			i+1, row.Purchase.Category, row.Purchase.Product, row.Purchase.Amount, row.Scores.Total)
	}

	b.WriteString(`
# Response format

Write in a friendly, empathetic tone. Use this structure:

## Your spending pattern at a glance
(Two or three sentences summarizing the overall pattern. State facts without blame.)

## Top 3 causes of regretted purchases
1. **[cause]**: [specific explanation and pattern analysis]
2. **[cause]**: [specific explanation and pattern analysis]
3. **[cause]**: [specific explanation and pattern analysis]

## Improvements you can start today
1. **[action]**: [an immediately practical tip]
2. **[action]**: [a habit change]
3. **[action]**: [a psychological approach]

## This month's challenge
**Goal**: [one specific, measurable goal]
**How**: [three small action items]

Guidelines: no blaming words, praise what went well first, be concrete with
numbers, keep the whole answer short.
`)

	if directive := languageDirective(lang); directive != "" {
		b.WriteString("\n" + directive + "\n")
	}

	return b.String()
}

// buildInsightsPrompt assembles the smart-insights prompt covering pattern
// classification, estimated repurchase rates, and savings opportunities.
func buildInsightsPrompt(p scoring.Portfolio, targets []scoring.Scored, categories map[string]CategoryStat, lang Language) string {
	var b strings.Builder

	b.WriteString("# Purchase data\n\n")
	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "- Regret score: %.1f/100\n", p.AvgRegretScore)
	fmt.Fprintf(&b, "- Total purchases: %d\n", p.TotalPurchases)
	fmt.Fprintf(&b, "- Total spend: %.0f\n", p.TotalAmount)

	b.WriteString("\n## Purchases under analysis\n")
	for i, row := range targets {
		fmt.Fprintf(&b, "%d. [%s] %s - %.0f (regret score %.0f, necessity %d, usage %d)\n",
			i+1, row.Purchase.Category, row.Purchase.Product, row.Purchase.Amount,
			row.Scores.Total, row.Purchase.Necessity, row.Purchase.Usage)
	}

	b.WriteString("\n## Spending by category\n")
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		stat := categories[name]
		fmt.Fprintf(&b, "- %s: %.0f (%d purchases)\n", name, stat.Amount, stat.Count)
	}

	b.WriteString(`
# Requested insights

Produce exactly these four sections:

## Spending pattern classification
Classify the psychology behind each listed purchase.
- **[product]** ([amount]): [pattern type] - [one-line explanation]
Pattern types: stress spending, planned essential, impulsive reward, habitual
repeat, social pressure, rational investment.

## Estimated repurchase rate
For each purchase, estimate how likely similar buyers are to buy it again.
- **[product]**: roughly XX% -> [one-line reading]
A low usage-to-necessity ratio means a low repurchase rate; use realistic numbers.

## Long-term savings effect
For each category, project the yearly savings from cutting spend by 30%.
- **[category]**: monthly average -> yearly savings if reduced 30% + [comment]

## Top 5 savings recommendations
Analyze the high-regret patterns and suggest concrete ways to cut the waste.
Include an estimated monthly saving for each.
1. **[title]**: [one or two practical sentences] -> estimated monthly saving

Stay concrete; include numbers and reasons.
`)

	if directive := languageDirective(lang); directive != "" {
		b.WriteString("\n" + directive + "\n")
	}

	return b.String()
}
