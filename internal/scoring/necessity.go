package scoring

// DeriveNecessity converts deliberation inputs into a 1-5 necessity rating for
// sources that do not supply one directly.
//
// The base score comes from how long the buyer deliberated: a same-day purchase
// is treated as impulsive (1), up to a month or more of deliberation (4).
// Stated intent to buy again adds one point, capped at 5. Low necessity alone
// does not mean regret; regret comes from the gap against later usage.
func DeriveNecessity(thinkingDays int, repurchase bool) int {
	var base int
	switch {
	case thinkingDays == 0:
		base = 1
	case thinkingDays < 7:
		base = 2
	case thinkingDays < 30:
		base = 3
	default:
		base = 4
	}

	if repurchase {
		base++
		if base > 5 {
			base = 5
		}
	}

	return base
}
