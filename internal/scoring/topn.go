package scoring

import "sort"

// TopByScore returns up to n scored purchases with the highest total scores.
// Sorting is stable, so equal scores keep their table order.
func TopByScore(rows []Scored, n int) []Scored {
	sorted := make([]Scored, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Scores.Total > sorted[j].Scores.Total
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// TopByAmount returns up to n scored purchases with the highest amounts.
func TopByAmount(rows []Scored, n int) []Scored {
	sorted := make([]Scored, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Purchase.Amount > sorted[j].Purchase.Amount
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// AdviceTargets selects the union of the top byScore purchases by regret score
// and the top byAmount purchases by amount, deduplicated by row identity.
// Results come back in table order.
func AdviceTargets(rows []Scored, byScore, byAmount int) []Scored {
	selected := make(map[int]bool, byScore+byAmount)

	mark := func(picks []Scored) {
		for _, pick := range picks {
			for i := range rows {
				if !selected[i] && rows[i] == pick {
					selected[i] = true
					break
				}
			}
		}
	}
	mark(TopByScore(rows, byScore))
	mark(TopByAmount(rows, byAmount))

	targets := make([]Scored, 0, len(selected))
	for i := range rows {
		if selected[i] {
			targets = append(targets, rows[i])
		}
	}
	return targets
}
