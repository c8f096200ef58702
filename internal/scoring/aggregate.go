package scoring

// Distribution counts scored purchases in the five grade buckets:
// [0,20], (20,35], (35,50], (50,65], (65,100].
type Distribution struct {
	VerySatisfied int
	Satisfied     int
	Neutral       int
	Regretful     int
	VeryRegretful int
}

// Total returns the sum of all bucket counts.
func (d Distribution) Total() int {
	return d.VerySatisfied + d.Satisfied + d.Neutral + d.Regretful + d.VeryRegretful
}

// MainCause names the factor with the highest mean sub-score across the table.
type MainCause struct {
	Factor Factor
	Score  float64
}

// Portfolio is the aggregate diagnosis over a scored table. It is recomputed
// from scratch on every call and never persisted by the engine itself.
type Portfolio struct {
	Interpretation    Interpretation
	MainCause         MainCause
	Distribution      Distribution
	TotalPurchases    int
	TotalAmount       float64
	AvgRegretScore    float64
	RegretCount       int
	RegretAmount      float64
	RegretRatio       float64
	RegretAmountRatio float64
}

// Empty reports whether the portfolio is the "not computed" sentinel returned
// for tables with no scored rows.
func (p Portfolio) Empty() bool {
	return p.TotalPurchases == 0
}

// Aggregate computes portfolio-level statistics over a scored table. An empty
// table yields the zero-value sentinel so callers can show a "no data yet"
// state instead of handling an error.
func (e *Engine) Aggregate(rows []Scored) Portfolio {
	if len(rows) == 0 {
		return Portfolio{}
	}

	var p Portfolio
	p.TotalPurchases = len(rows)

	bounds := e.cfg.GradeBounds
	var scoreSum float64
	factorSums := make(map[Factor]float64, len(Factors))

	for _, row := range rows {
		total := row.Scores.Total
		scoreSum += total
		p.TotalAmount += row.Purchase.Amount

		switch {
		case total <= bounds[0]:
			p.Distribution.VerySatisfied++
		case total <= bounds[1]:
			p.Distribution.Satisfied++
		case total <= bounds[2]:
			p.Distribution.Neutral++
		case total <= bounds[3]:
			p.Distribution.Regretful++
		default:
			p.Distribution.VeryRegretful++
		}

		if total > e.cfg.RegretThreshold {
			p.RegretCount++
			p.RegretAmount += row.Purchase.Amount
		}

		for _, f := range Factors {
			factorSums[f] += row.Scores.Get(f)
		}
	}

	p.AvgRegretScore = round1(scoreSum / float64(len(rows)))
	p.RegretRatio = round1(float64(p.RegretCount) / float64(len(rows)) * 100)
	if p.TotalAmount > 0 {
		p.RegretAmountRatio = round1(p.RegretAmount / p.TotalAmount * 100)
	}

	// Arg-max over mean sub-scores; strict comparison keeps the first factor
	// in declaration order on exact ties.
	n := float64(len(rows))
	p.MainCause = MainCause{Factor: Factors[0], Score: factorSums[Factors[0]] / n}
	for _, f := range Factors[1:] {
		if mean := factorSums[f] / n; mean > p.MainCause.Score {
			p.MainCause = MainCause{Factor: f, Score: mean}
		}
	}
	p.MainCause.Score = round1(p.MainCause.Score)

	p.Interpretation = e.Interpret(p.AvgRegretScore)

	return p
}
