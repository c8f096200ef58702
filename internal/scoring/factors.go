package scoring

import (
	"math"
	"time"

	"github.com/slzp03/BuyWise/internal/model"
)

// Factor names one of the seven sub-scores.
type Factor string

const (
	// FactorNecessityGap is the necessity-vs-usage gap, the primary regret driver.
	FactorNecessityGap Factor = "necessity_gap"
	// FactorTimeDecay penalizes old purchases that still see little use.
	FactorTimeDecay Factor = "time_decay"
	// FactorPriceWeight weights expensive purchases relative to the dataset.
	FactorPriceWeight Factor = "price_weight"
	// FactorRecency flags very recent purchases as impulse-buy suspects.
	FactorRecency Factor = "recency"
	// FactorCategoryRepetition detects clustered same-category buying.
	FactorCategoryRepetition Factor = "category_repetition"
	// FactorLateNight penalizes small-hours purchases.
	FactorLateNight Factor = "late_night"
	// FactorImpulsePattern detects same-day and short-window buying sprees.
	FactorImpulsePattern Factor = "impulse_pattern"
)

// Factors lists all sub-scores in declaration order. The aggregator's main-cause
// arg-max breaks ties by this order, first seen wins.
var Factors = []Factor{
	FactorNecessityGap,
	FactorTimeDecay,
	FactorPriceWeight,
	FactorRecency,
	FactorCategoryRepetition,
	FactorLateNight,
	FactorImpulsePattern,
}

// NecessityGap scores the gap between declared necessity and actual usage
// frequency (0-30). A purchase used as much as it was needed scores 0; each
// point of unused necessity raises the score on a monotonic step curve.
func (e *Engine) NecessityGap(necessity, usage int) float64 {
	gap := necessity - usage

	switch {
	case gap <= 0:
		return 0
	case gap == 1:
		return 5
	case gap == 2:
		return 12
	case gap == 3:
		return 20
	default: // gap >= 4
		return 30
	}
}

// TimeDecay scores low usage against elapsed time (0-15). The first week is
// too early to judge. After that, a time weight grows with age and multiplies
// a usage penalty normalized to [0,1].
func (e *Engine) TimeDecay(elapsedDays, usage int) float64 {
	if elapsedDays < 7 {
		return 0
	}

	var timeWeight float64
	switch {
	case elapsedDays < 30:
		timeWeight = 0.3
	case elapsedDays < 90:
		timeWeight = 0.6
	case elapsedDays < 180:
		timeWeight = 0.9
	default:
		timeWeight = 1.2
	}

	usagePenalty := float64(5-usage) / 4

	return math.Min(usagePenalty*timeWeight*12, 15)
}

// PriceWeight scores the psychological burden of an expensive purchase (0-20)
// relative to the dataset's mean and maximum amounts. Amounts at or below the
// small-purchase floor carry a fixed minimal weight.
func (e *Engine) PriceWeight(amount, avgAmount, maxAmount float64) float64 {
	if amount <= e.cfg.SmallPurchaseFloor {
		return 2
	}

	priceRatio := 1.0
	if avgAmount > 0 {
		priceRatio = amount / avgAmount
	}

	maxRatio := 0.0
	if maxAmount > 0 {
		maxRatio = amount / maxAmount
	}

	// Log scale keeps very large amounts from dominating.
	logAmount := math.Log10(amount / 1000)

	return math.Min(priceRatio*4+maxRatio*6+logAmount*2, 20)
}

// Recency scores how recent the purchase is (0-10). Very recent purchases are
// impulse-buy suspects regardless of usage; after a month the factor drops out.
func (e *Engine) Recency(elapsedDays int) float64 {
	switch {
	case elapsedDays <= 3:
		return 8
	case elapsedDays <= 7:
		return 6
	case elapsedDays <= 14:
		return 4
	case elapsedDays <= 30:
		return 2
	default:
		return 0
	}
}

// CategoryRepetition scores clustered same-category purchases (0-15) by
// counting purchases of the same category within 30 days either side of this
// one, excluding the purchase itself.
func (e *Engine) CategoryRepetition(purchaseDate time.Time, categoryDates []time.Time) float64 {
	if len(categoryDates) <= 1 {
		return 0
	}

	nearby := 0
	for _, d := range categoryDates {
		if d.Equal(purchaseDate) {
			continue
		}
		days := int(math.Abs(d.Sub(purchaseDate).Hours()) / 24)
		if days <= 30 {
			nearby++
		}
	}

	switch {
	case nearby >= 3:
		return 15
	case nearby == 2:
		return 10
	case nearby == 1:
		return 5
	default:
		return 0
	}
}

// LateNight scores small-hours purchases (0-10). Rows without a clock
// component score 0; absent data is never penalized.
func (e *Engine) LateNight(p model.Purchase) float64 {
	if !p.HasTime {
		return 0
	}

	switch hour := p.Date.Hour(); {
	case hour < 5:
		return 10
	case hour == 23:
		return 7
	case hour >= 21:
		return 4
	default:
		return 0
	}
}

// ImpulsePattern scores buying sprees (0-10). Multiple purchases on the same
// calendar day short-circuit; otherwise purchases in the trailing three-day
// window are counted.
func (e *Engine) ImpulsePattern(purchaseDate time.Time, allDates []time.Time) float64 {
	y, m, d := purchaseDate.Date()

	sameDay := 0
	for _, other := range allDates {
		oy, om, od := other.Date()
		if oy == y && om == m && od == d {
			sameDay++
		}
	}

	// sameDay includes the purchase itself.
	switch {
	case sameDay >= 4:
		return 10
	case sameDay == 3:
		return 7
	case sameDay == 2:
		return 4
	}

	trailing := 0
	for _, other := range allDates {
		if other.Equal(purchaseDate) {
			continue
		}
		delta := purchaseDate.Sub(other)
		if delta >= 0 && int(delta.Hours()/24) <= 3 {
			trailing++
		}
	}

	switch {
	case trailing >= 5:
		return 8
	case trailing >= 3:
		return 5
	case trailing >= 2:
		return 3
	default:
		return 0
	}
}
