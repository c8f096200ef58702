package scoring

import (
	"math"
	"time"

	"github.com/slzp03/BuyWise/internal/model"
)

// Breakdown is the fixed-shape result of scoring one purchase: the seven named
// sub-scores plus the clamped total. Sub-scores are not rescaled when their sum
// exceeds 100; only the total is capped.
type Breakdown struct {
	NecessityGap       float64
	TimeDecay          float64
	PriceWeight        float64
	Recency            float64
	CategoryRepetition float64
	LateNight          float64
	ImpulsePattern     float64
	Total              float64
}

// Get returns the sub-score for the named factor.
func (b Breakdown) Get(f Factor) float64 {
	switch f {
	case FactorNecessityGap:
		return b.NecessityGap
	case FactorTimeDecay:
		return b.TimeDecay
	case FactorPriceWeight:
		return b.PriceWeight
	case FactorRecency:
		return b.Recency
	case FactorCategoryRepetition:
		return b.CategoryRepetition
	case FactorLateNight:
		return b.LateNight
	case FactorImpulsePattern:
		return b.ImpulsePattern
	default:
		return 0
	}
}

// Scored pairs a purchase with its score breakdown.
type Scored struct {
	Purchase model.Purchase
	Scores   Breakdown
}

// Engine scores purchases against a Config. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates a scoring engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// tableContext holds the dataset-wide statistics the per-factor scorers need.
// It is rebuilt from the current table on every scoring pass; nothing is cached
// across calls because adding or removing a row changes every other row's
// context-dependent sub-scores.
type tableContext struct {
	categoryDates map[string][]time.Time
	allDates      []time.Time
	avgAmount     float64
	maxAmount     float64
}

func newTableContext(purchases []model.Purchase) tableContext {
	ctx := tableContext{
		categoryDates: make(map[string][]time.Time),
		allDates:      make([]time.Time, 0, len(purchases)),
	}

	var sum float64
	for _, p := range purchases {
		sum += p.Amount
		if p.Amount > ctx.maxAmount {
			ctx.maxAmount = p.Amount
		}
		ctx.categoryDates[p.Category] = append(ctx.categoryDates[p.Category], p.Date)
		ctx.allDates = append(ctx.allDates, p.Date)
	}

	if len(purchases) > 0 {
		ctx.avgAmount = sum / float64(len(purchases))
	}

	return ctx
}

// Score computes the breakdown for a single purchase against the full table it
// belongs to. The reference date supplies "now" for elapsed-day computations,
// keeping results reproducible.
func (e *Engine) Score(p model.Purchase, table []model.Purchase, ref time.Time) Breakdown {
	return e.score(p, newTableContext(table), ref)
}

func (e *Engine) score(p model.Purchase, ctx tableContext, ref time.Time) Breakdown {
	necessity := clampRating(p.Necessity)
	usage := clampRating(p.Usage)
	elapsed := p.ElapsedDays(ref)

	var b Breakdown
	if !e.cfg.IsFoodCategory(p.Category) {
		b.NecessityGap = e.NecessityGap(necessity, usage)
		b.TimeDecay = e.TimeDecay(elapsed, usage)
	}
	b.PriceWeight = e.PriceWeight(p.Amount, ctx.avgAmount, ctx.maxAmount)
	b.Recency = e.Recency(elapsed)
	b.CategoryRepetition = e.CategoryRepetition(p.Date, ctx.categoryDates[p.Category])
	b.LateNight = e.LateNight(p)
	b.ImpulsePattern = e.ImpulsePattern(p.Date, ctx.allDates)

	total := b.NecessityGap + b.TimeDecay + b.PriceWeight + b.Recency +
		b.CategoryRepetition + b.LateNight + b.ImpulsePattern
	b.Total = math.Min(total, 100)

	return b
}

// ScoreAll scores every purchase in the table, preserving row order. The
// dataset statistics are computed once from this snapshot and shared across
// rows.
func (e *Engine) ScoreAll(purchases []model.Purchase, ref time.Time) []Scored {
	ctx := newTableContext(purchases)

	scored := make([]Scored, len(purchases))
	for i, p := range purchases {
		scored[i] = Scored{Purchase: p, Scores: e.score(p, ctx, ref)}
	}

	return scored
}

func clampRating(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
