package scoring

// Grade is one of the six ordinal satisfaction tiers.
type Grade string

const (
	// GradeVerySatisfied covers scores up to 20.
	GradeVerySatisfied Grade = "very_satisfied"
	// GradeSatisfied covers scores up to 35.
	GradeSatisfied Grade = "satisfied"
	// GradeNeutral covers scores up to 50.
	GradeNeutral Grade = "neutral"
	// GradeDisappointed covers scores up to 65.
	GradeDisappointed Grade = "disappointed"
	// GradeRegretful covers scores up to 80.
	GradeRegretful Grade = "regretful"
	// GradeVeryRegretful covers scores above 80.
	GradeVeryRegretful Grade = "very_regretful"
)

// Interpretation is the human-facing rendering of a score: grade, color token,
// and a short guidance message. Presentation layers consume it verbatim.
type Interpretation struct {
	Grade   Grade
	Label   string
	Emoji   string
	Color   string
	Message string
}

var interpretations = []Interpretation{
	{
		Grade:   GradeVerySatisfied,
		Label:   "Very Satisfied",
		Emoji:   "🟢",
		Color:   "green",
		Message: "Excellent purchase! Money well spent.",
	},
	{
		Grade:   GradeSatisfied,
		Label:   "Satisfied",
		Emoji:   "🟡",
		Color:   "lightgreen",
		Message: "A decent purchase. Mostly satisfying.",
	},
	{
		Grade:   GradeNeutral,
		Label:   "Neutral",
		Emoji:   "🟡",
		Color:   "yellow",
		Message: "An unremarkable purchase. A bit more deliberation would help.",
	},
	{
		Grade:   GradeDisappointed,
		Label:   "Disappointed",
		Emoji:   "🟠",
		Color:   "orange",
		Message: "A disappointing purchase. Decide more carefully next time.",
	},
	{
		Grade:   GradeRegretful,
		Label:   "Regretful",
		Emoji:   "🔴",
		Color:   "red",
		Message: "A regretted purchase. Think again about why you bought it.",
	},
	{
		Grade:   GradeVeryRegretful,
		Label:   "Very Regretful",
		Emoji:   "🔴",
		Color:   "darkred",
		Message: "A deeply regretted purchase. The impulse-buying pattern needs work.",
	},
}

// Interpret maps a numeric score to its grade tier. The first five tier bounds
// come from the engine config; bounds are inclusive, so a score of exactly 20
// still reads as very satisfied.
func (e *Engine) Interpret(score float64) Interpretation {
	for i, bound := range e.cfg.GradeBounds {
		if score <= bound {
			return interpretations[i]
		}
	}
	return interpretations[len(interpretations)-1]
}
