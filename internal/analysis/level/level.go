package level

// Kind marks which side of price a level acts on.
type Kind string

const (
	KindSupport    Kind = "support"
	KindResistance Kind = "resistance"
)

// Grade buckets a level score for the probability scorer.
type Grade string

const (
	GradeStrong Grade = "STRONG"
	GradeMedium Grade = "MEDIUM"
	GradeWeak   Grade = "WEAK"
)

// Score thresholds for grading. Scores produced here live on a local
// scale that is intentionally not comparable to externally supplied
// (live) level scores; do not rescale one onto the other.
const (
	strongMinScore = 3.0
	mediumMinScore = 1.0
)

// Level is a merged swing high/low. Immutable once scored: the engine
// recomputes the full set per analysis snapshot instead of mutating.
type Level struct {
	Price     float64
	Kind      Kind
	Touches   int
	AgeInBars int
	Score     float64
}

// Grade derives the trade-strength bucket from the score.
func (l Level) Grade() Grade {
	switch {
	case l.Score >= strongMinScore:
		return GradeStrong
	case l.Score >= mediumMinScore:
		return GradeMedium
	default:
		return GradeWeak
	}
}

// Nearest returns the level of the given kind closest to price. Ties on
// distance break toward the lower price so lookups stay deterministic.
func Nearest(levels []Level, kind Kind, price float64) (Level, bool) {
	var best Level
	found := false
	for _, l := range levels {
		if l.Kind != kind {
			continue
		}
		if !found {
			best, found = l, true
			continue
		}
		d, bd := absDiff(l.Price, price), absDiff(best.Price, price)
		if d < bd || (d == bd && l.Price < best.Price) {
			best = l
		}
	}
	return best, found
}

// StrongWithin reports whether a STRONG level of the given kind sits
// within pct (fractional) of price.
func StrongWithin(levels []Level, kind Kind, price, pct float64) (Level, bool) {
	if price <= 0 {
		return Level{}, false
	}
	var best Level
	found := false
	for _, l := range levels {
		if l.Kind != kind || l.Grade() != GradeStrong {
			continue
		}
		if absDiff(l.Price, price)/price > pct {
			continue
		}
		if !found || absDiff(l.Price, price) < absDiff(best.Price, price) ||
			(absDiff(l.Price, price) == absDiff(best.Price, price) && l.Price < best.Price) {
			best, found = l, true
		}
	}
	return best, found
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
