package scorer

import (
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/pattern"
)

// Weights tune the two scoring signals. Alpha weighs brand-specific
// spending, Beta weighs category-specific spending.
type Weights struct {
	Alpha float64
	Beta  float64
}

// DefaultWeights disables the brand signal; category relevance carries
// the full score.
func DefaultWeights() Weights {
	return Weights{Alpha: 0.0, Beta: 1.0}
}

// Score computes a card's relevance to the user's spending patterns.
// It is a pure function of its inputs: identical aggregates and card data
// always produce the same score. Both component scores are normalized
// against the aggregate bounds and clamped to [0,1] before weighting.
// Scoring against an empty aggregate returns ErrEmptyAggregate; callers
// short-circuit to a zero score.
func Score(agg pattern.Aggregate, card domain.Card, w Weights) (float64, error) {
	if agg.Empty() {
		return 0, pattern.ErrEmptyAggregate
	}

	brandScore := normalize(agg.BrandSpending, card.Domain, agg.MinBrand, agg.MaxBrand)

	var categoryScore float64
	if card.Category != nil {
		categoryScore = normalize(agg.CategorySpending, *card.Category, agg.MinCategory, agg.MaxCategory)
	}

	return w.Alpha*brandScore + w.Beta*categoryScore, nil
}

// normalize maps a spend value into [0,1] against its bounds. When the
// bounds collapse to a single value the division is skipped entirely:
// any key present in the mapping is, by definition, at the sole spend
// level and scores 1.0.
func normalize(spending map[string]float64, key string, lo, hi float64) float64 {
	spend, ok := spending[key]
	if !ok {
		return 0
	}
	if hi == lo {
		return 1.0
	}
	return clamp01((spend - lo) / (hi - lo))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
