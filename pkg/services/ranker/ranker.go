package ranker

import (
	"sort"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/pattern"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/scorer"
)

// DefaultLimit bounds the number of recommended cards per run.
const DefaultLimit = 3

// Rank scores every eligible catalog card against the spend aggregate and
// returns the top cards, highest score first. A card is eligible when its
// domain appears in the user's brand spending; only the first catalog card
// per domain is considered. Cards without an assigned category score 0.
//
// Candidates are walked in catalog encounter order and sorted with a
// stable sort, so equal scores keep catalog order. This is the tie-break
// policy: reruns over identical inputs produce identical sequences.
//
// Fewer than limit eligible cards returns all of them; an empty aggregate
// returns nil.
func Rank(agg pattern.Aggregate, cards []domain.Card, w scorer.Weights, limit int) []domain.ScoredCard {
	if agg.Empty() {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	seen := make(map[string]bool, len(cards))
	ranked := make([]domain.ScoredCard, 0, len(cards))

	for _, card := range cards {
		if _, spent := agg.BrandSpending[card.Domain]; !spent {
			continue
		}
		if seen[card.Domain] {
			continue
		}
		seen[card.Domain] = true

		var score float64
		if card.Category != nil {
			if s, err := scorer.Score(agg, card, w); err == nil {
				score = s
			}
		}
		ranked = append(ranked, domain.ScoredCard{Card: card, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
