package ranker

import (
	"testing"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/pattern"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/scorer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRank_SpecScenario(t *testing.T) {
	agg := pattern.Analyze([]domain.Receipt{
		{MerchantDomain: "a.com", CategoryLabel: "X", TotalCost: 100},
		{MerchantDomain: "b.com", CategoryLabel: "Y", TotalCost: 50},
	})
	cards := []domain.Card{
		{ID: 2, Domain: "b.com", Category: strPtr("Y")},
		{ID: 1, Domain: "a.com", Category: strPtr("X")},
	}

	ranked := Rank(agg, cards, scorer.DefaultWeights(), 3)

	require.Len(t, ranked, 2)
	assert.Equal(t, int64(1), ranked[0].Card.ID)
	assert.Equal(t, 1.0, ranked[0].Score)
	assert.Equal(t, int64(2), ranked[1].Card.ID)
	assert.Equal(t, 0.0, ranked[1].Score)
}

func TestRank_LimitAndOrdering(t *testing.T) {
	agg := pattern.Analyze([]domain.Receipt{
		{MerchantDomain: "a.com", CategoryLabel: "W", TotalCost: 10},
		{MerchantDomain: "b.com", CategoryLabel: "X", TotalCost: 20},
		{MerchantDomain: "c.com", CategoryLabel: "Y", TotalCost: 30},
		{MerchantDomain: "d.com", CategoryLabel: "Z", TotalCost: 40},
	})
	cards := []domain.Card{
		{ID: 1, Domain: "a.com", Category: strPtr("W")},
		{ID: 2, Domain: "b.com", Category: strPtr("X")},
		{ID: 3, Domain: "c.com", Category: strPtr("Y")},
		{ID: 4, Domain: "d.com", Category: strPtr("Z")},
	}

	ranked := Rank(agg, cards, scorer.DefaultWeights(), 3)

	require.Len(t, ranked, 3)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
	assert.Equal(t, int64(4), ranked[0].Card.ID)
}

func TestRank_FewerEligibleThanLimit(t *testing.T) {
	agg := pattern.Analyze([]domain.Receipt{
		{MerchantDomain: "a.com", CategoryLabel: "X", TotalCost: 10},
	})
	cards := []domain.Card{
		{ID: 1, Domain: "a.com", Category: strPtr("X")},
		{ID: 9, Domain: "other.com", Category: strPtr("X")},
	}

	ranked := Rank(agg, cards, scorer.DefaultWeights(), 3)

	require.Len(t, ranked, 1)
	assert.Equal(t, int64(1), ranked[0].Card.ID)
}

func TestRank_UncategorizedCardScoresZero(t *testing.T) {
	agg := pattern.Analyze([]domain.Receipt{
		{MerchantDomain: "a.com", CategoryLabel: "X", TotalCost: 100},
		{MerchantDomain: "b.com", CategoryLabel: "Y", TotalCost: 50},
	})
	cards := []domain.Card{
		{ID: 1, Domain: "a.com"}, // no category assigned
		{ID: 2, Domain: "b.com", Category: strPtr("Y")},
	}

	ranked := Rank(agg, cards, scorer.DefaultWeights(), 3)

	require.Len(t, ranked, 2)
	for _, sc := range ranked {
		if sc.Card.ID == 1 {
			assert.Equal(t, 0.0, sc.Score)
		}
	}
}

func TestRank_FirstCardPerDomainWins(t *testing.T) {
	agg := pattern.Analyze([]domain.Receipt{
		{MerchantDomain: "a.com", CategoryLabel: "X", TotalCost: 10},
	})
	cards := []domain.Card{
		{ID: 1, Domain: "a.com", Category: strPtr("X")},
		{ID: 2, Domain: "a.com", Category: strPtr("X")},
	}

	ranked := Rank(agg, cards, scorer.DefaultWeights(), 3)

	require.Len(t, ranked, 1)
	assert.Equal(t, int64(1), ranked[0].Card.ID)
}

func TestRank_Idempotent(t *testing.T) {
	agg := pattern.Analyze([]domain.Receipt{
		{MerchantDomain: "a.com", CategoryLabel: "X", TotalCost: 50},
		{MerchantDomain: "b.com", CategoryLabel: "X", TotalCost: 50},
		{MerchantDomain: "c.com", CategoryLabel: "X", TotalCost: 50},
	})
	// Identical scores everywhere: the tie-break must hold catalog order.
	cards := []domain.Card{
		{ID: 3, Domain: "c.com", Category: strPtr("X")},
		{ID: 1, Domain: "a.com", Category: strPtr("X")},
		{ID: 2, Domain: "b.com", Category: strPtr("X")},
	}

	first := Rank(agg, cards, scorer.DefaultWeights(), 3)
	second := Rank(agg, cards, scorer.DefaultWeights(), 3)

	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, int64(3), first[0].Card.ID)
	assert.Equal(t, int64(1), first[1].Card.ID)
	assert.Equal(t, int64(2), first[2].Card.ID)
}

func TestRank_EmptyAggregate(t *testing.T) {
	ranked := Rank(pattern.Analyze(nil), []domain.Card{{ID: 1, Domain: "a.com"}}, scorer.DefaultWeights(), 3)
	assert.Empty(t, ranked)
}
