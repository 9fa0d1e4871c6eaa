package recommender

import (
	"context"
	"fmt"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/cardart"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/pattern"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/ranker"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/scorer"
	"github.com/rs/zerolog"
)

type ReceiptStore interface {
	GetByUser(ctx context.Context, userID string) ([]domain.Receipt, error)
}

type CardStore interface {
	GetByDomains(ctx context.Context, domains []string) ([]domain.Card, error)
}

type RecommendationStore interface {
	Insert(ctx context.Context, rec domain.Recommendation) error
}

type ArtSynthesizer interface {
	Backfill(ctx context.Context, cards []domain.Card) []cardart.Result
}

type Config struct {
	Weights scorer.Weights
	Limit   int
}

// Service orchestrates one recommendation run: receipts to aggregates to
// ranked cards to the persisted recommendation, plus the art backfill for
// selected cards that lack a body image. All store handles are injected,
// so tests can substitute doubles.
type Service struct {
	receipts ReceiptStore
	cards    CardStore
	recs     RecommendationStore
	art      ArtSynthesizer
	weights  scorer.Weights
	limit    int
}

func NewService(
	receipts ReceiptStore,
	cards CardStore,
	recs RecommendationStore,
	art ArtSynthesizer,
	cfg Config,
) *Service {
	limit := cfg.Limit
	if limit <= 0 {
		limit = ranker.DefaultLimit
	}
	return &Service{
		receipts: receipts,
		cards:    cards,
		recs:     recs,
		art:      art,
		weights:  cfg.Weights,
		limit:    limit,
	}
}

// Recommend runs the full pipeline for one user. Persistence failures
// are logged and non-fatal: the run favors partial completion over
// all-or-nothing failure.
func (s *Service) Recommend(ctx context.Context, userID string) (domain.Recommendation, error) {
	logger := zerolog.Ctx(ctx).With().Str("user_id", userID).Logger()
	ctx = logger.WithContext(ctx)

	receipts, err := s.receipts.GetByUser(ctx, userID)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("fetch receipts: %w", err)
	}

	domains := domain.UniqueMerchantDomains(receipts)

	var cards []domain.Card
	if len(domains) > 0 {
		cards, err = s.cards.GetByDomains(ctx, domains)
		if err != nil {
			return domain.Recommendation{}, fmt.Errorf("fetch cards: %w", err)
		}
	}
	logger.Info().
		Int("receipts", len(receipts)).
		Int("cards", len(cards)).
		Msg("scoring catalog cards")

	agg := pattern.Analyze(receipts)
	ranked := ranker.Rank(agg, cards, s.weights, s.limit)

	rec := domain.Recommendation{
		UserID:  userID,
		CardIDs: make([]int64, 0, len(ranked)),
	}
	for _, sc := range ranked {
		rec.CardIDs = append(rec.CardIDs, sc.Card.ID)
	}

	if err := s.recs.Insert(ctx, rec); err != nil {
		logger.Error().Err(err).Msg("unable to insert recommendation")
	}

	selected := make([]domain.Card, 0, len(ranked))
	for _, sc := range ranked {
		selected = append(selected, sc.Card)
	}
	for _, res := range s.art.Backfill(ctx, selected) {
		if res.Err == nil && !res.Skipped {
			logger.Info().Int64("card_id", res.CardID).Str("url", res.URL).Msg("card art backfilled")
		}
	}

	return rec, nil
}
