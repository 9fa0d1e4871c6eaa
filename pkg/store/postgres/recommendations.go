package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
)

// RecommendationStore appends recommendation records. Card ids are
// serialized as a JSON array; records are insert-only, one per run.
type RecommendationStore struct {
	db *sql.DB
}

func NewRecommendationStore(db *sql.DB) (*RecommendationStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &RecommendationStore{db: db}, nil
}

func (s *RecommendationStore) Insert(ctx context.Context, rec domain.Recommendation) error {
	cardIDs := rec.CardIDs
	if cardIDs == nil {
		cardIDs = []int64{}
	}
	payload, err := json.Marshal(cardIDs)
	if err != nil {
		return fmt.Errorf("marshal card ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO recommended_cards (user_id, card_ids) VALUES ($1, $2)",
		rec.UserID, payload,
	)
	if err != nil {
		return fmt.Errorf("insert recommendation: %w", err)
	}
	return nil
}
