package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/adapters"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/store"
)

// CardStore reads and writes card_market rows. Reads join the category
// label so the scorer can normalize against category spending.
type CardStore struct {
	db *sql.DB
}

func NewCardStore(db *sql.DB) (*CardStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &CardStore{db: db}, nil
}

func (s *CardStore) GetByDomains(ctx context.Context, domains []string) ([]domain.Card, error) {
	if len(domains) == 0 {
		return nil, nil
	}

	marks, args := placeholders(domains, 1)
	query := fmt.Sprintf(`
		SELECT
			cm.id, cm."brandId", cm.brand_name, cm.domain,
			bc.brand_category, cm.category_id,
			cm.logo, cm.image, cm.body_image, cm.type, cm.featured
		FROM card_market cm
		LEFT JOIN brand_categories bc ON bc.id = cm.category_id
		WHERE cm.domain IN (%s)`, marks)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var row store.CardRow
		if err := rows.Scan(
			&row.ID,
			&row.BrandID,
			&row.BrandName,
			&row.Domain,
			&row.BrandCategory,
			&row.CategoryID,
			&row.Logo,
			&row.Image,
			&row.BodyImage,
			&row.Type,
			&row.Featured,
		); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, adapters.MapCardRowToDomain(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}

func (s *CardStore) Insert(ctx context.Context, card domain.Card) error {
	row := adapters.MapDomainCardToRow(card)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO card_market (
			brand_name, image, category, category_id, "brandId",
			type, domain, body_image, logo, featured
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		row.BrandName,
		row.Image,
		"",
		row.CategoryID,
		row.BrandID,
		row.Type,
		row.Domain,
		row.BodyImage,
		row.Logo,
		row.Featured,
	)
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

// UpdateBodyImage attaches synthesized artwork to a card. The write is
// keyed to a single card id, so concurrent backfills never touch each
// other's rows.
func (s *CardStore) UpdateBodyImage(ctx context.Context, cardID int64, url string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE card_market SET body_image = $1 WHERE id = $2",
		url, cardID,
	)
	if err != nil {
		return fmt.Errorf("update card %d body image: %w", cardID, err)
	}
	return nil
}
