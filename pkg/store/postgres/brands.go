package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/adapters"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/store"
)

type BrandStore struct {
	db *sql.DB
}

func NewBrandStore(db *sql.DB) (*BrandStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &BrandStore{db: db}, nil
}

func (s *BrandStore) GetByDomains(ctx context.Context, domains []string) ([]domain.Brand, error) {
	if len(domains) == 0 {
		return nil, nil
	}

	marks, args := placeholders(domains, 1)
	query := fmt.Sprintf(`
		SELECT id, domain, brand_name, brand_category_id, brand_logo
		FROM brand_details
		WHERE domain IN (%s)`, marks)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}
	defer rows.Close()

	var brands []domain.Brand
	for rows.Next() {
		var row store.BrandRow
		if err := rows.Scan(
			&row.ID,
			&row.Domain,
			&row.BrandName,
			&row.BrandCategoryID,
			&row.BrandLogo,
		); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, adapters.MapBrandRowToDomain(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brands: %w", err)
	}
	return brands, nil
}

func (s *BrandStore) Insert(ctx context.Context, brand domain.Brand) (int64, error) {
	row := adapters.MapDomainBrandToRow(brand)

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO brand_details (domain, brand_name, brand_category_id, brand_logo)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		row.Domain,
		row.BrandName,
		row.BrandCategoryID,
		row.BrandLogo,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert brand: %w", err)
	}
	return id, nil
}
