package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/adapters"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/store"
)

const receiptColumns = "id, user_id, session_id, company, brand_category, total_cost"

// ReceiptStore reads structured receipt rows produced by the mail
// ingestion pipeline. Rows are read-only here.
type ReceiptStore struct {
	db *sql.DB
}

func NewReceiptStore(db *sql.DB) (*ReceiptStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &ReceiptStore{db: db}, nil
}

func (s *ReceiptStore) GetByUser(ctx context.Context, userID string) ([]domain.Receipt, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM receipt_radar_structured_data_duplicate WHERE user_id = $1",
		receiptColumns,
	)
	return s.query(ctx, query, userID)
}

func (s *ReceiptStore) GetBySession(ctx context.Context, sessionID string) ([]domain.Receipt, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM receipt_radar_structured_data_duplicate WHERE session_id = $1",
		receiptColumns,
	)
	return s.query(ctx, query, sessionID)
}

func (s *ReceiptStore) query(ctx context.Context, query string, arg any) ([]domain.Receipt, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}
	defer rows.Close()

	var receipts []domain.Receipt
	for rows.Next() {
		var row store.ReceiptRow
		if err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.SessionID,
			&row.Company,
			&row.BrandCategory,
			&row.TotalCost,
		); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		receipts = append(receipts, adapters.MapReceiptRowToDomain(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receipts: %w", err)
	}
	return receipts, nil
}
