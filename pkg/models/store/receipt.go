package store

import "database/sql"

type ReceiptRow struct {
	ID            int64
	UserID        sql.NullString
	SessionID     sql.NullString
	Company       sql.NullString
	BrandCategory sql.NullString
	TotalCost     sql.NullFloat64
}
