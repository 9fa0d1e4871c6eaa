package store

import "database/sql"

// CardRow mirrors the card_market table joined with brand_categories.
// BrandCategory is NULL when the join finds no category for the card.
type CardRow struct {
	ID            int64
	BrandID       sql.NullInt64
	BrandName     sql.NullString
	Domain        sql.NullString
	BrandCategory sql.NullString
	CategoryID    sql.NullInt64
	Logo          sql.NullString
	Image         sql.NullString
	BodyImage     sql.NullString
	Type          sql.NullInt64
	Featured      sql.NullInt64
}

type BrandRow struct {
	ID              int64
	Domain          string
	BrandName       string
	BrandCategoryID int64
	BrandLogo       string
}
