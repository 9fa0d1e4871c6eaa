package adapters

import (
	"database/sql"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/store"
)

func MapReceiptRowToDomain(row store.ReceiptRow) domain.Receipt {
	return domain.Receipt{
		ID:             row.ID,
		UserID:         row.UserID.String,
		SessionID:      row.SessionID.String,
		MerchantDomain: row.Company.String,
		CategoryLabel:  row.BrandCategory.String,
		TotalCost:      row.TotalCost.Float64,
	}
}

func MapCardRowToDomain(row store.CardRow) domain.Card {
	card := domain.Card{
		ID:           row.ID,
		BrandID:      row.BrandID.Int64,
		BrandName:    row.BrandName.String,
		Domain:       row.Domain.String,
		CategoryID:   row.CategoryID.Int64,
		LogoURL:      row.Logo.String,
		ImageURL:     row.Image.String,
		BodyImageURL: row.BodyImage.String,
		Type:         int(row.Type.Int64),
		Featured:     row.Featured.Int64 != 0,
	}
	if row.BrandCategory.Valid {
		label := row.BrandCategory.String
		card.Category = &label
	}
	return card
}

func MapDomainCardToRow(card domain.Card) store.CardRow {
	row := store.CardRow{
		ID:         card.ID,
		BrandID:    sql.NullInt64{Int64: card.BrandID, Valid: card.BrandID != 0},
		BrandName:  sql.NullString{String: card.BrandName, Valid: card.BrandName != ""},
		Domain:     sql.NullString{String: card.Domain, Valid: card.Domain != ""},
		CategoryID: sql.NullInt64{Int64: card.CategoryID, Valid: card.CategoryID != 0},
		Logo:       sql.NullString{String: card.LogoURL, Valid: card.LogoURL != ""},
		Image:      sql.NullString{String: card.ImageURL, Valid: card.ImageURL != ""},
		BodyImage:  sql.NullString{String: card.BodyImageURL, Valid: card.BodyImageURL != ""},
		Type:       sql.NullInt64{Int64: int64(card.Type), Valid: true},
	}
	if card.Category != nil {
		row.BrandCategory = sql.NullString{String: *card.Category, Valid: true}
	}
	if card.Featured {
		row.Featured = sql.NullInt64{Int64: 1, Valid: true}
	} else {
		row.Featured = sql.NullInt64{Int64: 0, Valid: true}
	}
	return row
}

func MapBrandRowToDomain(row store.BrandRow) domain.Brand {
	return domain.Brand{
		ID:         row.ID,
		Domain:     row.Domain,
		Name:       row.BrandName,
		CategoryID: row.BrandCategoryID,
		LogoURL:    row.BrandLogo,
	}
}

func MapDomainBrandToRow(brand domain.Brand) store.BrandRow {
	return store.BrandRow{
		ID:              brand.ID,
		Domain:          brand.Domain,
		BrandName:       brand.Name,
		BrandCategoryID: brand.CategoryID,
		BrandLogo:       brand.LogoURL,
	}
}
