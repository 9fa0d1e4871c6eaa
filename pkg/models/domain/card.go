package domain

const (
	// CardTypeCustom marks cards generated for brands discovered in a
	// user's receipts, as opposed to curated catalog cards.
	CardTypeCustom = 3
)

// Card is a catalog entry eligible for recommendation.
// Category is nil when the card has no assigned category; an empty string
// is a distinct, valid label. BodyImageURL is empty until art is
// synthesized for the card.
type Card struct {
	ID           int64
	BrandID      int64
	BrandName    string
	Domain       string
	Category     *string
	CategoryID   int64
	LogoURL      string
	ImageURL     string
	BodyImageURL string
	Type         int
	Featured     bool
}

// ScoredCard pairs a card with its computed relevance score. It exists
// only during ranking and is never persisted.
type ScoredCard struct {
	Card  Card
	Score float64
}

// Brand is a merchant known to the catalog, keyed by domain.
type Brand struct {
	ID         int64
	Domain     string
	Name       string
	CategoryID int64
	LogoURL    string
}
