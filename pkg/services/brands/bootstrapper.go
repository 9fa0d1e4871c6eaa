package brands

import (
	"context"
	"fmt"
	"time"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/logo"
	"github.com/rs/zerolog"
)

// defaultCategoryID is assigned to bootstrapped brands until a real
// category is classified upstream.
const defaultCategoryID = 1

type BrandStore interface {
	GetByDomains(ctx context.Context, domains []string) ([]domain.Brand, error)
	Insert(ctx context.Context, brand domain.Brand) (int64, error)
}

type CardWriter interface {
	Insert(ctx context.Context, card domain.Card) error
}

type LogoProvider interface {
	Search(ctx context.Context, domain string) (string, error)
	ImageURL(domain string) string
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Bootstrapper creates catalog entries for merchant domains seen in
// receipts that are not yet known brands: it resolves a display name,
// stores the brand logo, inserts the brand row, and creates a custom
// card for it.
type Bootstrapper struct {
	brands BrandStore
	cards  CardWriter
	logos  LogoProvider
	blobs  BlobStore
	now    func() time.Time
}

func NewBootstrapper(brands BrandStore, cards CardWriter, logos LogoProvider, blobs BlobStore) *Bootstrapper {
	return &Bootstrapper{
		brands: brands,
		cards:  cards,
		logos:  logos,
		blobs:  blobs,
		now:    time.Now,
	}
}

// EnsureBrands creates brand and custom-card rows for every domain not
// yet present in the catalog. Each domain is best-effort: a failure is
// logged and the remaining domains still get their attempt.
func (b *Bootstrapper) EnsureBrands(ctx context.Context, domains []string) error {
	logger := zerolog.Ctx(ctx)

	existing, err := b.brands.GetByDomains(ctx, domains)
	if err != nil {
		return fmt.Errorf("fetch existing brands: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, brand := range existing {
		known[brand.Domain] = true
	}

	for _, d := range domains {
		if d == "" || known[d] {
			continue
		}
		if err := b.bootstrap(ctx, d); err != nil {
			logger.Error().Err(err).Str("domain", d).Msg("unable to create brand")
			continue
		}
		logger.Info().Str("domain", d).Msg("brand and custom card created")
	}
	return nil
}

func (b *Bootstrapper) bootstrap(ctx context.Context, d string) error {
	name, err := b.logos.Search(ctx, d)
	if err != nil || name == "" {
		name = logo.FallbackName(d)
	}

	logoBytes, err := b.logos.FetchImage(ctx, b.logos.ImageURL(d))
	if err != nil {
		return fmt.Errorf("fetch brand logo: %w", err)
	}

	key := fmt.Sprintf("%s_%s.jpg", d, b.now().UTC().Format("20060102_150405"))
	logoURL, err := b.blobs.Upload(ctx, key, logoBytes, "image/jpeg")
	if err != nil {
		return fmt.Errorf("upload brand logo: %w", err)
	}

	brand := domain.Brand{
		Domain:     d,
		Name:       name,
		CategoryID: defaultCategoryID,
		LogoURL:    logoURL,
	}
	brandID, err := b.brands.Insert(ctx, brand)
	if err != nil {
		return fmt.Errorf("insert brand: %w", err)
	}

	if err := b.cards.Insert(ctx, customCard(brandID, brand)); err != nil {
		return fmt.Errorf("insert custom card: %w", err)
	}
	return nil
}

// customCard builds the generated catalog entry for a bootstrapped
// brand: the brand logo doubles as the market icon, and the body image
// stays empty until the art synthesizer backfills it.
func customCard(brandID int64, brand domain.Brand) domain.Card {
	return domain.Card{
		BrandID:    brandID,
		BrandName:  brand.Name,
		Domain:     brand.Domain,
		CategoryID: brand.CategoryID,
		LogoURL:    brand.LogoURL,
		ImageURL:   brand.LogoURL,
		Type:       domain.CardTypeCustom,
		Featured:   true,
	}
}
