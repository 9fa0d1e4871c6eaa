package cardart

import (
	"context"
	"fmt"
	"time"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds the art-backfill fan-out.
const DefaultWorkers = 3

type LogoFetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type CardCatalog interface {
	UpdateBodyImage(ctx context.Context, cardID int64, url string) error
}

type Config struct {
	Workers int
}

// Synthesizer backfills missing card artwork: it extracts a dominant
// color from the card's logo, renders a branded background, uploads it,
// and writes the public URL back onto the card.
type Synthesizer struct {
	logos   LogoFetcher
	blobs   BlobStore
	catalog CardCatalog
	workers int
	now     func() time.Time
}

func NewSynthesizer(logos LogoFetcher, blobs BlobStore, catalog CardCatalog, cfg Config) *Synthesizer {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Synthesizer{
		logos:   logos,
		blobs:   blobs,
		catalog: catalog,
		workers: workers,
		now:     time.Now,
	}
}

// Result is the outcome of one card's backfill attempt.
type Result struct {
	CardID  int64
	URL     string
	Skipped bool
	Err     error
}

// Backfill synthesizes art for every card whose body image is missing.
// Cards are processed by a bounded worker pool; each card's attempt is
// independent and best-effort. One card's failure is recorded in its
// Result and never cancels a sibling.
func (s *Synthesizer) Backfill(ctx context.Context, cards []domain.Card) []Result {
	logger := zerolog.Ctx(ctx)
	results := make([]Result, len(cards))

	g := errgroup.Group{}
	g.SetLimit(s.workers)

	for i, card := range cards {
		results[i] = Result{CardID: card.ID}
		if card.BodyImageURL != "" {
			results[i].Skipped = true
			continue
		}

		i, card := i, card
		g.Go(func() error {
			url, err := s.synthesize(ctx, card)
			if err != nil {
				logger.Error().
					Err(err).
					Int64("card_id", card.ID).
					Str("logo_url", card.LogoURL).
					Msg("card art synthesis failed")
				results[i].Err = err
				return nil
			}
			logger.Info().
				Int64("card_id", card.ID).
				Str("body_image", url).
				Msg("card body image updated")
			results[i].URL = url
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func (s *Synthesizer) synthesize(ctx context.Context, card domain.Card) (string, error) {
	logoBytes, err := s.logos.FetchImage(ctx, card.LogoURL)
	if err != nil {
		return "", fmt.Errorf("fetch logo: %w", err)
	}

	color, err := DominantColor(logoBytes)
	if err != nil {
		return "", fmt.Errorf("extract dominant color: %w", err)
	}

	imageBytes, err := Render(color)
	if err != nil {
		return "", fmt.Errorf("render background: %w", err)
	}

	// Card id keeps sibling uploads from one backfill run on distinct keys.
	key := fmt.Sprintf("image_%d_%s.png", card.ID, s.now().UTC().Format("20060102_150405"))
	url, err := s.blobs.Upload(ctx, key, imageBytes, "image/png")
	if err != nil {
		return "", fmt.Errorf("upload background: %w", err)
	}

	if err := s.catalog.UpdateBodyImage(ctx, card.ID, url); err != nil {
		return "", fmt.Errorf("update card %d body image: %w", card.ID, err)
	}
	return url, nil
}
