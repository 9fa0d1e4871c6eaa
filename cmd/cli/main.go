package main

import (
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/brands"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/cardart"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/config"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/logo"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/recommender"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/scorer"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/store/postgres"
	s3store "github.com/omkar806/receipt-data-ingestor-gmail/pkg/store/s3"
)

var (
	cfgPath string
	userID  string
	color   string
	outPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cards",
		Short: "Operational tooling for the card recommendation service",
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml",
		"Path to the service configuration file")

	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run the recommendation pipeline for one user",
		RunE:  runRecommend,
	}
	recommendCmd.Flags().StringVar(&userID, "user-id", "", "User to recommend cards for")
	_ = recommendCmd.MarkFlagRequired("user-id")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a card background for a hex color",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&color, "color", "", "Hex color of the form #RRGGBB")
	renderCmd.Flags().StringVar(&outPath, "out", "card.png", "Output PNG path")
	_ = renderCmd.MarkFlagRequired("color")

	rootCmd.AddCommand(recommendCmd, renderCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.Open(ctx, postgres.Settings{DSN: cfg.Database.DSN})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	receiptStore, err := postgres.NewReceiptStore(db)
	if err != nil {
		return err
	}
	cardStore, err := postgres.NewCardStore(db)
	if err != nil {
		return err
	}
	brandStore, err := postgres.NewBrandStore(db)
	if err != nil {
		return err
	}
	recommendationStore, err := postgres.NewRecommendationStore(db)
	if err != nil {
		return err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	blobStore, err := s3store.NewStore(awsCfg, cfg.Storage.Bucket, cfg.Storage.PublicBaseURL)
	if err != nil {
		return err
	}

	logoClient := logo.NewClient(cfg.Logo.Token)
	synthesizer := cardart.NewSynthesizer(logoClient, blobStore, cardStore, cardart.Config{
		Workers: cfg.Jobs.ArtWorkers,
	})

	receipts, err := receiptStore.GetByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch receipts: %w", err)
	}
	bootstrapper := brands.NewBootstrapper(brandStore, cardStore, logoClient, blobStore)
	if err := bootstrapper.EnsureBrands(ctx, domain.UniqueMerchantDomains(receipts)); err != nil {
		logger.Error().Err(err).Msg("brand bootstrap failed")
	}

	svc := recommender.NewService(receiptStore, cardStore, recommendationStore, synthesizer,
		recommender.Config{
			Weights: scorer.Weights{Alpha: cfg.Recommend.Alpha, Beta: cfg.Recommend.Beta},
			Limit:   cfg.Recommend.Limit,
		})

	rec, err := svc.Recommend(ctx, userID)
	if err != nil {
		return err
	}

	fmt.Printf("Recommended card ids for %s: %v\n", rec.UserID, rec.CardIDs)
	return nil
}

func runRender(_ *cobra.Command, _ []string) error {
	image, err := cardart.Render(color)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, image, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", outPath, len(image))
	return nil
}
