package main

import (
	"fmt"
	"net"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/server"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/brands"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/cardart"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/config"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/jobs"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/logo"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/recommender"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/scorer"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/store/postgres"
	s3store "github.com/omkar806/receipt-data-ingestor-gmail/pkg/store/s3"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "web",
		Short: "Start the card recommendation web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "config.yaml",
		"Path to the service configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dsn := cfg.Database.DSN
	if env := os.Getenv("DATABASE_DSN"); env != "" {
		dsn = env
	}
	db, err := postgres.Open(ctx, postgres.Settings{DSN: dsn})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	receiptStore, err := postgres.NewReceiptStore(db)
	if err != nil {
		return fmt.Errorf("failed to create receipt store: %w", err)
	}
	cardStore, err := postgres.NewCardStore(db)
	if err != nil {
		return fmt.Errorf("failed to create card store: %w", err)
	}
	brandStore, err := postgres.NewBrandStore(db)
	if err != nil {
		return fmt.Errorf("failed to create brand store: %w", err)
	}
	recommendationStore, err := postgres.NewRecommendationStore(db)
	if err != nil {
		return fmt.Errorf("failed to create recommendation store: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	blobStore, err := s3store.NewStore(awsCfg, cfg.Storage.Bucket, cfg.Storage.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("failed to create blob store: %w", err)
	}

	logoClient := logo.NewClient(cfg.Logo.Token)
	synthesizer := cardart.NewSynthesizer(logoClient, blobStore, cardStore, cardart.Config{
		Workers: cfg.Jobs.ArtWorkers,
	})
	bootstrapper := brands.NewBootstrapper(brandStore, cardStore, logoClient, blobStore)

	recommenderSvc := recommender.NewService(
		receiptStore,
		cardStore,
		recommendationStore,
		synthesizer,
		recommender.Config{
			Weights: scorer.Weights{Alpha: cfg.Recommend.Alpha, Beta: cfg.Recommend.Beta},
			Limit:   cfg.Recommend.Limit,
		},
	)

	queue := jobs.NewQueue(cfg.Jobs.Workers, cfg.Jobs.Buffer, logger)
	queue.Start(ctx)
	defer queue.Close()

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	api := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Receipts:    receiptStore,
			Brands:      bootstrapper,
			Recommender: recommenderSvc,
			Queue:       queue,
		},
	})

	return api.Start()
}
