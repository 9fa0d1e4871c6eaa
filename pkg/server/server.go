package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/omkar806/receipt-data-ingestor-gmail/pkg/handlers/cards"
	cardsmiddleware "github.com/omkar806/receipt-data-ingestor-gmail/pkg/server/middleware"
)

type Dependencies struct {
	Receipts    handlers.ReceiptReader
	Brands      handlers.Bootstrapper
	Recommender handlers.Recommender
	Queue       handlers.JobQueue
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	deps := config.Dependencies
	cardsHandler := handlers.NewHandler(deps.Receipts, deps.Brands, deps.Recommender, deps.Queue)

	router := chi.NewRouter()

	router.Use(cardsmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/", cardsHandler.Health)
	router.Route("/card-data", func(r chi.Router) {
		r.Get("/generate-image", cardsHandler.GenerateImage)
		r.Post("/generate-brands-and-custom-cards", cardsHandler.GenerateBrandsAndCards)
		r.Get("/jobs/{id}", cardsHandler.GetJob)
	})

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
