package cards

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/api"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/cardart"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/jobs"
	"github.com/rs/zerolog"
)

type Recommender interface {
	Recommend(ctx context.Context, userID string) (domain.Recommendation, error)
}

type Bootstrapper interface {
	EnsureBrands(ctx context.Context, domains []string) error
}

type ReceiptReader interface {
	GetBySession(ctx context.Context, sessionID string) ([]domain.Receipt, error)
}

type JobQueue interface {
	Enqueue(name string, task jobs.Task) (string, error)
	Get(id string) (jobs.Job, bool)
}

type Handler struct {
	receipts    ReceiptReader
	brands      Bootstrapper
	recommender Recommender
	queue       JobQueue
}

func NewHandler(receipts ReceiptReader, brands Bootstrapper, recommender Recommender, queue JobQueue) *Handler {
	return &Handler{
		receipts:    receipts,
		brands:      brands,
		recommender: recommender,
		queue:       queue,
	}
}

// GenerateImage renders a card background for a #RRGGBB color. Malformed
// colors are rejected before any image processing happens.
func (h *Handler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	color := r.URL.Query().Get("color")

	image, err := cardart.Render(color)
	if err != nil {
		if errors.Is(err, cardart.ErrInvalidColor) {
			writeError(w, http.StatusBadRequest, "invalid_color",
				"Invalid color format. Please provide a hex color code (e.g., #FFFFFF)")
			return
		}
		logger.Error().Err(err).Str("color", color).Msg("failed to generate image")
		writeError(w, http.StatusInternalServerError, "render_failed",
			"An error occurred while generating the image")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(image); err != nil {
		logger.Error().Err(err).Msg("failed to write image response")
	}
}

// GenerateBrandsAndCards bootstraps brands for the session's receipt
// domains, then defers the recommendation pipeline to the job queue and
// returns the job id so the caller can observe it.
func (h *Handler) GenerateBrandsAndCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.GenerateCardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "invalid_session", "Invalid session!")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "invalid_user", "User id is required")
		return
	}

	receipts, err := h.receipts.GetBySession(ctx, req.SessionID)
	if err != nil {
		logger.Error().Err(err).Str("session_id", req.SessionID).Msg("failed to fetch session receipts")
		writeError(w, http.StatusInternalServerError, "fetch_failed", "Unable to fetch session receipts")
		return
	}

	domains := domain.UniqueMerchantDomains(receipts)
	if err := h.brands.EnsureBrands(ctx, domains); err != nil {
		logger.Error().Err(err).Msg("brand bootstrap failed")
		writeError(w, http.StatusInternalServerError, "bootstrap_failed", "Unable to create brands")
		return
	}

	userID := req.UserID
	jobID, err := h.queue.Enqueue("generate-card-recommendations", func(ctx context.Context) error {
		_, err := h.recommender.Recommend(ctx, userID)
		return err
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to enqueue recommendation job")
		writeError(w, http.StatusServiceUnavailable, "queue_full", "Recommendation queue is busy, try again later")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(api.GenerateCardsResponse{
		Message: "Brands and custom cards generated successfully!",
		JobID:   jobID,
	}); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

// GetJob reports the status of a background job.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	id := chi.URLParam(r, "id")

	job, ok := h.queue.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "No such job")
		return
	}

	status := api.JobStatus{
		ID:         job.ID,
		Name:       job.Name,
		Status:     string(job.Status),
		Error:      job.Error,
		EnqueuedAt: job.EnqueuedAt,
	}
	if !job.StartedAt.IsZero() {
		t := job.StartedAt
		status.StartedAt = &t
	}
	if !job.FinishedAt.IsZero() {
		t := job.FinishedAt
		status.FinishedAt = &t
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		logger.Error().Err(err).Str("job_id", id).Msg("failed to encode job status")
	}
}

// Health confirms the service is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Application is Working!"})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: code, Message: message})
}
