package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/services/jobs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReceipts struct{}

func (stubReceipts) GetBySession(context.Context, string) ([]domain.Receipt, error) {
	return []domain.Receipt{{MerchantDomain: "a.com", TotalCost: 10}}, nil
}

type stubBrands struct{}

func (stubBrands) EnsureBrands(context.Context, []string) error { return nil }

type stubRecommender struct{}

func (stubRecommender) Recommend(_ context.Context, userID string) (domain.Recommendation, error) {
	return domain.Recommendation{UserID: userID}, nil
}

type stubQueue struct{}

func (stubQueue) Enqueue(string, jobs.Task) (string, error) { return "job-1", nil }
func (stubQueue) Get(string) (jobs.Job, bool)               { return jobs.Job{}, false }

func newTestAPI() *WebAPI {
	return NewWebAPI(zerolog.Nop(), Config{
		Addr: ":0",
		Dependencies: Dependencies{
			Receipts:    stubReceipts{},
			Brands:      stubBrands{},
			Recommender: stubRecommender{},
			Queue:       stubQueue{},
		},
	})
}

func TestRouter_Routes(t *testing.T) {
	api := newTestAPI()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"health", http.MethodGet, "/", "", http.StatusOK},
		{"generate image", http.MethodGet, "/card-data/generate-image?color=%23112233", "", http.StatusOK},
		{"generate image bad color", http.MethodGet, "/card-data/generate-image?color=112233", "", http.StatusBadRequest},
		{
			"generate brands and cards",
			http.MethodPost,
			"/card-data/generate-brands-and-custom-cards",
			`{"user_id":"u1","session_id":"s1"}`,
			http.StatusAccepted,
		},
		{"unknown job", http.MethodGet, "/card-data/jobs/missing", "", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			rec := httptest.NewRecorder()
			api.router.ServeHTTP(rec, req)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRouter_RecovererHandlesPanics(t *testing.T) {
	api := newTestAPI()
	api.router.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() {
		api.router.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
