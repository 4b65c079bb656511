package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/api/handlers"
	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/engine"
	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

// fakeRunner implements handlers.Runner for testing.
type fakeRunner struct {
	res    *domain.RunResult
	err    error
	called bool
}

func (f *fakeRunner) RunCycle(_ context.Context) (*domain.RunResult, error) {
	f.called = true
	return f.res, f.err
}

func TestRunHandler_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		runner     *fakeRunner
		wantStatus int
		wantBody   []string
	}{
		{
			name: "completed run reports new and disappeared offers",
			runner: &fakeRunner{res: &domain.RunResult{
				RunID:          "run-1",
				Fetched:        3,
				NewOffers:      []domain.Offer{{ID: "MLU9", Title: "RTX 3070"}},
				DisappearedIDs: domain.NewIDSet("MLU2", "MLU1"),
			}},
			wantStatus: http.StatusOK,
			wantBody: []string{
				`"status":"completed"`,
				`"run_id":"run-1"`,
				`"fetched":3`,
				`"title":"RTX 3070"`,
				`"disappeared_ids":["MLU1","MLU2"]`,
			},
		},
		{
			name: "skipped run",
			runner: &fakeRunner{res: &domain.RunResult{
				RunID:          "run-2",
				Skipped:        true,
				DisappearedIDs: domain.NewIDSet(),
			}},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"status":"skipped"`, `"new_offers":[]`},
		},
		{
			name:       "overlapping run returns 409",
			runner:     &fakeRunner{err: engine.ErrRunInProgress},
			wantStatus: http.StatusConflict,
			wantBody:   []string{"already in progress"},
		},
		{
			name:       "failed run returns 500",
			runner:     &fakeRunner{err: errors.New("loading existing offers: disk I/O error")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   []string{"disk I/O error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterTriggerRoutes(api, handlers.NewRunHandler(tt.runner))

			resp := api.Post("/api/v1/run")
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.True(t, tt.runner.called)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}
