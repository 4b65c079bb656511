package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/engine"
	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

// Runner defines the interface for triggering a reconciliation cycle.
type Runner interface {
	RunCycle(ctx context.Context) (*domain.RunResult, error)
}

// RunHandler handles manual run trigger requests.
type RunHandler struct {
	runner Runner
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(r Runner) *RunHandler {
	return &RunHandler{runner: r}
}

// RunOutput is the response body for the run endpoint.
type RunOutput struct {
	Body struct {
		RunID          string         `json:"run_id"          doc:"Identifier of the recorded run"`
		Status         string         `json:"status"          example:"completed" doc:"Run outcome"`
		Fetched        int            `json:"fetched"         doc:"Distinct offers returned by the search"`
		NewOffers      []domain.Offer `json:"new_offers"      doc:"Offers stored for the first time"`
		DisappearedIDs []string       `json:"disappeared_ids" doc:"Offer ids removed from the store"`
	}
}

// Run triggers one reconciliation cycle and reports its outcome.
func (h *RunHandler) Run(ctx context.Context, _ *struct{}) (*RunOutput, error) {
	res, err := h.runner.RunCycle(ctx)
	if errors.Is(err, engine.ErrRunInProgress) {
		return nil, huma.Error409Conflict("a run is already in progress")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("run failed: " + err.Error())
	}

	resp := &RunOutput{}
	resp.Body.RunID = res.RunID
	resp.Body.Fetched = res.Fetched
	resp.Body.NewOffers = res.NewOffers
	if resp.Body.NewOffers == nil {
		resp.Body.NewOffers = []domain.Offer{}
	}
	resp.Body.DisappearedIDs = res.DisappearedIDs.Sorted()
	resp.Body.Status = string(domain.RunCompleted)
	if res.Skipped {
		resp.Body.Status = string(domain.RunSkipped)
	}
	return resp, nil
}

// RegisterTriggerRoutes registers trigger endpoints with the Huma API.
func RegisterTriggerRoutes(api huma.API, h *RunHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-run",
		Method:      http.MethodPost,
		Path:        "/api/v1/run",
		Summary:     "Trigger a reconciliation run",
		Description: "Fetches every search term, updates the offer store, " +
			"and announces new offers.",
		Tags:   []string{"runs"},
		Errors: []int{http.StatusConflict, http.StatusInternalServerError},
	}, h.Run)
}
