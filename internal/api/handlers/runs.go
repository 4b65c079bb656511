package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

// RunLister reads the run history.
type RunLister interface {
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)
}

// RunsHandler handles run history endpoints.
type RunsHandler struct {
	store RunLister
}

// NewRunsHandler creates a new RunsHandler.
func NewRunsHandler(s RunLister) *RunsHandler {
	return &RunsHandler{store: s}
}

// ListRunsInput is the input for listing runs.
type ListRunsInput struct {
	Limit int `query:"limit" doc:"Number of runs (default 50)" minimum:"0" maximum:"1000"`
}

// ListRunsOutput is the response for listing runs.
type ListRunsOutput struct {
	Body struct {
		Runs []domain.Run `json:"runs"`
	}
}

// ListRuns returns the most recent runs, newest first.
func (h *RunsHandler) ListRuns(ctx context.Context, input *ListRunsInput) (*ListRunsOutput, error) {
	runs, err := h.store.ListRuns(ctx, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("run query failed: " + err.Error())
	}

	resp := &ListRunsOutput{}
	resp.Body.Runs = runs
	if resp.Body.Runs == nil {
		resp.Body.Runs = []domain.Run{}
	}
	return resp, nil
}

// RegisterRunRoutes registers run history endpoints with the Huma API.
func RegisterRunRoutes(api huma.API, h *RunsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-runs",
		Method:      http.MethodGet,
		Path:        "/api/v1/runs",
		Summary:     "List recent runs",
		Tags:        []string{"runs"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListRuns)
}
