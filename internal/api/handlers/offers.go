package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/store"
	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

// OfferReader is the read side of the offer store.
type OfferReader interface {
	GetOffer(ctx context.Context, id string) (*domain.Offer, error)
	ListOffers(ctx context.Context, limit, offset int) ([]domain.Offer, int, error)
}

// OffersHandler handles offer query endpoints.
type OffersHandler struct {
	store OfferReader
}

// NewOffersHandler creates a new OffersHandler.
func NewOffersHandler(s OfferReader) *OffersHandler {
	return &OffersHandler{store: s}
}

// ListOffersInput is the input for listing tracked offers.
type ListOffersInput struct {
	Limit  int `query:"limit"  doc:"Number of results (default 50)" minimum:"0" maximum:"1000"`
	Offset int `query:"offset" doc:"Pagination offset"              minimum:"0"`
}

// ListOffersOutput is the response for listing tracked offers.
type ListOffersOutput struct {
	Body struct {
		Offers []domain.Offer `json:"offers"`
		Total  int            `json:"total"`
		Limit  int            `json:"limit"`
		Offset int            `json:"offset"`
	}
}

// GetOfferInput is the input for getting a single offer.
type GetOfferInput struct {
	ID string `path:"id" doc:"Marketplace item id, e.g. MLU123456789"`
}

// GetOfferOutput is the response for getting a single offer.
type GetOfferOutput struct {
	Body domain.Offer
}

// ListOffers returns tracked offers, newest first.
func (h *OffersHandler) ListOffers(ctx context.Context, input *ListOffersInput) (*ListOffersOutput, error) {
	offers, total, err := h.store.ListOffers(ctx, input.Limit, input.Offset)
	if err != nil {
		return nil, huma.Error500InternalServerError("offer query failed: " + err.Error())
	}

	resp := &ListOffersOutput{}
	resp.Body.Offers = offers
	if resp.Body.Offers == nil {
		resp.Body.Offers = []domain.Offer{}
	}
	resp.Body.Total = total
	resp.Body.Limit = input.Limit
	resp.Body.Offset = input.Offset
	return resp, nil
}

// GetOffer returns a single tracked offer.
func (h *OffersHandler) GetOffer(ctx context.Context, input *GetOfferInput) (*GetOfferOutput, error) {
	offer, err := h.store.GetOffer(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("offer not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("offer query failed: " + err.Error())
	}
	return &GetOfferOutput{Body: *offer}, nil
}

// RegisterOfferRoutes registers offer endpoints with the Huma API.
func RegisterOfferRoutes(api huma.API, h *OffersHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-offers",
		Method:      http.MethodGet,
		Path:        "/api/v1/offers",
		Summary:     "List tracked offers",
		Description: "Returns the offers currently in the store, newest first.",
		Tags:        []string{"offers"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListOffers)

	huma.Register(api, huma.Operation{
		OperationID: "get-offer",
		Method:      http.MethodGet,
		Path:        "/api/v1/offers/{id}",
		Summary:     "Get an offer by id",
		Tags:        []string{"offers"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.GetOffer)
}
