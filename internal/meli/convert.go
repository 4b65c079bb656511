package meli

import (
	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

// ToOffer converts a search result into a domain offer. SeenAt is left zero;
// the store assigns it.
func ToOffer(r *Result) domain.Offer {
	return domain.Offer{
		ID:        r.ID,
		Title:     r.Title,
		Price:     r.Price,
		Permalink: r.Permalink,
	}
}
