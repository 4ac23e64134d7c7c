package flight

import (
	"sort"

	"github.com/dwiprm/flight-price-explorer/internal/app/dto"
)

// Aggregate marks the best-price/best-duration offers and returns the
// list stable-sorted ascending by price.
func Aggregate(offers []dto.FlightOffer) []dto.FlightOffer {
	return SortByPrice(MarkBestOffers(offers))
}

// MarkBestOffers flags every offer matching the minimum price (exact
// equality) and minimum duration. Ties all get the flag; the UI renders
// multiple winners and relies on that.
func MarkBestOffers(offers []dto.FlightOffer) []dto.FlightOffer {
	if len(offers) == 0 {
		return offers
	}

	minPrice := offers[0].Price.Amount
	minDuration := offers[0].Duration
	for _, offer := range offers[1:] {
		if offer.Price.Amount < minPrice {
			minPrice = offer.Price.Amount
		}
		if offer.Duration < minDuration {
			minDuration = offer.Duration
		}
	}

	for i := range offers {
		offers[i].IsBestPrice = offers[i].Price.Amount == minPrice
		offers[i].IsBestDuration = offers[i].Duration == minDuration
	}

	return offers
}

// SortByPrice sorts ascending by price; equal-price offers keep their
// input order.
func SortByPrice(offers []dto.FlightOffer) []dto.FlightOffer {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Price.Amount < offers[j].Price.Amount
	})

	return offers
}
