package flight

import (
	"slices"

	"github.com/dwiprm/flight-price-explorer/internal/app/dto"
)

// FilterOffers returns the subset of offers matching every predicate of
// the spec, preserving input order. It never fails; the result may be
// empty. Duration bounds are hours, price bound is inclusive.
func FilterOffers(offers []dto.FlightOffer, spec dto.FilterSpec) []dto.FlightOffer {
	results := make([]dto.FlightOffer, 0, len(offers))

	for _, offer := range offers {
		if offer.Price.Amount > spec.MaxPrice {
			continue
		}

		if !slices.Contains(spec.Stops, offer.Stops) {
			continue
		}

		if len(spec.Airlines) > 0 && !containsAny(spec.Airlines, offer.Carriers) {
			continue
		}

		hours := float64(offer.Duration) / 60
		if hours < spec.MinDuration || hours > spec.MaxDuration {
			continue
		}

		if len(spec.FareTypes) > 0 && offer.FareType != "" &&
			!slices.Contains(spec.FareTypes, offer.FareType) {
			continue
		}

		results = append(results, offer)
	}

	return results
}

func containsAny(allowed []string, carriers []string) bool {
	for _, carrier := range carriers {
		if slices.Contains(allowed, carrier) {
			return true
		}
	}

	return false
}
