package flight

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dwiprm/flight-price-explorer/internal/app/dto"
	"github.com/dwiprm/flight-price-explorer/internal/pkg/amadeus"
	"github.com/dwiprm/flight-price-explorer/internal/pkg/exception"
	"github.com/dwiprm/flight-price-explorer/internal/pkg/utils"
)

var ErrMalformedOffer = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "upstream offer has no itineraries or segments",
}

// NormalizeOffers converts a full upstream response into app offers.
// One malformed offer fails the whole batch so the caller can take the
// fallback path instead of serving a partial result.
func NormalizeOffers(response amadeus.OffersResponse) ([]dto.FlightOffer, error) {
	offers := make([]dto.FlightOffer, len(response.Data))

	for i, upstream := range response.Data {
		offer, err := NormalizeOffer(upstream, response.Dictionaries)
		if err != nil {
			return nil, err
		}
		offers[i] = offer
	}

	return offers, nil
}

// NormalizeOffer converts one upstream offer record. The dictionaries are
// optional lookup tables keyed by code; unresolved codes fall back to the
// raw code string.
func NormalizeOffer(upstream amadeus.FlightOffer, dict *amadeus.Dictionaries) (dto.FlightOffer, error) {
	if len(upstream.Itineraries) == 0 || len(upstream.Itineraries[0].Segments) == 0 {
		return dto.FlightOffer{}, ErrMalformedOffer
	}

	first := upstream.Itineraries[0]

	itineraries := make([][]dto.Segment, len(upstream.Itineraries))
	for i, itinerary := range upstream.Itineraries {
		segments := make([]dto.Segment, len(itinerary.Segments))
		for j, segment := range itinerary.Segments {
			segments[j] = normalizeSegment(segment, dict)
		}
		itineraries[i] = segments
	}

	// Stops and total duration are defined by the outbound itinerary only.
	carriers := uniqueCarriers(first.Segments, dict)

	amount := 0.0
	if parsed, err := strconv.ParseFloat(upstream.Price.Total, 64); err == nil {
		amount = parsed
	}

	return dto.FlightOffer{
		ID: upstream.ID,
		Price: dto.Price{
			Amount:   amount,
			Currency: upstream.Price.Currency,
		},
		Itineraries: itineraries,
		Stops:       len(first.Segments) - 1,
		Duration:    utils.ParseISODurationMinutes(first.Duration),
		Carriers:    carriers,
		FareType:    fareType(upstream),
		Baggage:     baggage(upstream),
	}, nil
}

func normalizeSegment(segment amadeus.Segment, dict *amadeus.Dictionaries) dto.Segment {
	return dto.Segment{
		Departure: dto.SegmentPoint{
			Airport: airportName(segment.Departure.IataCode, dict),
			IATA:    segment.Departure.IataCode,
			Time:    segment.Departure.At,
		},
		Arrival: dto.SegmentPoint{
			Airport: airportName(segment.Arrival.IataCode, dict),
			IATA:    segment.Arrival.IataCode,
			Time:    segment.Arrival.At,
		},
		Carrier:      carrierName(segment, dict),
		CarrierCode:  segment.CarrierCode,
		FlightNumber: segment.Number,
		Duration:     utils.ParseISODurationMinutes(segment.Duration),
		Aircraft:     aircraftName(segment.Aircraft.Code, dict),
	}
}

// carrierName prefers the operating carrier over the marketing one.
func carrierName(segment amadeus.Segment, dict *amadeus.Dictionaries) string {
	code := segment.CarrierCode
	if segment.Operating != nil && segment.Operating.CarrierCode != "" {
		code = segment.Operating.CarrierCode
	}

	if dict != nil {
		if name, ok := dict.Carriers[code]; ok && name != "" {
			return name
		}
	}

	return code
}

func airportName(code string, dict *amadeus.Dictionaries) string {
	if dict != nil {
		if entry, ok := dict.Locations[code]; ok && entry.Name != "" {
			return entry.Name
		}
	}

	return code
}

func aircraftName(code string, dict *amadeus.Dictionaries) string {
	if dict != nil {
		if name, ok := dict.Aircraft[code]; ok && name != "" {
			return name
		}
	}

	return code
}

// uniqueCarriers deduplicates resolved carrier names keeping the order of
// first appearance.
func uniqueCarriers(segments []amadeus.Segment, dict *amadeus.Dictionaries) []string {
	seen := make(map[string]bool, len(segments))
	carriers := make([]string, 0, len(segments))

	for _, segment := range segments {
		name := carrierName(segment, dict)
		if seen[name] {
			continue
		}
		seen[name] = true
		carriers = append(carriers, name)
	}

	return carriers
}

// fareType reads the cabin of the first traveler pricing's first segment,
// defaulting to economy when absent.
func fareType(upstream amadeus.FlightOffer) string {
	if len(upstream.TravelerPricings) == 0 ||
		len(upstream.TravelerPricings[0].FareDetailsBySegment) == 0 {
		return dto.FareTypeEconomy
	}

	cabin := upstream.TravelerPricings[0].FareDetailsBySegment[0].Cabin
	if cabin == "" {
		return dto.FareTypeEconomy
	}

	switch normalized := strings.ToLower(cabin); normalized {
	case "premium_economy":
		return dto.FareTypePremium
	default:
		return normalized
	}
}

// baggage maps the included-checked-bags quantity of the first fare
// segment. CarryOn mirrors the source behavior of reporting quantity > 0,
// which conflates carry-on with checked allowance; kept as given.
func baggage(upstream amadeus.FlightOffer) *dto.Baggage {
	if len(upstream.TravelerPricings) == 0 ||
		len(upstream.TravelerPricings[0].FareDetailsBySegment) == 0 {
		return nil
	}

	quantity := upstream.TravelerPricings[0].FareDetailsBySegment[0].IncludedCheckedBags.Quantity

	return &dto.Baggage{
		CarryOn: quantity > 0,
		Checked: quantity,
	}
}
