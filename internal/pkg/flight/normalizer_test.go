package flight

import (
	"errors"
	"testing"

	"github.com/dwiprm/flight-price-explorer/internal/app/dto"
	"github.com/dwiprm/flight-price-explorer/internal/pkg/amadeus"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upstreamOffer() amadeus.FlightOffer {
	return amadeus.FlightOffer{
		ID: "42",
		Itineraries: []amadeus.Itinerary{
			{
				Duration: "PT7H25M",
				Segments: []amadeus.Segment{
					{
						Departure:   amadeus.SegmentEndpoint{IataCode: "JFK", At: "2024-06-01T08:00:00"},
						Arrival:     amadeus.SegmentEndpoint{IataCode: "ORD", At: "2024-06-01T10:30:00"},
						CarrierCode: "DL",
						Number:      "1234",
						Aircraft:    amadeus.Aircraft{Code: "738"},
						Duration:    "PT2H30M",
					},
					{
						Departure:   amadeus.SegmentEndpoint{IataCode: "ORD", At: "2024-06-01T11:45:00"},
						Arrival:     amadeus.SegmentEndpoint{IataCode: "LAX", At: "2024-06-01T14:25:00"},
						CarrierCode: "DL",
						Number:      "5678",
						Aircraft:    amadeus.Aircraft{Code: "32N"},
						Operating:   &amadeus.Operating{CarrierCode: "UA"},
						Duration:    "PT4H40M",
					},
				},
			},
		},
		Price: amadeus.OfferPrice{Currency: "USD", Total: "245.50"},
		TravelerPricings: []amadeus.TravelerPricing{
			{
				FareDetailsBySegment: []amadeus.FareDetailsBySegment{
					{Cabin: "BUSINESS", IncludedCheckedBags: amadeus.IncludedCheckedBags{Quantity: 2}},
				},
			},
		},
	}
}

func dictionaries() *amadeus.Dictionaries {
	return &amadeus.Dictionaries{
		Locations: map[string]amadeus.LocationEntry{
			"JFK": {Name: "John F. Kennedy International"},
			"LAX": {Name: "Los Angeles International"},
		},
		Carriers: map[string]string{
			"DL": "Delta Airlines",
			"UA": "United Airlines",
		},
		Aircraft: map[string]string{
			"738": "Boeing 737-800",
		},
	}
}

func TestNormalizeOffer(t *testing.T) {
	offer, err := NormalizeOffer(upstreamOffer(), dictionaries())
	require.NoError(t, err)

	assert.Equal(t, "42", offer.ID)
	assert.Equal(t, 245.50, offer.Price.Amount)
	assert.Equal(t, "USD", offer.Price.Currency)
	assert.Equal(t, 1, offer.Stops)
	assert.Equal(t, 445, offer.Duration)
	assert.Equal(t, dto.FareTypeBusiness, offer.FareType)

	// operating carrier wins over marketing on the second leg
	if diff := cmp.Diff([]string{"Delta Airlines", "United Airlines"}, offer.Carriers); diff != "" {
		t.Fatalf("carriers mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, offer.Itineraries, 1)
	segments := offer.Itineraries[0]
	require.Len(t, segments, 2)

	assert.Equal(t, "John F. Kennedy International", segments[0].Departure.Airport)
	assert.Equal(t, "JFK", segments[0].Departure.IATA)
	assert.Equal(t, "Boeing 737-800", segments[0].Aircraft)
	assert.Equal(t, 150, segments[0].Duration)

	// unresolved codes keep the raw code
	assert.Equal(t, "ORD", segments[0].Arrival.Airport)
	assert.Equal(t, "32N", segments[1].Aircraft)

	require.NotNil(t, offer.Baggage)
	assert.True(t, offer.Baggage.CarryOn)
	assert.Equal(t, 2, offer.Baggage.Checked)
}

func TestNormalizeOffer_NoDictionaries(t *testing.T) {
	offer, err := NormalizeOffer(upstreamOffer(), nil)
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"DL", "UA"}, offer.Carriers); diff != "" {
		t.Fatalf("carriers mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "JFK", offer.Itineraries[0][0].Departure.Airport)
}

func TestNormalizeOffer_Defaults(t *testing.T) {
	upstream := upstreamOffer()
	upstream.TravelerPricings = nil

	offer, err := NormalizeOffer(upstream, nil)
	require.NoError(t, err)

	assert.Equal(t, dto.FareTypeEconomy, offer.FareType)
	assert.Nil(t, offer.Baggage)
}

func TestNormalizeOffer_PremiumEconomyCabin(t *testing.T) {
	upstream := upstreamOffer()
	upstream.TravelerPricings[0].FareDetailsBySegment[0].Cabin = "PREMIUM_ECONOMY"

	offer, err := NormalizeOffer(upstream, nil)
	require.NoError(t, err)

	assert.Equal(t, dto.FareTypePremium, offer.FareType)
}

func TestNormalizeOffer_MalformedDurationDegrades(t *testing.T) {
	upstream := upstreamOffer()
	upstream.Itineraries[0].Duration = "not-a-duration"

	offer, err := NormalizeOffer(upstream, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, offer.Duration)
}

func TestNormalizeOffer_Malformed(t *testing.T) {
	malformedRequest := func(upstream amadeus.FlightOffer) func(t *testing.T) {
		return func(t *testing.T) {
			_, err := NormalizeOffer(upstream, nil)
			assert.True(t, errors.Is(err, ErrMalformedOffer))
		}
	}

	noItineraries := upstreamOffer()
	noItineraries.Itineraries = nil

	noSegments := upstreamOffer()
	noSegments.Itineraries[0].Segments = nil

	t.Run("no_itineraries", malformedRequest(noItineraries))
	t.Run("no_segments", malformedRequest(noSegments))
}

func TestNormalizeOffers_OneBadOfferFailsBatch(t *testing.T) {
	bad := upstreamOffer()
	bad.Itineraries = nil

	response := amadeus.OffersResponse{
		Data: []amadeus.FlightOffer{upstreamOffer(), bad},
	}

	_, err := NormalizeOffers(response)
	assert.Error(t, err)
}
