//go:build unit

package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/dwiprm/flight-price-explorer/internal/app/dto"
	"github.com/dwiprm/flight-price-explorer/internal/pkg/amadeus"
	"github.com/dwiprm/flight-price-explorer/internal/pkg/flight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFlightAPI struct {
	offersResponse    amadeus.OffersResponse
	offersErr         error
	locationsResponse amadeus.LocationsResponse
	locationsErr      error
	searchCalls       int
}

func (s *stubFlightAPI) SearchFlightOffers(_ context.Context, _ amadeus.SearchParams) (amadeus.OffersResponse, error) {
	s.searchCalls++
	return s.offersResponse, s.offersErr
}

func (s *stubFlightAPI) SearchLocations(_ context.Context, _ string) (amadeus.LocationsResponse, error) {
	return s.locationsResponse, s.locationsErr
}

func newTestService(api FlightAPI) *SearchService {
	fixedNow := func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}

	return NewSearchService(
		api,
		flight.NewHistorySynthesizer(rand.New(rand.NewSource(42)), fixedNow),
		flight.NewFallbackGenerator(rand.New(rand.NewSource(42))),
		25,
		10000,
	)
}

func searchRequest() dto.SearchRequest {
	return dto.SearchRequest{
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureDate: "2024-06-20",
		Adults:        1,
		TravelClass:   "ECONOMY",
		Currency:      "USD",
	}
}

func upstreamResponse() amadeus.OffersResponse {
	offer := func(id, total, duration string) amadeus.FlightOffer {
		return amadeus.FlightOffer{
			ID: id,
			Itineraries: []amadeus.Itinerary{{
				Duration: duration,
				Segments: []amadeus.Segment{{
					Departure:   amadeus.SegmentEndpoint{IataCode: "JFK", At: "2024-06-20T08:00:00"},
					Arrival:     amadeus.SegmentEndpoint{IataCode: "LAX", At: "2024-06-20T11:00:00"},
					CarrierCode: "DL",
					Number:      "100",
					Duration:    duration,
				}},
			}},
			Price: amadeus.OfferPrice{Currency: "USD", Total: total},
		}
	}

	return amadeus.OffersResponse{
		Data: []amadeus.FlightOffer{
			offer("1", "200.00", "PT6H"),
			offer("2", "150.00", "PT7H"),
			offer("3", "150.00", "PT5H30M"),
		},
	}
}

func TestSearchService_SearchFlights(t *testing.T) {
	api := &stubFlightAPI{offersResponse: upstreamResponse()}
	svc := newTestService(api)

	got, err := svc.SearchFlights(context.Background(), searchRequest())
	require.NoError(t, err)

	assert.True(t, got.Success)
	assert.False(t, got.Fallback)
	require.Len(t, got.Data, 3)

	// ties on 150 both win best price and keep input order ahead of 200
	assert.Equal(t, "2", got.Data[0].ID)
	assert.Equal(t, "3", got.Data[1].ID)
	assert.Equal(t, "1", got.Data[2].ID)
	assert.True(t, got.Data[0].IsBestPrice)
	assert.True(t, got.Data[1].IsBestPrice)
	assert.False(t, got.Data[2].IsBestPrice)
	assert.True(t, got.Data[1].IsBestDuration)

	assert.Len(t, got.PriceHistory, 31)

	require.NotNil(t, got.Meta)
	assert.Equal(t, 3, got.Meta.Count)
	assert.Equal(t, 150.0, got.Meta.PriceRange.Min)
	assert.Equal(t, 200.0, got.Meta.PriceRange.Max)

	state := svc.State()
	require.NotNil(t, state)
	assert.False(t, state.Fallback)
	assert.Len(t, state.Offers, 3)
	assert.Equal(t, 1, api.searchCalls, "exactly one upstream attempt per search")
}

func TestSearchService_SearchFlights_EmptyUpstream(t *testing.T) {
	api := &stubFlightAPI{offersResponse: amadeus.OffersResponse{}}
	svc := newTestService(api)

	got, err := svc.SearchFlights(context.Background(), searchRequest())
	require.NoError(t, err)

	// an empty but parseable result is a success, not a fallback
	assert.True(t, got.Success)
	assert.Empty(t, got.Data)
	assert.Empty(t, got.PriceHistory)
}

func TestSearchService_SearchFlights_Fallback(t *testing.T) {
	fallbackRequest := func(api *stubFlightAPI) func(t *testing.T) {
		return func(t *testing.T) {
			svc := newTestService(api)

			got, err := svc.SearchFlights(context.Background(), searchRequest())
			require.NoError(t, err, "fallback path must stay renderable")

			assert.False(t, got.Success)
			assert.True(t, got.Fallback)
			assert.NotEmpty(t, got.Error)
			require.Len(t, got.Data, 20)
			assert.True(t, got.Data[0].IsBestPrice)
			assert.Len(t, got.PriceHistory, 31)

			state := svc.State()
			require.NotNil(t, state)
			assert.True(t, state.Fallback)
			assert.Equal(t, 1, api.searchCalls, "no retries after a failed attempt")
		}
	}

	t.Run("transport_error", fallbackRequest(&stubFlightAPI{
		offersErr: errors.New("connection refused"),
	}))

	t.Run("malformed_offer", fallbackRequest(&stubFlightAPI{
		offersResponse: amadeus.OffersResponse{
			Data: []amadeus.FlightOffer{{ID: "broken"}},
		},
	}))
}

func TestSearchService_FilterFlights(t *testing.T) {
	api := &stubFlightAPI{offersResponse: upstreamResponse()}
	svc := newTestService(api)

	_, err := svc.SearchFlights(context.Background(), searchRequest())
	require.NoError(t, err)

	maxPrice := 180.0
	got, err := svc.FilterFlights(context.Background(), dto.FilterRequest{
		MaxPrice: &maxPrice,
	})
	require.NoError(t, err)

	assert.True(t, got.Success)
	require.Len(t, got.Data, 2)
	assert.Equal(t, 150.0, got.Data[0].Price.Amount)
	assert.Equal(t, 150.0, got.Data[1].Price.Amount)
	assert.Len(t, got.PriceHistory, 31)
	assert.Equal(t, 150, got.PriceHistory[0].Average, "history re-anchors on the filtered average")

	// publishing the filtered state keeps the full offer set
	state := svc.State()
	require.NotNil(t, state)
	assert.Len(t, state.Offers, 3)
	assert.Equal(t, 180.0, state.Filters.MaxPrice)
}

func TestSearchService_FilterFlights_NoActiveSearch(t *testing.T) {
	svc := newTestService(&stubFlightAPI{})

	_, err := svc.FilterFlights(context.Background(), dto.FilterRequest{})
	assert.ErrorIs(t, err, ErrNoActiveSearch)
}

func TestSearchService_FilterFlights_EmptyResult(t *testing.T) {
	api := &stubFlightAPI{offersResponse: upstreamResponse()}
	svc := newTestService(api)

	_, err := svc.SearchFlights(context.Background(), searchRequest())
	require.NoError(t, err)

	maxPrice := 10.0
	got, err := svc.FilterFlights(context.Background(), dto.FilterRequest{
		MaxPrice: &maxPrice,
	})
	require.NoError(t, err)

	assert.Empty(t, got.Data)
	assert.Empty(t, got.PriceHistory, "empty offer list yields an empty series")
}

func TestSearchService_SearchAirports(t *testing.T) {
	api := &stubFlightAPI{
		locationsResponse: amadeus.LocationsResponse{
			Data: []amadeus.Location{{
				Name:     "JOHN F KENNEDY INTL",
				IataCode: "JFK",
				Address:  amadeus.Address{CityName: "NEW YORK", CountryName: "UNITED STATES OF AMERICA"},
			}},
		},
	}
	svc := newTestService(api)

	got, err := svc.SearchAirports(context.Background(), dto.AirportSearchRequest{Keyword: "new york"})
	require.NoError(t, err)

	require.Len(t, got.Data, 1)
	assert.Equal(t, "JFK", got.Data[0].IATA)
	assert.Equal(t, "NEW YORK", got.Data[0].City)
}

func TestSearchService_SearchAirports_UpstreamError(t *testing.T) {
	svc := newTestService(&stubFlightAPI{locationsErr: errors.New("boom")})

	_, err := svc.SearchAirports(context.Background(), dto.AirportSearchRequest{Keyword: "new york"})
	assert.ErrorIs(t, err, ErrAirportLookupFailed)
}
