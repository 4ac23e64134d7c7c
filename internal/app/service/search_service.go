package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dwiprm/flight-price-explorer/internal/app/dto"
	"github.com/dwiprm/flight-price-explorer/internal/pkg/amadeus"
	"github.com/dwiprm/flight-price-explorer/internal/pkg/flight"
)

// FlightAPI is the upstream flight-offers provider.
type FlightAPI interface {
	SearchFlightOffers(ctx context.Context, params amadeus.SearchParams) (amadeus.OffersResponse, error)
	SearchLocations(ctx context.Context, keyword string) (amadeus.LocationsResponse, error)
}

// SearchState is the immutable result of the last search or filter
// operation. A new value replaces the old one wholesale; nothing mutates
// a published state.
type SearchState struct {
	Request      dto.SearchRequest
	Offers       []dto.FlightOffer
	PriceHistory []dto.PricePoint
	Filters      dto.FilterSpec
	Fallback     bool
}

// SearchService orchestrates search, filtering and history synthesis.
// The result slot is last-write-wins: concurrent searches are not
// coordinated and a newer result silently replaces an older in-flight
// one. The atomic pointer swap keeps readers from ever seeing a torn
// state.
type SearchService struct {
	api         FlightAPI
	synthesizer *flight.HistorySynthesizer
	fallback    *flight.FallbackGenerator
	maxOffers   int
	maxPrice    int

	state atomic.Pointer[SearchState]
}

func NewSearchService(api FlightAPI, synthesizer *flight.HistorySynthesizer,
	fallback *flight.FallbackGenerator, maxOffers, maxPrice int) *SearchService {
	return &SearchService{
		api:         api,
		synthesizer: synthesizer,
		fallback:    fallback,
		maxOffers:   maxOffers,
		maxPrice:    maxPrice,
	}
}

// SearchFlights runs one upstream attempt and publishes the result.
// Auth failures, transport errors, non-2xx responses and malformed
// payloads all collapse into the fallback path; the response is always
// renderable and never an error.
func (s *SearchService) SearchFlights(
	ctx context.Context,
	req dto.SearchRequest,
) (dto.SearchFlightResponse, error) {
	startTime := time.Now()

	response, err := s.api.SearchFlightOffers(ctx, amadeus.SearchParams{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Adults,
		Children:      req.Children,
		Infants:       req.Infants,
		TravelClass:   req.TravelClass,
		Currency:      req.Currency,
		MaxPrice:      s.maxPrice,
		MaxResults:    s.maxOffers,
	})

	var offers []dto.FlightOffer
	if err == nil {
		offers, err = flight.NormalizeOffers(response)
	}

	if err != nil {
		slog.WarnContext(ctx, "upstream search failed, serving synthetic offers",
			slog.String("origin", req.Origin),
			slog.String("destination", req.Destination),
			slog.String("error", err.Error()))

		return s.searchFallback(ctx, req, err, startTime), nil
	}

	offers = flight.Aggregate(offers)
	priceHistory := s.synthesizer.Generate(offers)

	s.publish(&SearchState{
		Request:      req,
		Offers:       offers,
		PriceHistory: priceHistory,
	})

	return dto.SearchFlightResponse{
		Success:      true,
		Data:         offers,
		PriceHistory: priceHistory,
		Meta:         buildMeta(req, offers, startTime),
	}, nil
}

func (s *SearchService) searchFallback(ctx context.Context, req dto.SearchRequest,
	cause error, startTime time.Time) dto.SearchFlightResponse {

	offers := flight.Aggregate(s.fallback.Generate(req.Origin, req.Destination, req.DepartureDate))
	priceHistory := s.synthesizer.Generate(offers)

	s.publish(&SearchState{
		Request:      req,
		Offers:       offers,
		PriceHistory: priceHistory,
		Fallback:     true,
	})

	return dto.SearchFlightResponse{
		Success:      false,
		Data:         offers,
		PriceHistory: priceHistory,
		Meta:         buildMeta(req, offers, startTime),
		Fallback:     true,
		Error:        cause.Error(),
		Message:      "Using mock data due to API error",
	}
}

// FilterFlights applies the filter to the last published offer set and
// recomputes the price history over the surviving offers.
func (s *SearchService) FilterFlights(
	ctx context.Context,
	req dto.FilterRequest,
) (dto.FilterFlightsResponse, error) {
	state := s.state.Load()
	if state == nil {
		return dto.FilterFlightsResponse{}, ErrNoActiveSearch
	}

	spec := req.Spec()
	filtered := flight.FilterOffers(state.Offers, spec)
	priceHistory := s.synthesizer.Generate(filtered)

	s.publish(&SearchState{
		Request:      state.Request,
		Offers:       state.Offers,
		PriceHistory: priceHistory,
		Filters:      spec,
		Fallback:     state.Fallback,
	})

	return dto.FilterFlightsResponse{
		Success:      true,
		Data:         filtered,
		PriceHistory: priceHistory,
		Filters:      spec,
		Count:        len(filtered),
	}, nil
}

// SearchAirports proxies the upstream airport/city lookup.
func (s *SearchService) SearchAirports(
	ctx context.Context,
	req dto.AirportSearchRequest,
) (dto.AirportSearchResponse, error) {
	response, err := s.api.SearchLocations(ctx, req.Keyword)
	if err != nil {
		slog.WarnContext(ctx, "airport lookup failed",
			slog.String("keyword", req.Keyword),
			slog.String("error", err.Error()))

		return dto.AirportSearchResponse{}, ErrAirportLookupFailed
	}

	airports := make([]dto.Airport, len(response.Data))
	for i, location := range response.Data {
		airports[i] = dto.Airport{
			IATA:    location.IataCode,
			Name:    location.Name,
			City:    location.Address.CityName,
			Country: location.Address.CountryName,
		}
	}

	return dto.AirportSearchResponse{
		Success: true,
		Data:    airports,
		Count:   len(airports),
	}, nil
}

// State exposes the current published state; nil before the first search.
func (s *SearchService) State() *SearchState {
	return s.state.Load()
}

func (s *SearchService) publish(state *SearchState) {
	s.state.Store(state)
}

func buildMeta(req dto.SearchRequest, offers []dto.FlightOffer, startTime time.Time) *dto.SearchMeta {
	meta := &dto.SearchMeta{
		Count:         len(offers),
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		SearchTimeMs:  int(time.Since(startTime).Milliseconds()),
	}

	if len(offers) > 0 {
		meta.PriceRange.Min = offers[0].Price.Amount
		meta.PriceRange.Max = offers[0].Price.Amount
		for _, offer := range offers[1:] {
			if offer.Price.Amount < meta.PriceRange.Min {
				meta.PriceRange.Min = offer.Price.Amount
			}
			if offer.Price.Amount > meta.PriceRange.Max {
				meta.PriceRange.Max = offer.Price.Amount
			}
		}
	}

	return meta
}
