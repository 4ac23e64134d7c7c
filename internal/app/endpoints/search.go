package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwiprm/flight-price-explorer/internal/app/dto"
	"github.com/go-kit/kit/endpoint"
)

type SearchService interface {
	SearchFlights(ctx context.Context, req dto.SearchRequest) (dto.SearchFlightResponse, error)
	FilterFlights(ctx context.Context, req dto.FilterRequest) (dto.FilterFlightsResponse, error)
	SearchAirports(ctx context.Context, req dto.AirportSearchRequest) (dto.AirportSearchResponse, error)
}

type SearchEndpoint struct {
	SearchFlights  endpoint.Endpoint
	FilterFlights  endpoint.Endpoint
	SearchAirports endpoint.Endpoint
}

type Endpoints struct {
	SearchEndpoint SearchEndpoint
}

func MakeSearchEndpoint(service SearchService) SearchEndpoint {
	return SearchEndpoint{
		SearchFlights:  makeSearchFlightsEndpoint(service),
		FilterFlights:  makeFilterFlightsEndpoint(service),
		SearchAirports: makeSearchAirportsEndpoint(service),
	}
}

func makeSearchFlightsEndpoint(service SearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		response, err := service.SearchFlights(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("search service: %w", err)
		}

		return response, nil
	}
}

func makeFilterFlightsEndpoint(service SearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.FilterRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		response, err := service.FilterFlights(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("search service: %w", err)
		}

		return response, nil
	}
}

func makeSearchAirportsEndpoint(service SearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.AirportSearchRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		response, err := service.SearchAirports(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("search service: %w", err)
		}

		return response, nil
	}
}
