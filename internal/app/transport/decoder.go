package transport

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dwiprm/flight-price-explorer/internal/app/dto"
)

// decodeSearchRequest reads the search query parameters, defaulting
// missing ones the same way the UI does, then validates the complete
// request.
func decodeSearchRequest(_ context.Context, r *http.Request) (interface{}, error) {
	query := r.URL.Query()

	request := dto.SearchRequest{
		Origin:        queryString(query.Get("origin"), "JFK"),
		Destination:   queryString(query.Get("destination"), "LAX"),
		DepartureDate: queryString(query.Get("departureDate"), time.Now().Format("2006-01-02")),
		ReturnDate:    query.Get("returnDate"),
		Adults:        queryInt(query.Get("adults"), 1),
		Children:      queryInt(query.Get("children"), 0),
		Infants:       queryInt(query.Get("infants"), 0),
		TravelClass:   queryString(query.Get("travelClass"), "ECONOMY"),
		Currency:      queryString(query.Get("currency"), "USD"),
	}

	if err := request.Validate(); err != nil {
		return nil, err
	}

	return &request, nil
}

func decodeAirportSearchRequest(_ context.Context, r *http.Request) (interface{}, error) {
	request := dto.AirportSearchRequest{
		Keyword: r.URL.Query().Get("keyword"),
	}

	if err := request.Validate(); err != nil {
		return nil, err
	}

	return &request, nil
}

func queryString(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

func queryInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return parsed
}
