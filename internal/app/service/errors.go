package service

import (
	"net/http"

	"github.com/dwiprm/flight-price-explorer/internal/pkg/exception"
)

var ErrNoActiveSearch = exception.ApplicationError{
	Message:    "no search results to filter, run a search first",
	StatusCode: http.StatusNotFound,
}

var ErrAirportLookupFailed = exception.ApplicationError{
	Message:    "airport lookup failed",
	StatusCode: http.StatusBadGateway,
}
