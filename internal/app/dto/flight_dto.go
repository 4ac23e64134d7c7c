package dto

import (
	"fmt"
	"net/http"

	"github.com/dwiprm/flight-price-explorer/internal/pkg/exception"
)

// Fare types recognized across the app. Upstream cabin labels are folded
// into this set, anything else keeps the lower-cased raw label.
const (
	FareTypeEconomy  = "economy"
	FareTypePremium  = "premium"
	FareTypeBusiness = "business"
	FareTypeFirst    = "first"
)

// FlightOffer is one priced itinerary option as served to the UI.
// Offers are immutable after normalization except for the two best-flag
// fields, which only the aggregator pass may set.
type FlightOffer struct {
	ID             string      `json:"id"`
	Price          Price       `json:"price"`
	Itineraries    [][]Segment `json:"itineraries"`
	Stops          int         `json:"stops"`
	Duration       int         `json:"duration"`
	Carriers       []string    `json:"carriers"`
	IsBestPrice    bool        `json:"isBestPrice"`
	IsBestDuration bool        `json:"isBestDuration"`
	FareType       string      `json:"fareType,omitempty"`
	Baggage        *Baggage    `json:"baggage,omitempty"`
}

type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Segment is one point-to-point leg within an itinerary.
type Segment struct {
	Departure    SegmentPoint `json:"departure"`
	Arrival      SegmentPoint `json:"arrival"`
	Carrier      string       `json:"carrier"`
	CarrierCode  string       `json:"carrierCode"`
	FlightNumber string       `json:"flightNumber"`
	Duration     int          `json:"duration"`
	Aircraft     string       `json:"aircraft,omitempty"`
}

type SegmentPoint struct {
	Airport string `json:"airport"`
	IATA    string `json:"iata"`
	Time    string `json:"time"`
}

type Baggage struct {
	CarryOn bool `json:"carryOn"`
	Checked int  `json:"checked"`
}

// PricePoint is one synthetic daily sample for the trend chart.
type PricePoint struct {
	Date    string `json:"date"`
	Price   int    `json:"price"`
	Average int    `json:"average"`
	Low     int    `json:"low"`
	High    int    `json:"high"`
}

type Airport struct {
	IATA    string `json:"iata"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// SearchRequest carries the flight search query. Missing parameters are
// defaulted at decode time, so validation always sees a complete request.
type SearchRequest struct {
	Origin        string `json:"origin" validate:"required,alpha,len=3"`
	Destination   string `json:"destination" validate:"required,alpha,len=3"`
	DepartureDate string `json:"departureDate" validate:"required,datetime=2006-01-02"`
	ReturnDate    string `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Adults        int    `json:"adults" validate:"min=1,max=9"`
	Children      int    `json:"children" validate:"gte=0,max=9"`
	Infants       int    `json:"infants" validate:"gte=0,max=9"`
	TravelClass   string `json:"travelClass" validate:"required,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	Currency      string `json:"currency" validate:"required,alpha,len=3"`
}

func (s *SearchRequest) Validate() error {
	if err := ValidateSingleError(s); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

// FilterRequest is the user-chosen constraint set narrowing the last
// search result. Absent fields fall back to the open defaults the UI
// starts from.
type FilterRequest struct {
	MaxPrice    *float64 `json:"maxPrice,omitempty" validate:"omitempty,gt=0"`
	Stops       []int    `json:"stops,omitempty" validate:"omitempty,dive,gte=0"`
	Airlines    []string `json:"airlines,omitempty"`
	MinDuration *float64 `json:"minDuration,omitempty" validate:"omitempty,gte=0"`
	MaxDuration *float64 `json:"maxDuration,omitempty" validate:"omitempty,gt=0"`
	FareTypes   []string `json:"fareTypes,omitempty" validate:"omitempty,dive,oneof=economy premium business first"`
}

func (f *FilterRequest) Bind(r *http.Request) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (f *FilterRequest) Validate() error {
	if err := ValidateSingleError(f); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	if f.MinDuration != nil && f.MaxDuration != nil && *f.MaxDuration <= *f.MinDuration {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "maxDuration must be greater than minDuration",
		}
	}

	return nil
}

// Spec resolves the request into a complete FilterSpec, filling absent
// fields with the initial filter state of the original UI.
func (f *FilterRequest) Spec() FilterSpec {
	spec := FilterSpec{
		MaxPrice:    10000,
		Stops:       []int{0, 1, 2, 3},
		Airlines:    f.Airlines,
		MinDuration: 0,
		MaxDuration: 24,
		FareTypes:   f.FareTypes,
	}

	if f.MaxPrice != nil {
		spec.MaxPrice = *f.MaxPrice
	}
	if f.Stops != nil {
		spec.Stops = f.Stops
	}
	if f.MinDuration != nil {
		spec.MinDuration = *f.MinDuration
	}
	if f.MaxDuration != nil {
		spec.MaxDuration = *f.MaxDuration
	}

	return spec
}

// FilterSpec is the fully resolved filter. Duration bounds are hours.
// An empty Airlines or FareTypes set means no restriction; an empty Stops
// set matches nothing.
type FilterSpec struct {
	MaxPrice    float64  `json:"maxPrice"`
	Stops       []int    `json:"stops"`
	Airlines    []string `json:"airlines"`
	MinDuration float64  `json:"minDuration"`
	MaxDuration float64  `json:"maxDuration"`
	FareTypes   []string `json:"fareTypes"`
}

type AirportSearchRequest struct {
	Keyword string `json:"keyword" validate:"required,min=2"`
}

func (a *AirportSearchRequest) Validate() error {
	if err := ValidateSingleError(a); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type SearchMeta struct {
	Count         int        `json:"count"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate string     `json:"departureDate"`
	PriceRange    PriceRange `json:"priceRange"`
	SearchTimeMs  int        `json:"searchTimeMs"`
}

// SearchFlightResponse is always delivered with HTTP 200; upstream
// failures are reported in-band through Success=false plus Fallback=true.
type SearchFlightResponse struct {
	Success      bool          `json:"success"`
	Data         []FlightOffer `json:"data"`
	PriceHistory []PricePoint  `json:"priceHistory"`
	Meta         *SearchMeta   `json:"meta,omitempty"`
	Fallback     bool          `json:"fallback,omitempty"`
	Error        string        `json:"error,omitempty"`
	Message      string        `json:"message,omitempty"`
}

type FilterFlightsResponse struct {
	Success      bool          `json:"success"`
	Data         []FlightOffer `json:"data"`
	PriceHistory []PricePoint  `json:"priceHistory"`
	Filters      FilterSpec    `json:"filters"`
	Count        int           `json:"count"`
}

type AirportSearchResponse struct {
	Success bool      `json:"success"`
	Data    []Airport `json:"data"`
	Count   int       `json:"count"`
}
