package amadeus

// Wire types for the Amadeus self-service APIs. Only the fields the
// normalizer and airport lookup read are mapped.

type FlightOffer struct {
	Type                   string            `json:"type"`
	ID                     string            `json:"id"`
	Source                 string            `json:"source"`
	Itineraries            []Itinerary       `json:"itineraries"`
	Price                  OfferPrice        `json:"price"`
	TravelerPricings       []TravelerPricing `json:"travelerPricings"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure     SegmentEndpoint `json:"departure"`
	Arrival       SegmentEndpoint `json:"arrival"`
	CarrierCode   string          `json:"carrierCode"`
	Number        string          `json:"number"`
	Aircraft      Aircraft        `json:"aircraft"`
	Operating     *Operating      `json:"operating,omitempty"`
	Duration      string          `json:"duration"`
	ID            string          `json:"id"`
	NumberOfStops int             `json:"numberOfStops"`
}

type SegmentEndpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type Aircraft struct {
	Code string `json:"code"`
}

type Operating struct {
	CarrierCode string `json:"carrierCode"`
}

type OfferPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	GrandTotal string `json:"grandTotal"`
}

type TravelerPricing struct {
	TravelerID           string                 `json:"travelerId"`
	FareOption           string                 `json:"fareOption"`
	TravelerType         string                 `json:"travelerType"`
	FareDetailsBySegment []FareDetailsBySegment `json:"fareDetailsBySegment"`
}

type FareDetailsBySegment struct {
	SegmentID           string              `json:"segmentId"`
	Cabin               string              `json:"cabin"`
	FareBasis           string              `json:"fareBasis"`
	Class               string              `json:"class"`
	IncludedCheckedBags IncludedCheckedBags `json:"includedCheckedBags"`
}

type IncludedCheckedBags struct {
	Quantity int `json:"quantity"`
}

type Location struct {
	Type         string  `json:"type"`
	SubType      string  `json:"subType"`
	Name         string  `json:"name"`
	DetailedName string  `json:"detailedName"`
	IataCode     string  `json:"iataCode"`
	Address      Address `json:"address"`
}

type Address struct {
	CityName    string `json:"cityName"`
	CityCode    string `json:"cityCode"`
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode"`
}

type Dictionaries struct {
	Locations  map[string]LocationEntry `json:"locations,omitempty"`
	Aircraft   map[string]string        `json:"aircraft,omitempty"`
	Currencies map[string]string        `json:"currencies,omitempty"`
	Carriers   map[string]string        `json:"carriers,omitempty"`
}

// LocationEntry is the flight-offers dictionary variant of a location;
// the richer Location shape only appears on the airport lookup endpoint.
type LocationEntry struct {
	Name        string `json:"name,omitempty"`
	CityCode    string `json:"cityCode,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

type Meta struct {
	Count int `json:"count"`
}

type OffersResponse struct {
	Meta         Meta          `json:"meta"`
	Data         []FlightOffer `json:"data"`
	Dictionaries *Dictionaries `json:"dictionaries,omitempty"`
}

type LocationsResponse struct {
	Meta Meta       `json:"meta"`
	Data []Location `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}
