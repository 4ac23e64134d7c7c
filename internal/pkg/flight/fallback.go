package flight

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/dwiprm/flight-price-explorer/internal/app/dto"
	"github.com/google/uuid"
)

const (
	fallbackOfferCount = 20
	fallbackBasePrice  = 350.0
)

type fallbackAirline struct {
	name string
	code string
}

var fallbackAirlines = []fallbackAirline{
	{"Delta Airlines", "DL"},
	{"American Airlines", "AA"},
	{"United Airlines", "UA"},
	{"JetBlue Airways", "B6"},
	{"Southwest Airlines", "WN"},
	{"Alaska Airlines", "AS"},
	{"Spirit Airlines", "NK"},
	{"Frontier Airlines", "F9"},
	{"Hawaiian Airlines", "HA"},
	{"Emirates", "EK"},
	{"Qatar Airways", "QR"},
	{"British Airways", "BA"},
}

var fallbackHubs = []string{"ORD", "DFW", "MIA", "SEA", "SFO", "ATL", "DEN", "BOS"}

var fallbackAircraft = []string{"Boeing 737", "Airbus A320", "Boeing 787", "Airbus A350"}

var fallbackFareTypes = []string{
	dto.FareTypeEconomy, dto.FareTypePremium, dto.FareTypeBusiness, dto.FareTypeFirst,
}

// FallbackGenerator produces the synthetic offer set served when the
// upstream search fails. The random source is injectable for tests.
type FallbackGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewFallbackGenerator(rng *rand.Rand) *FallbackGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &FallbackGenerator{rng: rng}
}

// Generate builds 20 synthetic offers between origin and destination on
// the given date: 0-2 stops, 180-540 minute legs, prices spread around
// the base fare with a per-stop markup. Best flags are left for the
// aggregator pass, same as real offers.
func (g *FallbackGenerator) Generate(origin, destination, departureDate string) []dto.FlightOffer {
	g.mu.Lock()
	defer g.mu.Unlock()

	if origin == "" {
		origin = "JFK"
	}
	if destination == "" {
		destination = "LAX"
	}

	day, err := time.Parse("2006-01-02", departureDate)
	if err != nil {
		day = time.Now()
	}

	offers := make([]dto.FlightOffer, 0, fallbackOfferCount)

	for i := 0; i < fallbackOfferCount; i++ {
		stops := g.rng.Intn(3)

		segments := make([]dto.Segment, 0, stops+1)
		totalDuration := 0
		departAt := day.Add(time.Duration(g.rng.Intn(24*60)) * time.Minute)

		for j := 0; j <= stops; j++ {
			from := origin
			if j > 0 {
				from = fallbackHubs[g.rng.Intn(len(fallbackHubs))]
			}
			to := destination
			if j < stops {
				to = fallbackHubs[g.rng.Intn(len(fallbackHubs))]
			}

			duration := 180 + g.rng.Intn(7)*60
			totalDuration += duration
			arriveAt := departAt.Add(time.Duration(duration) * time.Minute)

			airline := fallbackAirlines[g.rng.Intn(len(fallbackAirlines))]

			segments = append(segments, dto.Segment{
				Departure: dto.SegmentPoint{
					Airport: from,
					IATA:    from,
					Time:    departAt.Format(time.RFC3339),
				},
				Arrival: dto.SegmentPoint{
					Airport: to,
					IATA:    to,
					Time:    arriveAt.Format(time.RFC3339),
				},
				Carrier:      airline.name,
				CarrierCode:  airline.code,
				FlightNumber: fmt.Sprintf("%d", 1000+g.rng.Intn(9000)),
				Duration:     duration,
				Aircraft:     fallbackAircraft[g.rng.Intn(len(fallbackAircraft))],
			})

			// layover before the next leg
			departAt = arriveAt.Add(time.Duration(45+g.rng.Intn(90)) * time.Minute)
		}

		multiplier := 1 + float64(stops)*0.1 - g.rng.Float64()*0.2
		price := math.Round(fallbackBasePrice*multiplier*100) / 100

		seen := make(map[string]bool, len(segments))
		carriers := make([]string, 0, len(segments))
		for _, segment := range segments {
			if !seen[segment.Carrier] {
				seen[segment.Carrier] = true
				carriers = append(carriers, segment.Carrier)
			}
		}

		offers = append(offers, dto.FlightOffer{
			ID:          fmt.Sprintf("synthetic-%d-%s", i, uuid.NewString()),
			Price:       dto.Price{Amount: price, Currency: "USD"},
			Itineraries: [][]dto.Segment{segments},
			Stops:       stops,
			Duration:    totalDuration,
			Carriers:    carriers,
			FareType:    fallbackFareTypes[g.rng.Intn(len(fallbackFareTypes))],
			Baggage: &dto.Baggage{
				CarryOn: g.rng.Float64() > 0.2,
				Checked: g.rng.Intn(3),
			},
		})
	}

	return offers
}
