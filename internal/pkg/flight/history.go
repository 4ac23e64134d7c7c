package flight

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/dwiprm/flight-price-explorer/internal/app/dto"
)

const historyDays = 30

// weeklyPattern multiplies the average price by weekday, Sunday first.
// Weekend departures price above the weekly average.
var weeklyPattern = [7]float64{1.05, 1.02, 1.00, 0.98, 1.03, 1.08, 1.10}

// HistorySynthesizer produces the 31-day synthetic price series anchored
// to the average price of a result set. It is a demo series, not a
// forecast; the random source is injectable so tests can pin the output.
type HistorySynthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewHistorySynthesizer(rng *rand.Rand, now func() time.Time) *HistorySynthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}

	return &HistorySynthesizer{rng: rng, now: now}
}

// Generate returns one point per day from 30 days ago through today, or
// an empty series for an empty offer list.
func (s *HistorySynthesizer) Generate(offers []dto.FlightOffer) []dto.PricePoint {
	if len(offers) == 0 {
		return []dto.PricePoint{}
	}

	sum := 0.0
	for _, offer := range offers {
		sum += offer.Price.Amount
	}
	avgPrice := sum / float64(len(offers))

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	history := make([]dto.PricePoint, 0, historyDays+1)

	for i := historyDays; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)

		weekly := weeklyPattern[int(date.Weekday())]
		trend := math.Sin(float64(i)*0.2)*0.1 + 1
		noise := (s.rng.Float64() - 0.5) * 0.15

		price := math.Round(avgPrice * weekly * trend * (1 + noise))
		low := math.Round(price * (0.90 + s.rng.Float64()*0.05))
		high := math.Round(price * (1.05 + s.rng.Float64()*0.05))

		history = append(history, dto.PricePoint{
			Date:    date.Format("2006-01-02"),
			Price:   int(price),
			Average: int(math.Round(avgPrice)),
			Low:     int(low),
			High:    int(high),
		})
	}

	return history
}
