package flight

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/dwiprm/flight-price-explorer/internal/app/dto"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestHistorySynthesizer_Generate(t *testing.T) {
	offers := []dto.FlightOffer{
		{Price: dto.Price{Amount: 200}},
		{Price: dto.Price{Amount: 300}},
		{Price: dto.Price{Amount: 400}},
	}

	synth := NewHistorySynthesizer(rand.New(rand.NewSource(42)), fixedNow)
	history := synth.Generate(offers)

	assert.Len(t, history, 31)

	// series spans today-30 through today, one day per point
	assert.Equal(t, "2024-05-16", history[0].Date)
	assert.Equal(t, "2024-06-15", history[30].Date)
	for i := 1; i < len(history); i++ {
		prev, _ := time.Parse("2006-01-02", history[i-1].Date)
		curr, _ := time.Parse("2006-01-02", history[i].Date)
		assert.Equal(t, 24*time.Hour, curr.Sub(prev))
	}

	avg := 300
	for _, point := range history {
		assert.Equal(t, avg, point.Average, "average is constant across the series")
		assert.Greater(t, point.Price, 0)
		assert.Less(t, point.Low, point.Price)
		assert.Greater(t, point.High, point.Price)

		// price stays inside the weekly/trend/noise envelope
		upperBound := float64(avg) * 1.10 * 1.1 * 1.075
		lowerBound := float64(avg) * 0.98 * 0.9 * 0.925
		assert.LessOrEqual(t, float64(point.Price), math.Ceil(upperBound))
		assert.GreaterOrEqual(t, float64(point.Price), math.Floor(lowerBound))
	}
}

func TestHistorySynthesizer_EmptyInput(t *testing.T) {
	synth := NewHistorySynthesizer(rand.New(rand.NewSource(1)), fixedNow)

	assert.Empty(t, synth.Generate(nil))
	assert.Empty(t, synth.Generate([]dto.FlightOffer{}))
}

func TestHistorySynthesizer_Deterministic(t *testing.T) {
	offers := []dto.FlightOffer{{Price: dto.Price{Amount: 250}}}

	first := NewHistorySynthesizer(rand.New(rand.NewSource(7)), fixedNow).Generate(offers)
	second := NewHistorySynthesizer(rand.New(rand.NewSource(7)), fixedNow).Generate(offers)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("same seed must give the same series (-first +second):\n%s", diff)
	}
}

func TestHistorySynthesizer_SingleOffer(t *testing.T) {
	synth := NewHistorySynthesizer(rand.New(rand.NewSource(3)), fixedNow)

	history := synth.Generate([]dto.FlightOffer{{Price: dto.Price{Amount: 199.99}}})

	assert.Len(t, history, 31)
	assert.Equal(t, 200, history[0].Average)
}
