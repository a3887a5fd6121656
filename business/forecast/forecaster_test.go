package forecast

import (
	"testing"
	"time"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dailySeries builds consecutive daily buckets starting at a Monday.
func dailySeries(counts []int) []domain.PeriodAggregate {
	start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC) // Monday
	out := make([]domain.PeriodAggregate, len(counts))
	for i, c := range counts {
		out[i] = domain.PeriodAggregate{
			Period:     start.AddDate(0, 0, i),
			OrderCount: c,
		}
	}
	return out
}

func TestForecastNotEnoughData(t *testing.T) {
	series := dailySeries([]int{10, 12, 9})

	_, err := NewDailyBaseline().Forecast(series, 7)

	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestForecastWeekdayPhase(t *testing.T) {
	// two full weeks: Mondays at 10 and 20, everything else at 5
	counts := []int{10, 5, 5, 5, 5, 5, 5, 20, 5, 5, 5, 5, 5, 5}
	series := dailySeries(counts)

	points, err := NewDailyBaseline().Forecast(series, 7)
	require.NoError(t, err)
	require.Len(t, points, 7)

	// last period is Sunday, so the first step is the next Monday
	assert.Equal(t, time.Monday, points[0].Date.Weekday())
	assert.Equal(t, 15.0, points[0].Forecast)
	// Tuesday through Sunday average a flat 5
	for _, p := range points[1:] {
		assert.Equal(t, 5.0, p.Forecast)
		assert.Equal(t, 5.0, p.Lower)
		assert.Equal(t, 5.0, p.Upper)
	}
}

func TestForecastBounds(t *testing.T) {
	counts := []int{10, 5, 5, 5, 5, 5, 5, 20, 5, 5, 5, 5, 5, 5}
	series := dailySeries(counts)

	points, err := NewDailyBaseline().Forecast(series, 1)
	require.NoError(t, err)
	require.Len(t, points, 1)

	// Monday samples 10 and 20: mean 15, sample std ~7.07
	assert.InDelta(t, 7.93, points[0].Lower, 0.01)
	assert.InDelta(t, 22.07, points[0].Upper, 0.01)
}

func TestForecastLowerBoundNeverNegative(t *testing.T) {
	// wildly varying Mondays force mean-std below zero
	counts := []int{1, 5, 5, 5, 5, 5, 5, 40, 5, 5, 5, 5, 5, 5}
	series := dailySeries(counts)

	points, err := NewDailyBaseline().Forecast(series, 1)
	require.NoError(t, err)
	require.Len(t, points, 1)

	assert.Equal(t, 0.0, points[0].Lower)
}

func TestForecastWindowLimitsSamples(t *testing.T) {
	// six Mondays; a window of 4 keeps only the newest four
	counts := make([]int, 42)
	for i := range counts {
		counts[i] = 5
	}
	for week := 0; week < 6; week++ {
		counts[week*7] = 100 * (week + 1)
	}
	series := dailySeries(counts)

	points, err := NewDailyBaseline().Forecast(series, 1)
	require.NoError(t, err)
	require.Len(t, points, 1)

	// mean of 300, 400, 500, 600
	assert.Equal(t, 450.0, points[0].Forecast)
}

func TestForecastHourlyPhase(t *testing.T) {
	start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	series := make([]domain.PeriodAggregate, 48)
	for i := range series {
		count := 5
		if i%24 == 12 {
			count = 30
		}
		series[i] = domain.PeriodAggregate{
			Period:     start.Add(time.Duration(i) * time.Hour),
			OrderCount: count,
		}
	}

	points, err := NewHourlyBaseline().Forecast(series, 24)
	require.NoError(t, err)
	require.Len(t, points, 24)

	for _, p := range points {
		if p.Date.Hour() == 12 {
			assert.Equal(t, 30.0, p.Forecast)
		} else {
			assert.Equal(t, 5.0, p.Forecast)
		}
	}
}

func TestForecastZeroHorizon(t *testing.T) {
	series := dailySeries([]int{5, 5, 5, 5, 5, 5, 5})

	points, err := NewDailyBaseline().Forecast(series, 0)

	require.NoError(t, err)
	assert.Empty(t, points)
}
