package forecast

import (
	"errors"
	"time"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/analytics"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
)

// ErrNotEnoughData is returned when the input series is shorter than one
// seasonal cycle.
var ErrNotEnoughData = errors.New("forecast: not enough history")

// Forecaster projects future order demand from a time-bucketed history.
// Implementations must not mutate the input series.
type Forecaster interface {
	Forecast(series []domain.PeriodAggregate, horizon int) ([]domain.ForecastPoint, error)
}

// SeasonalBaseline is a seasonal moving-average forecaster: each horizon
// step predicts the mean of the same weekday (or hour) across the trailing
// window, with bounds one sample standard deviation wide.
type SeasonalBaseline struct {
	// SeasonLength is the cycle length in periods: 7 for daily series,
	// 24 for hourly.
	SeasonLength int
	// Window caps how many past cycles feed each prediction. Zero means
	// use the full history.
	Window int
}

// NewDailyBaseline returns a weekly-seasonal baseline over the last four
// weeks of history.
func NewDailyBaseline() *SeasonalBaseline {
	return &SeasonalBaseline{SeasonLength: 7, Window: 4}
}

// NewHourlyBaseline returns a daily-seasonal baseline over the last seven
// days of history.
func NewHourlyBaseline() *SeasonalBaseline {
	return &SeasonalBaseline{SeasonLength: 24, Window: 7}
}

func (s *SeasonalBaseline) Forecast(series []domain.PeriodAggregate, horizon int) ([]domain.ForecastPoint, error) {
	if s.SeasonLength <= 0 {
		return nil, errors.New("forecast: season length must be positive")
	}
	if len(series) < s.SeasonLength {
		return nil, ErrNotEnoughData
	}
	if horizon <= 0 {
		return nil, nil
	}

	step := s.periodStep(series)
	last := series[len(series)-1].Period

	out := make([]domain.ForecastPoint, 0, horizon)
	for h := 1; h <= horizon; h++ {
		target := last.Add(time.Duration(h) * step)
		samples := s.phaseSamples(series, target)

		m := analytics.Mean(samples)
		sd := analytics.Std(samples)

		out = append(out, domain.ForecastPoint{
			Date:     target,
			Forecast: m,
			Lower:    maxF(0, m-sd),
			Upper:    m + sd,
		})
	}
	return out, nil
}

// phaseSamples collects the order counts at the target's cycle phase
// (same weekday for daily series, same hour for hourly), newest first,
// limited to the window.
func (s *SeasonalBaseline) phaseSamples(series []domain.PeriodAggregate, target time.Time) []float64 {
	samples := make([]float64, 0, s.Window)
	for i := len(series) - 1; i >= 0; i-- {
		if !s.samePhase(series[i].Period, target) {
			continue
		}
		samples = append(samples, float64(series[i].OrderCount))
		if s.Window > 0 && len(samples) >= s.Window {
			break
		}
	}
	return samples
}

func (s *SeasonalBaseline) samePhase(a, b time.Time) bool {
	if s.SeasonLength == 24 {
		return a.Hour() == b.Hour()
	}
	return a.Weekday() == b.Weekday()
}

func (s *SeasonalBaseline) periodStep(series []domain.PeriodAggregate) time.Duration {
	if len(series) >= 2 {
		if d := series[len(series)-1].Period.Sub(series[len(series)-2].Period); d > 0 {
			return d
		}
	}
	if s.SeasonLength == 24 {
		return time.Hour
	}
	return 24 * time.Hour
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
