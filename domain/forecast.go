package domain

import "time"

// PeriodAggregate is one time bucket of the order table (daily or hourly),
// the input series for demand forecasting.
type PeriodAggregate struct {
	Period          time.Time `json:"period"`
	OrderCount      int       `json:"order_count"`
	AvgTotalTime    float64   `json:"avg_total_time"`
	AvgDeliveryTime float64   `json:"avg_delivery_time"`
	ComplaintRate   float64   `json:"complaint_rate"`
}

// ForecastPoint is one forecast horizon step.
type ForecastPoint struct {
	Date     time.Time `json:"date"`
	Forecast float64   `json:"forecast"`
	Lower    float64   `json:"lower"`
	Upper    float64   `json:"upper"`
}
