package domain

import "time"

// Bottleneck is a detected operational constraint. It is a pure projection
// of the current order table: recomputed on every detection pass, never
// persisted or mutated.
type Bottleneck struct {
	Location        string   `json:"location"`
	Type            string   `json:"type"`     // stage, area, staff, time
	Severity        string   `json:"severity"` // critical, high, medium, low
	Metric          string   `json:"metric"`
	CurrentValue    float64  `json:"current_value"`
	Threshold       float64  `json:"threshold"`
	ImpactPct       float64  `json:"impact_pct"`
	AffectedPeriods []string `json:"affected_periods"`
	Recommendation  string   `json:"recommendation"`
}

// BottleneckImpact summarizes a detection pass.
type BottleneckImpact struct {
	TotalBottlenecks   int                        `json:"total_bottlenecks"`
	CriticalCount      int                        `json:"critical_count"`
	HighCount          int                        `json:"high_count"`
	MediumCount        int                        `json:"medium_count"`
	LowCount           int                        `json:"low_count"`
	ByType             map[string]int             `json:"by_type"`
	TopRecommendations []BottleneckRecommendation `json:"top_recommendations"`
}

type BottleneckRecommendation struct {
	Location       string `json:"location"`
	Severity       string `json:"severity"`
	Recommendation string `json:"recommendation"`
}

// Alert is a threshold breach. Same stateless lifecycle as Bottleneck.
type Alert struct {
	Level        string    `json:"level"`    // critical, warning, info
	Category     string    `json:"category"` // delivery, complaint, oven, staff, process
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	MetricName   string    `json:"metric_name"`
	CurrentValue float64   `json:"current_value"`
	Threshold    float64   `json:"threshold"`
	Timestamp    time.Time `json:"timestamp"`
}

type AlertSummary struct {
	Total          int            `json:"total"`
	ByLevel        map[string]int `json:"by_level"`
	ByCategory     map[string]int `json:"by_category"`
	NeedsAttention bool           `json:"needs_attention"`
}

// AreaMetrics is the per-delivery-area breakdown.
type AreaMetrics struct {
	DeliveryArea       string  `json:"delivery_area"`
	OrderCount         int     `json:"order_count"`
	AvgDeliveryTime    float64 `json:"avg_delivery_time"`
	MedianDeliveryTime float64 `json:"median_delivery_time"`
	P95DeliveryTime    float64 `json:"p95_delivery_time"`
	AvgTotalTime       float64 `json:"avg_total_time"`
	OnTimePct          float64 `json:"on_time_pct"`
	ComplaintRate      float64 `json:"complaint_rate"`
}

// DriverScorecard is the per-driver breakdown.
type DriverScorecard struct {
	Driver          string  `json:"driver"`
	TotalDeliveries int     `json:"total_deliveries"`
	AvgTime         float64 `json:"avg_time"`
	P95Time         float64 `json:"p95_time"`
	OnTimePct       float64 `json:"on_time_pct"`
	ComplaintRate   float64 `json:"complaint_rate"`
	AreasServed     int     `json:"areas_served"`
}

// OrderModeMetrics compares performance per ordering channel.
type OrderModeMetrics struct {
	OrderMode       string  `json:"order_mode"`
	OrderCount      int     `json:"order_count"`
	AvgTotalTime    float64 `json:"avg_total_time"`
	AvgDeliveryTime float64 `json:"avg_delivery_time"`
	ComplaintRate   float64 `json:"complaint_rate"`
}

// StageMetric is one pipeline stage vs its benchmark.
type StageMetric struct {
	Stage        string   `json:"stage"`
	Mean         float64  `json:"mean"`
	Median       float64  `json:"median"`
	Std          float64  `json:"std"`
	P95          float64  `json:"p95"`
	Target       *float64 `json:"target,omitempty"`
	BenchmarkP95 *float64 `json:"benchmark_p95,omitempty"`
}

// GroupRank is one row of a generic top/bottom-N ranking.
type GroupRank struct {
	Group      string  `json:"group"`
	AvgMetric  float64 `json:"avg_metric"`
	OrderCount int     `json:"order_count"`
}

// Trend compares the latest period window against the one before it.
type Trend struct {
	Current   *float64 `json:"current"`
	Previous  *float64 `json:"previous"`
	Change    *float64 `json:"change"`
	ChangePct *float64 `json:"change_pct"`
}

// ComplaintAnalysis breaks complaints down by reason, area and hour.
type ComplaintAnalysis struct {
	ByReason         map[string]int     `json:"by_reason,omitempty"`
	ByArea           map[string]float64 `json:"by_area,omitempty"`
	ByHour           map[int]float64    `json:"by_hour,omitempty"`
	OnTimeComplaints int                `json:"on_time_complaints"`
	LateComplaints   int                `json:"late_complaints"`
	OnTimePct        float64            `json:"on_time_complaint_pct"`
}
