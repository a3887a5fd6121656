package domain

// Metrics is the KPI triple every simulation projects over.
type Metrics struct {
	OnTimeRate      float64 `json:"on_time_rate"`
	ComplaintRate   float64 `json:"complaint_rate"`
	AvgDeliveryTime float64 `json:"avg_delivery_time"`
}

// Recommendation is a remediation action to simulate. Priority and the
// free-text title/action drive the impact template selection.
type Recommendation struct {
	Priority string `json:"priority,omitempty"`
	Title    string `json:"title,omitempty"`
	Action   string `json:"action,omitempty"`
	Timeline string `json:"timeline,omitempty"`
}

// QualityFix is one selected cleaning action.
type QualityFix struct {
	Type        string `json:"type"`
	Column      string `json:"column,omitempty"`
	Count       int    `json:"count,omitempty"`
	Description string `json:"description,omitempty"`
}

// FixDetail is the projected point impact of a single fix.
type FixDetail struct {
	Type        string  `json:"type"`
	Column      string  `json:"column"`
	Impact      float64 `json:"impact"`
	Description string  `json:"description"`
}

// QualityFixProjection is the result of the quality-fix simulation.
type QualityFixProjection struct {
	ProjectedScore   float64            `json:"projected_score"`
	ScoreImprovement float64            `json:"score_improvement"`
	MetricsBefore    map[string]float64 `json:"metrics_before"`
	MetricsAfter     map[string]float64 `json:"metrics_after"`
	Confidence       string             `json:"confidence"`
	FixDetails       []FixDetail        `json:"fix_details"`
}

// RecommendationImpact is the projected effect of one recommendation.
type RecommendationImpact struct {
	RecommendationType string             `json:"recommendation_type"`
	KPIChanges         map[string]float64 `json:"kpi_changes"`
	CurrentValues      map[string]float64 `json:"current_values"`
	ProjectedValues    map[string]float64 `json:"projected_values"`
	Confidence         string             `json:"confidence"`
	Timeline           string             `json:"timeline"`
}

// WaterfallStep is the running KPI triple after one more recommendation.
type WaterfallStep struct {
	Stage           string  `json:"stage"`
	OnTimeRate      float64 `json:"on_time_rate"`
	ComplaintRate   float64 `json:"complaint_rate"`
	AvgDeliveryTime float64 `json:"avg_delivery_time"`
}

// CombinedImpact is the result of stacking recommendations with
// diminishing returns.
type CombinedImpact struct {
	CumulativeChanges   map[string]float64 `json:"cumulative_changes"`
	WaterfallData       []WaterfallStep    `json:"waterfall_data"`
	ProjectedFinal      Metrics            `json:"projected_final"`
	Confidence          string             `json:"confidence"`
	RecommendationCount int                `json:"recommendation_count"`
}

// CascadeInput identifies the bottleneck being reduced.
type CascadeInput struct {
	Area          string  `json:"area,omitempty"`
	CurrentValue  float64 `json:"current_value,omitempty"`
	BenchmarkValue float64 `json:"benchmark_value,omitempty"`
	Severity      string  `json:"severity,omitempty"`
}

// CascadeProjection is the projected KPI improvement from reducing one
// bottleneck by a target percentage.
type CascadeProjection struct {
	BottleneckArea   string             `json:"bottleneck_area"`
	ReductionTarget  float64            `json:"reduction_target"`
	OriginalMetrics  map[string]float64 `json:"original_metrics"`
	ProjectedMetrics map[string]float64 `json:"projected_metrics"`
	KPIImprovements  map[string]float64 `json:"kpi_improvements"`
	Confidence       string             `json:"confidence"`
}

// PriorityMatrixEntry buckets one issue by impact vs effort.
type PriorityMatrixEntry struct {
	IssueName        string  `json:"issue_name"`
	IssueType        string  `json:"issue_type"`
	Severity         string  `json:"severity"`
	ImpactScore      float64 `json:"impact_score"`
	EffortScore      float64 `json:"effort_score"`
	PriorityQuadrant string  `json:"priority_quadrant"`
}
