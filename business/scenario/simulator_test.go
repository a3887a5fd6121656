package scenario

import (
	"testing"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateQualityFixImpactNoFixes(t *testing.T) {
	stats := domain.QualityStats{TotalRows: 100, MissingPct: 5, DuplicatePct: 2}

	proj := SimulateQualityFixImpact(82, stats, nil)

	assert.Equal(t, 82.0, proj.ProjectedScore)
	assert.Equal(t, 0.0, proj.ScoreImprovement)
	assert.Equal(t, ConfidenceHigh, proj.Confidence)
	assert.Empty(t, proj.FixDetails)
}

func TestSimulateQualityFixImpactDuplicates(t *testing.T) {
	stats := domain.QualityStats{TotalRows: 100, DuplicatePct: 3}
	fixes := []domain.QualityFix{{Type: "duplicate", Column: "all"}}

	proj := SimulateQualityFixImpact(80, stats, fixes)

	// 3% duplicates give a 12-point lift
	assert.Equal(t, 92.0, proj.ProjectedScore)
	assert.Equal(t, 12.0, proj.ScoreImprovement)
	assert.Equal(t, 100.0, proj.MetricsAfter["uniqueness"])
	assert.Equal(t, 97.0, proj.MetricsBefore["uniqueness"])
	require.Len(t, proj.FixDetails, 1)
	assert.Equal(t, 12.0, proj.FixDetails[0].Impact)
}

func TestSimulateQualityFixImpactMissingFill(t *testing.T) {
	stats := domain.QualityStats{TotalRows: 100, MissingPct: 10}
	fixes := []domain.QualityFix{{Type: "missing", Column: "oven_temperature", Count: 20}}

	proj := SimulateQualityFixImpact(70, stats, fixes)

	// column missing share 20% caps the lift at 15 points
	assert.Equal(t, 85.0, proj.ProjectedScore)
	// 80% of the gaps assumed filled, capped at full completeness
	assert.Equal(t, 90.0, proj.MetricsBefore["completeness"])
	assert.Equal(t, 100.0, proj.MetricsAfter["completeness"])
}

func TestSimulateQualityFixImpactCap(t *testing.T) {
	stats := domain.QualityStats{TotalRows: 100, DuplicatePct: 25}
	fixes := []domain.QualityFix{{Type: "duplicate"}}

	proj := SimulateQualityFixImpact(95, stats, fixes)

	assert.Equal(t, 100.0, proj.ProjectedScore)
	assert.Equal(t, 5.0, proj.ScoreImprovement)
}

func TestSimulateQualityFixImpactConfidence(t *testing.T) {
	stats := domain.QualityStats{TotalRows: 100}
	fix := domain.QualityFix{Type: "type_error", Column: "c"}

	assert.Equal(t, ConfidenceHigh, SimulateQualityFixImpact(80, stats, []domain.QualityFix{fix, fix}).Confidence)
	assert.Equal(t, ConfidenceMedium, SimulateQualityFixImpact(80, stats, []domain.QualityFix{fix, fix, fix}).Confidence)
	assert.Equal(t, ConfidenceLow, SimulateQualityFixImpact(80, stats, []domain.QualityFix{fix, fix, fix, fix, fix}).Confidence)
}

func TestClassifyRecommendation(t *testing.T) {
	cases := []struct {
		title    string
		action   string
		expected string
	}{
		{"Optimize oven preheat cycle", "", CatOvenOptimization},
		{"Improve delivery routes", "", CatRouteOptimization},
		{"Hire two evening staff", "", CatStaffScheduling},
		{"Target the worst bottleneck", "", CatAreaFocus},
		{"Streamline the workflow", "", CatProcessImprovement},
		{"Reduce customer complaints", "", CatQualityControl},
		{"General housekeeping", "", CatDefault},
		// keyword rules check the action text too
		{"Untitled", "rebalance driver assignments", CatRouteOptimization},
		// earlier rules win over later ones
		{"Bake faster to cut complaints", "", CatOvenOptimization},
	}

	for _, tc := range cases {
		rec := domain.Recommendation{Title: tc.title, Action: tc.action}
		assert.Equal(t, tc.expected, ClassifyRecommendation(rec), "title=%q action=%q", tc.title, tc.action)
	}
}

func TestSimulateRecommendationImpact(t *testing.T) {
	current := domain.Metrics{OnTimeRate: 70, ComplaintRate: 8, AvgDeliveryTime: 35}
	rec := domain.Recommendation{Title: "Optimize oven preheat cycle", Priority: "high"}

	impact := SimulateRecommendationImpact(current, rec)

	assert.Equal(t, CatOvenOptimization, impact.RecommendationType)
	// oven template scaled by the 1.2 high-priority multiplier
	assert.Equal(t, 9.6, impact.KPIChanges[MetricOnTimeRate])
	assert.Equal(t, -2.4, impact.KPIChanges[MetricComplaintRate])
	assert.Equal(t, -3.6, impact.KPIChanges[MetricAvgDeliveryTime])
	assert.Equal(t, 79.6, impact.ProjectedValues[MetricOnTimeRate])
	assert.Equal(t, 5.6, impact.ProjectedValues[MetricComplaintRate])
	assert.Equal(t, 31.4, impact.ProjectedValues[MetricAvgDeliveryTime])
	assert.Equal(t, ConfidenceHigh, impact.Confidence)
	assert.Equal(t, "this_week", impact.Timeline)
}

func TestSimulateRecommendationImpactClamps(t *testing.T) {
	current := domain.Metrics{OnTimeRate: 99, ComplaintRate: 0.5, AvgDeliveryTime: 15.5}
	rec := domain.Recommendation{Title: "Optimize oven preheat cycle", Priority: "high"}

	impact := SimulateRecommendationImpact(current, rec)

	assert.Equal(t, 100.0, impact.ProjectedValues[MetricOnTimeRate])
	assert.Equal(t, 0.0, impact.ProjectedValues[MetricComplaintRate])
	assert.Equal(t, 15.0, impact.ProjectedValues[MetricAvgDeliveryTime])
}

func TestSimulateRecommendationImpactUnknownPriority(t *testing.T) {
	current := domain.Metrics{OnTimeRate: 70, ComplaintRate: 8, AvgDeliveryTime: 35}
	rec := domain.Recommendation{Title: "General action", Priority: "urgent"}

	impact := SimulateRecommendationImpact(current, rec)

	// unknown priority applies the template unscaled
	assert.Equal(t, CatDefault, impact.RecommendationType)
	assert.Equal(t, 3.0, impact.KPIChanges[MetricOnTimeRate])
}

func TestSimulateCombinedEmpty(t *testing.T) {
	current := domain.Metrics{OnTimeRate: 70, ComplaintRate: 8, AvgDeliveryTime: 35}

	combined := SimulateCombinedRecommendations(current, nil)

	assert.Equal(t, current, combined.ProjectedFinal)
	assert.Empty(t, combined.WaterfallData)
	assert.Equal(t, 0, combined.RecommendationCount)
}

func TestSimulateCombinedSingleEqualsFirstImpact(t *testing.T) {
	current := domain.Metrics{OnTimeRate: 70, ComplaintRate: 8, AvgDeliveryTime: 35}
	rec := domain.Recommendation{Title: "Optimize oven preheat cycle", Priority: "high"}

	single := SimulateRecommendationImpact(current, rec)
	combined := SimulateCombinedRecommendations(current, []domain.Recommendation{rec})

	require.Len(t, combined.WaterfallData, 2)
	assert.Equal(t, "Baseline", combined.WaterfallData[0].Stage)
	assert.Equal(t, single.ProjectedValues[MetricOnTimeRate], combined.ProjectedFinal.OnTimeRate)
	assert.Equal(t, single.ProjectedValues[MetricComplaintRate], combined.ProjectedFinal.ComplaintRate)
	assert.Equal(t, single.ProjectedValues[MetricAvgDeliveryTime], combined.ProjectedFinal.AvgDeliveryTime)
}

func TestSimulateCombinedDiminishingReturns(t *testing.T) {
	current := domain.Metrics{OnTimeRate: 70, ComplaintRate: 8, AvgDeliveryTime: 35}
	rec := domain.Recommendation{Title: "General action", Priority: "medium"}
	recs := []domain.Recommendation{rec, rec, rec}

	combined := SimulateCombinedRecommendations(current, recs)

	require.Len(t, combined.WaterfallData, 4)
	// +3, +2.4, +1.92 with per-step rounding
	assert.Equal(t, 73.0, combined.WaterfallData[1].OnTimeRate)
	assert.Equal(t, 75.4, combined.WaterfallData[2].OnTimeRate)
	assert.Equal(t, 77.3, combined.WaterfallData[3].OnTimeRate)
	assert.Equal(t, 77.3, combined.ProjectedFinal.OnTimeRate)
	assert.Equal(t, 7.3, combined.CumulativeChanges[MetricOnTimeRate])
	assert.Equal(t, ConfidenceMedium, combined.Confidence)
}

func TestSimulateCombinedStageLabels(t *testing.T) {
	current := domain.Metrics{OnTimeRate: 70, ComplaintRate: 8, AvgDeliveryTime: 35}
	recs := []domain.Recommendation{
		{Title: "A very long recommendation title that keeps going"},
		{Title: ""},
	}

	combined := SimulateCombinedRecommendations(current, recs)

	require.Len(t, combined.WaterfallData, 3)
	assert.Equal(t, "A very long recommen", combined.WaterfallData[1].Stage)
	assert.Equal(t, "Step 2", combined.WaterfallData[2].Stage)
}

func TestCalculateBottleneckCascadingImpact(t *testing.T) {
	input := domain.CascadeInput{Area: "Oven", Severity: "critical"}
	original := map[string]float64{
		MetricOnTimeRate:      70,
		MetricComplaintRate:   8,
		MetricAvgDeliveryTime: 35,
	}

	proj := CalculateBottleneckCascadingImpact(input, original, 20)

	// base improvement 20 * 0.5 * 1.5 = 15
	assert.Equal(t, 82.0, proj.ProjectedMetrics[MetricOnTimeRate])
	assert.Equal(t, 3.5, proj.ProjectedMetrics[MetricComplaintRate])
	assert.Equal(t, 27.5, proj.ProjectedMetrics[MetricAvgDeliveryTime])
	assert.Equal(t, 12.0, proj.KPIImprovements[MetricOnTimeRate])
	assert.Equal(t, -4.5, proj.KPIImprovements[MetricComplaintRate])
	assert.Equal(t, ConfidenceMedium, proj.Confidence)
	assert.Equal(t, "Oven", proj.BottleneckArea)
}

func TestCalculateBottleneckCascadingImpactDefaults(t *testing.T) {
	input := domain.CascadeInput{Area: "Routes", Severity: "low"}

	proj := CalculateBottleneckCascadingImpact(input, map[string]float64{}, 20)

	// base improvement 20 * 0.5 * 0.7 = 7 on the 70/8/35 fallbacks
	assert.Equal(t, 75.6, proj.ProjectedMetrics[MetricOnTimeRate])
	assert.Equal(t, 5.9, proj.ProjectedMetrics[MetricComplaintRate])
	assert.Equal(t, 31.5, proj.ProjectedMetrics[MetricAvgDeliveryTime])
	assert.Equal(t, ConfidenceLow, proj.Confidence)
}

func TestCalculateFixPriorityMatrix(t *testing.T) {
	stats := domain.QualityStats{TotalRows: 100}
	issues := []domain.QualityIssue{
		{Type: "duplicate", Column: "order_id", Severity: "critical", Count: 10, AutoFixable: true},
		{Type: "invalid", Column: "oven_temperature", Severity: "low", Count: 2, AutoFixable: false},
	}

	entries := CalculateFixPriorityMatrix(issues, stats)

	require.Len(t, entries, 2)

	// critical duplicate: impact 10+1 capped at 10, effort 2
	assert.Equal(t, 10.0, entries[0].ImpactScore)
	assert.Equal(t, 2.0, entries[0].EffortScore)
	assert.Equal(t, "quick_win", entries[0].PriorityQuadrant)

	// low invalid, not auto-fixable: impact 3.2, effort 9
	assert.Equal(t, 3.2, entries[1].ImpactScore)
	assert.Equal(t, 9.0, entries[1].EffortScore)
	assert.Equal(t, "avoid", entries[1].PriorityQuadrant)
}

func TestCalculateFixPriorityMatrixNameTruncation(t *testing.T) {
	stats := domain.QualityStats{TotalRows: 100}
	issues := []domain.QualityIssue{
		{Type: "missing", Column: "a_really_long_column_name_that_overflows", Severity: "medium", Count: 1, AutoFixable: true},
	}

	entries := CalculateFixPriorityMatrix(issues, stats)

	require.Len(t, entries, 1)
	assert.Len(t, []rune(entries[0].IssueName), 30)
}

func TestCalculateFixPriorityMatrixEmpty(t *testing.T) {
	assert.Empty(t, CalculateFixPriorityMatrix(nil, domain.QualityStats{}))
}
