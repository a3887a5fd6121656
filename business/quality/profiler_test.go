package quality

import (
	"fmt"
	"testing"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/analytics"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestComputeStatsMissingPct(t *testing.T) {
	rows := make([]domain.Order, 100)
	for i := range rows {
		rows[i].ID = fmt.Sprintf("ORD-%03d", i)
		rows[i].DeliveryDuration = fp(20)
		rows[i].DeliveryArea = "Centrum"
		if i >= 80 {
			rows[i].OvenTemperature = nil
		} else {
			rows[i].OvenTemperature = fp(260)
		}
	}
	tbl := analytics.NewTable(rows,
		analytics.ColOrderID, analytics.ColDeliveryDuration,
		analytics.ColOvenTemperature, analytics.ColDeliveryArea)

	stats := ComputeStats(tbl)

	assert.Equal(t, 100, stats.TotalRows)
	assert.Equal(t, 4, stats.TotalColumns)
	assert.Equal(t, 20, stats.MissingByColumn[analytics.ColOvenTemperature])
	assert.Equal(t, 20, stats.TotalMissing)
	// 20 missing cells of 100 rows x 4 columns
	assert.Equal(t, 5.0, stats.MissingPct)
	assert.Equal(t, 0, stats.DuplicateRows)
}

func TestComputeStatsDuplicates(t *testing.T) {
	rows := []domain.Order{
		{ID: "A", DeliveryDuration: fp(20)},
		{ID: "A", DeliveryDuration: fp(20)},
		{ID: "B", DeliveryDuration: fp(25)},
	}
	tbl := analytics.NewTable(rows, analytics.ColOrderID, analytics.ColDeliveryDuration)

	stats := ComputeStats(tbl)

	assert.Equal(t, 1, stats.DuplicateRows)
	assert.InDelta(t, 33.33, stats.DuplicatePct, 0.01)
}

func TestComputeStatsOutliers(t *testing.T) {
	rows := make([]domain.Order, 10)
	for i := range rows {
		rows[i].ID = fmt.Sprintf("ORD-%d", i)
		rows[i].DeliveryDuration = fp(20)
	}
	rows[9].DeliveryDuration = fp(100)
	tbl := analytics.NewTable(rows, analytics.ColOrderID, analytics.ColDeliveryDuration)

	stats := ComputeStats(tbl)

	info, ok := stats.Outliers[analytics.ColDeliveryDuration]
	require.True(t, ok)
	assert.Equal(t, 1, info.Count)
	assert.Equal(t, 10.0, info.Percentage)
	assert.Equal(t, 100.0, info.Max)
}

func TestQualityScore(t *testing.T) {
	assert.Equal(t, 100.0, QualityScore(domain.QualityStats{}))

	// each dimension is capped
	worst := domain.QualityStats{
		MissingPct:   50,
		DuplicatePct: 50,
		Outliers: map[string]domain.OutlierInfo{
			"a": {}, "b": {}, "c": {}, "d": {}, "e": {}, "f": {},
		},
	}
	assert.Equal(t, 35.0, QualityScore(worst))

	partial := domain.QualityStats{MissingPct: 5, DuplicatePct: 2}
	assert.Equal(t, 82.0, QualityScore(partial))
}

func TestIdentifyIssuesMissingSeverityBands(t *testing.T) {
	cases := []struct {
		missing  int
		severity string
	}{
		{4, "low"},
		{14, "medium"},
		{29, "high"},
		{30, "critical"},
	}

	for _, tc := range cases {
		rows := make([]domain.Order, 100)
		for i := range rows {
			rows[i].ID = fmt.Sprintf("ORD-%03d", i)
			if i >= tc.missing {
				rows[i].OvenTemperature = fp(260)
			}
		}
		tbl := analytics.NewTable(rows, analytics.ColOrderID, analytics.ColOvenTemperature)

		issues := IdentifyIssues(tbl, ComputeStats(tbl))

		require.Len(t, issues, 1, "missing=%d", tc.missing)
		assert.Equal(t, "missing", issues[0].Type)
		assert.Equal(t, tc.severity, issues[0].Severity, "missing=%d", tc.missing)
		assert.True(t, issues[0].AutoFixable)
		assert.Contains(t, issues[0].SuggestedFix, "median")
	}
}

func TestIdentifyIssuesComplaintReasonKeptAsIs(t *testing.T) {
	rows := []domain.Order{
		{ID: "A", Complaint: true, ComplaintReason: "Late delivery"},
		{ID: "B"},
		{ID: "C"},
	}
	tbl := analytics.NewTable(rows, analytics.ColOrderID, analytics.ColComplaint, analytics.ColComplaintReason)

	issues := IdentifyIssues(tbl, ComputeStats(tbl))

	require.Len(t, issues, 1)
	assert.Equal(t, analytics.ColComplaintReason, issues[0].Column)
	assert.Equal(t, "Keep as-is (null = no complaint)", issues[0].SuggestedFix)
	assert.False(t, issues[0].AutoFixable)
}

func TestIdentifyIssuesOutlierFixForDurations(t *testing.T) {
	rows := make([]domain.Order, 10)
	for i := range rows {
		rows[i].ID = fmt.Sprintf("ORD-%d", i)
		rows[i].DeliveryDuration = fp(20)
	}
	rows[9].DeliveryDuration = fp(100)
	tbl := analytics.NewTable(rows, analytics.ColOrderID, analytics.ColDeliveryDuration)

	issues := IdentifyIssues(tbl, ComputeStats(tbl))

	require.Len(t, issues, 1)
	assert.Equal(t, "outlier", issues[0].Type)
	assert.Contains(t, issues[0].SuggestedFix, "minutes (P95 threshold)")
}

func TestAnalyzeReadyFlag(t *testing.T) {
	rows := make([]domain.Order, 10)
	for i := range rows {
		rows[i].ID = fmt.Sprintf("ORD-%d", i)
		rows[i].DeliveryDuration = fp(float64(18 + i))
	}
	tbl := analytics.NewTable(rows, analytics.ColOrderID, analytics.ColDeliveryDuration)

	report := Analyze(tbl)

	assert.Equal(t, 100.0, report.QualityScore)
	assert.True(t, report.ReadyForAnalysis)
	assert.Contains(t, report.Summary, "Data quality score: 100/100")
	assert.Contains(t, report.Summary, "No major issues")
}

func TestApplyFixesDeduplicate(t *testing.T) {
	rows := []domain.Order{
		{ID: "A", DeliveryDuration: fp(20)},
		{ID: "A", DeliveryDuration: fp(20)},
		{ID: "B", DeliveryDuration: fp(25)},
	}
	tbl := analytics.NewTable(rows, analytics.ColOrderID, analytics.ColDeliveryDuration)

	clean, actions := ApplyFixes(tbl, []domain.QualityFix{{Type: "duplicate"}})

	assert.Equal(t, 2, clean.Len())
	require.Len(t, actions, 1)
	assert.Equal(t, "Removed 1 duplicate rows", actions[0])
	// the input table is untouched
	assert.Equal(t, 3, tbl.Len())
}

func TestApplyFixesMedianFill(t *testing.T) {
	rows := []domain.Order{
		{ID: "A", DeliveryDuration: fp(10)},
		{ID: "B", DeliveryDuration: fp(20)},
		{ID: "C"},
		{ID: "D", DeliveryDuration: fp(30)},
	}
	tbl := analytics.NewTable(rows, analytics.ColOrderID, analytics.ColDeliveryDuration)

	clean, actions := ApplyFixes(tbl, []domain.QualityFix{{Type: "missing", Column: analytics.ColDeliveryDuration}})

	require.NotNil(t, clean.FloatAt(2, analytics.ColDeliveryDuration))
	assert.Equal(t, 20.0, *clean.FloatAt(2, analytics.ColDeliveryDuration))
	assert.Nil(t, tbl.FloatAt(2, analytics.ColDeliveryDuration))
	require.Len(t, actions, 1)
	assert.Contains(t, actions[0], "median (20.00)")
}

func TestApplyFixesModeFill(t *testing.T) {
	rows := []domain.Order{
		{ID: "A", DeliveryArea: "Noord"},
		{ID: "B", DeliveryArea: "Noord"},
		{ID: "C", DeliveryArea: "Zuid"},
		{ID: "D"},
	}
	tbl := analytics.NewTable(rows, analytics.ColOrderID, analytics.ColDeliveryArea)

	clean, _ := ApplyFixes(tbl, []domain.QualityFix{{Type: "missing", Column: analytics.ColDeliveryArea}})

	assert.Equal(t, "Noord", clean.StringAt(3, analytics.ColDeliveryArea))
}

func TestApplyFixesModeFillTieAndEmpty(t *testing.T) {
	// tie resolves lexicographically
	rows := []domain.Order{
		{ID: "A", DeliveryArea: "Zuid"},
		{ID: "B", DeliveryArea: "Noord"},
		{ID: "C"},
	}
	tbl := analytics.NewTable(rows, analytics.ColOrderID, analytics.ColDeliveryArea)
	clean, _ := ApplyFixes(tbl, []domain.QualityFix{{Type: "missing", Column: analytics.ColDeliveryArea}})
	assert.Equal(t, "Noord", clean.StringAt(2, analytics.ColDeliveryArea))

	// no observed values at all falls back to Unknown
	empty := analytics.NewTable([]domain.Order{{ID: "A"}}, analytics.ColOrderID, analytics.ColDeliveryArea)
	clean, _ = ApplyFixes(empty, []domain.QualityFix{{Type: "missing", Column: analytics.ColDeliveryArea}})
	assert.Equal(t, "Unknown", clean.StringAt(0, analytics.ColDeliveryArea))
}

func TestApplyFixesOutlierClip(t *testing.T) {
	rows := make([]domain.Order, 10)
	for i := range rows {
		rows[i].ID = fmt.Sprintf("ORD-%d", i)
		rows[i].DeliveryDuration = fp(20)
	}
	rows[9].DeliveryDuration = fp(100)
	tbl := analytics.NewTable(rows, analytics.ColOrderID, analytics.ColDeliveryDuration)

	clean, actions := ApplyFixes(tbl, []domain.QualityFix{{Type: "outlier", Column: analytics.ColDeliveryDuration}})

	require.NotNil(t, clean.FloatAt(9, analytics.ColDeliveryDuration))
	assert.Equal(t, 20.0, *clean.FloatAt(9, analytics.ColDeliveryDuration))
	require.Len(t, actions, 1)
	assert.Contains(t, actions[0], "Capped 1 outliers")
}

func TestApplyFixesUnknownColumnSkipped(t *testing.T) {
	tbl := analytics.NewTable([]domain.Order{{ID: "A"}}, analytics.ColOrderID)

	clean, actions := ApplyFixes(tbl, []domain.QualityFix{{Type: "missing", Column: "nonexistent"}})

	assert.Equal(t, 1, clean.Len())
	assert.Empty(t, actions)
}
