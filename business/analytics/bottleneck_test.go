package analytics

import (
	"testing"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectStageBottlenecksCritical(t *testing.T) {
	// oven benchmark P95 is 14; constant 20 gives excess ratio 1.43
	rows := make([]domain.Order, 20)
	for i := range rows {
		rows[i].OvenTime = fp(20)
	}
	tbl := NewTable(rows, ColOvenTime)

	bottlenecks := DetectStageBottlenecks(tbl, DefaultConfig())

	require.Len(t, bottlenecks, 1)
	b := bottlenecks[0]
	assert.Equal(t, "Oven", b.Location)
	assert.Equal(t, BottleneckStage, b.Type)
	assert.Equal(t, SeverityCritical, b.Severity)
	assert.Equal(t, 20.0, b.CurrentValue)
	assert.Equal(t, 14.0, b.Threshold)
	assert.Equal(t, 100.0, b.ImpactPct)
}

func TestDetectStageBottlenecksSeverityBands(t *testing.T) {
	cfg := DefaultConfig()

	// P95 16.5 / 14 = 1.179: high
	rows := make([]domain.Order, 20)
	for i := range rows {
		rows[i].OvenTime = fp(16.5)
	}
	high := DetectStageBottlenecks(NewTable(rows, ColOvenTime), cfg)
	require.Len(t, high, 1)
	assert.Equal(t, SeverityHigh, high[0].Severity)

	// P95 15 / 14 = 1.071: medium
	for i := range rows {
		rows[i].OvenTime = fp(15)
	}
	medium := DetectStageBottlenecks(NewTable(rows, ColOvenTime), cfg)
	require.Len(t, medium, 1)
	assert.Equal(t, SeverityMedium, medium[0].Severity)

	// within benchmark: nothing
	for i := range rows {
		rows[i].OvenTime = fp(12)
	}
	assert.Empty(t, DetectStageBottlenecks(NewTable(rows, ColOvenTime), cfg))
}

func TestDetectAreaBottlenecks(t *testing.T) {
	rows := []domain.Order{
		{DeliveryArea: "Centrum", DeliveryDuration: fp(20)},
		{DeliveryArea: "Centrum", DeliveryDuration: fp(20)},
		{DeliveryArea: "Centrum", DeliveryDuration: fp(20)},
		{DeliveryArea: "Centrum", DeliveryDuration: fp(20)},
		{DeliveryArea: "Zuid", DeliveryDuration: fp(40)},
	}
	tbl := NewTable(rows, ColDeliveryArea, ColDeliveryDuration)

	bottlenecks := DetectAreaBottlenecks(tbl)

	// overall mean 24; Zuid at 40 is 1.67x: high
	require.Len(t, bottlenecks, 1)
	b := bottlenecks[0]
	assert.Equal(t, "Area Zuid", b.Location)
	assert.Equal(t, SeverityHigh, b.Severity)
	assert.Equal(t, 40.0, b.CurrentValue)
	assert.Equal(t, 24.0, b.Threshold)
	assert.Equal(t, 20.0, b.ImpactPct)
}

func TestDetectAreaBottlenecksSingleAreaNeverFlagged(t *testing.T) {
	rows := []domain.Order{
		{DeliveryArea: "Centrum", DeliveryDuration: fp(50)},
		{DeliveryArea: "Centrum", DeliveryDuration: fp(55)},
		{DeliveryArea: "Centrum", DeliveryDuration: fp(60)},
	}
	tbl := NewTable(rows, ColDeliveryArea, ColDeliveryDuration)

	// a single area always equals the overall mean
	assert.Empty(t, DetectAreaBottlenecks(tbl))
}

func TestDetectStaffBottlenecksDriverFloor(t *testing.T) {
	cfg := DefaultConfig()

	// slow driver with 5 deliveries stays under the 10-delivery floor
	rows := make([]domain.Order, 0, 25)
	for i := 0; i < 20; i++ {
		rows = append(rows, domain.Order{DeliveryDriver: "Fast", DeliveryDuration: fp(15)})
	}
	for i := 0; i < 5; i++ {
		rows = append(rows, domain.Order{DeliveryDriver: "Slow", DeliveryDuration: fp(60)})
	}
	tbl := NewTable(rows, ColDeliveryDriver, ColDeliveryDuration)

	assert.Empty(t, DetectStaffBottlenecks(tbl, cfg))

	// same ratio with enough deliveries flags
	for i := 0; i < 5; i++ {
		rows = append(rows, domain.Order{DeliveryDriver: "Slow", DeliveryDuration: fp(60)})
	}
	tbl = NewTable(rows, ColDeliveryDriver, ColDeliveryDuration)

	bottlenecks := DetectStaffBottlenecks(tbl, cfg)
	require.Len(t, bottlenecks, 1)
	assert.Equal(t, "Slow", bottlenecks[0].Location)
	assert.Equal(t, BottleneckStaff, bottlenecks[0].Type)
	assert.Equal(t, SeverityMedium, bottlenecks[0].Severity)
}

func TestDetectStaffBottlenecksStylistFloor(t *testing.T) {
	cfg := DefaultConfig()

	rows := make([]domain.Order, 0, 40)
	for i := 0; i < 20; i++ {
		rows = append(rows, domain.Order{Stylist: "Clean", Complaint: false})
	}
	for i := 0; i < 10; i++ {
		rows = append(rows, domain.Order{Stylist: "Messy", Complaint: i < 5})
	}
	tbl := NewTable(rows, ColStylist, ColComplaint)

	// Messy has 50% vs overall 16.7% but only 10 orders: floor holds
	assert.Empty(t, DetectStaffBottlenecks(tbl, cfg))

	for i := 0; i < 10; i++ {
		rows = append(rows, domain.Order{Stylist: "Messy", Complaint: i < 5})
	}
	tbl = NewTable(rows, ColStylist, ColComplaint)

	bottlenecks := DetectStaffBottlenecks(tbl, cfg)
	require.Len(t, bottlenecks, 1)
	assert.Equal(t, "Messy", bottlenecks[0].Location)
	assert.Equal(t, "Complaint Rate", bottlenecks[0].Metric)
}

func TestDetectTimeBottlenecksVolumeFloor(t *testing.T) {
	cfg := DefaultConfig()

	hour12, hour20 := 12, 20
	rows := make([]domain.Order, 0, 48)
	for i := 0; i < 47; i++ {
		rows = append(rows, domain.Order{HourOfDay: &hour12, TotalProcessTime: fp(20)})
	}
	// one slow order in a quiet hour stays under the volume floor
	rows = append(rows, domain.Order{HourOfDay: &hour20, TotalProcessTime: fp(90)})
	tbl := NewTable(rows, ColHourOfDay, ColTotalProcessTime)

	assert.Empty(t, DetectTimeBottlenecks(tbl, cfg))
}

func TestDetectTimeBottlenecksSeverity(t *testing.T) {
	cfg := DefaultConfig()

	hour12, hour18 := 12, 18
	rows := make([]domain.Order, 0, 48)
	for i := 0; i < 40; i++ {
		rows = append(rows, domain.Order{HourOfDay: &hour12, TotalProcessTime: fp(20)})
	}
	for i := 0; i < 8; i++ {
		rows = append(rows, domain.Order{HourOfDay: &hour18, TotalProcessTime: fp(40)})
	}
	tbl := NewTable(rows, ColHourOfDay, ColTotalProcessTime)

	bottlenecks := DetectTimeBottlenecks(tbl, cfg)

	require.Len(t, bottlenecks, 1)
	b := bottlenecks[0]
	assert.Equal(t, "18:00", b.Location)
	assert.Equal(t, BottleneckTime, b.Type)
	// above the 30-minute delivery target: high
	assert.Equal(t, SeverityHigh, b.Severity)
}

func TestIdentifyAllBottlenecksOrdering(t *testing.T) {
	cfg := DefaultConfig()

	rows := make([]domain.Order, 0, 40)
	for i := 0; i < 20; i++ {
		// oven constant 20: critical stage bottleneck
		rows = append(rows, domain.Order{
			OvenTime:         fp(20),
			DeliveryArea:     "Centrum",
			DeliveryDuration: fp(20),
		})
	}
	for i := 0; i < 4; i++ {
		// Zuid 1.45x overall: high area bottleneck
		rows = append(rows, domain.Order{
			OvenTime:         fp(20),
			DeliveryArea:     "Zuid",
			DeliveryDuration: fp(32),
		})
	}
	tbl := NewTable(rows, ColOvenTime, ColDeliveryArea, ColDeliveryDuration)

	bottlenecks := IdentifyAllBottlenecks(tbl, cfg)

	require.GreaterOrEqual(t, len(bottlenecks), 2)
	for i := 1; i < len(bottlenecks); i++ {
		prev, cur := bottlenecks[i-1], bottlenecks[i]
		assert.LessOrEqual(t, rankSeverity(prev.Severity), rankSeverity(cur.Severity))
		if prev.Severity == cur.Severity {
			assert.GreaterOrEqual(t, prev.ImpactPct, cur.ImpactPct)
		}
	}
	assert.Equal(t, SeverityCritical, bottlenecks[0].Severity)
}

func TestCalculateBottleneckImpact(t *testing.T) {
	bottlenecks := []domain.Bottleneck{
		{Type: BottleneckStage, Severity: SeverityCritical, Location: "Oven", Recommendation: "r1"},
		{Type: BottleneckArea, Severity: SeverityHigh, Location: "Area Zuid", Recommendation: "r2"},
		{Type: BottleneckArea, Severity: SeverityLow, Location: "Area Noord", Recommendation: "r3"},
	}

	impact := CalculateBottleneckImpact(bottlenecks)

	assert.Equal(t, 3, impact.TotalBottlenecks)
	assert.Equal(t, 1, impact.CriticalCount)
	assert.Equal(t, 1, impact.HighCount)
	assert.Equal(t, 1, impact.LowCount)
	assert.Equal(t, 2, impact.ByType[BottleneckArea])
	require.Len(t, impact.TopRecommendations, 3)
	assert.Equal(t, "Oven", impact.TopRecommendations[0].Location)
}

func TestBottleneckSummary(t *testing.T) {
	assert.Contains(t, BottleneckSummary(nil), "No significant bottlenecks")

	summary := BottleneckSummary([]domain.Bottleneck{
		{Severity: SeverityCritical, Location: "Oven", Metric: "P95 Duration", CurrentValue: 20.0, Threshold: 14.0},
	})
	assert.Contains(t, summary, "1 critical bottleneck(s)")
	assert.Contains(t, summary, "Primary concern: Oven")
}
