package analytics

import (
	"testing"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryAlertsOnTimeLevels(t *testing.T) {
	cfg := DefaultConfig()
	empty := NewTable(nil)

	critical := CheckDeliveryAlerts(empty, KPIs{"on_time_pct": 50.0}, cfg)
	require.Len(t, critical, 1)
	assert.Equal(t, LevelCritical, critical[0].Level)
	assert.Equal(t, CategoryDelivery, critical[0].Category)

	warning := CheckDeliveryAlerts(empty, KPIs{"on_time_pct": 80.0}, cfg)
	require.Len(t, warning, 1)
	assert.Equal(t, LevelWarning, warning[0].Level)

	none := CheckDeliveryAlerts(empty, KPIs{"on_time_pct": 90.0}, cfg)
	assert.Empty(t, none)
}

func TestDeliveryAlertsAvgTimeWarningNotCritical(t *testing.T) {
	cfg := DefaultConfig()
	empty := NewTable(nil)

	alerts := CheckDeliveryAlerts(empty, KPIs{"on_time_pct": 90.0, "avg_delivery_time": 35.0}, cfg)

	require.Len(t, alerts, 1)
	assert.Equal(t, LevelWarning, alerts[0].Level)
	assert.Equal(t, "Avg Delivery Time", alerts[0].MetricName)
}

func TestDeliveryAlertsAvgTimeCritical(t *testing.T) {
	cfg := DefaultConfig()
	empty := NewTable(nil)

	alerts := CheckDeliveryAlerts(empty, KPIs{"on_time_pct": 90.0, "avg_delivery_time": 41.0}, cfg)

	require.Len(t, alerts, 1)
	assert.Equal(t, LevelCritical, alerts[0].Level)
}

func TestDeliveryAlertsMissingKPIsStaySilent(t *testing.T) {
	// absent on_time_pct defaults to 100, absent avg time to 0
	alerts := CheckDeliveryAlerts(NewTable(nil), KPIs{}, DefaultConfig())
	assert.Empty(t, alerts)
}

func TestDeliveryAlertsPerArea(t *testing.T) {
	cfg := DefaultConfig()
	tbl := NewTable([]domain.Order{
		{DeliveryArea: "Zuid", DeliveryDuration: fp(45)},
		{DeliveryArea: "Zuid", DeliveryDuration: fp(45)},
		{DeliveryArea: "Centrum", DeliveryDuration: fp(20)},
	}, ColDeliveryArea, ColDeliveryDuration)

	alerts := CheckDeliveryAlerts(tbl, KPIs{"on_time_pct": 90.0}, cfg)

	require.Len(t, alerts, 1)
	assert.Equal(t, LevelWarning, alerts[0].Level)
	assert.Contains(t, alerts[0].Title, "Zuid")
}

func TestComplaintAlertLevels(t *testing.T) {
	cfg := DefaultConfig()

	critical := CheckComplaintAlerts(KPIs{"complaint_rate": 11.0}, cfg)
	require.Len(t, critical, 1)
	assert.Equal(t, LevelCritical, critical[0].Level)

	warning := CheckComplaintAlerts(KPIs{"complaint_rate": 7.0}, cfg)
	require.Len(t, warning, 1)
	assert.Equal(t, LevelWarning, warning[0].Level)

	none := CheckComplaintAlerts(KPIs{"complaint_rate": 4.0}, cfg)
	assert.Empty(t, none)
}

func TestOvenAlertColdShareBoundary(t *testing.T) {
	cfg := DefaultConfig()

	// exactly 10% cold never fires
	rows := make([]domain.Order, 10)
	for i := range rows {
		rows[i].OvenTemperature = fp(260)
	}
	rows[0].OvenTemperature = fp(200)
	tenPct := NewTable(rows, ColOvenTemperature)
	assert.Empty(t, CheckOvenAlerts(tenPct, cfg))

	// two cold readings of ten fires
	rows2 := make([]domain.Order, 10)
	for i := range rows2 {
		rows2[i].OvenTemperature = fp(260)
	}
	rows2[0].OvenTemperature = fp(200)
	rows2[1].OvenTemperature = fp(210)
	twentyPct := NewTable(rows2, ColOvenTemperature)
	alerts := CheckOvenAlerts(twentyPct, cfg)
	require.Len(t, alerts, 1)
	assert.Equal(t, LevelWarning, alerts[0].Level)
	assert.Equal(t, CategoryOven, alerts[0].Category)
	assert.Equal(t, 20.0, alerts[0].CurrentValue)
}

func TestOvenAlertLowAverage(t *testing.T) {
	tbl := NewTable([]domain.Order{
		{OvenTemperature: fp(200)},
		{OvenTemperature: fp(210)},
	}, ColOvenTemperature)

	alerts := CheckOvenAlerts(tbl, DefaultConfig())

	// both the cold-share and the low-average rules fire
	require.Len(t, alerts, 2)
	assert.Equal(t, "Avg Oven Temp", alerts[1].MetricName)
}

func TestOvenAlertsNoReadings(t *testing.T) {
	// column present, every value missing: no alert fires
	tbl := NewTable([]domain.Order{{}, {}}, ColOvenTemperature)
	assert.Empty(t, CheckOvenAlerts(tbl, DefaultConfig()))
}

func TestProcessAlertStageP95(t *testing.T) {
	// oven benchmark P95 is 14; constant 20 blows past 1.3x
	rows := make([]domain.Order, 20)
	for i := range rows {
		rows[i].OvenTime = fp(20)
	}
	tbl := NewTable(rows, ColOvenTime)

	alerts := CheckProcessAlerts(tbl, DefaultConfig())

	require.Len(t, alerts, 1)
	assert.Equal(t, CategoryProcess, alerts[0].Category)
	assert.Equal(t, "oven P95", alerts[0].MetricName)
	assert.Equal(t, 20.0, alerts[0].CurrentValue)
}

func TestProcessAlertWithinBenchmark(t *testing.T) {
	rows := make([]domain.Order, 20)
	for i := range rows {
		rows[i].OvenTime = fp(12)
	}
	tbl := NewTable(rows, ColOvenTime)

	assert.Empty(t, CheckProcessAlerts(tbl, DefaultConfig()))
}

func TestGenerateAlertsOrdering(t *testing.T) {
	cfg := DefaultConfig()
	rows := make([]domain.Order, 10)
	for i := range rows {
		rows[i].OvenTemperature = fp(200) // all cold: oven warning
	}
	tbl := NewTable(rows, ColOvenTemperature)
	kpis := KPIs{
		"on_time_pct":       50.0, // critical
		"avg_delivery_time": 35.0, // warning
		"complaint_rate":    11.0, // critical
	}

	alerts := GenerateAlerts(tbl, kpis, cfg)

	require.Len(t, alerts, 5)
	assert.Equal(t, LevelCritical, alerts[0].Level)
	assert.Equal(t, LevelCritical, alerts[1].Level)
	// criticals keep check order: delivery before complaint
	assert.Equal(t, CategoryDelivery, alerts[0].Category)
	assert.Equal(t, CategoryComplaint, alerts[1].Category)
	for _, a := range alerts[2:] {
		assert.Equal(t, LevelWarning, a.Level)
	}
}

func TestSummarizeAlerts(t *testing.T) {
	alerts := []domain.Alert{
		{Level: LevelCritical, Category: CategoryDelivery},
		{Level: LevelWarning, Category: CategoryOven},
		{Level: LevelWarning, Category: CategoryOven},
	}

	summary := SummarizeAlerts(alerts)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.ByLevel[LevelCritical])
	assert.Equal(t, 2, summary.ByLevel[LevelWarning])
	assert.Equal(t, 0, summary.ByLevel[LevelInfo])
	assert.Equal(t, 2, summary.ByCategory[CategoryOven])
	assert.True(t, summary.NeedsAttention)
}

func TestSummarizeAlertsEmpty(t *testing.T) {
	summary := SummarizeAlerts(nil)

	assert.Equal(t, 0, summary.Total)
	assert.False(t, summary.NeedsAttention)
}
