package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
)

// Alert categories.
const (
	CategoryDelivery  = "delivery"
	CategoryComplaint = "complaint"
	CategoryOven      = "oven"
	CategoryStaff     = "staff"
	CategoryProcess   = "process"
)

var levelRank = map[string]int{
	LevelCritical: 0,
	LevelWarning:  1,
	LevelInfo:     2,
}

// GenerateAlerts evaluates all threshold rules against the current table
// and KPIs. Alerts are sorted by level only; within a level they keep the
// order the checks produced them in.
func GenerateAlerts(t Table, kpis KPIs, cfg Config) []domain.Alert {
	alerts := make([]domain.Alert, 0)

	alerts = append(alerts, CheckDeliveryAlerts(t, kpis, cfg)...)
	alerts = append(alerts, CheckComplaintAlerts(kpis, cfg)...)
	alerts = append(alerts, CheckOvenAlerts(t, cfg)...)
	alerts = append(alerts, CheckProcessAlerts(t, cfg)...)

	sort.SliceStable(alerts, func(i, j int) bool {
		return rankLevel(alerts[i].Level) < rankLevel(alerts[j].Level)
	})

	return alerts
}

func rankLevel(level string) int {
	if r, ok := levelRank[level]; ok {
		return r
	}
	return 3
}

// CheckDeliveryAlerts covers the on-time rate, the average delivery time
// and per-area delays.
func CheckDeliveryAlerts(t Table, kpis KPIs, cfg Config) []domain.Alert {
	alerts := make([]domain.Alert, 0)
	now := time.Now()

	onTimePct := kpis.Float("on_time_pct", 100)
	target := cfg.KPITargets.OnTimePct

	if onTimePct < target*0.7 {
		alerts = append(alerts, domain.Alert{
			Level:        LevelCritical,
			Category:     CategoryDelivery,
			Title:        "Critical: On-Time Delivery Below Target",
			Message:      fmt.Sprintf("Only %.1f%% of orders delivered on time (target: %g%%)", onTimePct, target),
			MetricName:   "On-Time %",
			CurrentValue: onTimePct,
			Threshold:    target,
			Timestamp:    now,
		})
	} else if onTimePct < target {
		alerts = append(alerts, domain.Alert{
			Level:        LevelWarning,
			Category:     CategoryDelivery,
			Title:        "Warning: On-Time Delivery Declining",
			Message:      fmt.Sprintf("%.1f%% on-time delivery rate is below target of %g%%", onTimePct, target),
			MetricName:   "On-Time %",
			CurrentValue: onTimePct,
			Threshold:    target,
			Timestamp:    now,
		})
	}

	avgTime := kpis.Float("avg_delivery_time", 0)
	if avgTime > cfg.DeliveryCriticalMin {
		alerts = append(alerts, domain.Alert{
			Level:        LevelCritical,
			Category:     CategoryDelivery,
			Title:        "Critical: Average Delivery Time Exceeded",
			Message:      fmt.Sprintf("Average delivery time is %.1f min (critical threshold: %g min)", avgTime, cfg.DeliveryCriticalMin),
			MetricName:   "Avg Delivery Time",
			CurrentValue: avgTime,
			Threshold:    cfg.DeliveryCriticalMin,
			Timestamp:    now,
		})
	} else if avgTime > cfg.DeliveryTargetMin {
		alerts = append(alerts, domain.Alert{
			Level:        LevelWarning,
			Category:     CategoryDelivery,
			Title:        "Warning: Delivery Times Above Target",
			Message:      fmt.Sprintf("Average delivery time is %.1f min (target: %g min)", avgTime, cfg.DeliveryTargetMin),
			MetricName:   "Avg Delivery Time",
			CurrentValue: avgTime,
			Threshold:    cfg.DeliveryTargetMin,
			Timestamp:    now,
		})
	}

	if t.Has(ColDeliveryArea) && t.Has(ColDeliveryDuration) {
		for _, area := range groupKeys(t, ColDeliveryArea) {
			avg := Mean(subset(t, ColDeliveryArea, area).Floats(ColDeliveryDuration))
			if avg > cfg.DeliveryTargetMin*1.3 {
				alerts = append(alerts, domain.Alert{
					Level:        LevelWarning,
					Category:     CategoryDelivery,
					Title:        fmt.Sprintf("Area %s Delivery Delays", area),
					Message:      fmt.Sprintf("Area %s averaging %.1f min delivery time", area, avg),
					MetricName:   fmt.Sprintf("Area %s Avg Time", area),
					CurrentValue: avg,
					Threshold:    cfg.DeliveryTargetMin,
					Timestamp:    now,
				})
			}
		}
	}

	return alerts
}

// CheckComplaintAlerts compares the complaint rate against its target and
// double-target thresholds.
func CheckComplaintAlerts(kpis KPIs, cfg Config) []domain.Alert {
	alerts := make([]domain.Alert, 0)
	now := time.Now()

	rate := kpis.Float("complaint_rate", 0)
	target := cfg.KPITargets.ComplaintRatePct

	if rate > target*2 {
		alerts = append(alerts, domain.Alert{
			Level:        LevelCritical,
			Category:     CategoryComplaint,
			Title:        "Critical: Complaint Rate Very High",
			Message:      fmt.Sprintf("Complaint rate at %.1f%% is more than double the target of %g%%", rate, target),
			MetricName:   "Complaint Rate",
			CurrentValue: rate,
			Threshold:    target,
			Timestamp:    now,
		})
	} else if rate > target {
		alerts = append(alerts, domain.Alert{
			Level:        LevelWarning,
			Category:     CategoryComplaint,
			Title:        "Warning: Complaint Rate Above Target",
			Message:      fmt.Sprintf("Complaint rate at %.1f%% exceeds target of %g%%", rate, target),
			MetricName:   "Complaint Rate",
			CurrentValue: rate,
			Threshold:    target,
			Timestamp:    now,
		})
	}

	return alerts
}

// CheckOvenAlerts fires on cold-oven incidence above 10% of readings and
// on a low average temperature.
func CheckOvenAlerts(t Table, cfg Config) []domain.Alert {
	alerts := make([]domain.Alert, 0)

	if !t.Has(ColOvenTemperature) {
		return alerts
	}

	now := time.Now()
	temps := t.Floats(ColOvenTemperature)

	coldPct := 0.0
	if len(temps) > 0 {
		cold := 0
		for _, temp := range temps {
			if temp < cfg.OvenTempMinC {
				cold++
			}
		}
		coldPct = float64(cold) / float64(len(temps)) * 100
	}

	if coldPct > 10 {
		alerts = append(alerts, domain.Alert{
			Level:        LevelWarning,
			Category:     CategoryOven,
			Title:        "Warning: Cold Oven Temperatures Detected",
			Message:      fmt.Sprintf("%.1f%% of orders made with oven temp below %g°C", coldPct, cfg.OvenTempMinC),
			MetricName:   "Cold Oven %",
			CurrentValue: coldPct,
			Threshold:    10,
			Timestamp:    now,
		})
	}

	if len(temps) > 0 {
		avgTemp := Mean(temps)
		if avgTemp < cfg.OvenTempMinC {
			alerts = append(alerts, domain.Alert{
				Level:        LevelWarning,
				Category:     CategoryOven,
				Title:        "Warning: Average Oven Temperature Low",
				Message:      fmt.Sprintf("Average oven temperature %.1f°C below optimal range", avgTemp),
				MetricName:   "Avg Oven Temp",
				CurrentValue: avgTemp,
				Threshold:    cfg.OvenTempMinC,
				Timestamp:    now,
			})
		}
	}

	return alerts
}

// CheckProcessAlerts fires when a stage P95 blows past 1.3x its benchmark.
func CheckProcessAlerts(t Table, cfg Config) []domain.Alert {
	alerts := make([]domain.Alert, 0)
	now := time.Now()

	for _, sc := range stageColumns {
		if !t.Has(sc.Col) {
			continue
		}

		bm, ok := cfg.StageBenchmarks[sc.Stage]
		if !ok || bm.P95Max == 0 {
			continue
		}

		data := t.Floats(sc.Col)
		if len(data) == 0 {
			continue
		}

		actualP95 := Quantile(data, 0.95)
		if actualP95 > bm.P95Max*1.3 {
			stageWords := strings.ReplaceAll(sc.Stage, "_", " ")
			alerts = append(alerts, domain.Alert{
				Level:        LevelWarning,
				Category:     CategoryProcess,
				Title:        fmt.Sprintf("Process Alert: %s Bottleneck", titleCase(stageWords)),
				Message:      fmt.Sprintf("P95 %s time is %.1f min (benchmark: %g min)", stageWords, actualP95, bm.P95Max),
				MetricName:   fmt.Sprintf("%s P95", sc.Stage),
				CurrentValue: actualP95,
				Threshold:    bm.P95Max,
				Timestamp:    now,
			})
		}
	}

	return alerts
}

// SummarizeAlerts counts alerts by level and category.
func SummarizeAlerts(alerts []domain.Alert) domain.AlertSummary {
	summary := domain.AlertSummary{
		Total: len(alerts),
		ByLevel: map[string]int{
			LevelCritical: 0,
			LevelWarning:  0,
			LevelInfo:     0,
		},
		ByCategory: make(map[string]int),
	}

	for _, a := range alerts {
		summary.ByLevel[a.Level]++
		summary.ByCategory[a.Category]++
	}

	summary.NeedsAttention = summary.ByLevel[LevelCritical] > 0 || summary.ByLevel[LevelWarning] > 0

	return summary
}
