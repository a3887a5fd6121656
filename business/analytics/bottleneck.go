package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
)

// Bottleneck dimension kinds.
const (
	BottleneckStage = "stage"
	BottleneckArea  = "area"
	BottleneckStaff = "staff"
	BottleneckTime  = "time"
)

var severityRank = map[string]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

// IdentifyAllBottlenecks runs the four detection passes and merges the
// results. The merge is the only place global ranking happens: severity
// first, then impact percentage descending.
func IdentifyAllBottlenecks(t Table, cfg Config) []domain.Bottleneck {
	bottlenecks := make([]domain.Bottleneck, 0)

	bottlenecks = append(bottlenecks, DetectStageBottlenecks(t, cfg)...)
	bottlenecks = append(bottlenecks, DetectAreaBottlenecks(t)...)
	bottlenecks = append(bottlenecks, DetectStaffBottlenecks(t, cfg)...)
	bottlenecks = append(bottlenecks, DetectTimeBottlenecks(t, cfg)...)

	sort.SliceStable(bottlenecks, func(i, j int) bool {
		ri, rj := rankSeverity(bottlenecks[i].Severity), rankSeverity(bottlenecks[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return bottlenecks[i].ImpactPct > bottlenecks[j].ImpactPct
	})

	return bottlenecks
}

func rankSeverity(s string) int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return 4
}

// DetectStageBottlenecks flags pipeline stages whose empirical P95
// exceeds the configured benchmark.
func DetectStageBottlenecks(t Table, cfg Config) []domain.Bottleneck {
	bottlenecks := make([]domain.Bottleneck, 0)

	for _, sc := range stageColumns {
		if !t.Has(sc.Col) {
			continue
		}

		bm, ok := cfg.StageBenchmarks[sc.Stage]
		if !ok || bm.Target == 0 || bm.P95Max == 0 {
			continue
		}

		data := t.Floats(sc.Col)
		if len(data) == 0 {
			continue
		}

		actualP95 := Quantile(data, 0.95)
		if actualP95 <= bm.P95Max {
			continue
		}

		excessRatio := actualP95 / bm.P95Max
		exceeding := 0
		for _, v := range data {
			if v > bm.P95Max {
				exceeding++
			}
		}
		affectedPct := float64(exceeding) / float64(len(data)) * 100

		var severity string
		switch {
		case excessRatio > 1.3:
			severity = SeverityCritical
		case excessRatio > 1.15:
			severity = SeverityHigh
		default:
			severity = SeverityMedium
		}

		var affectedHours []string
		if t.Has(ColHourOfDay) {
			for _, h := range hourGroups(t) {
				hourly := hourSubset(t, h).Floats(sc.Col)
				if len(hourly) > 0 && Quantile(hourly, 0.95) > bm.P95Max {
					affectedHours = append(affectedHours, strconv.Itoa(h))
				}
			}
			if len(affectedHours) > 5 {
				affectedHours = affectedHours[:5]
			}
		}

		stageWords := strings.ReplaceAll(sc.Stage, "_", " ")
		bottlenecks = append(bottlenecks, domain.Bottleneck{
			Location:        titleCase(stageWords),
			Type:            BottleneckStage,
			Severity:        severity,
			Metric:          "P95 Duration",
			CurrentValue:    round2(actualP95),
			Threshold:       bm.P95Max,
			ImpactPct:       round1(affectedPct),
			AffectedPeriods: affectedHours,
			Recommendation:  fmt.Sprintf("Reduce %s time by optimizing workflow or adding resources", stageWords),
		})
	}

	return bottlenecks
}

// DetectAreaBottlenecks flags delivery areas whose mean delivery duration
// materially exceeds the overall mean.
func DetectAreaBottlenecks(t Table) []domain.Bottleneck {
	bottlenecks := make([]domain.Bottleneck, 0)

	if !t.Has(ColDeliveryArea) || !t.Has(ColDeliveryDuration) {
		return bottlenecks
	}

	overallAvg := Mean(t.Floats(ColDeliveryDuration))
	if overallAvg == 0 {
		return bottlenecks
	}

	for _, area := range groupKeys(t, ColDeliveryArea) {
		g := subset(t, ColDeliveryArea, area)
		avgTime := Mean(g.Floats(ColDeliveryDuration))
		if avgTime <= overallAvg*1.2 {
			continue
		}

		excessRatio := avgTime / overallAvg
		impactPct := float64(g.Len()) / float64(t.Len()) * 100

		var severity string
		switch {
		case excessRatio > 1.4:
			severity = SeverityHigh
		case excessRatio > 1.25:
			severity = SeverityMedium
		default:
			severity = SeverityLow
		}

		var affectedHours []string
		if t.Has(ColHourOfDay) {
			affectedHours = worstHoursByMean(g, ColDeliveryDuration, 3)
		}

		bottlenecks = append(bottlenecks, domain.Bottleneck{
			Location:        "Area " + area,
			Type:            BottleneckArea,
			Severity:        severity,
			Metric:          "Avg Delivery Time",
			CurrentValue:    round1(avgTime),
			Threshold:       round1(overallAvg),
			ImpactPct:       round1(impactPct),
			AffectedPeriods: affectedHours,
			Recommendation:  fmt.Sprintf("Optimize routes for Area %s or assign faster drivers", area),
		})
	}

	return bottlenecks
}

// DetectStaffBottlenecks flags slow drivers and complaint-prone stylists.
// Both checks carry a minimum-sample floor so a handful of orders cannot
// flag a person.
func DetectStaffBottlenecks(t Table, cfg Config) []domain.Bottleneck {
	bottlenecks := make([]domain.Bottleneck, 0)

	if t.Has(ColDeliveryDriver) && t.Has(ColDeliveryDuration) {
		overallAvg := Mean(t.Floats(ColDeliveryDuration))

		for _, driver := range groupKeys(t, ColDeliveryDriver) {
			g := subset(t, ColDeliveryDriver, driver)
			avgTime := Mean(g.Floats(ColDeliveryDuration))
			deliveries := g.Len()

			if avgTime <= overallAvg*1.25 || deliveries < cfg.MinDriverDeliveries {
				continue
			}

			severity := SeverityLow
			if avgTime > overallAvg*1.4 {
				severity = SeverityMedium
			}

			bottlenecks = append(bottlenecks, domain.Bottleneck{
				Location:        driver,
				Type:            BottleneckStaff,
				Severity:        severity,
				Metric:          "Avg Delivery Time",
				CurrentValue:    round1(avgTime),
				Threshold:       round1(overallAvg),
				ImpactPct:       round1(float64(deliveries) / float64(t.Len()) * 100),
				AffectedPeriods: []string{},
				Recommendation:  fmt.Sprintf("%s may benefit from route training or reassignment", driver),
			})
		}
	}

	if t.Has(ColStylist) && t.Has(ColComplaint) {
		overallRate := boolPct(t, func(o *domain.Order) bool { return o.Complaint })

		for _, stylist := range groupKeys(t, ColStylist) {
			g := subset(t, ColStylist, stylist)
			rate := boolPct(g, func(o *domain.Order) bool { return o.Complaint })

			if rate <= overallRate*1.5 || g.Len() < cfg.MinStylistOrders {
				continue
			}

			bottlenecks = append(bottlenecks, domain.Bottleneck{
				Location:        stylist,
				Type:            BottleneckStaff,
				Severity:        SeverityMedium,
				Metric:          "Complaint Rate",
				CurrentValue:    round1(rate),
				Threshold:       round1(overallRate),
				ImpactPct:       round1(float64(g.Len()) / float64(t.Len()) * 100),
				AffectedPeriods: []string{},
				Recommendation:  fmt.Sprintf("%s shows higher complaint rate - review styling quality", stylist),
			})
		}
	}

	return bottlenecks
}

// DetectTimeBottlenecks flags hours whose mean total process time exceeds
// the overall mean. The half-of-even-distribution volume floor keeps a
// single outlier order in a quiet hour from dominating the signal.
func DetectTimeBottlenecks(t Table, cfg Config) []domain.Bottleneck {
	bottlenecks := make([]domain.Bottleneck, 0)

	if !t.Has(ColHourOfDay) || !t.Has(ColTotalProcessTime) {
		return bottlenecks
	}

	overallAvg := Mean(t.Floats(ColTotalProcessTime))
	volumeFloor := float64(t.Len()) / 24 * 0.5

	for _, h := range hourGroups(t) {
		g := hourSubset(t, h)
		avgTime := Mean(g.Floats(ColTotalProcessTime))

		if avgTime <= overallAvg*1.2 || float64(g.Len()) <= volumeFloor {
			continue
		}

		severity := SeverityMedium
		if avgTime > cfg.DeliveryTargetMin {
			severity = SeverityHigh
		}

		bottlenecks = append(bottlenecks, domain.Bottleneck{
			Location:        fmt.Sprintf("%02d:00", h),
			Type:            BottleneckTime,
			Severity:        severity,
			Metric:          "Avg Total Time",
			CurrentValue:    round1(avgTime),
			Threshold:       round1(overallAvg),
			ImpactPct:       round1(float64(g.Len()) / float64(t.Len()) * 100),
			AffectedPeriods: []string{},
			Recommendation:  fmt.Sprintf("Consider additional staffing at %02d:00", h),
		})
	}

	return bottlenecks
}

// CalculateBottleneckImpact summarizes a detection pass.
func CalculateBottleneckImpact(bottlenecks []domain.Bottleneck) domain.BottleneckImpact {
	impact := domain.BottleneckImpact{
		TotalBottlenecks:   len(bottlenecks),
		ByType:             make(map[string]int),
		TopRecommendations: make([]domain.BottleneckRecommendation, 0, 5),
	}

	for _, b := range bottlenecks {
		switch b.Severity {
		case SeverityCritical:
			impact.CriticalCount++
		case SeverityHigh:
			impact.HighCount++
		case SeverityMedium:
			impact.MediumCount++
		case SeverityLow:
			impact.LowCount++
		}
		impact.ByType[b.Type]++
	}

	for _, b := range bottlenecks {
		if len(impact.TopRecommendations) == 5 {
			break
		}
		impact.TopRecommendations = append(impact.TopRecommendations, domain.BottleneckRecommendation{
			Location:       b.Location,
			Severity:       b.Severity,
			Recommendation: b.Recommendation,
		})
	}

	return impact
}

// BottleneckSummary renders a short text digest of a detection pass.
func BottleneckSummary(bottlenecks []domain.Bottleneck) string {
	if len(bottlenecks) == 0 {
		return "No significant bottlenecks detected. Operations are running smoothly."
	}

	critical, high := 0, 0
	for _, b := range bottlenecks {
		switch b.Severity {
		case SeverityCritical:
			critical++
		case SeverityHigh:
			high++
		}
	}

	var parts []string
	if critical > 0 {
		parts = append(parts, fmt.Sprintf("Found %d critical bottleneck(s) requiring immediate attention", critical))
	}
	if high > 0 {
		parts = append(parts, fmt.Sprintf("%d high-priority issue(s) identified", high))
	}
	if critical == 0 && high == 0 {
		parts = append(parts, fmt.Sprintf("Detected %d minor bottleneck(s)", len(bottlenecks)))
	}

	top := bottlenecks[0]
	parts = append(parts, fmt.Sprintf(
		"Primary concern: %s (%s: %v vs threshold %v)",
		top.Location, top.Metric, top.CurrentValue, top.Threshold,
	))

	return strings.Join(parts, ". ") + "."
}

// ---- hour grouping helpers ----

func hourGroups(t Table) []int {
	seen := make(map[int]struct{})
	for i := range t.Rows {
		if h := t.Rows[i].HourOfDay; h != nil {
			seen[*h] = struct{}{}
		}
	}

	hours := make([]int, 0, len(seen))
	for h := range seen {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	return hours
}

func hourSubset(t Table, hour int) Table {
	rows := make([]domain.Order, 0)
	for i := range t.Rows {
		if h := t.Rows[i].HourOfDay; h != nil && *h == hour {
			rows = append(rows, t.Rows[i])
		}
	}

	out := t
	out.Rows = rows
	return out
}

// worstHoursByMean returns the top-N hour labels by mean of a column,
// worst first.
func worstHoursByMean(t Table, col string, n int) []string {
	type hourMean struct {
		hour int
		avg  float64
	}

	var hms []hourMean
	for _, h := range hourGroups(t) {
		vals := hourSubset(t, h).Floats(col)
		if len(vals) == 0 {
			continue
		}
		hms = append(hms, hourMean{hour: h, avg: Mean(vals)})
	}

	sort.SliceStable(hms, func(i, j int) bool { return hms[i].avg > hms[j].avg })

	out := make([]string, 0, n)
	for _, hm := range hms {
		if len(out) == n {
			break
		}
		out = append(out, strconv.Itoa(hm.hour))
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
