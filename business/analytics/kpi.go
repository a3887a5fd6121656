package analytics

import (
	"sort"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
)

// KPIs is the flat overview mapping consumed by alerts and the
// presentation layer. Keys are only present when the columns backing them
// are.
type KPIs map[string]any

// OverviewKPIs computes the executive-overview metrics of a transformed
// table.
func OverviewKPIs(t Table, cfg Config) KPIs {
	kpis := KPIs{}

	kpis["total_orders"] = t.Len()

	if t.Has(ColDeliveryTargetMet) {
		onTime := 0
		for i := range t.Rows {
			if t.Rows[i].DeliveryTargetMet {
				onTime++
			}
		}
		pct := 0.0
		if t.Len() > 0 {
			pct = float64(onTime) / float64(t.Len()) * 100
		}
		kpis["on_time_pct"] = pct
		kpis["on_time_count"] = onTime
		kpis["on_time_status"] = KPIStatus(pct, cfg.KPITargets.OnTimePct, true)
	}

	if t.Has(ColComplaint) {
		complaints := 0
		for i := range t.Rows {
			if t.Rows[i].Complaint {
				complaints++
			}
		}
		rate := 0.0
		if t.Len() > 0 {
			rate = float64(complaints) / float64(t.Len()) * 100
		}
		kpis["complaint_rate"] = rate
		kpis["complaint_count"] = complaints
		kpis["complaint_status"] = KPIStatus(rate, cfg.KPITargets.ComplaintRatePct, false)
	}

	if t.Has(ColTotalProcessTime) {
		avg := Mean(t.Floats(ColTotalProcessTime))
		kpis["avg_delivery_time"] = avg
		kpis["avg_delivery_status"] = KPIStatus(avg, cfg.KPITargets.AvgDeliveryMin, false)
	}

	if t.Has(ColTotalPrepTime) {
		avg := Mean(t.Floats(ColTotalPrepTime))
		kpis["avg_prep_time"] = avg
		kpis["avg_prep_status"] = KPIStatus(avg, cfg.KPITargets.AvgPrepMin, false)
	}

	if t.Has(ColIsPeakHour) && t.Has(ColHourOfDay) {
		counts := make(map[int]int)
		for i := range t.Rows {
			o := &t.Rows[i]
			if o.IsPeakHour && o.HourOfDay != nil {
				counts[*o.HourOfDay]++
			}
		}
		if len(counts) > 0 {
			peakHour, peakLoad := -1, 0
			for _, h := range sortedIntKeys(counts) {
				if counts[h] > peakLoad {
					peakHour, peakLoad = h, counts[h]
				}
			}
			kpis["peak_hour"] = peakHour
			kpis["peak_hour_load"] = peakLoad
		} else {
			kpis["peak_hour"] = nil
			kpis["peak_hour_load"] = 0
		}
	}

	return kpis
}

// KPIStatus classifies a KPI value against its target. Higher-is-better
// metrics get a warning band down to 0.85x target; lower-is-better up to
// 1.15x. The asymmetry is a given business heuristic.
func KPIStatus(value, target float64, higherIsBetter bool) string {
	if higherIsBetter {
		switch {
		case value >= target:
			return StatusGood
		case value >= target*0.85:
			return StatusWarning
		default:
			return StatusDanger
		}
	}

	switch {
	case value <= target:
		return StatusGood
	case value <= target*1.15:
		return StatusWarning
	default:
		return StatusDanger
	}
}

// Float reads a numeric KPI with a fallback for absent keys.
func (k KPIs) Float(key string, fallback float64) float64 {
	v, ok := k[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return fallback
	}
}

// DeliveryByArea aggregates delivery metrics per area, ordered by area.
func DeliveryByArea(t Table) []domain.AreaMetrics {
	if !t.Has(ColDeliveryArea) {
		return nil
	}

	out := make([]domain.AreaMetrics, 0)
	for _, area := range groupKeys(t, ColDeliveryArea) {
		g := subset(t, ColDeliveryArea, area)
		m := domain.AreaMetrics{
			DeliveryArea: area,
			OrderCount:   g.Len(),
		}

		if g.Has(ColDeliveryDuration) {
			durs := g.Floats(ColDeliveryDuration)
			m.AvgDeliveryTime = Mean(durs)
			m.MedianDeliveryTime = Median(durs)
			m.P95DeliveryTime = Quantile(durs, 0.95)
		}
		if g.Has(ColTotalProcessTime) {
			m.AvgTotalTime = Mean(g.Floats(ColTotalProcessTime))
		}
		if g.Has(ColDeliveryTargetMet) {
			m.OnTimePct = boolPct(g, func(o *domain.Order) bool { return o.DeliveryTargetMet })
		}
		if g.Has(ColComplaint) {
			m.ComplaintRate = boolPct(g, func(o *domain.Order) bool { return o.Complaint })
		}

		out = append(out, m)
	}
	return out
}

// DriverScorecards aggregates performance per delivery driver.
func DriverScorecards(t Table) []domain.DriverScorecard {
	if !t.Has(ColDeliveryDriver) {
		return nil
	}

	out := make([]domain.DriverScorecard, 0)
	for _, driver := range groupKeys(t, ColDeliveryDriver) {
		g := subset(t, ColDeliveryDriver, driver)
		card := domain.DriverScorecard{
			Driver:          driver,
			TotalDeliveries: g.Len(),
		}

		if g.Has(ColDeliveryDuration) {
			durs := g.Floats(ColDeliveryDuration)
			card.AvgTime = Mean(durs)
			card.P95Time = Quantile(durs, 0.95)
		}
		if g.Has(ColDeliveryTargetMet) {
			card.OnTimePct = boolPct(g, func(o *domain.Order) bool { return o.DeliveryTargetMet })
		}
		if g.Has(ColComplaint) {
			card.ComplaintRate = boolPct(g, func(o *domain.Order) bool { return o.Complaint })
		}
		if g.Has(ColDeliveryArea) {
			areas := make(map[string]struct{})
			for i := range g.Rows {
				areas[g.Rows[i].DeliveryArea] = struct{}{}
			}
			card.AreasServed = len(areas)
		}

		out = append(out, card)
	}
	return out
}

// OrderModeComparison compares performance per ordering channel.
func OrderModeComparison(t Table) []domain.OrderModeMetrics {
	if !t.Has(ColOrderMode) {
		return nil
	}

	out := make([]domain.OrderModeMetrics, 0)
	for _, mode := range groupKeys(t, ColOrderMode) {
		g := subset(t, ColOrderMode, mode)
		m := domain.OrderModeMetrics{
			OrderMode:  mode,
			OrderCount: g.Len(),
		}

		if g.Has(ColTotalProcessTime) {
			m.AvgTotalTime = Mean(g.Floats(ColTotalProcessTime))
		}
		if g.Has(ColDeliveryDuration) {
			m.AvgDeliveryTime = Mean(g.Floats(ColDeliveryDuration))
		}
		if g.Has(ColComplaint) {
			m.ComplaintRate = boolPct(g, func(o *domain.Order) bool { return o.Complaint })
		}

		out = append(out, m)
	}
	return out
}

// AreaHourMatrix is the area x hour mean delivery duration pivot.
func AreaHourMatrix(t Table) map[string]map[int]float64 {
	if !t.Has(ColDeliveryArea) || !t.Has(ColHourOfDay) || !t.Has(ColDeliveryDuration) {
		return nil
	}

	sums := make(map[string]map[int][]float64)
	for i := range t.Rows {
		o := &t.Rows[i]
		if o.DeliveryArea == "" || o.HourOfDay == nil || o.DeliveryDuration == nil {
			continue
		}
		if sums[o.DeliveryArea] == nil {
			sums[o.DeliveryArea] = make(map[int][]float64)
		}
		sums[o.DeliveryArea][*o.HourOfDay] = append(sums[o.DeliveryArea][*o.HourOfDay], *o.DeliveryDuration)
	}

	out := make(map[string]map[int]float64, len(sums))
	for area, hours := range sums {
		out[area] = make(map[int]float64, len(hours))
		for h, vals := range hours {
			out[area][h] = Mean(vals)
		}
	}
	return out
}

// StageMetrics computes distribution metrics per pipeline stage against
// its configured benchmark.
func StageMetrics(t Table, cfg Config) []domain.StageMetric {
	out := make([]domain.StageMetric, 0, len(stageColumns))
	for _, sc := range stageColumns {
		if !t.Has(sc.Col) {
			continue
		}

		data := t.Floats(sc.Col)
		m := domain.StageMetric{
			Stage:  sc.Stage,
			Mean:   Mean(data),
			Median: Median(data),
			Std:    Std(data),
			P95:    Quantile(data, 0.95),
		}
		if bm, ok := cfg.StageBenchmarks[sc.Stage]; ok {
			target, p95 := bm.Target, bm.P95Max
			m.Target = &target
			m.BenchmarkP95 = &p95
		}
		out = append(out, m)
	}
	return out
}

// AnalyzeComplaints breaks complaints down by reason, area and hour.
func AnalyzeComplaints(t Table) domain.ComplaintAnalysis {
	analysis := domain.ComplaintAnalysis{}
	if !t.Has(ColComplaint) {
		return analysis
	}

	if t.Has(ColComplaintReason) {
		analysis.ByReason = make(map[string]int)
		for i := range t.Rows {
			o := &t.Rows[i]
			if o.Complaint && o.ComplaintReason != "" {
				analysis.ByReason[o.ComplaintReason]++
			}
		}
	}

	if t.Has(ColDeliveryArea) {
		analysis.ByArea = make(map[string]float64)
		for _, area := range groupKeys(t, ColDeliveryArea) {
			g := subset(t, ColDeliveryArea, area)
			analysis.ByArea[area] = boolPct(g, func(o *domain.Order) bool { return o.Complaint })
		}
	}

	if t.Has(ColHourOfDay) {
		analysis.ByHour = make(map[int]float64)
		totals := make(map[int]int)
		complaints := make(map[int]int)
		for i := range t.Rows {
			o := &t.Rows[i]
			if o.HourOfDay == nil {
				continue
			}
			totals[*o.HourOfDay]++
			if o.Complaint {
				complaints[*o.HourOfDay]++
			}
		}
		for h, total := range totals {
			analysis.ByHour[h] = float64(complaints[h]) / float64(total) * 100
		}
	}

	if t.Has(ColDeliveryTargetMet) {
		total := 0
		for i := range t.Rows {
			o := &t.Rows[i]
			if !o.Complaint {
				continue
			}
			total++
			if o.DeliveryTargetMet {
				analysis.OnTimeComplaints++
			}
		}
		analysis.LateComplaints = total - analysis.OnTimeComplaints
		if total > 0 {
			analysis.OnTimePct = float64(analysis.OnTimeComplaints) / float64(total) * 100
		}
	}

	return analysis
}

// CalculateTrend compares the mean of a metric over the latest period
// window against the window before it.
func CalculateTrend(t Table, metricCol string, periodDays int) domain.Trend {
	if !t.Has(ColOrderDate) || !t.Has(metricCol) || t.Len() == 0 {
		return domain.Trend{}
	}

	maxDate := t.Rows[0].OrderDate
	for i := range t.Rows {
		if t.Rows[i].OrderDate.After(maxDate) {
			maxDate = t.Rows[i].OrderDate
		}
	}

	mid := maxDate.AddDate(0, 0, -periodDays)
	prevStart := mid.AddDate(0, 0, -periodDays)

	var currentVals, prevVals []float64
	for i := range t.Rows {
		o := &t.Rows[i]
		v := floatVal(o, metricCol)
		if v == nil {
			continue
		}
		switch {
		case o.OrderDate.After(mid):
			currentVals = append(currentVals, *v)
		case o.OrderDate.After(prevStart):
			prevVals = append(prevVals, *v)
		}
	}

	current := Mean(currentVals)
	previous := Mean(prevVals)
	change := current - previous
	changePct := 0.0
	if previous != 0 {
		changePct = change / previous * 100
	}

	return domain.Trend{
		Current:   &current,
		Previous:  &previous,
		Change:    &change,
		ChangePct: &changePct,
	}
}

// TopPerformers ranks groups by the mean of a metric. Ties keep the
// stable order of the sorted group keys.
func TopPerformers(t Table, groupCol, metricCol string, ascending bool, topN int) []domain.GroupRank {
	if !t.Has(groupCol) || !t.Has(metricCol) {
		return nil
	}

	out := make([]domain.GroupRank, 0)
	for _, key := range groupKeys(t, groupCol) {
		g := subset(t, groupCol, key)
		out = append(out, domain.GroupRank{
			Group:      key,
			AvgMetric:  Mean(g.Floats(metricCol)),
			OrderCount: g.Len(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].AvgMetric < out[j].AvgMetric
		}
		return out[i].AvgMetric > out[j].AvgMetric
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// ---- grouping helpers ----

// groupKeys returns the distinct non-empty values of a string column,
// sorted for deterministic iteration.
func groupKeys(t Table, col string) []string {
	seen := make(map[string]struct{})
	for i := range t.Rows {
		if v := stringVal(&t.Rows[i], col); v != "" {
			seen[v] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// subset is the sub-table whose string column equals the given value. It
// shares the column set of its parent.
func subset(t Table, col, value string) Table {
	rows := make([]domain.Order, 0)
	for i := range t.Rows {
		if stringVal(&t.Rows[i], col) == value {
			rows = append(rows, t.Rows[i])
		}
	}

	out := t
	out.Rows = rows
	return out
}

func boolPct(t Table, pred func(o *domain.Order) bool) float64 {
	if t.Len() == 0 {
		return 0
	}

	n := 0
	for i := range t.Rows {
		if pred(&t.Rows[i]) {
			n++
		}
	}
	return float64(n) / float64(t.Len()) * 100
}

func sortedIntKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
