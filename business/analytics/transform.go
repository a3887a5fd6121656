package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
)

// Transform applies all feature engineering to a raw order table and
// returns a new table; the input is never mutated. The steps are ordered:
// later steps read columns produced by earlier ones.
func Transform(t Table, cfg Config) Table {
	out := t.clone()

	addTimeFeatures(&out, cfg)
	addProcessFeatures(&out, cfg)
	addOvenFeatures(&out, cfg)
	addDelayFeatures(&out, cfg)
	addStageProportions(&out)

	return out
}

func addTimeFeatures(t *Table, cfg Config) {
	if t.Has(ColOrderTime) {
		for i := range t.Rows {
			if h, ok := parseHour(t.Rows[i].OrderTime); ok {
				t.Rows[i].HourOfDay = &h
			} else {
				t.Rows[i].HourOfDay = nil
			}
		}
		t.addColumn(ColHourOfDay)
	}

	if t.Has(ColOrderDate) {
		for i := range t.Rows {
			o := &t.Rows[i]
			o.DayOfWeek = o.OrderDate.Weekday().String()
			// 0=Monday .. 6=Sunday
			num := (int(o.OrderDate.Weekday()) + 6) % 7
			o.DayOfWeekNum = &num
			o.IsWeekend = num == 5 || num == 6
		}
		t.addColumn(ColDayOfWeek, ColDayOfWeekNum, ColIsWeekend)
	}

	if t.Has(ColHourOfDay) {
		for i := range t.Rows {
			o := &t.Rows[i]
			if o.HourOfDay == nil {
				o.IsPeakLunch, o.IsPeakDinner, o.IsPeakHour = false, false, false
				continue
			}
			o.IsPeakLunch = cfg.PeakLunch.Contains(*o.HourOfDay)
			o.IsPeakDinner = cfg.PeakDinner.Contains(*o.HourOfDay)
			o.IsPeakHour = o.IsPeakLunch || o.IsPeakDinner
		}
		t.addColumn(ColIsPeakLunch, ColIsPeakDinner, ColIsPeakHour)
	}
}

func addProcessFeatures(t *Table, cfg Config) {
	var presentStages []string
	for _, sc := range stageColumns {
		if t.Has(sc.Col) {
			presentStages = append(presentStages, sc.Col)
		}
	}

	if len(presentStages) > 0 {
		for i := range t.Rows {
			o := &t.Rows[i]
			// absent stage durations sum as zero
			total := 0.0
			for _, col := range presentStages {
				if v := floatVal(o, col); v != nil {
					total += *v
				}
			}
			o.TotalPrepTime = &total
		}
		t.addColumn(ColTotalPrepTime)
	}

	// compute total process time unless the source already provided it
	if !t.Has(ColTotalProcessTime) || allNil(t, ColTotalProcessTime) {
		if t.Has(ColTotalPrepTime) && t.Has(ColDeliveryDuration) {
			for i := range t.Rows {
				o := &t.Rows[i]
				total := 0.0
				if o.TotalPrepTime != nil {
					total += *o.TotalPrepTime
				}
				if o.DeliveryDuration != nil {
					total += *o.DeliveryDuration
				}
				o.TotalProcessTime = &total
			}
			t.addColumn(ColTotalProcessTime)
		}
	}

	if t.Has(ColTotalProcessTime) {
		for i := range t.Rows {
			o := &t.Rows[i]
			// unknown process time defaults to not-met, never to null
			o.DeliveryTargetMet = o.TotalProcessTime != nil &&
				*o.TotalProcessTime <= cfg.DeliveryTargetMin
		}
		t.addColumn(ColDeliveryTargetMet)
	}
}

func addOvenFeatures(t *Table, cfg Config) {
	if !t.Has(ColOvenTemperature) {
		return
	}

	for i := range t.Rows {
		o := &t.Rows[i]
		if o.OvenTemperature == nil {
			o.OvenTempZone = TempZoneUnknown
			o.OvenTempDeviation = nil
			continue
		}

		switch temp := *o.OvenTemperature; {
		case temp < cfg.OvenTempMinC:
			o.OvenTempZone = TempZoneCold
		case temp <= cfg.OvenTempMaxC:
			o.OvenTempZone = TempZoneOptimal
		default:
			o.OvenTempZone = TempZoneHot
		}

		dev := math.Abs(*o.OvenTemperature - cfg.OvenTempOptimalC)
		o.OvenTempDeviation = &dev
	}
	t.addColumn(ColOvenTempZone, ColOvenTempDeviation)
}

func addDelayFeatures(t *Table, cfg Config) {
	if !t.Has(ColTotalProcessTime) {
		return
	}

	for i := range t.Rows {
		o := &t.Rows[i]
		if o.TotalProcessTime == nil {
			o.DelayCategory = DelayUnknown
			continue
		}

		switch v := *o.TotalProcessTime; {
		case v <= cfg.DelayThresholds.OnTime:
			o.DelayCategory = DelayOnTime
		case v <= cfg.DelayThresholds.AtRisk:
			o.DelayCategory = DelayAtRisk
		case v <= cfg.DelayThresholds.Late:
			o.DelayCategory = DelayLate
		default:
			o.DelayCategory = DelayCritical
		}
	}
	t.addColumn(ColDelayCategory)
}

func addStageProportions(t *Table) {
	if !t.Has(ColTotalPrepTime) {
		return
	}

	targets := []struct {
		src string
		dst string
		set func(o *domain.Order, v *float64)
	}{
		{ColDoughPrepTime, ColPctDoughPrep, func(o *domain.Order, v *float64) { o.PctDoughPrep = v }},
		{ColStylingTime, ColPctStyling, func(o *domain.Order, v *float64) { o.PctStyling = v }},
		{ColOvenTime, ColPctOven, func(o *domain.Order, v *float64) { o.PctOven = v }},
		{ColBoxingTime, ColPctBoxing, func(o *domain.Order, v *float64) { o.PctBoxing = v }},
	}

	for _, tgt := range targets {
		if !t.Has(tgt.src) {
			continue
		}
		for i := range t.Rows {
			o := &t.Rows[i]
			src := floatVal(o, tgt.src)
			// zero prep time yields no proportion, not a division fault
			if src == nil || o.TotalPrepTime == nil || *o.TotalPrepTime == 0 {
				tgt.set(o, nil)
				continue
			}
			pct := round2(*src / *o.TotalPrepTime * 100)
			tgt.set(o, &pct)
		}
		t.addColumn(tgt.dst)
	}
}

func parseHour(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.Hour(), true
		}
	}
	return 0, false
}

func allNil(t *Table, col string) bool {
	for i := range t.Rows {
		if floatVal(&t.Rows[i], col) != nil {
			return false
		}
	}
	return true
}

// AggregateByDate buckets a transformed table into a daily ("D") or hourly
// ("H") time series for forecasting.
func AggregateByDate(t Table, freq string) []domain.PeriodAggregate {
	if !t.Has(ColOrderDate) {
		return nil
	}

	type bucket struct {
		count      int
		totalTimes []float64
		deliveries []float64
		complaints int
	}

	buckets := make(map[time.Time]*bucket)
	for i := range t.Rows {
		o := &t.Rows[i]
		period := o.OrderDate.Truncate(24 * time.Hour)
		if freq == "H" && t.Has(ColHourOfDay) {
			if o.HourOfDay == nil {
				continue
			}
			period = period.Add(time.Duration(*o.HourOfDay) * time.Hour)
		}

		b, ok := buckets[period]
		if !ok {
			b = &bucket{}
			buckets[period] = b
		}
		b.count++
		if o.TotalProcessTime != nil {
			b.totalTimes = append(b.totalTimes, *o.TotalProcessTime)
		}
		if o.DeliveryDuration != nil {
			b.deliveries = append(b.deliveries, *o.DeliveryDuration)
		}
		if t.Has(ColComplaint) && o.Complaint {
			b.complaints++
		}
	}

	periods := make([]time.Time, 0, len(buckets))
	for p := range buckets {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	out := make([]domain.PeriodAggregate, 0, len(periods))
	for _, p := range periods {
		b := buckets[p]
		agg := domain.PeriodAggregate{
			Period:          p,
			OrderCount:      b.count,
			AvgTotalTime:    Mean(b.totalTimes),
			AvgDeliveryTime: Mean(b.deliveries),
		}
		if b.count > 0 {
			agg.ComplaintRate = float64(b.complaints) / float64(b.count) * 100
		}
		out = append(out, agg)
	}
	return out
}

// FilterByDateRange keeps rows with order_date within [start, end].
func FilterByDateRange(t Table, start, end *time.Time) Table {
	if !t.Has(ColOrderDate) {
		return t
	}

	rows := make([]domain.Order, 0, len(t.Rows))
	for i := range t.Rows {
		d := t.Rows[i].OrderDate
		if start != nil && d.Before(*start) {
			continue
		}
		if end != nil && d.After(*end) {
			continue
		}
		rows = append(rows, t.Rows[i])
	}

	out := t
	out.Rows = rows
	return out
}

// FilterByArea keeps rows whose delivery area is in the given set.
func FilterByArea(t Table, areas []string) Table {
	return filterByString(t, ColDeliveryArea, areas)
}

// FilterByOrderMode keeps rows whose order mode is in the given set.
func FilterByOrderMode(t Table, modes []string) Table {
	return filterByString(t, ColOrderMode, modes)
}

func filterByString(t Table, col string, allowed []string) Table {
	if !t.Has(col) || len(allowed) == 0 {
		return t
	}

	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}

	rows := make([]domain.Order, 0, len(t.Rows))
	for i := range t.Rows {
		if _, ok := set[stringVal(&t.Rows[i], col)]; ok {
			rows = append(rows, t.Rows[i])
		}
	}

	out := t
	out.Rows = rows
	return out
}
