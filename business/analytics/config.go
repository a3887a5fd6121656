package analytics

// StageBenchmark is the duration target for one pipeline stage, minutes.
type StageBenchmark struct {
	Target float64
	P95Max float64
}

// KPITargets are the business targets each overview KPI is scored against.
type KPITargets struct {
	OnTimePct        float64
	ComplaintRatePct float64
	AvgDeliveryMin   float64
	AvgPrepMin       float64
}

// DelayThresholds are the ordered cut-offs for delay classification, minutes.
type DelayThresholds struct {
	OnTime float64
	AtRisk float64
	Late   float64
}

// HourRange is an inclusive hour-of-day window.
type HourRange struct {
	From int
	To   int
}

func (r HourRange) Contains(hour int) bool {
	return hour >= r.From && hour <= r.To
}

// Config is the read-only threshold surface of the analytics core. It is
// built once at startup and passed by value into the pure functions; no
// code path mutates it.
type Config struct {
	DeliveryTargetMin   float64
	DeliveryWarningMin  float64
	DeliveryCriticalMin float64

	StageBenchmarks map[string]StageBenchmark

	OvenTempMinC     float64
	OvenTempOptimalC float64
	OvenTempMaxC     float64

	PeakLunch  HourRange
	PeakDinner HourRange

	KPITargets      KPITargets
	DelayThresholds DelayThresholds

	// Minimum-sample floors for staff-level flags. Empirical heuristics,
	// not significance tests; changing them changes who gets flagged.
	MinDriverDeliveries int
	MinStylistOrders    int
}

// Stages in pipeline order.
const (
	StageDoughPrep = "dough_prep"
	StageStyling   = "styling"
	StageOven      = "oven"
	StageBoxing    = "boxing"
)

// stageColumn pairs a stage name with its duration column, in pipeline order.
type stageColumn struct {
	Stage string
	Col   string
}

var stageColumns = []stageColumn{
	{StageDoughPrep, ColDoughPrepTime},
	{StageStyling, ColStylingTime},
	{StageOven, ColOvenTime},
	{StageBoxing, ColBoxingTime},
}

func DefaultConfig() Config {
	return Config{
		DeliveryTargetMin:   30,
		DeliveryWarningMin:  25,
		DeliveryCriticalMin: 40,

		StageBenchmarks: map[string]StageBenchmark{
			StageDoughPrep: {Target: 5, P95Max: 8},
			StageStyling:   {Target: 4, P95Max: 7},
			StageOven:      {Target: 10, P95Max: 14},
			StageBoxing:    {Target: 2, P95Max: 4},
		},

		OvenTempMinC:     220,
		OvenTempOptimalC: 260,
		OvenTempMaxC:     300,

		PeakLunch:  HourRange{From: 11, To: 14},
		PeakDinner: HourRange{From: 17, To: 21},

		KPITargets: KPITargets{
			OnTimePct:        85.0,
			ComplaintRatePct: 5.0,
			AvgDeliveryMin:   25.0,
			AvgPrepMin:       20.0,
		},

		DelayThresholds: DelayThresholds{
			OnTime: 25,
			AtRisk: 30,
			Late:   40,
		},

		MinDriverDeliveries: 10,
		MinStylistOrders:    20,
	}
}

// Delay categories.
const (
	DelayOnTime   = "on_time"
	DelayAtRisk   = "at_risk"
	DelayLate     = "late"
	DelayCritical = "critical"
	DelayUnknown  = "unknown"
)

// Oven temperature zones.
const (
	TempZoneCold    = "cold"
	TempZoneOptimal = "optimal"
	TempZoneHot     = "hot"
	TempZoneUnknown = "unknown"
)

// Severity levels, most urgent first.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Alert levels.
const (
	LevelCritical = "critical"
	LevelWarning  = "warning"
	LevelInfo     = "info"
)

// KPI statuses.
const (
	StatusGood    = "good"
	StatusWarning = "warning"
	StatusDanger  = "danger"
)
