package scenario

// ImpactTemplate is the fixed KPI delta profile of one recommendation
// category, before priority scaling.
type ImpactTemplate struct {
	OnTimeRate      float64
	ComplaintRate   float64
	AvgDeliveryTime float64
	Confidence      string
	Timeline        string
}

// Recommendation categories.
const (
	CatOvenOptimization   = "oven_optimization"
	CatRouteOptimization  = "route_optimization"
	CatStaffScheduling    = "staff_scheduling"
	CatAreaFocus          = "area_focus"
	CatProcessImprovement = "process_improvement"
	CatQualityControl     = "quality_control"
	CatDefault            = "default"
)

// Confidence labels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

var impactTemplates = map[string]ImpactTemplate{
	CatOvenOptimization:   {OnTimeRate: 8.0, ComplaintRate: -2.0, AvgDeliveryTime: -3.0, Confidence: ConfidenceHigh, Timeline: "this_week"},
	CatRouteOptimization:  {OnTimeRate: 5.0, ComplaintRate: -1.0, AvgDeliveryTime: -4.0, Confidence: ConfidenceMedium, Timeline: "this_week"},
	CatStaffScheduling:    {OnTimeRate: 6.0, ComplaintRate: -1.5, AvgDeliveryTime: -2.0, Confidence: ConfidenceHigh, Timeline: "today"},
	CatAreaFocus:          {OnTimeRate: 4.0, ComplaintRate: -1.0, AvgDeliveryTime: -2.0, Confidence: ConfidenceMedium, Timeline: "this_week"},
	CatProcessImprovement: {OnTimeRate: 5.0, ComplaintRate: -1.5, AvgDeliveryTime: -2.5, Confidence: ConfidenceMedium, Timeline: "this_month"},
	CatQualityControl:     {OnTimeRate: 2.0, ComplaintRate: -3.0, AvgDeliveryTime: 0, Confidence: ConfidenceHigh, Timeline: "this_week"},
	CatDefault:            {OnTimeRate: 3.0, ComplaintRate: -1.0, AvgDeliveryTime: -1.5, Confidence: ConfidenceLow, Timeline: "this_month"},
}

// keywordRules are checked in order; the first category whose keyword set
// matches wins.
var keywordRules = []struct {
	Category string
	Keywords []string
}{
	{CatOvenOptimization, []string{"oven", "cook", "bake", "heat"}},
	{CatRouteOptimization, []string{"route", "area", "delivery", "driver", "traffic"}},
	{CatStaffScheduling, []string{"staff", "schedule", "shift", "hire", "team"}},
	{CatAreaFocus, []string{"focus", "priority", "bottleneck", "target"}},
	{CatProcessImprovement, []string{"process", "workflow", "efficiency", "optimize"}},
	{CatQualityControl, []string{"quality", "complaint", "customer", "satisfaction"}},
}

var priorityMultipliers = map[string]float64{
	"high":      1.2,
	"medium":    1.0,
	"quick_win": 0.8,
}

var severityImpact = map[string]float64{
	"critical": 1.5,
	"high":     1.2,
	"medium":   1.0,
	"low":      0.7,
}

var severityScores = map[string]float64{
	"critical": 10,
	"high":     8,
	"medium":   5,
	"low":      3,
}

var effortBase = map[string]float64{
	"duplicate":  2,
	"missing":    4,
	"outlier":    3,
	"type_error": 5,
	"invalid":    6,
}

// Floor the projected delivery time never drops below.
const minDeliveryTime = 15.0

// Stacked recommendations lose 20% effectiveness per additional step.
const diminishFactor = 0.8
