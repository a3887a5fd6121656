package scenario

import (
	"fmt"
	"math"
	"strings"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
)

// Metric keys shared by every projection.
const (
	MetricOnTimeRate      = "on_time_rate"
	MetricComplaintRate   = "complaint_rate"
	MetricAvgDeliveryTime = "avg_delivery_time"
)

// SimulateQualityFixImpact projects the quality score after applying the
// selected cleaning fixes. Each fix contributes a capped point delta; the
// projected score never exceeds 100.
func SimulateQualityFixImpact(currentScore float64, stats domain.QualityStats, fixes []domain.QualityFix) domain.QualityFixProjection {
	if len(fixes) == 0 {
		return domain.QualityFixProjection{
			ProjectedScore:   currentScore,
			ScoreImprovement: 0,
			MetricsBefore:    map[string]float64{},
			MetricsAfter:     map[string]float64{},
			Confidence:       ConfidenceHigh,
			FixDetails:       []domain.FixDetail{},
		}
	}

	projected := currentScore
	details := make([]domain.FixDetail, 0, len(fixes))
	totalRows := stats.TotalRows

	before := map[string]float64{
		"completeness": 100 - stats.MissingPct,
		"uniqueness":   100 - stats.DuplicatePct,
		"outlier_free": 100 - outlierPct(stats),
	}
	after := map[string]float64{
		"completeness": before["completeness"],
		"uniqueness":   before["uniqueness"],
		"outlier_free": before["outlier_free"],
	}

	for _, fix := range fixes {
		impact := 0.0

		switch fix.Type {
		case "duplicate":
			impact = math.Min(stats.DuplicatePct*4, 20)
			after["uniqueness"] = 100

		case "missing":
			colMissingPct := 0.0
			if totalRows > 0 {
				colMissingPct = float64(fix.Count) / float64(totalRows) * 100
			}
			impact = math.Min(colMissingPct*2, 15)
			// assume 80% of the gaps actually get filled
			after["completeness"] = math.Min(100, after["completeness"]+colMissingPct*0.8)

		case "outlier":
			impact = 3
			after["outlier_free"] = math.Min(100, after["outlier_free"]+2)

		case "type_error":
			impact = 2

		case "invalid":
			invalidPct := 0.0
			if totalRows > 0 {
				invalidPct = float64(fix.Count) / float64(totalRows) * 100
			}
			impact = math.Min(invalidPct*1.5, 10)
		}

		projected += impact

		desc := fix.Description
		if desc == "" {
			desc = fmt.Sprintf("Fix %s in %s", fix.Type, fix.Column)
		}
		details = append(details, domain.FixDetail{
			Type:        fix.Type,
			Column:      fix.Column,
			Impact:      round1(impact),
			Description: desc,
		})
	}

	projected = math.Min(100, projected)

	return domain.QualityFixProjection{
		ProjectedScore:   round1(projected),
		ScoreImprovement: round1(projected - currentScore),
		MetricsBefore:    roundMap(before),
		MetricsAfter:     roundMap(after),
		Confidence:       confidenceForCount(len(fixes)),
		FixDetails:       details,
	}
}

func outlierPct(stats domain.QualityStats) float64 {
	if len(stats.Outliers) == 0 || stats.TotalRows <= 0 {
		return 0
	}

	total := 0
	for _, o := range stats.Outliers {
		total += o.Count
	}
	return float64(total) / float64(stats.TotalRows) * 100
}

// ClassifyRecommendation maps a recommendation to an impact-template
// category by keyword match over its title and action text. The first
// matching rule wins.
func ClassifyRecommendation(rec domain.Recommendation) string {
	text := strings.ToLower(rec.Title) + " " + strings.ToLower(rec.Action)

	for _, rule := range keywordRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category
			}
		}
	}
	return CatDefault
}

// SimulateRecommendationImpact projects the KPI triple after applying one
// recommendation. Template deltas are scaled by the priority multiplier
// and the projections are clamped to sane bounds.
func SimulateRecommendationImpact(current domain.Metrics, rec domain.Recommendation) domain.RecommendationImpact {
	recType := ClassifyRecommendation(rec)
	template := impactTemplates[recType]

	mult, ok := priorityMultipliers[rec.Priority]
	if !ok {
		mult = 1.0
	}

	changes := map[string]float64{
		MetricOnTimeRate:      round1(template.OnTimeRate * mult),
		MetricComplaintRate:   round1(template.ComplaintRate * mult),
		MetricAvgDeliveryTime: round1(template.AvgDeliveryTime * mult),
	}

	projected := map[string]float64{
		MetricOnTimeRate:      round1(math.Min(100, current.OnTimeRate+template.OnTimeRate*mult)),
		MetricComplaintRate:   round1(math.Max(0, current.ComplaintRate+template.ComplaintRate*mult)),
		MetricAvgDeliveryTime: round1(math.Max(minDeliveryTime, current.AvgDeliveryTime+template.AvgDeliveryTime*mult)),
	}

	timeline := template.Timeline
	if timeline == "" {
		timeline = rec.Timeline
	}

	return domain.RecommendationImpact{
		RecommendationType: recType,
		KPIChanges:         changes,
		CurrentValues: map[string]float64{
			MetricOnTimeRate:      round1(current.OnTimeRate),
			MetricComplaintRate:   round1(current.ComplaintRate),
			MetricAvgDeliveryTime: round1(current.AvgDeliveryTime),
		},
		ProjectedValues: projected,
		Confidence:      template.Confidence,
		Timeline:        timeline,
	}
}

// SimulateCombinedRecommendations folds recommendations sequentially with
// diminishing returns: the first applies at full strength, the second at
// 80%, the third at 64%, and so on.
func SimulateCombinedRecommendations(current domain.Metrics, recs []domain.Recommendation) domain.CombinedImpact {
	if len(recs) == 0 {
		return domain.CombinedImpact{
			CumulativeChanges: map[string]float64{},
			WaterfallData:     []domain.WaterfallStep{},
			ProjectedFinal:    current,
			Confidence:        ConfidenceHigh,
		}
	}

	running := current
	waterfall := []domain.WaterfallStep{{
		Stage:           "Baseline",
		OnTimeRate:      running.OnTimeRate,
		ComplaintRate:   running.ComplaintRate,
		AvgDeliveryTime: running.AvgDeliveryTime,
	}}

	for i, rec := range recs {
		impact := SimulateRecommendationImpact(running, rec)
		diminish := math.Pow(diminishFactor, float64(i))

		running.OnTimeRate = round1(math.Min(100, running.OnTimeRate+impact.KPIChanges[MetricOnTimeRate]*diminish))
		running.ComplaintRate = round1(math.Max(0, running.ComplaintRate+impact.KPIChanges[MetricComplaintRate]*diminish))
		running.AvgDeliveryTime = round1(math.Max(minDeliveryTime, running.AvgDeliveryTime+impact.KPIChanges[MetricAvgDeliveryTime]*diminish))

		waterfall = append(waterfall, domain.WaterfallStep{
			Stage:           stageLabel(rec.Title, i),
			OnTimeRate:      running.OnTimeRate,
			ComplaintRate:   running.ComplaintRate,
			AvgDeliveryTime: running.AvgDeliveryTime,
		})
	}

	return domain.CombinedImpact{
		CumulativeChanges: map[string]float64{
			MetricOnTimeRate:      round1(running.OnTimeRate - current.OnTimeRate),
			MetricComplaintRate:   round1(running.ComplaintRate - current.ComplaintRate),
			MetricAvgDeliveryTime: round1(running.AvgDeliveryTime - current.AvgDeliveryTime),
		},
		WaterfallData:       waterfall,
		ProjectedFinal:      running,
		Confidence:          confidenceForCount(len(recs)),
		RecommendationCount: len(recs),
	}
}

func stageLabel(title string, index int) string {
	if title == "" {
		return fmt.Sprintf("Step %d", index+1)
	}
	runes := []rune(title)
	if len(runes) > 20 {
		return string(runes[:20])
	}
	return title
}

// CalculateBottleneckCascadingImpact projects how much the KPI triple
// improves if the given bottleneck is reduced by the target percentage.
// Original metrics may be partial; absent ones fall back to conservative
// defaults for the projection and report as 0 improvement baseline.
func CalculateBottleneckCascadingImpact(b domain.CascadeInput, original map[string]float64, targetReductionPct float64) domain.CascadeProjection {
	sevMult, ok := severityImpact[b.Severity]
	if !ok {
		sevMult = 1.0
	}

	baseImprovement := targetReductionPct * 0.5 * sevMult

	projected := map[string]float64{
		MetricOnTimeRate:      math.Min(100, valueOr(original, MetricOnTimeRate, 70)+baseImprovement*0.8),
		MetricComplaintRate:   math.Max(0, valueOr(original, MetricComplaintRate, 8)-baseImprovement*0.3),
		MetricAvgDeliveryTime: math.Max(minDeliveryTime, valueOr(original, MetricAvgDeliveryTime, 35)-baseImprovement*0.5),
	}

	origRounded := roundMap(original)
	projRounded := roundMap(projected)

	improvements := make(map[string]float64, len(projRounded))
	for metric, v := range projRounded {
		improvements[metric] = round1(v - origRounded[metric])
	}

	confidence := ConfidenceLow
	if b.Severity == "critical" || b.Severity == "high" {
		confidence = ConfidenceMedium
	}

	return domain.CascadeProjection{
		BottleneckArea:   b.Area,
		ReductionTarget:  targetReductionPct,
		OriginalMetrics:  origRounded,
		ProjectedMetrics: projRounded,
		KPIImprovements:  improvements,
		Confidence:       confidence,
	}
}

// CalculateFixPriorityMatrix scores each issue on impact vs effort and
// places it in a priority quadrant.
func CalculateFixPriorityMatrix(issues []domain.QualityIssue, stats domain.QualityStats) []domain.PriorityMatrixEntry {
	if len(issues) == 0 {
		return []domain.PriorityMatrixEntry{}
	}

	totalRows := stats.TotalRows
	entries := make([]domain.PriorityMatrixEntry, 0, len(issues))

	for _, issue := range issues {
		sevScore, ok := severityScores[issue.Severity]
		if !ok {
			sevScore = 5
		}

		volumeFactor := 0.0
		if totalRows > 0 {
			volumeFactor = math.Min(float64(issue.Count)/float64(totalRows)*10, 5)
		}
		impactScore := math.Min(10, sevScore+volumeFactor)

		effort, ok := effortBase[issue.Type]
		if !ok {
			effort = 5
		}
		if !issue.AutoFixable {
			effort += 3
		}
		effort = math.Min(10, effort)

		var quadrant string
		switch {
		case impactScore >= 6 && effort <= 4:
			quadrant = "quick_win"
		case impactScore >= 6:
			quadrant = "strategic"
		case effort <= 4:
			quadrant = "fill_in"
		default:
			quadrant = "avoid"
		}

		name := fmt.Sprintf("%s: %s", issue.Type, issue.Column)
		if runes := []rune(name); len(runes) > 30 {
			name = string(runes[:30])
		}

		entries = append(entries, domain.PriorityMatrixEntry{
			IssueName:        name,
			IssueType:        issue.Type,
			Severity:         issue.Severity,
			ImpactScore:      round1(impactScore),
			EffortScore:      round1(effort),
			PriorityQuadrant: quadrant,
		})
	}

	return entries
}

func confidenceForCount(n int) string {
	switch {
	case n <= 2:
		return ConfidenceHigh
	case n <= 4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func valueOr(m map[string]float64, key string, fallback float64) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

func roundMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = round1(v)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
