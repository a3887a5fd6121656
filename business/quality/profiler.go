package quality

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/analytics"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
)

// ReadyScoreFloor is the minimum quality score at which a dataset is
// considered fit for analysis.
const ReadyScoreFloor = 70.0

// ComputeStats profiles a raw order table: missing cells, duplicate rows
// and IQR outliers per numeric column.
func ComputeStats(t analytics.Table) domain.QualityStats {
	stats := domain.QualityStats{
		TotalRows:       t.Len(),
		TotalColumns:    t.ColumnCount(),
		MissingByColumn: make(map[string]int),
		NumericColumns:  t.NumericColumns(),
		Outliers:        make(map[string]domain.OutlierInfo),
	}

	for _, col := range stats.NumericColumns {
		missing := 0
		for i := 0; i < t.Len(); i++ {
			if t.FloatAt(i, col) == nil {
				missing++
			}
		}
		if missing > 0 {
			stats.MissingByColumn[col] = missing
		}
	}
	for _, col := range t.StringColumns() {
		missing := 0
		for i := 0; i < t.Len(); i++ {
			if t.StringAt(i, col) == "" {
				missing++
			}
		}
		if missing > 0 {
			stats.MissingByColumn[col] = missing
		}
	}

	for _, n := range stats.MissingByColumn {
		stats.TotalMissing += n
	}
	if t.Len() > 0 && stats.TotalColumns > 0 {
		stats.MissingPct = float64(stats.TotalMissing) / float64(t.Len()*stats.TotalColumns) * 100
	}

	stats.DuplicateRows = countDuplicates(t)
	if t.Len() > 0 {
		stats.DuplicatePct = float64(stats.DuplicateRows) / float64(t.Len()) * 100
	}

	for _, col := range stats.NumericColumns {
		data := t.Floats(col)
		if len(data) == 0 {
			continue
		}

		lower, upper := iqrBounds(data)
		count := 0
		minVal, maxVal := data[0], data[0]
		for _, v := range data {
			if v < lower || v > upper {
				count++
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}

		if count > 0 {
			stats.Outliers[col] = domain.OutlierInfo{
				Count:      count,
				Percentage: float64(count) / float64(t.Len()) * 100,
				LowerBound: lower,
				UpperBound: upper,
				Min:        minVal,
				Max:        maxVal,
			}
		}
	}

	return stats
}

func iqrBounds(data []float64) (lower, upper float64) {
	q1 := analytics.Quantile(data, 0.25)
	q3 := analytics.Quantile(data, 0.75)
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}

// countDuplicates counts rows identical to an earlier row across every
// present raw column, the first occurrence not counted.
func countDuplicates(t analytics.Table) int {
	seen := make(map[string]struct{}, t.Len())
	dups := 0

	for i := 0; i < t.Len(); i++ {
		fp := fingerprint(t, i)
		if _, ok := seen[fp]; ok {
			dups++
			continue
		}
		seen[fp] = struct{}{}
	}
	return dups
}

func fingerprint(t analytics.Table, i int) string {
	var b strings.Builder

	o := &t.Rows[i]
	fmt.Fprintf(&b, "%s|%s|%s|%v|", o.ID, o.OrderDate.Format("2006-01-02"), o.OrderTime, o.Complaint)
	for _, col := range t.NumericColumns() {
		if v := t.FloatAt(i, col); v != nil {
			fmt.Fprintf(&b, "%g|", *v)
		} else {
			b.WriteString("<nil>|")
		}
	}
	for _, col := range t.StringColumns() {
		b.WriteString(t.StringAt(i, col))
		b.WriteByte('|')
	}
	return b.String()
}

// QualityScore folds the profile into a 0-100 score. Missing cells cost
// up to 30 points, duplicates up to 20, outlier columns up to 15.
func QualityScore(stats domain.QualityStats) float64 {
	score := 100.0

	if stats.MissingPct > 0 {
		score -= minF(30, stats.MissingPct*2)
	}
	if stats.DuplicatePct > 0 {
		score -= minF(20, stats.DuplicatePct*4)
	}
	if n := len(stats.Outliers); n > 0 {
		score -= minF(15, float64(n)*3)
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// IdentifyIssues turns the profile into an actionable issue list.
func IdentifyIssues(t analytics.Table, stats domain.QualityStats) []domain.QualityIssue {
	issues := make([]domain.QualityIssue, 0)
	numericSet := make(map[string]struct{}, len(stats.NumericColumns))
	for _, c := range stats.NumericColumns {
		numericSet[c] = struct{}{}
	}

	for _, col := range sortedKeys(stats.MissingByColumn) {
		count := stats.MissingByColumn[col]
		pct := 0.0
		if t.Len() > 0 {
			pct = float64(count) / float64(t.Len()) * 100
		}

		var severity string
		switch {
		case pct < 5:
			severity = "low"
		case pct < 15:
			severity = "medium"
		case pct < 30:
			severity = "high"
		default:
			severity = "critical"
		}

		var fix string
		autoFixable := true
		if _, numeric := numericSet[col]; numeric {
			fix = fmt.Sprintf("Fill with median value (%.2f)", analytics.Median(t.Floats(col)))
		} else if col == analytics.ColComplaintReason {
			fix = "Keep as-is (null = no complaint)"
			autoFixable = false
		} else {
			fix = "Fill with mode value or 'Unknown'"
		}

		issues = append(issues, domain.QualityIssue{
			Type:         "missing",
			Column:       col,
			Severity:     severity,
			Count:        count,
			Description:  fmt.Sprintf("%d missing values (%.1f%%)", count, pct),
			SuggestedFix: fix,
			AutoFixable:  autoFixable,
		})
	}

	if stats.DuplicateRows > 0 {
		pct := stats.DuplicatePct
		severity := "high"
		if pct < 1 {
			severity = "low"
		} else if pct < 5 {
			severity = "medium"
		}
		issues = append(issues, domain.QualityIssue{
			Type:         "duplicate",
			Column:       "[all]",
			Severity:     severity,
			Count:        stats.DuplicateRows,
			Description:  fmt.Sprintf("%d duplicate rows (%.1f%%)", stats.DuplicateRows, pct),
			SuggestedFix: "Remove duplicate rows, keeping first occurrence",
			AutoFixable:  true,
		})
	}

	for _, col := range sortedOutlierKeys(stats.Outliers) {
		info := stats.Outliers[col]
		severity := "high"
		if info.Percentage < 2 {
			severity = "low"
		} else if info.Percentage < 5 {
			severity = "medium"
		}

		var fix string
		lowered := strings.ToLower(col)
		if strings.Contains(lowered, "time") || strings.Contains(lowered, "duration") {
			fix = fmt.Sprintf("Cap at %.0f minutes (P95 threshold)", info.UpperBound)
		} else {
			fix = fmt.Sprintf("Review and cap at bounds (%.2f - %.2f)", info.LowerBound, info.UpperBound)
		}

		issues = append(issues, domain.QualityIssue{
			Type:     "outlier",
			Column:   col,
			Severity: severity,
			Count:    info.Count,
			Description: fmt.Sprintf("%d outliers (%.1f%%) - values outside [%.1f, %.1f]",
				info.Count, info.Percentage, info.LowerBound, info.UpperBound),
			SuggestedFix: fix,
			AutoFixable:  true,
		})
	}

	return issues
}

// Analyze runs the full profile and returns the report.
func Analyze(t analytics.Table) domain.QualityReport {
	stats := ComputeStats(t)
	score := QualityScore(stats)
	issues := IdentifyIssues(t, stats)

	summary := fmt.Sprintf("Data quality score: %.0f/100. ", score)
	if len(issues) > 0 {
		summary += fmt.Sprintf("Found %d issues requiring attention.", len(issues))
	} else {
		summary += "No major issues detected."
	}

	return domain.QualityReport{
		QualityScore:     score,
		Summary:          summary,
		Issues:           issues,
		ReadyForAnalysis: score >= ReadyScoreFloor,
		Stats:            stats,
	}
}

// ApplyFixes applies the selected cleaning actions to a copy of the table
// and reports what was done.
func ApplyFixes(t analytics.Table, fixes []domain.QualityFix) (analytics.Table, []string) {
	clean := t.Clone()
	actions := make([]string, 0, len(fixes))

	numericSet := make(map[string]struct{})
	for _, c := range clean.NumericColumns() {
		numericSet[c] = struct{}{}
	}

	for _, fix := range fixes {
		switch fix.Type {
		case "duplicate":
			before := clean.Len()
			clean = dropDuplicates(clean)
			actions = append(actions, fmt.Sprintf("Removed %d duplicate rows", before-clean.Len()))

		case "missing":
			if fix.Column == "" || fix.Column == "[all]" || !clean.Has(fix.Column) {
				continue
			}
			if _, numeric := numericSet[fix.Column]; numeric {
				med := analytics.Median(clean.Floats(fix.Column))
				filled := 0
				for i := 0; i < clean.Len(); i++ {
					if clean.FloatAt(i, fix.Column) == nil {
						clean.SetFloat(i, fix.Column, med)
						filled++
					}
				}
				actions = append(actions, fmt.Sprintf("Filled %d missing values in '%s' with median (%.2f)", filled, fix.Column, med))
			} else {
				mode := stringMode(clean, fix.Column)
				filled := 0
				for i := 0; i < clean.Len(); i++ {
					if clean.StringAt(i, fix.Column) == "" {
						clean.SetString(i, fix.Column, mode)
						filled++
					}
				}
				actions = append(actions, fmt.Sprintf("Filled %d missing values in '%s' with mode ('%s')", filled, fix.Column, mode))
			}

		case "outlier":
			if fix.Column == "" || !clean.Has(fix.Column) {
				continue
			}
			lower, upper := iqrBounds(clean.Floats(fix.Column))
			capped := 0
			for i := 0; i < clean.Len(); i++ {
				v := clean.FloatAt(i, fix.Column)
				if v == nil {
					continue
				}
				if *v < lower {
					clean.SetFloat(i, fix.Column, lower)
					capped++
				} else if *v > upper {
					clean.SetFloat(i, fix.Column, upper)
					capped++
				}
			}
			actions = append(actions, fmt.Sprintf("Capped %d outliers in '%s' to [%.1f, %.1f]", capped, fix.Column, lower, upper))
		}
	}

	return clean, actions
}

func dropDuplicates(t analytics.Table) analytics.Table {
	seen := make(map[string]struct{}, t.Len())
	rows := make([]domain.Order, 0, t.Len())

	for i := 0; i < t.Len(); i++ {
		fp := fingerprint(t, i)
		if _, ok := seen[fp]; ok {
			continue
		}
		seen[fp] = struct{}{}
		rows = append(rows, t.Rows[i])
	}
	return t.WithRows(rows)
}

// stringMode picks the most frequent non-empty value; ties resolve to the
// lexicographically smallest, absent data to "Unknown".
func stringMode(t analytics.Table, col string) string {
	counts := make(map[string]int)
	for i := 0; i < t.Len(); i++ {
		if v := t.StringAt(i, col); v != "" {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return "Unknown"
	}

	best := ""
	bestCount := -1
	for _, v := range sortedKeys(counts) {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedOutlierKeys(m map[string]domain.OutlierInfo) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
