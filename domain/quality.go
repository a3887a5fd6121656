package domain

// OutlierInfo describes the IQR outliers of one numeric column.
type OutlierInfo struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
}

// QualityStats are the basic statistics a quality assessment starts from.
type QualityStats struct {
	TotalRows       int                    `json:"total_rows"`
	TotalColumns    int                    `json:"total_columns"`
	MissingByColumn map[string]int         `json:"missing_by_column"`
	TotalMissing    int                    `json:"total_missing"`
	MissingPct      float64                `json:"missing_pct"`
	DuplicateRows   int                    `json:"duplicate_rows"`
	DuplicatePct    float64                `json:"duplicate_pct"`
	NumericColumns  []string               `json:"numeric_columns"`
	Outliers        map[string]OutlierInfo `json:"outliers"`
}

// QualityIssue is one identified data problem.
type QualityIssue struct {
	Type         string `json:"type"` // missing, duplicate, outlier, type_error, invalid
	Column       string `json:"column"`
	Severity     string `json:"severity"` // low, medium, high, critical
	Count        int    `json:"count"`
	Description  string `json:"description"`
	SuggestedFix string `json:"suggested_fix"`
	AutoFixable  bool   `json:"auto_fixable"`
}

// QualityReport is the full profiler output.
type QualityReport struct {
	QualityScore     float64        `json:"quality_score"`
	Summary          string         `json:"summary"`
	Issues           []QualityIssue `json:"issues"`
	ReadyForAnalysis bool           `json:"ready_for_analysis"`
	Stats            QualityStats   `json:"stats"`
}
