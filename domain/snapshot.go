package domain

import (
	"time"

	"gorm.io/datatypes"
)

// AnalyticsSnapshot is a persisted analytics result: the full KPI,
// bottleneck or alert payload serialized as JSON, keyed by kind and the
// date window it covers.
type AnalyticsSnapshot struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Kind        string         `json:"kind" gorm:"index:idx_snapshot_kind_window"`
	WindowStart *time.Time     `json:"window_start" gorm:"index:idx_snapshot_kind_window"`
	WindowEnd   *time.Time     `json:"window_end" gorm:"index:idx_snapshot_kind_window"`
	Payload     datatypes.JSON `json:"payload"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (AnalyticsSnapshot) TableName() string {
	return "analytics_snapshots"
}
