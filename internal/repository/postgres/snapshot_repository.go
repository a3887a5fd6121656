package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SnapshotRepository struct {
	DB *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{
		DB: db,
	}
}

// SaveSnapshot serializes the payload and stores it under the given kind
// and window.
func (r *SnapshotRepository) SaveSnapshot(kind string, windowStart, windowEnd *time.Time, payload any) (domain.AnalyticsSnapshot, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return domain.AnalyticsSnapshot{}, fmt.Errorf("failed to marshal snapshot payload: %w", err)
	}

	snapshot := domain.AnalyticsSnapshot{
		Kind:        kind,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Payload:     datatypes.JSON(raw),
	}

	ctx := context.Background()
	if err := r.DB.WithContext(ctx).Create(&snapshot).Error; err != nil {
		return domain.AnalyticsSnapshot{}, err
	}

	return snapshot, nil
}

// GetLatestSnapshot returns the newest snapshot of a kind, or gorm's
// record-not-found error when none exists.
func (r *SnapshotRepository) GetLatestSnapshot(kind string) (domain.AnalyticsSnapshot, error) {
	ctx := context.Background()
	var snapshot domain.AnalyticsSnapshot
	err := r.DB.WithContext(ctx).
		Where("kind=?", kind).
		Order("created_at DESC").
		First(&snapshot).Error
	if err != nil {
		return domain.AnalyticsSnapshot{}, err
	}

	return snapshot, nil
}

func (r *SnapshotRepository) GetSnapshots(kind string, limit int) ([]domain.AnalyticsSnapshot, error) {
	ctx := context.Background()
	var snapshots []domain.AnalyticsSnapshot
	q := r.DB.WithContext(ctx).Where("kind=?", kind).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&snapshots).Error; err != nil {
		return nil, err
	}

	return snapshots, nil
}

// PruneSnapshots removes snapshots older than the cutoff.
func (r *SnapshotRepository) PruneSnapshots(before time.Time) (int64, error) {
	ctx := context.Background()
	row := r.DB.WithContext(ctx).Where("created_at < ?", before).Delete(&domain.AnalyticsSnapshot{})
	if err := row.Error; err != nil {
		return 0, err
	}

	return row.RowsAffected, nil
}

// IsNotFound reports whether an error means no snapshot matched.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
