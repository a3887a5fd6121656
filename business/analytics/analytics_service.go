package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/logger"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/metrics"
)

// Snapshot kinds.
const (
	KindOverview    = "overview"
	KindBottlenecks = "bottlenecks"
	KindAlerts      = "alerts"
)

type OrdersRepository interface {
	GetOrders(start, end *time.Time, areas, modes []string) ([]domain.Order, error)
}

type SnapshotCache interface {
	Store(ctx context.Context, kind, window string, payload any, ttl time.Duration) error
	Get(ctx context.Context, kind, window string, dest any) error
	Invalidate(ctx context.Context, kind string) error
}

type SnapshotStore interface {
	SaveSnapshot(kind string, windowStart, windowEnd *time.Time, payload any) (domain.AnalyticsSnapshot, error)
	GetLatestSnapshot(kind string) (domain.AnalyticsSnapshot, error)
	GetSnapshots(kind string, limit int) ([]domain.AnalyticsSnapshot, error)
	PruneSnapshots(before time.Time) (int64, error)
}

// ErrNoSnapshotStore is returned by snapshot reads when the service runs
// without a persistent store.
var ErrNoSnapshotStore = errors.New("snapshot store not configured")

type AlertMailer interface {
	SendAlertDigest(toName, toEmail string, alerts []domain.Alert) error
}

// Filter narrows which orders feed a computation. Nil and empty fields
// mean no restriction.
type Filter struct {
	Start *time.Time
	End   *time.Time
	Areas []string
	Modes []string
}

// cacheWindow is the cache key suffix for a filter. Only unfiltered and
// date-only windows are cached; area or mode filters bypass the cache.
func (f Filter) cacheWindow() (string, bool) {
	if len(f.Areas) > 0 || len(f.Modes) > 0 {
		return "", false
	}

	key := "all"
	if f.Start != nil || f.End != nil {
		from, to := "min", "max"
		if f.Start != nil {
			from = f.Start.Format("2006-01-02")
		}
		if f.End != nil {
			to = f.End.Format("2006-01-02")
		}
		key = from + ":" + to
	}
	return key, true
}

// BottleneckReport is the full detector output.
type BottleneckReport struct {
	Bottlenecks []domain.Bottleneck     `json:"bottlenecks"`
	Impact      domain.BottleneckImpact `json:"impact"`
	Summary     string                  `json:"summary"`
}

// AlertReport is the alert engine output.
type AlertReport struct {
	Alerts  []domain.Alert      `json:"alerts"`
	Summary domain.AlertSummary `json:"summary"`
}

// DigestRecipient identifies where critical-alert digests go.
type DigestRecipient struct {
	Name  string
	Email string
}

type Service struct {
	orders    OrdersRepository
	cache     SnapshotCache
	store     SnapshotStore
	mailer    AlertMailer
	cfg       Config
	ttl       time.Duration
	digest    bool
	recipient DigestRecipient
}

func NewService(orders OrdersRepository, cache SnapshotCache, store SnapshotStore, mailer AlertMailer, cfg Config, snapshotTTL time.Duration, digestEnabled bool, recipient DigestRecipient) *Service {
	return &Service{
		orders:    orders,
		cache:     cache,
		store:     store,
		mailer:    mailer,
		cfg:       cfg,
		ttl:       snapshotTTL,
		digest:    digestEnabled,
		recipient: recipient,
	}
}

// loadTable fetches the filtered orders and runs the feature transformer.
func (s *Service) loadTable(f Filter) (Table, error) {
	rows, err := s.orders.GetOrders(f.Start, f.End, f.Areas, f.Modes)
	if err != nil {
		return Table{}, fmt.Errorf("failed to load orders: %w", err)
	}

	raw := NewTable(rows, AllRawColumns()...)
	return Transform(raw, s.cfg), nil
}

// Overview computes the KPI overview, served from cache when possible.
func (s *Service) Overview(ctx context.Context, f Filter) (KPIs, error) {
	metrics.SnapshotRequests.Inc()

	window, cacheable := f.cacheWindow()
	if cacheable && s.cache != nil {
		var cached KPIs
		if err := s.cache.Get(ctx, KindOverview, window, &cached); err == nil {
			metrics.SnapshotCacheHits.Inc()
			return cached, nil
		}
	}

	started := time.Now()
	t, err := s.loadTable(f)
	if err != nil {
		return nil, err
	}
	kpis := OverviewKPIs(t, s.cfg)
	metrics.SnapshotLatency.Observe(time.Since(started).Seconds())

	s.persist(ctx, KindOverview, window, cacheable, f, kpis)
	return kpis, nil
}

// Bottlenecks runs all four detection passes, served from cache when
// possible.
func (s *Service) Bottlenecks(ctx context.Context, f Filter) (BottleneckReport, error) {
	metrics.SnapshotRequests.Inc()

	window, cacheable := f.cacheWindow()
	if cacheable && s.cache != nil {
		var cached BottleneckReport
		if err := s.cache.Get(ctx, KindBottlenecks, window, &cached); err == nil {
			metrics.SnapshotCacheHits.Inc()
			return cached, nil
		}
	}

	started := time.Now()
	t, err := s.loadTable(f)
	if err != nil {
		return BottleneckReport{}, err
	}

	bottlenecks := IdentifyAllBottlenecks(t, s.cfg)
	report := BottleneckReport{
		Bottlenecks: bottlenecks,
		Impact:      CalculateBottleneckImpact(bottlenecks),
		Summary:     BottleneckSummary(bottlenecks),
	}
	metrics.SnapshotLatency.Observe(time.Since(started).Seconds())

	for _, b := range bottlenecks {
		metrics.BottlenecksDetected.WithLabelValues(b.Type).Inc()
	}

	s.persist(ctx, KindBottlenecks, window, cacheable, f, report)
	return report, nil
}

// Alerts evaluates all alert rules and, when enabled, mails a digest if
// anything critical fired. Digest failures are logged, never surfaced.
func (s *Service) Alerts(ctx context.Context, f Filter) (AlertReport, error) {
	t, err := s.loadTable(f)
	if err != nil {
		return AlertReport{}, err
	}

	kpis := OverviewKPIs(t, s.cfg)
	alerts := GenerateAlerts(t, kpis, s.cfg)
	report := AlertReport{
		Alerts:  alerts,
		Summary: SummarizeAlerts(alerts),
	}

	for _, a := range alerts {
		metrics.AlertsRaised.WithLabelValues(a.Level).Inc()
	}

	if s.digest && s.mailer != nil && report.Summary.ByLevel[LevelCritical] > 0 {
		if err := s.mailer.SendAlertDigest(s.recipient.Name, s.recipient.Email, alerts); err != nil {
			logger.Error("failed to send alert digest", err)
		} else {
			logger.Info("alert digest sent",
				"alerts", len(alerts),
				"critical", report.Summary.ByLevel[LevelCritical])
		}
	}

	window, cacheable := f.cacheWindow()
	s.persist(ctx, KindAlerts, window, cacheable, f, report)
	return report, nil
}

// persist writes a computed result to the cache and the snapshot store.
// Both are best effort.
func (s *Service) persist(ctx context.Context, kind, window string, cacheable bool, f Filter, payload any) {
	if cacheable && s.cache != nil {
		if err := s.cache.Store(ctx, kind, window, payload, s.ttl); err != nil {
			logger.Error("failed to cache snapshot", "kind", kind, "error", err)
		}
	}
	if s.store != nil {
		if _, err := s.store.SaveSnapshot(kind, f.Start, f.End, payload); err != nil {
			logger.Error("failed to persist snapshot", "kind", kind, "error", err)
		}
	}
}

// InvalidateCache drops every cached analytics window. Called after order
// ingestion.
func (s *Service) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, kind := range []string{KindOverview, KindBottlenecks, KindAlerts} {
		if err := s.cache.Invalidate(ctx, kind); err != nil {
			logger.Error("failed to invalidate snapshot cache", "kind", kind, "error", err)
		}
	}
}

// AreaMetrics ranks delivery areas by performance.
func (s *Service) AreaMetrics(ctx context.Context, f Filter) ([]domain.AreaMetrics, error) {
	t, err := s.loadTable(f)
	if err != nil {
		return nil, err
	}
	return DeliveryByArea(t), nil
}

// DriverScorecards ranks delivery drivers.
func (s *Service) DriverScorecards(ctx context.Context, f Filter) ([]domain.DriverScorecard, error) {
	t, err := s.loadTable(f)
	if err != nil {
		return nil, err
	}
	return DriverScorecards(t), nil
}

// OrderModeComparison compares KPIs per ordering channel.
func (s *Service) OrderModeComparison(ctx context.Context, f Filter) ([]domain.OrderModeMetrics, error) {
	t, err := s.loadTable(f)
	if err != nil {
		return nil, err
	}
	return OrderModeComparison(t), nil
}

// AreaHourMatrix pivots mean delivery duration by area and hour of day.
func (s *Service) AreaHourMatrix(ctx context.Context, f Filter) (map[string]map[int]float64, error) {
	t, err := s.loadTable(f)
	if err != nil {
		return nil, err
	}
	return AreaHourMatrix(t), nil
}

// StageMetrics reports per-stage timing against benchmarks.
func (s *Service) StageMetrics(ctx context.Context, f Filter) ([]domain.StageMetric, error) {
	t, err := s.loadTable(f)
	if err != nil {
		return nil, err
	}
	return StageMetrics(t, s.cfg), nil
}

// Complaints breaks down complaint rates and reasons.
func (s *Service) Complaints(ctx context.Context, f Filter) (domain.ComplaintAnalysis, error) {
	t, err := s.loadTable(f)
	if err != nil {
		return domain.ComplaintAnalysis{}, err
	}
	return AnalyzeComplaints(t), nil
}

// Trend compares the trailing period of a metric against the one before.
func (s *Service) Trend(ctx context.Context, f Filter, metricCol string, periodDays int) (domain.Trend, error) {
	t, err := s.loadTable(f)
	if err != nil {
		return domain.Trend{}, err
	}
	return CalculateTrend(t, metricCol, periodDays), nil
}

// CurrentMetrics extracts the KPI triple scenario simulations start from.
func (s *Service) CurrentMetrics(ctx context.Context, f Filter) (domain.Metrics, error) {
	kpis, err := s.Overview(ctx, f)
	if err != nil {
		return domain.Metrics{}, err
	}

	return domain.Metrics{
		OnTimeRate:      kpis.Float("on_time_pct", 0),
		ComplaintRate:   kpis.Float("complaint_rate", 0),
		AvgDeliveryTime: kpis.Float("avg_delivery_time", 0),
	}, nil
}

// SnapshotHistory lists persisted snapshots of a kind, newest first.
func (s *Service) SnapshotHistory(ctx context.Context, kind string, limit int) ([]domain.AnalyticsSnapshot, error) {
	if s.store == nil {
		return nil, ErrNoSnapshotStore
	}
	return s.store.GetSnapshots(kind, limit)
}

// LatestSnapshot returns the newest persisted snapshot of a kind.
func (s *Service) LatestSnapshot(ctx context.Context, kind string) (domain.AnalyticsSnapshot, error) {
	if s.store == nil {
		return domain.AnalyticsSnapshot{}, ErrNoSnapshotStore
	}
	return s.store.GetLatestSnapshot(kind)
}

// PruneSnapshots deletes snapshots older than the retention window and
// reports how many were removed.
func (s *Service) PruneSnapshots(ctx context.Context, retention time.Duration) (int64, error) {
	if s.store == nil {
		return 0, ErrNoSnapshotStore
	}
	return s.store.PruneSnapshots(time.Now().Add(-retention))
}

// TimeSeries buckets the filtered orders for forecasting. freq is "D" or
// "H".
func (s *Service) TimeSeries(ctx context.Context, f Filter, freq string) ([]domain.PeriodAggregate, error) {
	t, err := s.loadTable(f)
	if err != nil {
		return nil, err
	}
	return AggregateByDate(t, freq), nil
}
