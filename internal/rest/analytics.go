package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/analytics"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/internal/repository/postgres"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	AnalyticsHandler struct {
		analyticsService AnalyticsService
	}

	AnalyticsService interface {
		Overview(ctx context.Context, f analytics.Filter) (analytics.KPIs, error)
		Bottlenecks(ctx context.Context, f analytics.Filter) (analytics.BottleneckReport, error)
		Alerts(ctx context.Context, f analytics.Filter) (analytics.AlertReport, error)
		AreaMetrics(ctx context.Context, f analytics.Filter) ([]domain.AreaMetrics, error)
		DriverScorecards(ctx context.Context, f analytics.Filter) ([]domain.DriverScorecard, error)
		OrderModeComparison(ctx context.Context, f analytics.Filter) ([]domain.OrderModeMetrics, error)
		AreaHourMatrix(ctx context.Context, f analytics.Filter) (map[string]map[int]float64, error)
		StageMetrics(ctx context.Context, f analytics.Filter) ([]domain.StageMetric, error)
		Complaints(ctx context.Context, f analytics.Filter) (domain.ComplaintAnalysis, error)
		Trend(ctx context.Context, f analytics.Filter, metricCol string, periodDays int) (domain.Trend, error)
		SnapshotHistory(ctx context.Context, kind string, limit int) ([]domain.AnalyticsSnapshot, error)
		LatestSnapshot(ctx context.Context, kind string) (domain.AnalyticsSnapshot, error)
	}
)

func NewAnalyticsHandler(analyticsService AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// parseFilter reads the shared query parameters: start_date, end_date
// (YYYY-MM-DD), areas and modes (comma separated).
func parseFilter(c echo.Context) (analytics.Filter, error) {
	var f analytics.Filter

	if v := c.QueryParam("start_date"); v != "" {
		start, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, err
		}
		f.Start = &start
	}
	if v := c.QueryParam("end_date"); v != "" {
		end, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, err
		}
		f.End = &end
	}
	if v := c.QueryParam("areas"); v != "" {
		f.Areas = strings.Split(v, ",")
	}
	if v := c.QueryParam("modes"); v != "" {
		f.Modes = strings.Split(v, ",")
	}

	return f, nil
}

func (h *AnalyticsHandler) Overview(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	kpis, err := h.analyticsService.Overview(c.Request().Context(), f)
	if err != nil {
		logger.Error("Failed to compute KPI overview", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(kpis))
}

func (h *AnalyticsHandler) Bottlenecks(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	report, err := h.analyticsService.Bottlenecks(c.Request().Context(), f)
	if err != nil {
		logger.Error("Failed to detect bottlenecks", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}

func (h *AnalyticsHandler) Alerts(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	report, err := h.analyticsService.Alerts(c.Request().Context(), f)
	if err != nil {
		logger.Error("Failed to evaluate alerts", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}

func (h *AnalyticsHandler) Areas(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	areas, err := h.analyticsService.AreaMetrics(c.Request().Context(), f)
	if err != nil {
		logger.Error("Failed to compute area metrics", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(areas))
}

func (h *AnalyticsHandler) Drivers(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	drivers, err := h.analyticsService.DriverScorecards(c.Request().Context(), f)
	if err != nil {
		logger.Error("Failed to compute driver scorecards", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(drivers))
}

func (h *AnalyticsHandler) OrderModes(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	modes, err := h.analyticsService.OrderModeComparison(c.Request().Context(), f)
	if err != nil {
		logger.Error("Failed to compare order modes", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(modes))
}

func (h *AnalyticsHandler) AreaHours(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	matrix, err := h.analyticsService.AreaHourMatrix(c.Request().Context(), f)
	if err != nil {
		logger.Error("Failed to compute area hour matrix", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(matrix))
}

func (h *AnalyticsHandler) Stages(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	stages, err := h.analyticsService.StageMetrics(c.Request().Context(), f)
	if err != nil {
		logger.Error("Failed to compute stage metrics", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stages))
}

func (h *AnalyticsHandler) Complaints(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	complaints, err := h.analyticsService.Complaints(c.Request().Context(), f)
	if err != nil {
		logger.Error("Failed to analyze complaints", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(complaints))
}

func (h *AnalyticsHandler) Trend(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	metric := c.QueryParam("metric")
	if metric == "" {
		metric = analytics.ColTotalProcessTime
	}

	periodDays := 7
	if v := c.QueryParam("period_days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "period_days must be a positive integer"})
		}
		periodDays = parsed
	}

	trend, err := h.analyticsService.Trend(c.Request().Context(), f, metric, periodDays)
	if err != nil {
		logger.Error("Failed to compute trend", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(trend))
}

// snapshotKind reads and validates the kind query parameter, defaulting
// to the KPI overview.
func snapshotKind(c echo.Context) (string, bool) {
	kind := c.QueryParam("kind")
	if kind == "" {
		kind = analytics.KindOverview
	}
	switch kind {
	case analytics.KindOverview, analytics.KindBottlenecks, analytics.KindAlerts:
		return kind, true
	default:
		return kind, false
	}
}

func (h *AnalyticsHandler) Snapshots(c echo.Context) error {
	kind, ok := snapshotKind(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "unknown snapshot kind: " + kind})
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "limit must be a positive integer"})
		}
		limit = parsed
	}

	snapshots, err := h.analyticsService.SnapshotHistory(c.Request().Context(), kind, limit)
	if err != nil {
		logger.Error("Failed to list snapshots", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(snapshots))
}

func (h *AnalyticsHandler) LatestSnapshot(c echo.Context) error {
	kind, ok := snapshotKind(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "unknown snapshot kind: " + kind})
	}

	snapshot, err := h.analyticsService.LatestSnapshot(c.Request().Context(), kind)
	if err != nil {
		if postgres.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "no snapshot stored for kind " + kind})
		}
		logger.Error("Failed to load latest snapshot", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(snapshot))
}
