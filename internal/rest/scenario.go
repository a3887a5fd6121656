package rest

import (
	"context"
	"net/http"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/analytics"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/scenario"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/logger"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ScenarioHandler struct {
		validate       *validator.Validate
		metricsSource  MetricsSource
		qualityService QualityService
	}

	// MetricsSource supplies the KPI triple simulations start from.
	MetricsSource interface {
		CurrentMetrics(ctx context.Context, f analytics.Filter) (domain.Metrics, error)
	}

	RecommendationInput struct {
		Recommendation domain.Recommendation `json:"recommendation" validate:"required"`
	}

	CombinedInput struct {
		Recommendations []domain.Recommendation `json:"recommendations" validate:"required,min=1"`
	}

	QualityFixInput struct {
		Fixes []domain.QualityFix `json:"fixes" validate:"required"`
	}

	CascadeRequest struct {
		Bottleneck         domain.CascadeInput `json:"bottleneck" validate:"required"`
		TargetReductionPct float64             `json:"target_reduction_pct"`
	}
)

func NewScenarioHandler(metricsSource MetricsSource, qualityService QualityService) *ScenarioHandler {
	return &ScenarioHandler{
		validate:       validator.New(),
		metricsSource:  metricsSource,
		qualityService: qualityService,
	}
}

// SimulateRecommendation projects the KPI impact of one remediation
// action against the current metrics.
func (h *ScenarioHandler) SimulateRecommendation(c echo.Context) error {
	var request RecommendationInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	current, err := h.metricsSource.CurrentMetrics(c.Request().Context(), f)
	if err != nil {
		logger.Error("Failed to load current metrics", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	impact := scenario.SimulateRecommendationImpact(current, request.Recommendation)
	metrics.ScenarioSimulations.WithLabelValues("recommendation").Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(impact))
}

// SimulateCombined stacks several recommendations with diminishing
// returns.
func (h *ScenarioHandler) SimulateCombined(c echo.Context) error {
	var request CombinedInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed combined input validation", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	current, err := h.metricsSource.CurrentMetrics(c.Request().Context(), f)
	if err != nil {
		logger.Error("Failed to load current metrics", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	combined := scenario.SimulateCombinedRecommendations(current, request.Recommendations)
	metrics.ScenarioSimulations.WithLabelValues("combined").Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(combined))
}

// SimulateQualityFixes projects the quality-score gain from the selected
// cleaning fixes.
func (h *ScenarioHandler) SimulateQualityFixes(c echo.Context) error {
	var request QualityFixInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	projection, err := h.qualityService.PreviewFixes(f, request.Fixes)
	if err != nil {
		logger.Error("Failed to preview quality fixes", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	metrics.ScenarioSimulations.WithLabelValues("quality_fix").Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(projection))
}

// SimulateCascade projects the KPI effect of reducing one bottleneck.
func (h *ScenarioHandler) SimulateCascade(c echo.Context) error {
	var request CascadeRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if request.TargetReductionPct <= 0 {
		request.TargetReductionPct = 20
	}

	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	current, err := h.metricsSource.CurrentMetrics(c.Request().Context(), f)
	if err != nil {
		logger.Error("Failed to load current metrics", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	original := map[string]float64{
		scenario.MetricOnTimeRate:      current.OnTimeRate,
		scenario.MetricComplaintRate:   current.ComplaintRate,
		scenario.MetricAvgDeliveryTime: current.AvgDeliveryTime,
	}

	projection := scenario.CalculateBottleneckCascadingImpact(request.Bottleneck, original, request.TargetReductionPct)
	metrics.ScenarioSimulations.WithLabelValues("cascade").Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(projection))
}
