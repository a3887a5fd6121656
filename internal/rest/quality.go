package rest

import (
	"net/http"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/analytics"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	QualityHandler struct {
		qualityService QualityService
	}

	QualityService interface {
		Report(f analytics.Filter) (domain.QualityReport, error)
		PreviewFixes(f analytics.Filter, fixes []domain.QualityFix) (domain.QualityFixProjection, error)
		ApplyFixes(f analytics.Filter, fixes []domain.QualityFix) (domain.QualityReport, []string, error)
		PriorityMatrix(f analytics.Filter) ([]domain.PriorityMatrixEntry, error)
	}

	ApplyFixesInput struct {
		Fixes []domain.QualityFix `json:"fixes"`
	}

	ApplyFixesResult struct {
		Report  domain.QualityReport `json:"report"`
		Actions []string             `json:"actions"`
	}
)

func NewQualityHandler(qualityService QualityService) *QualityHandler {
	return &QualityHandler{
		qualityService: qualityService,
	}
}

func (h *QualityHandler) Report(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	report, err := h.qualityService.Report(f)
	if err != nil {
		logger.Error("Failed to profile data quality", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}

func (h *QualityHandler) ApplyFixes(c echo.Context) error {
	var request ApplyFixesInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	report, actions, err := h.qualityService.ApplyFixes(f, request.Fixes)
	if err != nil {
		logger.Error("Failed to apply quality fixes", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ApplyFixesResult{
		Report:  report,
		Actions: actions,
	}))
}

func (h *QualityHandler) PriorityMatrix(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	entries, err := h.qualityService.PriorityMatrix(f)
	if err != nil {
		logger.Error("Failed to compute priority matrix", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(entries))
}
