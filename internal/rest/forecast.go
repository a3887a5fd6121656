package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/analytics"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/forecast"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	ForecastHandler struct {
		timeSeries TimeSeriesSource
	}

	TimeSeriesSource interface {
		TimeSeries(ctx context.Context, f analytics.Filter, freq string) ([]domain.PeriodAggregate, error)
	}
)

func NewForecastHandler(timeSeries TimeSeriesSource) *ForecastHandler {
	return &ForecastHandler{
		timeSeries: timeSeries,
	}
}

// Demand forecasts order counts. Query: freq=D|H, horizon (periods).
func (h *ForecastHandler) Demand(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		logger.Error("Invalid analytics filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	freq := c.QueryParam("freq")
	if freq == "" {
		freq = "D"
	}
	if freq != "D" && freq != "H" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "freq must be D or H"})
	}

	horizon := 7
	if freq == "H" {
		horizon = 24
	}
	if v := c.QueryParam("horizon"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "horizon must be a positive integer"})
		}
		horizon = parsed
	}

	series, err := h.timeSeries.TimeSeries(c.Request().Context(), f, freq)
	if err != nil {
		logger.Error("Failed to build time series", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	var forecaster forecast.Forecaster
	if freq == "H" {
		forecaster = forecast.NewHourlyBaseline()
	} else {
		forecaster = forecast.NewDailyBaseline()
	}

	points, err := forecaster.Forecast(series, horizon)
	if err != nil {
		if errors.Is(err, forecast.ErrNotEnoughData) {
			return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to forecast demand", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(points))
}
