package router

import (
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler) {
	orders := api.Group("/orders")
	orders.POST("", ordersHandler.CreateOrder)
	orders.POST("/ingest", ordersHandler.IngestOrders)
	orders.GET("", ordersHandler.GetAllOrders)
	orders.GET("/count", ordersHandler.CountOrders)
	orders.GET("/:id", ordersHandler.GetOrderByID)
	orders.DELETE("/:id", ordersHandler.DeleteOrder)
}

func SetAnalyticsRoutes(api *echo.Group, handler *rest.AnalyticsHandler) {
	analytics := api.Group("/analytics")

	analytics.GET("/overview", handler.Overview)
	analytics.GET("/bottlenecks", handler.Bottlenecks)
	analytics.GET("/alerts", handler.Alerts)
	analytics.GET("/areas", handler.Areas)
	analytics.GET("/drivers", handler.Drivers)
	analytics.GET("/order-modes", handler.OrderModes)
	analytics.GET("/area-hours", handler.AreaHours)
	analytics.GET("/stages", handler.Stages)
	analytics.GET("/complaints", handler.Complaints)
	analytics.GET("/trend", handler.Trend)
	analytics.GET("/snapshots", handler.Snapshots)
	analytics.GET("/snapshots/latest", handler.LatestSnapshot)
}

func SetScenarioRoutes(api *echo.Group, handler *rest.ScenarioHandler) {
	scenario := api.Group("/scenario")

	scenario.POST("/recommendation", handler.SimulateRecommendation)
	scenario.POST("/combined", handler.SimulateCombined)
	scenario.POST("/quality-fixes", handler.SimulateQualityFixes)
	scenario.POST("/cascade", handler.SimulateCascade)
}

func SetQualityRoutes(api *echo.Group, handler *rest.QualityHandler) {
	quality := api.Group("/quality")

	quality.GET("/report", handler.Report)
	quality.GET("/priority-matrix", handler.PriorityMatrix)
	quality.POST("/fixes", handler.ApplyFixes)
}

func SetForecastRoutes(api *echo.Group, handler *rest.ForecastHandler) {
	forecast := api.Group("/forecast")

	forecast.GET("/demand", handler.Demand)
}
