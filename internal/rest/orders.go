package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
	}

	OrdersService interface {
		CreateOrder(ctx context.Context, data domain.Order) (domain.Order, error)
		IngestOrders(ctx context.Context, data []domain.Order) (int, error)
		GetAllOrders() ([]domain.Order, error)
		GetOrder(orderID string) (domain.Order, error)
		CountOrders() (int64, error)
		DeleteOrder(ctx context.Context, orderID string) error
	}

	OrderInput struct {
		OrderID          string   `json:"order_id"`
		OrderDate        string   `json:"order_date" validate:"required,datetime=2006-01-02"`
		OrderTime        string   `json:"order_time"`
		DoughPrepTime    *float64 `json:"dough_prep_time"`
		StylingTime      *float64 `json:"styling_time"`
		OvenTime         *float64 `json:"oven_time"`
		BoxingTime       *float64 `json:"boxing_time"`
		DeliveryDuration *float64 `json:"delivery_duration"`
		TotalProcessTime *float64 `json:"total_process_time"`
		OvenTemperature  *float64 `json:"oven_temperature"`
		DeliveryArea     string   `json:"delivery_area"`
		OrderMode        string   `json:"order_mode"`
		PizzaSize        string   `json:"pizza_size"`
		OrderTaker       string   `json:"order_taker"`
		DoughPrepStaff   string   `json:"dough_prep_staff"`
		Stylist          string   `json:"stylist"`
		OvenOperator     string   `json:"oven_operator"`
		Boxer            string   `json:"boxer"`
		DeliveryDriver   string   `json:"delivery_driver"`
		Complaint        bool     `json:"complaint"`
		ComplaintReason  string   `json:"complaint_reason"`
	}

	IngestInput struct {
		Orders []OrderInput `json:"orders" validate:"required,min=1,dive"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
	}
}

func (in OrderInput) toDomain() domain.Order {
	date, _ := time.Parse("2006-01-02", in.OrderDate)
	return domain.Order{
		ID:               in.OrderID,
		OrderDate:        date,
		OrderTime:        in.OrderTime,
		DoughPrepTime:    in.DoughPrepTime,
		StylingTime:      in.StylingTime,
		OvenTime:         in.OvenTime,
		BoxingTime:       in.BoxingTime,
		DeliveryDuration: in.DeliveryDuration,
		TotalProcessTime: in.TotalProcessTime,
		OvenTemperature:  in.OvenTemperature,
		DeliveryArea:     in.DeliveryArea,
		OrderMode:        in.OrderMode,
		PizzaSize:        in.PizzaSize,
		OrderTaker:       in.OrderTaker,
		DoughPrepStaff:   in.DoughPrepStaff,
		Stylist:          in.Stylist,
		OvenOperator:     in.OvenOperator,
		Boxer:            in.Boxer,
		DeliveryDriver:   in.DeliveryDriver,
		Complaint:        in.Complaint,
		ComplaintReason:  in.ComplaintReason,
	}
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	var request OrderInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed order input validation", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	order, err := h.ordersService.CreateOrder(c.Request().Context(), request.toDomain())
	if err != nil {
		logger.Error("Failed to create order", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *OrdersHandler) IngestOrders(c echo.Context) error {
	var request IngestInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed ingest input validation", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	batch := make([]domain.Order, 0, len(request.Orders))
	for _, in := range request.Orders {
		batch = append(batch, in.toDomain())
	}

	inserted, err := h.ordersService.IngestOrders(c.Request().Context(), batch)
	if err != nil {
		logger.Error("Failed to ingest orders", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(map[string]int{"inserted": inserted}))
}

func (h *OrdersHandler) GetAllOrders(c echo.Context) error {
	orders, err := h.ordersService.GetAllOrders()
	if err != nil {
		logger.Error("Failed to get all orders", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	order, err := h.ordersService.GetOrder(c.Param("id"))
	if err != nil {
		logger.Error("Failed to get order by id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) CountOrders(c echo.Context) error {
	count, err := h.ordersService.CountOrders()
	if err != nil {
		logger.Error("Failed to count orders", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]int64{"count": count}))
}

func (h *OrdersHandler) DeleteOrder(c echo.Context) error {
	err := h.ordersService.DeleteOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		logger.Error("Failed to delete order", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Order deleted successfully"))
}
