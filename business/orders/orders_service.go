package orders

import (
	"context"
	"time"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/logger"

	"github.com/google/uuid"
)

type OrdersRepository interface {
	CreateOrder(data domain.Order) (domain.Order, error)
	CreateOrders(data []domain.Order) (int, error)
	GetAllOrders() ([]domain.Order, error)
	GetOrders(start, end *time.Time, areas, modes []string) ([]domain.Order, error)
	GetOrder(orderID string) (domain.Order, error)
	CountOrders() (int64, error)
	DeleteOrder(orderID string) error
}

// CacheInvalidator drops derived analytics after the order set changes.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}

type OrdersService struct {
	orderRepo   OrdersRepository
	invalidator CacheInvalidator
}

func NewOrdersService(orderRepo OrdersRepository, invalidator CacheInvalidator) *OrdersService {
	return &OrdersService{
		orderRepo:   orderRepo,
		invalidator: invalidator,
	}
}

func (s *OrdersService) CreateOrder(ctx context.Context, data domain.Order) (domain.Order, error) {
	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	data.CreatedAt = time.Now()

	created, err := s.orderRepo.CreateOrder(data)
	if err != nil {
		return domain.Order{}, err
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateCache(ctx)
	}
	return created, nil
}

// IngestOrders bulk-inserts a batch, assigning IDs where the source had
// none, and invalidates the analytics cache.
func (s *OrdersService) IngestOrders(ctx context.Context, data []domain.Order) (int, error) {
	now := time.Now()
	for i := range data {
		if data[i].ID == "" {
			data[i].ID = uuid.NewString()
		}
		data[i].CreatedAt = now
	}

	inserted, err := s.orderRepo.CreateOrders(data)
	if err != nil {
		return 0, err
	}

	logger.Info("orders ingested", "count", inserted)
	if s.invalidator != nil {
		s.invalidator.InvalidateCache(ctx)
	}
	return inserted, nil
}

func (s *OrdersService) GetAllOrders() ([]domain.Order, error) {
	return s.orderRepo.GetAllOrders()
}

func (s *OrdersService) GetOrder(orderID string) (domain.Order, error) {
	return s.orderRepo.GetOrder(orderID)
}

func (s *OrdersService) CountOrders() (int64, error) {
	return s.orderRepo.CountOrders()
}

func (s *OrdersService) DeleteOrder(ctx context.Context, orderID string) error {
	if err := s.orderRepo.DeleteOrder(orderID); err != nil {
		return err
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateCache(ctx)
	}
	return nil
}
