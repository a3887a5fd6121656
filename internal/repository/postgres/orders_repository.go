package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

func (r *OrdersRepository) CreateOrder(data domain.Order) (domain.Order, error) {
	ctx := context.Background()
	err := r.DB.WithContext(ctx).Create(&data).Error
	if err != nil {
		return domain.Order{}, err
	}

	return data, nil
}

func (r *OrdersRepository) CreateOrders(data []domain.Order) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	ctx := context.Background()
	err := r.DB.WithContext(ctx).CreateInBatches(&data, 500).Error
	if err != nil {
		return 0, err
	}

	return len(data), nil
}

func (r *OrdersRepository) GetAllOrders() ([]domain.Order, error) {
	ctx := context.Background()
	var orders []domain.Order
	err := r.DB.WithContext(ctx).Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// GetOrders applies the optional analytics filters at the database level;
// nil or empty filters are skipped.
func (r *OrdersRepository) GetOrders(start, end *time.Time, areas, modes []string) ([]domain.Order, error) {
	ctx := context.Background()
	q := r.DB.WithContext(ctx)

	if start != nil {
		q = q.Where("order_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("order_date <= ?", *end)
	}
	if len(areas) > 0 {
		q = q.Where("delivery_area IN ?", areas)
	}
	if len(modes) > 0 {
		q = q.Where("order_mode IN ?", modes)
	}

	var orders []domain.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrdersRepository) GetOrder(orderID string) (domain.Order, error) {
	ctx := context.Background()
	var order domain.Order
	err := r.DB.WithContext(ctx).Where("order_id=?", orderID).First(&order).Error
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (r *OrdersRepository) CountOrders() (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Order{}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *OrdersRepository) DeleteOrder(orderID string) error {
	ctx := context.Background()
	row := r.DB.WithContext(ctx).Where("order_id=?", orderID).Delete(&domain.Order{})
	if row.RowsAffected == 0 {
		return errors.New("order_id not found")
	}
	if err := row.Error; err != nil {
		return err
	}

	return nil
}
