package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ruachost/domainstack/internal/enum"
	"github.com/ruachost/domainstack/internal/models"
	"github.com/ruachost/domainstack/internal/tracing"
	"github.com/ruachost/domainstack/internal/utils"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	GetOrderByReference(ctx context.Context, reference string) (*models.Order, error)
	GetOrdersByStatus(ctx context.Context, status enum.OrderStatus) ([]models.Order, error)
	GetRecentOrders(ctx context.Context, limit int) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, reference string, status enum.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{
		db: db,
	}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrderRepository.CreateOrder")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	now := utils.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	err := r.db.WithContext(ctx).Create(order).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) GetOrderByReference(ctx context.Context, reference string) (*models.Order, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrderRepository.GetOrderByReference")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("reference", reference)

	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Domains").
		Where("reference = ?", reference).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) GetOrdersByStatus(ctx context.Context, status enum.OrderStatus) ([]models.Order, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrderRepository.GetOrdersByStatus")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("status", status.String())

	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Domains").
		Where("status = ?", status).
		Find(&orders).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) GetRecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrderRepository.GetRecentOrders")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	if limit <= 0 {
		limit = 50
	}

	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Domains").
		Order("created_at desc").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, reference string, status enum.OrderStatus) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrderRepository.UpdateOrderStatus")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("reference", reference, "status", status.String())

	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("reference = ?", reference).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": utils.Now(),
		}).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}
