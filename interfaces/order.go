package interfaces

import (
	"context"

	"github.com/ruachost/domainstack/dto"
)

type OrderService interface {
	CreateOrder(ctx context.Context, request *dto.CreateOrderRequest) (*dto.CreateOrderResult, error)
	MarkOrderPaid(ctx context.Context, reference string) error
	ReconcilePendingPayments(ctx context.Context) error
}
