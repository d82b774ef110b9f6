package ports

import (
	"context"

	ordertypes "github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
)

// Service defines the order use cases exposed to adapters.
type Service interface {
	List(ctx context.Context) ([]*ordertypes.OrderProjection, error)
	GetByID(ctx context.Context, input ordertypes.OrderIdentifier) (*ordertypes.OrderProjection, error)
	Create(ctx context.Context, input ordertypes.CreateOrderInput) (*ordertypes.OrderProjection, error)
	Update(ctx context.Context, input ordertypes.UpdateOrderInput) error
	Delete(ctx context.Context, input ordertypes.OrderIdentifier) error
}
