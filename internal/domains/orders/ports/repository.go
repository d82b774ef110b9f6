package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-backoffice/internal/shared/projection"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*projection.Projection[*domain.Order], error)
	Update(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Order], error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*projection.Projection[*domain.Order], error)
}
