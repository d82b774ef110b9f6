package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-backoffice/internal/domains/products/domain"
	"github.com/Apurer/go-gin-backoffice/internal/shared/projection"
)

var ErrNotFound = errors.New("product not found")

// Repository persists products. Every method maps to a single statement.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error)
	Update(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Product], error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*projection.Projection[*domain.Product], error)
}
