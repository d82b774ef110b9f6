package ports

import (
	"context"

	producttypes "github.com/Apurer/go-gin-backoffice/internal/domains/products/application/types"
)

// Service defines the product use cases exposed to adapters (inbound/driving port).
type Service interface {
	List(ctx context.Context) ([]*producttypes.ProductProjection, error)
	GetByID(ctx context.Context, input producttypes.ProductIdentifier) (*producttypes.ProductProjection, error)
	Create(ctx context.Context, input producttypes.CreateProductInput) (*producttypes.ProductProjection, error)
	Update(ctx context.Context, input producttypes.UpdateProductInput) error
	Delete(ctx context.Context, input producttypes.ProductIdentifier) error
}
