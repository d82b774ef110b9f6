package ports

import (
	"context"

	producttypes "github.com/Apurer/go-gin-backoffice/internal/domains/products/application/types"
)

// WorkflowOrchestrator exposes durable workflow operations required by the products context.
type WorkflowOrchestrator interface {
	CreateProduct(ctx context.Context, input producttypes.CreateProductInput) (*producttypes.ProductProjection, error)
}
