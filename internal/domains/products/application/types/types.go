package types

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-backoffice/internal/domains/products/domain"
	"github.com/Apurer/go-gin-backoffice/internal/shared/projection"
)

// ProductProjection transports a product together with its persistence metadata.
type ProductProjection = projection.Projection[*domain.Product]

// ProductFields is the complete writable state of a product. Omitted fields
// arrive as zero values and overwrite what was stored.
type ProductFields struct {
	Name  string
	Price decimal.Decimal
}

// CreateProductInput carries the payload of a create request. Requests
// sharing a non-empty IdempotencyKey create a single product when creation
// runs as a durable workflow.
type CreateProductInput struct {
	ProductFields
	IdempotencyKey string
}

// UpdateProductInput carries the target id and its replacement state.
type UpdateProductInput struct {
	ID int64
	ProductFields
}

// ProductIdentifier addresses a single product.
type ProductIdentifier struct {
	ID int64
}
