package types

import (
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-backoffice/internal/shared/projection"
)

// OrderProjection transports an order together with its persistence metadata.
type OrderProjection = projection.Projection[*domain.Order]

// OrderFields is the complete writable state of an order.
type OrderFields struct {
	ProductID int64
	Quantity  int32
}

type CreateOrderInput struct {
	OrderFields
}

type UpdateOrderInput struct {
	ID int64
	OrderFields
}

type OrderIdentifier struct {
	ID int64
}
