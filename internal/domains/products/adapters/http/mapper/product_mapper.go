package mapper

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	producttypes "github.com/Apurer/go-gin-backoffice/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/domains/products/domain"
)

// MutationProduct is the inbound payload of create and update requests.
// Price accepts a JSON number or a numeric string.
type MutationProduct struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Product is the HTTP representation of a stored product.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToFields maps the payload to the full writable state of a product.
func ToFields(payload MutationProduct) producttypes.ProductFields {
	return producttypes.ProductFields{Name: payload.Name, Price: payload.Price}
}

func FromProjection(p *producttypes.ProductProjection) Product {
	if p == nil || p.Entity == nil {
		return Product{}
	}
	return Product{
		ID:        p.Entity.ID,
		Name:      p.Entity.Name,
		Price:     p.Entity.Price.InexactFloat64(),
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}

// FromProjectionList never returns nil so an empty catalog encodes as [].
func FromProjectionList(list []*producttypes.ProductProjection) []Product {
	out := make([]Product, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}

// FieldErrors names the payload fields behind a validation failure.
func FieldErrors(err error) map[string]string {
	fields := map[string]string{}
	if errors.Is(err, domain.ErrEmptyName) {
		fields["name"] = domain.ErrEmptyName.Error()
	}
	switch {
	case errors.Is(err, domain.ErrNegativePrice):
		fields["price"] = domain.ErrNegativePrice.Error()
	case errors.Is(err, domain.ErrPricePrecision):
		fields["price"] = domain.ErrPricePrecision.Error()
	}
	return fields
}
