package mapper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	ordertypes "github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
)

// FlexibleInt decodes from a JSON number or a numeric string. HTML select
// values reach the API as strings.
type FlexibleInt int64

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			*f = 0
			return nil
		}
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", string(data))
	}
	*f = FlexibleInt(value)
	return nil
}

// MutationOrder is the inbound payload of create and update requests.
type MutationOrder struct {
	ProductID FlexibleInt `json:"product_id"`
	Quantity  FlexibleInt `json:"quantity"`
}

// Order is the HTTP representation of a stored order.
type Order struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Quantity  int32     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var errQuantityRange = errors.New("quantity out of range")

// ToFields maps the payload to the full writable state of an order.
func ToFields(payload MutationOrder) (ordertypes.OrderFields, error) {
	if payload.Quantity > math.MaxInt32 || payload.Quantity < math.MinInt32 {
		return ordertypes.OrderFields{}, errQuantityRange
	}
	return ordertypes.OrderFields{
		ProductID: int64(payload.ProductID),
		Quantity:  int32(payload.Quantity),
	}, nil
}

func FromProjection(p *ordertypes.OrderProjection) Order {
	if p == nil || p.Entity == nil {
		return Order{}
	}
	return Order{
		ID:        p.Entity.ID,
		ProductID: p.Entity.ProductID,
		Quantity:  p.Entity.Quantity,
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}

func FromProjectionList(list []*ordertypes.OrderProjection) []Order {
	out := make([]Order, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}

// FieldErrors names the payload fields behind a validation failure.
func FieldErrors(err error) map[string]string {
	fields := map[string]string{}
	if errors.Is(err, domain.ErrInvalidProductID) {
		fields["product_id"] = domain.ErrInvalidProductID.Error()
	}
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		fields["quantity"] = domain.ErrInvalidQuantity.Error()
	case errors.Is(err, errQuantityRange):
		fields["quantity"] = errQuantityRange.Error()
	}
	return fields
}

var _ json.Unmarshaler = (*FlexibleInt)(nil)
