package domain

import "errors"

var (
	ErrInvalidProductID = errors.New("order product id must be positive")
	ErrInvalidQuantity  = errors.New("order quantity must be at least 1")
)

// Order records a quantity of a product. ProductID is a soft reference: the
// product may have been deleted since.
type Order struct {
	ID        int64
	ProductID int64
	Quantity  int32
}

// NewOrder validates the invariants and builds an Order. A zero id means the
// store assigns one on insert.
func NewOrder(id, productID int64, quantity int32) (*Order, error) {
	o := &Order{ID: id}
	if err := o.Overwrite(productID, quantity); err != nil {
		return nil, err
	}
	return o, nil
}

// Overwrite replaces every mutable field.
func (o *Order) Overwrite(productID int64, quantity int32) error {
	if productID <= 0 {
		return ErrInvalidProductID
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	o.ProductID = productID
	o.Quantity = quantity
	return nil
}

func (o *Order) Validate() error {
	if o.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if o.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}
