package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName      = errors.New("product name is required")
	ErrNegativePrice  = errors.New("product price must be greater or equal to zero")
	ErrPricePrecision = errors.New("product price must be in steps of 0.01")
)

// Product is the catalog aggregate managed by the back office.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// NewProduct validates the invariants and builds a Product. A zero id means
// the store assigns one on insert.
func NewProduct(id int64, name string, price decimal.Decimal) (*Product, error) {
	p := &Product{ID: id}
	if err := p.Overwrite(name, price); err != nil {
		return nil, err
	}
	return p, nil
}

// Overwrite replaces every mutable field. Updates are full overwrites, never patches.
func (p *Product) Overwrite(name string, price decimal.Decimal) error {
	if err := p.Rename(name); err != nil {
		return err
	}
	return p.Reprice(price)
}

// Rename mutates the product name ensuring it is not blank.
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Reprice stores a non-negative price expressed in whole cents.
func (p *Product) Reprice(price decimal.Decimal) error {
	if err := checkPrice(price); err != nil {
		return err
	}
	p.Price = price
	return nil
}

func checkPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if !price.Equal(price.Round(2)) {
		return ErrPricePrecision
	}
	return nil
}

// Validate enforces invariants on an already built aggregate.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return checkPrice(p.Price)
}
