package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-backoffice/internal/domains/products/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid product input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrPricePrecision) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
