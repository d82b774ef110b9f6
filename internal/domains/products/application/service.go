package application

import (
	"context"

	producttypes "github.com/Apurer/go-gin-backoffice/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/domains/products/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/products/ports"
)

// Service orchestrates the product use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the products service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// List returns every stored product.
func (s *Service) List(ctx context.Context) ([]*producttypes.ProductProjection, error) {
	return s.repo.List(ctx)
}

// GetByID loads a single product or ports.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, input producttypes.ProductIdentifier) (*producttypes.ProductProjection, error) {
	return s.repo.GetByID(ctx, input.ID)
}

// Create validates and inserts a new product; the store assigns the id.
func (s *Service) Create(ctx context.Context, input producttypes.CreateProductInput) (*producttypes.ProductProjection, error) {
	product, err := domain.NewProduct(0, input.Name, input.Price)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, product)
}

// Update overwrites all fields of an existing product.
func (s *Service) Update(ctx context.Context, input producttypes.UpdateProductInput) error {
	product, err := domain.NewProduct(input.ID, input.Name, input.Price)
	if err != nil {
		return mapError(err)
	}
	return s.repo.Update(ctx, product)
}

// Delete removes a product permanently.
func (s *Service) Delete(ctx context.Context, input producttypes.ProductIdentifier) error {
	return s.repo.Delete(ctx, input.ID)
}

var _ ports.Service = (*Service)(nil)

// Validate checks the writable fields against the product invariants without touching storage.
func Validate(fields producttypes.ProductFields) error {
	_, err := domain.NewProduct(0, fields.Name, fields.Price)
	return mapError(err)
}
