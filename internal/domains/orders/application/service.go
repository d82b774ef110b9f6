package application

import (
	"context"

	ordertypes "github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

// Service orchestrates the order use cases. It does not check that the
// referenced product exists.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*ordertypes.OrderProjection, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, input ordertypes.OrderIdentifier) (*ordertypes.OrderProjection, error) {
	return s.repo.GetByID(ctx, input.ID)
}

func (s *Service) Create(ctx context.Context, input ordertypes.CreateOrderInput) (*ordertypes.OrderProjection, error) {
	order, err := domain.NewOrder(0, input.ProductID, input.Quantity)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, order)
}

// Update overwrites product id and quantity of an existing order.
func (s *Service) Update(ctx context.Context, input ordertypes.UpdateOrderInput) error {
	order, err := domain.NewOrder(input.ID, input.ProductID, input.Quantity)
	if err != nil {
		return mapError(err)
	}
	return s.repo.Update(ctx, order)
}

func (s *Service) Delete(ctx context.Context, input ordertypes.OrderIdentifier) error {
	return s.repo.Delete(ctx, input.ID)
}

var _ ports.Service = (*Service)(nil)
