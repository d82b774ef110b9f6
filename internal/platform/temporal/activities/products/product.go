package products

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	productapp "github.com/Apurer/go-gin-backoffice/internal/domains/products/application"
	producttypes "github.com/Apurer/go-gin-backoffice/internal/domains/products/application/types"
	productports "github.com/Apurer/go-gin-backoffice/internal/domains/products/ports"
)

// CreateProductActivityName persists a new product through the application service.
const CreateProductActivityName = "products.activities.CreateProduct"

// ValidationErrorType tags activity failures caused by invalid input.
const ValidationErrorType = "ValidationError"

// Activities groups activities that operate on the products bounded context.
type Activities struct {
	service productports.Service
}

func NewActivities(service productports.Service) *Activities {
	return &Activities{service: service}
}

// CreateProduct stores a new product and returns its projection.
func (a *Activities) CreateProduct(ctx context.Context, input producttypes.CreateProductInput) (*producttypes.ProductProjection, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("product create activity not initialized", "productName", input.Name)
		return nil, errors.New("product create activity not initialized")
	}
	logger.Info("CreateProduct activity started", "productName", input.Name)
	projection, err := a.service.Create(ctx, input)
	if err != nil {
		logger.Error("CreateProduct activity failed", "productName", input.Name, "error", err)
		if errors.Is(err, productapp.ErrInvalidInput) {
			return nil, temporal.NewApplicationErrorWithCause(err.Error(), ValidationErrorType, err)
		}
		return nil, err
	}
	logger.Info("CreateProduct activity completed", "productId", projection.Entity.ID)
	return projection, nil
}
