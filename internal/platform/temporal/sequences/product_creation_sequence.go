package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	producttypes "github.com/Apurer/go-gin-backoffice/internal/domains/products/application/types"
	productactivities "github.com/Apurer/go-gin-backoffice/internal/platform/temporal/activities/products"
)

// RunProductCreationSequence executes the activities needed to persist a product.
func RunProductCreationSequence(ctx workflow.Context, input producttypes.CreateProductInput) (*producttypes.ProductProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("product creation sequence started", "productName", input.Name)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{productactivities.ValidationErrorType},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var projection producttypes.ProductProjection
	err := workflow.ExecuteActivity(ctx, productactivities.CreateProductActivityName, input).Get(ctx, &projection)
	if err != nil {
		logger.Error("product creation sequence failed", "productName", input.Name, "error", err)
		return nil, err
	}
	if projection.Entity != nil {
		logger.Info("product creation sequence completed", "productId", projection.Entity.ID)
	}
	return &projection, nil
}
