package products

import (
	"go.temporal.io/sdk/workflow"

	producttypes "github.com/Apurer/go-gin-backoffice/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/platform/temporal/sequences"
)

const (
	// ProductCreationWorkflowName is the public identifier for registering the workflow.
	ProductCreationWorkflowName = "products.workflows.Creation"
	// ProductCreationTaskQueue is the queue consumed by the worker processing product workflows.
	ProductCreationTaskQueue = "PRODUCT_CREATION"
)

type ProductCreationWorkflowInput struct {
	Command producttypes.CreateProductInput
	TraceID string
}

// ProductCreationWorkflow orchestrates the activities needed to persist a product.
func ProductCreationWorkflow(ctx workflow.Context, input ProductCreationWorkflowInput) (*producttypes.ProductProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ProductCreationWorkflow started", withTraceID(input.TraceID, "productName", input.Command.Name)...)
	projection, err := sequences.RunProductCreationSequence(ctx, input.Command)
	if err != nil {
		logger.Error("ProductCreationWorkflow failed", withTraceID(input.TraceID, "productName", input.Command.Name, "error", err)...)
		return nil, err
	}
	if projection != nil && projection.Entity != nil {
		logger.Info("ProductCreationWorkflow completed", withTraceID(input.TraceID, "productId", projection.Entity.ID)...)
	}
	return projection, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
