package products

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	productmemory "github.com/Apurer/go-gin-backoffice/internal/domains/products/adapters/memory"
	productapp "github.com/Apurer/go-gin-backoffice/internal/domains/products/application"
	producttypes "github.com/Apurer/go-gin-backoffice/internal/domains/products/application/types"
	productactivities "github.com/Apurer/go-gin-backoffice/internal/platform/temporal/activities/products"
)

func newEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	activities := productactivities.NewActivities(productapp.NewService(productmemory.NewRepository()))
	env.RegisterActivityWithOptions(activities.CreateProduct, activity.RegisterOptions{Name: productactivities.CreateProductActivityName})
	return env
}

func TestProductCreationWorkflow_PersistsProduct(t *testing.T) {
	env := newEnv(t)

	env.ExecuteWorkflow(ProductCreationWorkflow, ProductCreationWorkflowInput{
		Command: producttypes.CreateProductInput{
			ProductFields: producttypes.ProductFields{Name: "Widget", Price: decimal.RequireFromString("9.99")},
		},
		TraceID: "trace-1",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var projection producttypes.ProductProjection
	require.NoError(t, env.GetWorkflowResult(&projection))
	require.Equal(t, int64(1), projection.Entity.ID)
	require.Equal(t, "Widget", projection.Entity.Name)
	require.True(t, projection.Entity.Price.Equal(decimal.RequireFromString("9.99")))
}

func TestProductCreationWorkflow_ValidationIsNotRetried(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	activities := productactivities.NewActivities(productapp.NewService(productmemory.NewRepository()))
	calls := 0
	env.RegisterActivityWithOptions(
		func(ctx context.Context, input producttypes.CreateProductInput) (*producttypes.ProductProjection, error) {
			calls++
			return activities.CreateProduct(ctx, input)
		},
		activity.RegisterOptions{Name: productactivities.CreateProductActivityName},
	)

	env.ExecuteWorkflow(ProductCreationWorkflow, ProductCreationWorkflowInput{
		Command: producttypes.CreateProductInput{},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	require.Equal(t, 1, calls)
}
