package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	productapp "github.com/Apurer/go-gin-backoffice/internal/domains/products/application"
	producttypes "github.com/Apurer/go-gin-backoffice/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/domains/products/ports"
	productworkflows "github.com/Apurer/go-gin-backoffice/internal/platform/temporal/workflows/products"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalProductWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineProductWorkflows)(nil)
)

// TemporalProductWorkflows starts product workflows on a Temporal cluster.
type TemporalProductWorkflows struct {
	client    client.Client
	taskQueue string
}

func NewTemporalProductWorkflows(c client.Client) *TemporalProductWorkflows {
	return &TemporalProductWorkflows{client: c, taskQueue: productworkflows.ProductCreationTaskQueue}
}

// CreateProduct validates locally, then runs the creation workflow and waits for its result.
// Every call starts its own run unless an idempotency key is given: repeated
// keys join the run that already exists.
func (o *TemporalProductWorkflows) CreateProduct(ctx context.Context, input producttypes.CreateProductInput) (*producttypes.ProductProjection, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal product workflows not configured")
	}
	if err := productapp.Validate(input.ProductFields); err != nil {
		return nil, err
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildProductCreationWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	if strings.TrimSpace(input.IdempotencyKey) != "" {
		// a finished run still answers for its key
		options.WorkflowIDReusePolicy = enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		productworkflows.ProductCreationWorkflowName,
		productworkflows.ProductCreationWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) || strings.TrimSpace(input.IdempotencyKey) == "" {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var projection producttypes.ProductProjection
	if err := run.Get(ctx, &projection); err != nil {
		return nil, err
	}
	return &projection, nil
}

// InlineProductWorkflows executes the service directly without Temporal.
type InlineProductWorkflows struct {
	service ports.Service
}

func NewInlineProductWorkflows(service ports.Service) *InlineProductWorkflows {
	return &InlineProductWorkflows{service: service}
}

func (o *InlineProductWorkflows) CreateProduct(ctx context.Context, input producttypes.CreateProductInput) (*producttypes.ProductProjection, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline product workflows not configured")
	}
	return o.service.Create(ctx, input)
}

func buildProductCreationWorkflowID(input producttypes.CreateProductInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("product-creation-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("product-creation-%s-%s", traceComponent, uuid.NewString())
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
