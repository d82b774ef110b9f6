package backofficeserver

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	producthttpmapper "github.com/Apurer/go-gin-backoffice/internal/domains/products/adapters/http/mapper"
	producttypes "github.com/Apurer/go-gin-backoffice/internal/domains/products/application/types"
	productports "github.com/Apurer/go-gin-backoffice/internal/domains/products/ports"
	apierrors "github.com/Apurer/go-gin-backoffice/internal/shared/errors"
)

const (
	msgProductCreated = "Produit ajouté"
	msgProductUpdated = "Produit mis à jour"
	msgProductDeleted = "Produit supprimé"
)

// idempotencyKeyHeader lets clients retry a product creation safely.
const idempotencyKeyHeader = "Idempotency-Key"

// ProductAPI is the products resource controller.
type ProductAPI struct {
	service   productports.Service
	workflows productports.WorkflowOrchestrator
	responder *apierrors.ChainedResponder
}

// NewProductAPI creates a ProductAPI backed by the provided service. workflows may be nil.
func NewProductAPI(service productports.Service, workflows productports.WorkflowOrchestrator, logger *slog.Logger) *ProductAPI {
	return &ProductAPI{service: service, workflows: workflows, responder: newProductResponder(logger)}
}

// GET ?endpoint=products
func (api *ProductAPI) List(c *gin.Context) {
	result, err := api.service.List(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromProjectionList(result))
}

// GET ?endpoint=products/{id}
func (api *ProductAPI) Get(c *gin.Context, id int64) {
	product, err := api.service.GetByID(c.Request.Context(), producttypes.ProductIdentifier{ID: id})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromProjection(product))
}

// POST ?endpoint=products
func (api *ProductAPI) Create(c *gin.Context) {
	var payload producthttpmapper.MutationProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidBody(c, err)
		return
	}
	input := producttypes.CreateProductInput{
		ProductFields:  producthttpmapper.ToFields(payload),
		IdempotencyKey: strings.TrimSpace(c.GetHeader(idempotencyKeyHeader)),
	}
	created, err := api.createProduct(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: msgProductCreated, ID: created.Entity.ID})
}

func (api *ProductAPI) createProduct(ctx context.Context, input producttypes.CreateProductInput) (*producttypes.ProductProjection, error) {
	if api.workflows != nil {
		return api.workflows.CreateProduct(ctx, input)
	}
	return api.service.Create(ctx, input)
}

// PUT ?endpoint=products/{id}
func (api *ProductAPI) Update(c *gin.Context, id int64) {
	var payload producthttpmapper.MutationProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidBody(c, err)
		return
	}
	input := producttypes.UpdateProductInput{ID: id, ProductFields: producthttpmapper.ToFields(payload)}
	if err := api.service.Update(c.Request.Context(), input); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: msgProductUpdated})
}

// DELETE ?endpoint=products/{id}
func (api *ProductAPI) Delete(c *gin.Context, id int64) {
	if err := api.service.Delete(c.Request.Context(), producttypes.ProductIdentifier{ID: id}); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: msgProductDeleted})
}

var _ ResourceController = (*ProductAPI)(nil)
