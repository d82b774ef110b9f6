package backofficeserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	orderports "github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-backoffice/internal/shared/errors"
)

const (
	msgOrderCreated = "Commande ajoutée"
	msgOrderUpdated = "Commande mise à jour"
	msgOrderDeleted = "Commande supprimée"
)

// OrderAPI is the orders resource controller.
type OrderAPI struct {
	service   orderports.Service
	responder *apierrors.ChainedResponder
}

func NewOrderAPI(service orderports.Service, logger *slog.Logger) *OrderAPI {
	return &OrderAPI{service: service, responder: newOrderResponder(logger)}
}

// GET ?endpoint=orders
func (api *OrderAPI) List(c *gin.Context) {
	result, err := api.service.List(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromProjectionList(result))
}

// GET ?endpoint=orders/{id}
func (api *OrderAPI) Get(c *gin.Context, id int64) {
	order, err := api.service.GetByID(c.Request.Context(), ordertypes.OrderIdentifier{ID: id})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromProjection(order))
}

// POST ?endpoint=orders
func (api *OrderAPI) Create(c *gin.Context) {
	fields, ok := bindOrderFields(c)
	if !ok {
		return
	}
	created, err := api.service.Create(c.Request.Context(), ordertypes.CreateOrderInput{OrderFields: fields})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: msgOrderCreated, ID: created.Entity.ID})
}

// PUT ?endpoint=orders/{id}
func (api *OrderAPI) Update(c *gin.Context, id int64) {
	fields, ok := bindOrderFields(c)
	if !ok {
		return
	}
	if err := api.service.Update(c.Request.Context(), ordertypes.UpdateOrderInput{ID: id, OrderFields: fields}); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: msgOrderUpdated})
}

// DELETE ?endpoint=orders/{id}
func (api *OrderAPI) Delete(c *gin.Context, id int64) {
	if err := api.service.Delete(c.Request.Context(), ordertypes.OrderIdentifier{ID: id}); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: msgOrderDeleted})
}

func bindOrderFields(c *gin.Context) (ordertypes.OrderFields, bool) {
	var payload orderhttpmapper.MutationOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidBody(c, err)
		return ordertypes.OrderFields{}, false
	}
	fields, err := orderhttpmapper.ToFields(payload)
	if err != nil {
		apierrors.Respond(c, apierrors.NewValidationProblem(err.Error(), orderhttpmapper.FieldErrors(err)))
		return ordertypes.OrderFields{}, false
	}
	return fields, true
}

var _ ResourceController = (*OrderAPI)(nil)
