package backofficeserver

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/http/mapper"
	orderapp "github.com/Apurer/go-gin-backoffice/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
	producthttpmapper "github.com/Apurer/go-gin-backoffice/internal/domains/products/adapters/http/mapper"
	productapp "github.com/Apurer/go-gin-backoffice/internal/domains/products/application"
	productports "github.com/Apurer/go-gin-backoffice/internal/domains/products/ports"
	apierrors "github.com/Apurer/go-gin-backoffice/internal/shared/errors"
)

const (
	msgProductNotFound = "Produit introuvable"
	msgOrderNotFound   = "Commande introuvable"
)

func productErrorMapper(err error) (apierrors.Problem, bool) {
	switch {
	case errors.Is(err, productports.ErrNotFound):
		return apierrors.NewNotFoundProblem(msgProductNotFound), true
	case errors.Is(err, productapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(err.Error(), producthttpmapper.FieldErrors(err)), true
	}
	return apierrors.Problem{}, false
}

func orderErrorMapper(err error) (apierrors.Problem, bool) {
	switch {
	case errors.Is(err, orderports.ErrNotFound):
		return apierrors.NewNotFoundProblem(msgOrderNotFound), true
	case errors.Is(err, orderapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(err.Error(), orderhttpmapper.FieldErrors(err)), true
	}
	return apierrors.Problem{}, false
}

func newProductResponder(logger *slog.Logger) *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder(logger, productErrorMapper)
}

func newOrderResponder(logger *slog.Logger) *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder(logger, orderErrorMapper)
}

// respondInvalidBody answers a payload that is not valid JSON for the resource.
func respondInvalidBody(c *gin.Context, err error) {
	apierrors.Respond(c, apierrors.ErrInvalidBody.WithDetail(err.Error()))
}
