package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	ordermemory "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/memory"
	ordertypes "github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

func TestService_CreateAndGet(t *testing.T) {
	svc := NewService(ordermemory.NewRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, ordertypes.CreateOrderInput{
		OrderFields: ordertypes.OrderFields{ProductID: 1, Quantity: 3},
	})
	require.NoError(t, err)

	fetched, err := svc.GetByID(ctx, ordertypes.OrderIdentifier{ID: created.Entity.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), fetched.Entity.ProductID)
	require.Equal(t, int32(3), fetched.Entity.Quantity)
}

func TestService_RejectsInvalidFields(t *testing.T) {
	svc := NewService(ordermemory.NewRepository())

	_, err := svc.Create(context.Background(), ordertypes.CreateOrderInput{
		OrderFields: ordertypes.OrderFields{ProductID: 1},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.Create(context.Background(), ordertypes.CreateOrderInput{
		OrderFields: ordertypes.OrderFields{Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrInvalidProductID)
}

func TestService_UpdateWithOmittedQuantityFails(t *testing.T) {
	svc := NewService(ordermemory.NewRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, ordertypes.CreateOrderInput{
		OrderFields: ordertypes.OrderFields{ProductID: 1, Quantity: 3},
	})
	require.NoError(t, err)

	err = svc.Update(ctx, ordertypes.UpdateOrderInput{
		ID:          created.Entity.ID,
		OrderFields: ordertypes.OrderFields{ProductID: 2},
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	fetched, err := svc.GetByID(ctx, ordertypes.OrderIdentifier{ID: created.Entity.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), fetched.Entity.ProductID)
}

func TestService_UpdateAndDeleteUnknown(t *testing.T) {
	svc := NewService(ordermemory.NewRepository())
	ctx := context.Background()

	err := svc.Update(ctx, ordertypes.UpdateOrderInput{
		ID:          9,
		OrderFields: ordertypes.OrderFields{ProductID: 1, Quantity: 1},
	})
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, ordertypes.OrderIdentifier{ID: 9}), ports.ErrNotFound)
}
