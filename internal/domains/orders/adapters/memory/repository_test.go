package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

func TestRepository_AssignsSequentialIDs(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, &domain.Order{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &domain.Order{ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	require.Equal(t, int64(1), first.Entity.ID)
	require.Equal(t, int64(2), second.Entity.ID)
}

func TestRepository_ProjectionsAreCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Order{ProductID: 3, Quantity: 4})
	require.NoError(t, err)
	created.Entity.Quantity = 99

	fetched, err := repo.GetByID(ctx, created.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, int32(4), fetched.Entity.Quantity)
}

func TestRepository_UpdateTouchesTimestamp(t *testing.T) {
	repo := NewRepository()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.WithClock(func() time.Time { return start })
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Order{ProductID: 3, Quantity: 4})
	require.NoError(t, err)

	repo.WithClock(func() time.Time { return start.Add(time.Hour) })
	require.NoError(t, repo.Update(ctx, &domain.Order{ID: created.Entity.ID, ProductID: 5, Quantity: 1}))

	fetched, err := repo.GetByID(ctx, created.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, int64(5), fetched.Entity.ProductID)
	require.Equal(t, start, fetched.Metadata.CreatedAt)
	require.Equal(t, start.Add(time.Hour), fetched.Metadata.UpdatedAt)

	require.ErrorIs(t, repo.Update(ctx, &domain.Order{ID: 77, ProductID: 1, Quantity: 1}), ports.ErrNotFound)
}

func TestRepository_SeedAndReset(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	repo.Seed(domain.Order{ID: 301, ProductID: 101, Quantity: 2})
	next, err := repo.Create(ctx, &domain.Order{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, int64(302), next.Entity.ID)

	repo.Reset()
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}
