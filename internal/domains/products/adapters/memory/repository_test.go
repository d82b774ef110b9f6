package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-backoffice/internal/domains/products/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/products/ports"
)

func TestRepository_ListIsOrderedByID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, name := range []string{"Desk", "Lamp", "Chair"} {
		_, err := repo.Create(ctx, &domain.Product{Name: name, Price: decimal.NewFromInt(1)})
		require.NoError(t, err)
	}
	require.NoError(t, repo.Delete(ctx, 2))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Desk", list[0].Entity.Name)
	require.Equal(t, "Chair", list[1].Entity.Name)
	require.ErrorIs(t, repo.Delete(ctx, 2), ports.ErrNotFound)
}

func TestRepository_SeedKeepsIDsAhead(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	repo.Seed(domain.Product{ID: 101, Name: "Pact Lamp", Price: decimal.RequireFromString("19.99")})
	created, err := repo.Create(ctx, &domain.Product{Name: "Desk", Price: decimal.NewFromInt(120)})
	require.NoError(t, err)
	require.Equal(t, int64(102), created.Entity.ID)

	fetched, err := repo.GetByID(ctx, 101)
	require.NoError(t, err)
	require.Equal(t, "Pact Lamp", fetched.Entity.Name)

	repo.Reset()
	_, err = repo.GetByID(ctx, 101)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
