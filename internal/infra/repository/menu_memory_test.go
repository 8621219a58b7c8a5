package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/restaurant-reservations/internal/domain/menu"
	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

func TestMenuMemoryRepo_ListFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	repo := NewMenuMemoryRepository()

	for _, item := range []models.MenuItem{
		{ID: "1", Name: "Tiramisu", Category: "desserts", IsAvailable: true, Price: decimal.NewFromInt(20)},
		{ID: "2", Name: "Bruschetta", Category: "appetizers", IsAvailable: true, Price: decimal.NewFromInt(15)},
		{ID: "3", Name: "Affogato", Category: "desserts", IsAvailable: false, Price: decimal.NewFromInt(12)},
	} {
		require.NoError(t, repo.Create(ctx, &item))
	}

	all, err := repo.List(ctx, menu.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Bruschetta", "Affogato", "Tiramisu"}, []string{all[0].Name, all[1].Name, all[2].Name})

	yes := true
	desserts, err := repo.List(ctx, menu.Filter{Category: "desserts", Available: &yes})
	require.NoError(t, err)
	require.Len(t, desserts, 1)
	assert.Equal(t, "Tiramisu", desserts[0].Name)

	total, available, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.EqualValues(t, 2, available)
}

func TestMenuMemoryRepo_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMenuMemoryRepository()
	require.NoError(t, repo.Create(ctx, &models.MenuItem{ID: "1", Name: "Soup", IsAvailable: true}))

	updated, err := repo.Update(ctx, "1", func(item *models.MenuItem) error {
		item.IsAvailable = !item.IsAvailable
		return nil
	})
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	require.NoError(t, repo.Delete(ctx, "1"))
	_, err = repo.GetByID(ctx, "1")
	assert.ErrorIs(t, err, menu.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "1"), menu.ErrNotFound)
}
