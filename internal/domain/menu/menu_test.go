package menu

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/restaurant-reservations/internal/httperr"
	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory(" Main-Courses ")
	require.NoError(t, err)
	assert.Equal(t, "main-courses", got)

	_, err = ParseCategory("drinks")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestValidate(t *testing.T) {
	item := models.MenuItem{
		Name:        " Risotto ",
		Description: " Creamy arborio ",
		Price:       decimal.RequireFromString("42.499"),
		Category:    "main-courses",
	}

	require.NoError(t, Validate(&item))
	assert.Equal(t, "Risotto", item.Name)
	assert.Equal(t, "Creamy arborio", item.Description)
	assert.Equal(t, "42.5", item.Price.String())
}

func TestValidate_Rejects(t *testing.T) {
	base := func() models.MenuItem {
		return models.MenuItem{
			Name:        "Soup",
			Description: "Hot",
			Price:       decimal.NewFromInt(10),
			Category:    "soups",
		}
	}

	cases := []struct {
		name  string
		edit  func(*models.MenuItem)
		field string
	}{
		{"blank name", func(m *models.MenuItem) { m.Name = " " }, "name"},
		{"blank description", func(m *models.MenuItem) { m.Description = "" }, "description"},
		{"negative price", func(m *models.MenuItem) { m.Price = decimal.NewFromInt(-1) }, "price"},
		{"negative preparation", func(m *models.MenuItem) { m.PreparationTime = -5 }, "preparationTime"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := base()
			tc.edit(&item)

			be, ok := httperr.BusinessCode(Validate(&item))
			require.True(t, ok)
			assert.Equal(t, tc.field, be.Field)
		})
	}

	item := base()
	item.Category = "snacks"
	assert.ErrorIs(t, Validate(&item), ErrInvalidCategory)
}
