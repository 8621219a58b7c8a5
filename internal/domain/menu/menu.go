package menu

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/restaurant-reservations/internal/httperr"
	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

const (
	CodeValidation      = "validation_error"
	CodeInvalidCategory = "invalid_category"
	CodeNotFound        = "menu_item_not_found"

	DefaultPreparationTime = 15
)

var (
	ErrInvalidCategory = httperr.ErrBusiness(CodeInvalidCategory)
	ErrNotFound        = httperr.ErrBusiness(CodeNotFound)
)

func ErrValidation(field string) error {
	return httperr.ErrField(CodeValidation, field)
}

// ===============================
// Categories
// ===============================

var categories = []string{
	"appetizers",
	"main-courses",
	"desserts",
	"beverages",
	"salads",
	"soups",
}

func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

func ParseCategory(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range categories {
		if c == s {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// ===============================
// Validation
// ===============================

// Validate trims item in place and checks the catalogue rules.
func Validate(item *models.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return ErrValidation("name")
	}

	item.Description = strings.TrimSpace(item.Description)
	if item.Description == "" {
		return ErrValidation("description")
	}

	if item.Price.LessThan(decimal.Zero) {
		return ErrValidation("price")
	}
	item.Price = item.Price.Round(2)

	cat, err := ParseCategory(item.Category)
	if err != nil {
		return err
	}
	item.Category = cat

	if item.PreparationTime < 0 {
		return ErrValidation("preparationTime")
	}

	item.Image = strings.TrimSpace(item.Image)
	return nil
}

// ===============================
// Repository
// ===============================

type Filter struct {
	Category  string
	Available *bool
}

type Repository interface {
	// List orders by category, then name.
	List(ctx context.Context, f Filter) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error

	// Update runs fn on the current item and persists the result.
	Update(
		ctx context.Context,
		id string,
		fn func(item *models.MenuItem) error,
	) (*models.MenuItem, error)

	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (total int64, available int64, err error)
}
