package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/restaurant-reservations/internal/domain/menu"
	"github.com/BruksfildServices01/restaurant-reservations/internal/httperr"
	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

type MenuGormRepository struct {
	db *gorm.DB
}

func NewMenuGormRepository(db *gorm.DB) *MenuGormRepository {
	return &MenuGormRepository{db: db}
}

func (r *MenuGormRepository) List(ctx context.Context, f menu.Filter) ([]models.MenuItem, error) {
	q := r.db.WithContext(ctx)

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Available != nil {
		q = q.Where("is_available = ?", *f.Available)
	}

	var out []models.MenuItem
	if err := q.
		Order("category ASC, name ASC").
		Find(&out).Error; err != nil {
		return nil, translateMenuError("list", err)
	}
	return out, nil
}

func (r *MenuGormRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, menu.ErrNotFound
	}

	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translateMenuError("get_by_id", err)
	}
	return &item, nil
}

func (r *MenuGormRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return translateMenuError("create", r.db.WithContext(ctx).Create(item).Error)
}

func (r *MenuGormRepository) Update(
	ctx context.Context,
	id string,
	fn func(item *models.MenuItem) error,
) (*models.MenuItem, error) {

	if _, err := uuid.Parse(id); err != nil {
		return nil, menu.ErrNotFound
	}

	var out models.MenuItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, "id = ?", id).Error; err != nil {
			return err
		}

		if err := fn(&item); err != nil {
			return err
		}

		if err := tx.Model(&item).UpdateColumns(menuItemColumns(&item)).Error; err != nil {
			return err
		}

		out = item
		return nil
	})
	if err != nil {
		return nil, translateMenuError("update", err)
	}

	return &out, nil
}

func (r *MenuGormRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return menu.ErrNotFound
	}

	result := r.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id)
	if result.Error != nil {
		return translateMenuError("delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return menu.ErrNotFound
	}
	return nil
}

func (r *MenuGormRepository) Count(ctx context.Context) (int64, int64, error) {
	var row struct {
		Total     int64
		Available int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE is_available) AS available").
		Scan(&row).Error; err != nil {
		return 0, 0, translateMenuError("count", err)
	}
	return row.Total, row.Available, nil
}

func translateMenuError(op string, err error) error {
	if err == nil {
		return nil
	}

	if _, ok := httperr.BusinessCode(err); ok {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return menu.ErrNotFound
	case isUnavailable(err):
		return httperr.Transient("menu."+op, err)
	}

	return pkgerrors.Wrapf(err, "menu.%s", op)
}

// Compile-time check
var _ menu.Repository = (*MenuGormRepository)(nil)

// menuItemColumns keeps UpdatedAt as set by the caller.
func menuItemColumns(item *models.MenuItem) map[string]any {
	return map[string]any{
		"name":             item.Name,
		"description":      item.Description,
		"price":            item.Price,
		"category":         item.Category,
		"image":            item.Image,
		"is_vegetarian":    item.IsVegetarian,
		"is_spicy":         item.IsSpicy,
		"is_available":     item.IsAvailable,
		"preparation_time": item.PreparationTime,
		"updated_at":       item.UpdatedAt,
	}
}
