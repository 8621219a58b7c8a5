package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/BruksfildServices01/restaurant-reservations/internal/domain/menu"
	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

type MenuMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.MenuItem
}

func NewMenuMemoryRepository() *MenuMemoryRepository {
	return &MenuMemoryRepository{items: make(map[string]models.MenuItem)}
}

func (m *MenuMemoryRepository) List(ctx context.Context, f menu.Filter) ([]models.MenuItem, error) {
	if err := checkContext(ctx, "menu.list"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.MenuItem, 0, len(m.items))
	for _, item := range m.items {
		if f.Category != "" && item.Category != f.Category {
			continue
		}
		if f.Available != nil && item.IsAvailable != *f.Available {
			continue
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *MenuMemoryRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	if err := checkContext(ctx, "menu.get_by_id"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return nil, menu.ErrNotFound
	}
	return &item, nil
}

func (m *MenuMemoryRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if err := checkContext(ctx, "menu.create"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[item.ID]; exists {
		return fmt.Errorf("menu.create: duplicate id %s", item.ID)
	}
	m.items[item.ID] = *item
	return nil
}

func (m *MenuMemoryRepository) Update(
	ctx context.Context,
	id string,
	fn func(item *models.MenuItem) error,
) (*models.MenuItem, error) {
	if err := checkContext(ctx, "menu.update"); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.items[id]
	if !ok {
		return nil, menu.ErrNotFound
	}

	next := current
	if err := fn(&next); err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt

	m.items[id] = next
	return &next, nil
}

func (m *MenuMemoryRepository) Delete(ctx context.Context, id string) error {
	if err := checkContext(ctx, "menu.delete"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return menu.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *MenuMemoryRepository) Count(ctx context.Context) (int64, int64, error) {
	if err := checkContext(ctx, "menu.count"); err != nil {
		return 0, 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var total, available int64
	for _, item := range m.items {
		total++
		if item.IsAvailable {
			available++
		}
	}
	return total, available, nil
}

// Compile-time check
var _ menu.Repository = (*MenuMemoryRepository)(nil)
