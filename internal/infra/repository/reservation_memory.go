package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/httperr"
	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

type slotKey struct {
	date string
	time string
}

func slotOf(r *models.Reservation) slotKey {
	return slotKey{date: r.Date.Format(domain.DateLayout), time: r.Time}
}

// ReservationMemoryRepository keeps reservations in process memory. The
// slots map plays the role of the postgres partial unique index: it holds
// the id of the single active reservation per slot.
type ReservationMemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]models.Reservation
	slots map[slotKey]string
}

func NewReservationMemoryRepository() *ReservationMemoryRepository {
	return &ReservationMemoryRepository{
		byID:  make(map[string]models.Reservation),
		slots: make(map[slotKey]string),
	}
}

func checkContext(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return httperr.Transient(op, err)
	}
	return nil
}

// --------------------------------------------------
// Create / conflict
// --------------------------------------------------

func (m *ReservationMemoryRepository) Create(
	ctx context.Context,
	r *models.Reservation,
) error {
	if err := checkContext(ctx, "reservations.create"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[r.ID]; exists {
		return fmt.Errorf("reservations.create: duplicate id %s", r.ID)
	}

	key := slotOf(r)
	if domain.IsActive(r) {
		if _, taken := m.slots[key]; taken {
			return domain.ErrSlotConflict
		}
		m.slots[key] = r.ID
	}

	m.byID[r.ID] = *r
	return nil
}

func (m *ReservationMemoryRepository) FindActiveBySlot(
	ctx context.Context,
	date time.Time,
	slot string,
	excludeID string,
) (*models.Reservation, error) {
	if err := checkContext(ctx, "reservations.find_active_by_slot"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slots[slotKey{date: domain.NormalizeDate(date).Format(domain.DateLayout), time: slot}]
	if !ok || id == excludeID {
		return nil, nil
	}

	r := m.byID[id]
	return &r, nil
}

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (m *ReservationMemoryRepository) GetByID(
	ctx context.Context,
	id string,
) (*models.Reservation, error) {
	if err := checkContext(ctx, "reservations.get_by_id"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (m *ReservationMemoryRepository) Mutate(
	ctx context.Context,
	id string,
	fn func(r *models.Reservation) error,
) (*models.Reservation, error) {
	if err := checkContext(ctx, "reservations.mutate"); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	next := current
	if err := fn(&next); err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt

	oldKey, newKey := slotOf(&current), slotOf(&next)
	if domain.IsActive(&next) {
		if holder, taken := m.slots[newKey]; taken && holder != id {
			return nil, domain.ErrSlotConflict
		}
	}

	if domain.IsActive(&current) && m.slots[oldKey] == id {
		delete(m.slots, oldKey)
	}
	if domain.IsActive(&next) {
		m.slots[newKey] = id
	}

	m.byID[id] = next
	return &next, nil
}

func (m *ReservationMemoryRepository) Delete(
	ctx context.Context,
	id string,
) error {
	if err := checkContext(ctx, "reservations.delete"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}

	if key := slotOf(&r); m.slots[key] == id {
		delete(m.slots, key)
	}
	delete(m.byID, id)
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (m *ReservationMemoryRepository) collect(keep func(r *models.Reservation) bool) []models.Reservation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Reservation, 0, len(m.byID))
	for _, r := range m.byID {
		if keep(&r) {
			out = append(out, r)
		}
	}
	return out
}

func byCreatedDesc(out []models.Reservation) {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
}

func (m *ReservationMemoryRepository) ListAll(
	ctx context.Context,
) ([]models.Reservation, error) {
	if err := checkContext(ctx, "reservations.list_all"); err != nil {
		return nil, err
	}

	out := m.collect(func(*models.Reservation) bool { return true })
	byCreatedDesc(out)
	return out, nil
}

func (m *ReservationMemoryRepository) ListByStatus(
	ctx context.Context,
	status domain.Status,
) ([]models.Reservation, error) {
	if err := checkContext(ctx, "reservations.list_by_status"); err != nil {
		return nil, err
	}

	out := m.collect(func(r *models.Reservation) bool { return r.Status == string(status) })
	byCreatedDesc(out)
	return out, nil
}

func (m *ReservationMemoryRepository) ListByDate(
	ctx context.Context,
	date time.Time,
) ([]models.Reservation, error) {
	if err := checkContext(ctx, "reservations.list_by_date"); err != nil {
		return nil, err
	}

	start := domain.NormalizeDate(date)
	end := start.AddDate(0, 0, 1)

	out := m.collect(func(r *models.Reservation) bool {
		return !r.Date.Before(start) && r.Date.Before(end)
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Time == out[j].Time {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (m *ReservationMemoryRepository) CountByStatus(
	ctx context.Context,
) (map[domain.Status]int64, error) {
	if err := checkContext(ctx, "reservations.count_by_status"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[domain.Status]int64)
	for _, r := range m.byID {
		out[domain.Status(r.Status)]++
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*ReservationMemoryRepository)(nil)
