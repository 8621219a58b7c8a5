package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

// Repository is the Record Store. Implementations must reject, atomically,
// any write that would leave two active reservations on the same
// (date, time) slot, and report it as ErrSlotConflict.
type Repository interface {
	// -------- Create / conflict --------
	Create(
		ctx context.Context,
		r *models.Reservation,
	) error

	// FindActiveBySlot returns nil, nil when the slot is free.
	FindActiveBySlot(
		ctx context.Context,
		date time.Time,
		slot string,
		excludeID string,
	) (*models.Reservation, error)

	// -------- Lookup --------
	GetByID(
		ctx context.Context,
		id string,
	) (*models.Reservation, error)

	// -------- State change --------

	// Mutate runs fn on the current record under a per-record lock and
	// persists the result. Returning an error from fn aborts the write.
	Mutate(
		ctx context.Context,
		id string,
		fn func(r *models.Reservation) error,
	) (*models.Reservation, error)

	Delete(
		ctx context.Context,
		id string,
	) error

	// -------- Listing --------
	ListAll(
		ctx context.Context,
	) ([]models.Reservation, error)

	ListByStatus(
		ctx context.Context,
		status Status,
	) ([]models.Reservation, error)

	// ListByDate returns the reservations of one calendar day ordered by slot.
	ListByDate(
		ctx context.Context,
		date time.Time,
	) ([]models.Reservation, error)

	CountByStatus(
		ctx context.Context,
	) (map[Status]int64, error)
}
