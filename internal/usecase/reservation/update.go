package reservation

import (
	"context"

	"github.com/BruksfildServices01/restaurant-reservations/internal/audit"
	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

// UpdateReservation applies a staff correction. The patched date is not
// checked against today and the slot is not pre-checked; the store still
// refuses a second active reservation on the same slot.
type UpdateReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	opts  Options
}

func NewUpdateReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	opts Options,
) *UpdateReservation {
	return &UpdateReservation{
		repo:  repo,
		audit: audit,
		opts:  opts.withDefaults(),
	}
}

func (uc *UpdateReservation) Execute(
	ctx context.Context,
	actor string,
	id string,
	patch domain.Patch,
) (*models.Reservation, error) {

	patch, err := patch.Normalize()
	if err != nil {
		return nil, err
	}

	ctx, cancel := uc.opts.storeContext(ctx)
	defer cancel()

	if patch.IsEmpty() {
		return uc.repo.GetByID(ctx, id)
	}

	now := uc.opts.Now().UTC()

	res, err := uc.repo.Mutate(ctx, id, func(r *models.Reservation) error {
		patch.Apply(r, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "reservation_updated",
		Entity:   "reservation",
		EntityID: res.ID,
		Metadata: changedFields(patch),
	})

	return res, nil
}

func changedFields(p domain.Patch) map[string]any {
	fields := []string{}
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(p.GuestName != nil, "name")
	add(p.GuestEmail != nil, "email")
	add(p.GuestPhone != nil, "phone")
	add(p.Date != nil, "date")
	add(p.Time != nil, "time")
	add(p.PartySize != nil, "guests")
	add(p.SpecialRequests != nil, "specialRequests")
	add(p.Status != nil, "status")

	return map[string]any{"fields": fields}
}
