package reservation

import (
	"context"

	"github.com/BruksfildServices01/restaurant-reservations/internal/audit"
	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

type TransitionReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	opts  Options
}

func NewTransitionReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	opts Options,
) *TransitionReservation {
	return &TransitionReservation{
		repo:  repo,
		audit: audit,
		opts:  opts.withDefaults(),
	}
}

func (uc *TransitionReservation) Execute(
	ctx context.Context,
	actor string,
	id string,
	status string,
) (*models.Reservation, error) {

	// Unknown status is rejected before any lookup.
	target, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	ctx, cancel := uc.opts.storeContext(ctx)
	defer cancel()

	now := uc.opts.Now().UTC()
	var from string

	res, err := uc.repo.Mutate(ctx, id, func(r *models.Reservation) error {
		from = r.Status
		return domain.Transition(r, string(target), now)
	})
	if err != nil {
		return nil, err
	}

	if from != res.Status {
		uc.audit.Dispatch(audit.Event{
			Actor:    actor,
			Action:   "reservation_status_changed",
			Entity:   "reservation",
			EntityID: res.ID,
			Metadata: map[string]any{
				"from": from,
				"to":   res.Status,
			},
		})
	}

	return res, nil
}
