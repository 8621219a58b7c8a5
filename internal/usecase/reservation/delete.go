package reservation

import (
	"context"

	"github.com/BruksfildServices01/restaurant-reservations/internal/audit"
	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
)

type DeleteReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	opts  Options
}

func NewDeleteReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	opts Options,
) *DeleteReservation {
	return &DeleteReservation{
		repo:  repo,
		audit: audit,
		opts:  opts.withDefaults(),
	}
}

func (uc *DeleteReservation) Execute(
	ctx context.Context,
	actor string,
	id string,
) error {

	ctx, cancel := uc.opts.storeContext(ctx)
	defer cancel()

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "reservation_deleted",
		Entity:   "reservation",
		EntityID: id,
	})

	return nil
}
