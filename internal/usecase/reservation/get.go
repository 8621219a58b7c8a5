package reservation

import (
	"context"

	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

type GetReservation struct {
	repo domain.Repository
	opts Options
}

func NewGetReservation(repo domain.Repository, opts Options) *GetReservation {
	return &GetReservation{repo: repo, opts: opts.withDefaults()}
}

func (uc *GetReservation) Execute(
	ctx context.Context,
	id string,
) (*models.Reservation, error) {

	ctx, cancel := uc.opts.storeContext(ctx)
	defer cancel()

	return uc.repo.GetByID(ctx, id)
}
