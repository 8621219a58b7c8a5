package reservation

import (
	"context"

	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/dto"
)

type ReservationStats struct {
	repo domain.Repository
	opts Options
}

func NewReservationStats(repo domain.Repository, opts Options) *ReservationStats {
	return &ReservationStats{repo: repo, opts: opts.withDefaults()}
}

func (uc *ReservationStats) Execute(ctx context.Context) (dto.ReservationStats, error) {
	ctx, cancel := uc.opts.storeContext(ctx)
	defer cancel()

	counts, err := uc.repo.CountByStatus(ctx)
	if err != nil {
		return dto.ReservationStats{}, err
	}

	out := dto.ReservationStats{
		Pending:   counts[domain.StatusPending],
		Confirmed: counts[domain.StatusConfirmed],
		Cancelled: counts[domain.StatusCancelled],
	}
	out.Total = out.Pending + out.Confirmed + out.Cancelled
	return out, nil
}
