package reservation

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

// ListFilter narrows a staff listing. Status and Date combine.
type ListFilter struct {
	Status string
	Date   string
}

type ListReservations struct {
	repo domain.Repository
	opts Options
}

func NewListReservations(repo domain.Repository, opts Options) *ListReservations {
	return &ListReservations{repo: repo, opts: opts.withDefaults()}
}

func (uc *ListReservations) Execute(
	ctx context.Context,
	f ListFilter,
) ([]models.Reservation, error) {

	var status domain.Status
	if raw := strings.TrimSpace(f.Status); raw != "" {
		st, err := domain.ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		status = st
	}

	date := strings.TrimSpace(f.Date)

	switch {
	case date != "":
		list, err := uc.ByDate(ctx, date)
		if err != nil || status == "" {
			return list, err
		}
		return filterByStatus(list, status), nil

	case status != "":
		ctx, cancel := uc.opts.storeContext(ctx)
		defer cancel()
		return uc.repo.ListByStatus(ctx, status)

	default:
		ctx, cancel := uc.opts.storeContext(ctx)
		defer cancel()
		return uc.repo.ListAll(ctx)
	}
}

// ByDate lists one calendar day ordered by slot.
func (uc *ListReservations) ByDate(
	ctx context.Context,
	date string,
) ([]models.Reservation, error) {

	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, domain.ErrValidation("date")
	}

	ctx, cancel := uc.opts.storeContext(ctx)
	defer cancel()

	return uc.repo.ListByDate(ctx, day)
}

func filterByStatus(list []models.Reservation, status domain.Status) []models.Reservation {
	out := make([]models.Reservation, 0, len(list))
	for _, r := range list {
		if r.Status == string(status) {
			out = append(out, r)
		}
	}
	return out
}
