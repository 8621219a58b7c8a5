package reservation

import (
	"context"

	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/dto"
)

type GetAvailability struct {
	repo domain.Repository
	opts Options
}

func NewGetAvailability(repo domain.Repository, opts Options) *GetAvailability {
	return &GetAvailability{repo: repo, opts: opts.withDefaults()}
}

// Execute reports every catalogue slot of the day and whether an active
// reservation already holds it.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
) (*dto.AvailabilityDTO, error) {

	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, domain.ErrValidation("date")
	}
	if !domain.IsBookableDate(day, uc.opts.Now()) {
		return nil, domain.ErrInvalidDate
	}

	ctx, cancel := uc.opts.storeContext(ctx)
	defer cancel()

	existing, err := uc.repo.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(existing))
	for i := range existing {
		if domain.IsActive(&existing[i]) {
			taken[existing[i].Time] = true
		}
	}

	slots := domain.TimeSlots()
	out := &dto.AvailabilityDTO{
		Date:  day.Format(domain.DateLayout),
		Slots: make([]dto.SlotAvailability, 0, len(slots)),
	}
	for _, s := range slots {
		out.Slots = append(out.Slots, dto.SlotAvailability{
			Time:      s,
			Available: !taken[s],
		})
	}

	return out, nil
}
