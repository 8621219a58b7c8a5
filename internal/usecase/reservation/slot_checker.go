package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
)

// SlotChecker answers whether an active reservation already holds a slot.
// It is a read; the store's constrained insert remains the final word.
type SlotChecker struct {
	repo domain.Repository
}

func NewSlotChecker(repo domain.Repository) *SlotChecker {
	return &SlotChecker{repo: repo}
}

// HasActiveConflict ignores the reservation excludeID, if given, so a
// reservation never conflicts with itself.
func (c *SlotChecker) HasActiveConflict(
	ctx context.Context,
	date time.Time,
	slot string,
	excludeID string,
) (bool, error) {

	holder, err := c.repo.FindActiveBySlot(ctx, domain.NormalizeDate(date), slot, excludeID)
	if err != nil {
		return false, err
	}
	return holder != nil, nil
}
