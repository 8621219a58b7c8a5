package reservation

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/restaurant-reservations/internal/audit"
	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/httperr"
	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SubmitReservationInput struct {
	GuestName  string
	GuestEmail string
	GuestPhone string

	Date      string
	Time      string
	PartySize int

	SpecialRequests string
}

// ======================================================
// USE CASE
// ======================================================

type SubmitReservation struct {
	repo    domain.Repository
	checker *SlotChecker
	audit   *audit.Dispatcher
	opts    Options
}

func NewSubmitReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	opts Options,
) *SubmitReservation {
	return &SubmitReservation{
		repo:    repo,
		checker: NewSlotChecker(repo),
		audit:   audit,
		opts:    opts.withDefaults(),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SubmitReservation) Execute(
	ctx context.Context,
	in SubmitReservationInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	res, err := uc.build(in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Date guard (restaurant calendar)
	// --------------------------------------------------
	now := uc.opts.Now()
	if !domain.IsBookableDate(res.Date, now) {
		return nil, domain.ErrInvalidDate
	}

	ctx, cancel := uc.opts.storeContext(ctx)
	defer cancel()

	// --------------------------------------------------
	// 3. Slot conflict (fast path)
	// --------------------------------------------------
	taken, err := uc.checker.HasActiveConflict(ctx, res.Date, res.Time, "")
	if err != nil {
		return nil, err
	}
	if taken {
		uc.dispatchConflict(res)
		return nil, domain.ErrSlotConflict
	}

	// --------------------------------------------------
	// 4. Constrained insert (status always pending)
	// --------------------------------------------------
	res.ID = uuid.NewString()
	res.Status = string(domain.InitialStatus())
	res.CreatedAt = now.UTC()
	res.UpdatedAt = res.CreatedAt

	if err := uc.repo.Create(ctx, res); err != nil {
		if httperr.IsBusiness(err, domain.CodeSlotConflict) {
			uc.dispatchConflict(res)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Actor:    "guest",
		Action:   "reservation_created",
		Entity:   "reservation",
		EntityID: res.ID,
		Metadata: map[string]any{
			"date":   res.Date.Format(domain.DateLayout),
			"time":   res.Time,
			"guests": res.PartySize,
		},
	})

	return res, nil
}

func (uc *SubmitReservation) build(in SubmitReservationInput) (*models.Reservation, error) {
	name, err := domain.RequireText("name", in.GuestName)
	if err != nil {
		return nil, err
	}

	email, err := domain.NormalizeEmail(in.GuestEmail)
	if err != nil {
		return nil, err
	}
	if uc.opts.EmailDomainCheck != nil && !uc.opts.EmailDomainCheck(email) {
		return nil, domain.ErrValidation("email")
	}

	phone, err := domain.RequireText("phone", in.GuestPhone)
	if err != nil {
		return nil, err
	}

	dateStr, err := domain.RequireText("date", in.Date)
	if err != nil {
		return nil, err
	}
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, domain.ErrValidation("date")
	}

	slot, err := domain.ValidateTimeSlot(in.Time)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidatePartySize(in.PartySize); err != nil {
		return nil, err
	}

	return &models.Reservation{
		GuestName:       name,
		GuestEmail:      email,
		GuestPhone:      phone,
		Date:            date,
		Time:            slot,
		PartySize:       in.PartySize,
		SpecialRequests: strings.TrimSpace(in.SpecialRequests),
	}, nil
}

func (uc *SubmitReservation) dispatchConflict(res *models.Reservation) {
	uc.audit.Dispatch(audit.Event{
		Actor:  "guest",
		Action: "reservation_conflict",
		Entity: "reservation",
		Metadata: map[string]any{
			"date": res.Date.Format(domain.DateLayout),
			"time": res.Time,
		},
	})
}
