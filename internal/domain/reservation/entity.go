package reservation

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
	"github.com/BruksfildServices01/restaurant-reservations/internal/validators"
)

const (
	MinPartySize = 1
	MaxPartySize = 20
)

// ===============================
// Field rules
// ===============================

// RequireText trims v and rejects it when empty.
func RequireText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", ErrValidation(field)
	}
	return v, nil
}

// NormalizeEmail trims, lowercases and checks the address syntax.
func NormalizeEmail(v string) (string, error) {
	email := validators.NormalizeEmail(v)
	if email == "" || !validators.IsEmailValid(email) {
		return "", ErrValidation("email")
	}
	return email, nil
}

func ValidatePartySize(n int) error {
	if n < MinPartySize || n > MaxPartySize {
		return ErrValidation("guests")
	}
	return nil
}

func ValidateTimeSlot(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" || !IsValidTimeSlot(label) {
		return "", ErrValidation("time")
	}
	return label, nil
}

// ===============================
// Domain Actions
// ===============================

// Transition moves r to the target status. Any known status is reachable
// from any other.
func Transition(r *models.Reservation, to string, now time.Time) error {
	st, err := ParseStatus(to)
	if err != nil {
		return err
	}
	if err := CanTransition(Status(r.Status), st); err != nil {
		return err
	}

	if r.Status != string(st) {
		r.Status = string(st)
		r.UpdatedAt = now
	}
	return nil
}

// Patch is a staff correction. Nil fields are left untouched.
type Patch struct {
	GuestName       *string
	GuestEmail      *string
	GuestPhone      *string
	Date            *time.Time
	Time            *string
	PartySize       *int
	SpecialRequests *string
	Status          *string
}

func (p Patch) IsEmpty() bool {
	return p.GuestName == nil && p.GuestEmail == nil && p.GuestPhone == nil &&
		p.Date == nil && p.Time == nil && p.PartySize == nil &&
		p.SpecialRequests == nil && p.Status == nil
}

// Normalize validates the enumerated and required fields of the patch and
// returns a trimmed copy. Date is not checked against today.
func (p Patch) Normalize() (Patch, error) {
	out := p

	if p.Status != nil {
		st, err := ParseStatus(*p.Status)
		if err != nil {
			return Patch{}, err
		}
		s := string(st)
		out.Status = &s
	}

	if p.GuestName != nil {
		v, err := RequireText("name", *p.GuestName)
		if err != nil {
			return Patch{}, err
		}
		out.GuestName = &v
	}

	if p.GuestEmail != nil {
		v, err := NormalizeEmail(*p.GuestEmail)
		if err != nil {
			return Patch{}, err
		}
		out.GuestEmail = &v
	}

	if p.GuestPhone != nil {
		v, err := RequireText("phone", *p.GuestPhone)
		if err != nil {
			return Patch{}, err
		}
		out.GuestPhone = &v
	}

	if p.Date != nil {
		d := NormalizeDate(*p.Date)
		out.Date = &d
	}

	if p.Time != nil {
		v, err := ValidateTimeSlot(*p.Time)
		if err != nil {
			return Patch{}, err
		}
		out.Time = &v
	}

	if p.PartySize != nil {
		if err := ValidatePartySize(*p.PartySize); err != nil {
			return Patch{}, err
		}
	}

	if p.SpecialRequests != nil {
		v := strings.TrimSpace(*p.SpecialRequests)
		out.SpecialRequests = &v
	}

	return out, nil
}

// Apply writes a normalized patch onto r.
func (p Patch) Apply(r *models.Reservation, now time.Time) {
	if p.GuestName != nil {
		r.GuestName = *p.GuestName
	}
	if p.GuestEmail != nil {
		r.GuestEmail = *p.GuestEmail
	}
	if p.GuestPhone != nil {
		r.GuestPhone = *p.GuestPhone
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Time != nil {
		r.Time = *p.Time
	}
	if p.PartySize != nil {
		r.PartySize = *p.PartySize
	}
	if p.SpecialRequests != nil {
		r.SpecialRequests = *p.SpecialRequests
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	r.UpdatedAt = now
}

// IsActive reports whether r currently holds its slot.
func IsActive(r *models.Reservation) bool {
	return Status(r.Status).IsActive()
}
