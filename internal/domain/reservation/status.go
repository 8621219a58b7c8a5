package reservation

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

var statuses = []Status{StatusPending, StatusConfirmed, StatusCancelled}

func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// ===============================
// Validations
// ===============================

// ParseStatus is exact and case-sensitive.
func ParseStatus(s string) (Status, error) {
	for _, st := range statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// IsActive reports whether a reservation in this status holds its slot.
func (s Status) IsActive() bool {
	return s != StatusCancelled
}

// InitialStatus is the only status a guest submission can produce.
func InitialStatus() Status {
	return StatusPending
}

// CanTransition is where a stricter lifecycle graph would be enforced.
// Every move between known statuses is currently allowed, including
// cancelled back to an active status.
func CanTransition(from, to Status) error {
	return nil
}
