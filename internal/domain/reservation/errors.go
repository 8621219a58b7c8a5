package reservation

import "github.com/BruksfildServices01/restaurant-reservations/internal/httperr"

const (
	CodeValidation    = "validation_error"
	CodeInvalidDate   = "invalid_date"
	CodeSlotConflict  = "slot_conflict"
	CodeInvalidStatus = "invalid_status"
	CodeNotFound      = "reservation_not_found"
)

var (
	ErrInvalidDate   = httperr.ErrBusiness(CodeInvalidDate)
	ErrSlotConflict  = httperr.ErrBusiness(CodeSlotConflict)
	ErrInvalidStatus = httperr.ErrBusiness(CodeInvalidStatus)
	ErrNotFound      = httperr.ErrBusiness(CodeNotFound)
)

// ErrValidation reports a missing or malformed field.
func ErrValidation(field string) error {
	return httperr.ErrField(CodeValidation, field)
}
