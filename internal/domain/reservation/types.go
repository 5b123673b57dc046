package reservation

import "errors"

// Business rule outcomes. Callers compare with errors.Is; anything else
// returned from this package is an infrastructure fault.
var (
	ErrPastDate         = errors.New("reservation date is in the past")
	ErrPastTime         = errors.New("reservation start time has already passed")
	ErrSlotConflict     = errors.New("time slot overlaps an existing reservation")
	ErrAlreadyCancelled = errors.New("reservation is already cancelled")
	ErrTooLateToCancel  = errors.New("reservation starts too soon to cancel")
	ErrInvalidTimeSlot  = errors.New("invalid time slot")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidStatus    = errors.New("invalid reservation status")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
