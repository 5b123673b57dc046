package commands

import (
	"court-reservations/internal/domain/reservation"
	"court-reservations/internal/domain/verification"
	"court-reservations/internal/infra"
	"court-reservations/internal/pkg/errs"
)

var (
	ErrCourtNotFound       = errs.New("court not found")
	ErrIdentityNotFound    = errs.New("identity not found")
	ErrUserInactive        = errs.New("user account is not active")
	ErrAlreadyActive       = errs.New("user account is already active")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrReservationNotOwned = errs.New("reservation not owned by user")
)

var businessErrors = []error{
	reservation.ErrPastDate,
	reservation.ErrPastTime,
	reservation.ErrSlotConflict,
	reservation.ErrAlreadyCancelled,
	reservation.ErrTooLateToCancel,
	reservation.ErrInvalidTimeSlot,
	verification.ErrExpired,
	verification.ErrMismatch,
	verification.ErrNoPendingSubject,
	ErrCourtNotFound,
	ErrIdentityNotFound,
	ErrUserInactive,
	ErrAlreadyActive,
	ErrReservationNotFound,
	ErrReservationNotOwned,
}

// IsBusinessError reports whether err is a rule outcome rather than an
// infrastructure fault.
func IsBusinessError(err error) bool {
	return errs.IsAny(err, businessErrors...)
}

// classify keeps business outcomes as they are and marks everything else as
// an infrastructure failure. An exclusion-constraint hit means a concurrent
// writer won the slot.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsBusinessError(err):
		return err
	case infra.IsKind(err, infra.KindConflict):
		return reservation.ErrSlotConflict
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}
