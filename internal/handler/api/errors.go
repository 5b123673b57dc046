package api

import (
	"errors"
	"net/http"

	"court-reservations/internal/domain/reservation"
	"court-reservations/internal/domain/verification"
	"court-reservations/internal/handler/httperr"
	"court-reservations/internal/usecase/commands"
	"court-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// first match wins
var errorTable = []errorMapping{
	{reservation.ErrPastDate, http.StatusUnprocessableEntity, "PAST_DATE", "Reservation date is in the past"},
	{reservation.ErrPastTime, http.StatusUnprocessableEntity, "PAST_TIME", "Reservation start time has already passed"},
	{reservation.ErrInvalidTimeSlot, http.StatusBadRequest, "INVALID_TIME_SLOT", "Invalid time slot"},
	{reservation.ErrInvalidTimeOfDay, http.StatusBadRequest, "INVALID_TIME", "Invalid time of day"},
	{reservation.ErrInvalidDate, http.StatusBadRequest, "INVALID_DATE", "Invalid date"},
	{reservation.ErrSlotConflict, http.StatusConflict, "SLOT_CONFLICT", "Time slot is already booked"},
	{reservation.ErrAlreadyCancelled, http.StatusConflict, "ALREADY_CANCELLED", "Reservation is already cancelled"},
	{reservation.ErrTooLateToCancel, http.StatusUnprocessableEntity, "TOO_LATE_TO_CANCEL", "Reservation starts too soon to cancel"},

	{verification.ErrExpired, http.StatusGone, "CODE_EXPIRED", "Verification code expired"},
	{verification.ErrMismatch, http.StatusBadRequest, "CODE_MISMATCH", "Verification code does not match"},
	{verification.ErrNoPendingSubject, http.StatusNotFound, "NO_PENDING_SUBJECT", "No pending verification"},

	{commands.ErrCourtNotFound, http.StatusNotFound, "COURT_NOT_FOUND", "Court not found"},
	{commands.ErrIdentityNotFound, http.StatusNotFound, "IDENTITY_NOT_FOUND", "User not found"},
	{commands.ErrUserInactive, http.StatusForbidden, "USER_INACTIVE", "User is not verified"},
	{commands.ErrAlreadyActive, http.StatusConflict, "ALREADY_ACTIVE", "User is already verified"},
	{commands.ErrReservationNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found"},
	{commands.ErrReservationNotOwned, http.StatusForbidden, "NOT_OWNED", "Reservation belongs to another user"},

	{queries.ErrReservationNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found"},
	{queries.ErrInvalidScope, http.StatusBadRequest, "INVALID_SCOPE", "Invalid reservation scope"},
}

// abortWithUsecaseError writes the mapped 4xx for business errors; anything else is a 500.
func abortWithUsecaseError(c *gin.Context, err error) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			httperr.AbortWithCode(c, m.status, m.code, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithCode(c, http.StatusInternalServerError, "INTERNAL", err, "Internal server error", nil)
}

func abortInvalidRequest(c *gin.Context, err error) {
	httperr.AbortWithCode(c, http.StatusBadRequest, "INVALID_REQUEST", err, "Invalid request", validationDetail(err))
}

func abortUnauthorized(c *gin.Context) {
	httperr.AbortWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", errors.New("missing identity"), "Unauthorized", nil)
}

// field -> failing tag, keyed by the wire name
func validationDetail(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return gin.H{"fields": fields}
}
