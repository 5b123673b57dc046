package reservation

import (
	"context"
	"time"

	"court-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingRequest struct {
	UserID  uuid.UUID
	CourtID uuid.UUID
	Date    Date
	Slot    TimeSlot
}

// Engine decides whether a slot can be booked. It never persists; the
// caller stores the returned reservation inside the same serialized scope
// that produced the calendar view.
type Engine struct {
	loc   *time.Location
	newID func() uuid.UUID
}

func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{loc: loc, newID: uuid.New}
}

func (e *Engine) Location() *time.Location { return e.loc }

// Today is the booking-local calendar date of now.
func (e *Engine) Today(now time.Time) Date {
	return DateOf(now.In(e.loc))
}

// Book checks, in order: past date, past start time today, overlap with
// confirmed reservations on the same court and date.
func (e *Engine) Book(ctx context.Context, cal SlotCalendar, req BookingRequest, now time.Time) (*Reservation, error) {
	if req.Slot.IsZero() {
		return nil, ErrInvalidTimeSlot
	}

	local := now.In(e.loc)
	today := DateOf(local)
	if req.Date.Before(today) {
		return nil, ErrPastDate
	}
	if req.Date.Equal(today) && !req.Date.At(req.Slot.Start(), e.loc).After(local) {
		return nil, ErrPastTime
	}

	id := e.newID()
	conflicts, err := cal.FindConflicts(ctx, req.CourtID, req.Date, req.Slot, &id)
	if err != nil {
		return nil, errs.Wrap(err, "find conflicting reservations")
	}
	if len(conflicts) > 0 {
		return nil, ErrSlotConflict
	}

	return &Reservation{
		id:        id,
		userID:    req.UserID,
		courtID:   req.CourtID,
		date:      req.Date,
		slot:      req.Slot,
		status:    StatusConfirmed,
		createdAt: now,
		updatedAt: now,
	}, nil
}
