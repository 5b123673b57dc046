package reservation

import (
	"context"

	"github.com/google/uuid"
)

// SlotCalendar answers which confirmed reservations on a court and date
// overlap a slot. excludeID, when set, drops the reservation being evaluated.
type SlotCalendar interface {
	FindConflicts(ctx context.Context, courtID uuid.UUID, date Date, slot TimeSlot, excludeID *uuid.UUID) ([]*Reservation, error)
}

// Calendar is an in-memory SlotCalendar over a fixed set of reservations.
type Calendar struct {
	entries []*Reservation
}

func NewCalendar(entries ...*Reservation) *Calendar {
	return &Calendar{entries: entries}
}

func (c *Calendar) FindConflicts(_ context.Context, courtID uuid.UUID, date Date, slot TimeSlot, excludeID *uuid.UUID) ([]*Reservation, error) {
	return Conflicts(c.entries, courtID, date, slot, excludeID), nil
}

// Conflicts filters entries down to confirmed reservations on courtID and
// date whose slot overlaps slot, skipping excludeID.
func Conflicts(entries []*Reservation, courtID uuid.UUID, date Date, slot TimeSlot, excludeID *uuid.UUID) []*Reservation {
	var out []*Reservation
	for _, r := range entries {
		if !r.IsConfirmed() || r.courtID != courtID || !r.date.Equal(date) {
			continue
		}
		if excludeID != nil && r.id == *excludeID {
			continue
		}
		if r.slot.Overlaps(slot) {
			out = append(out, r)
		}
	}
	return out
}
