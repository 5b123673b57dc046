package reservation

import (
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	id        uuid.UUID
	userID    uuid.UUID
	courtID   uuid.UUID
	date      Date
	slot      TimeSlot
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func ReconstructReservation(
	id, userID, courtID uuid.UUID,
	date Date,
	slot TimeSlot,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		userID:    userID,
		courtID:   courtID,
		date:      date,
		slot:      slot,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Reservation) IsConfirmed() bool {
	return r.status == StatusConfirmed
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.userID == userID
}

// StartAt is the instant the reservation begins in loc.
func (r *Reservation) StartAt(loc *time.Location) time.Time {
	return r.date.At(r.slot.Start(), loc)
}

// EndAt is the instant the reservation ends in loc (the requested, exclusive end).
func (r *Reservation) EndAt(loc *time.Location) time.Time {
	return r.date.At(r.slot.RequestedEnd(), loc)
}

func (r *Reservation) withStatus(status Status, at time.Time) *Reservation {
	cp := *r
	cp.status = status
	cp.updatedAt = at
	return &cp
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) UserID() uuid.UUID    { return r.userID }
func (r *Reservation) CourtID() uuid.UUID   { return r.courtID }
func (r *Reservation) Date() Date           { return r.date }
func (r *Reservation) TimeSlot() TimeSlot   { return r.slot }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
