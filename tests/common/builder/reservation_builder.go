//go:build unit || e2e

package builder

import (
	"time"

	"court-reservations/internal/domain/reservation"
	reqdto "court-reservations/internal/handler/dto/request"
	"court-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CourtID   uuid.UUID
	CourtName string
	Location  string
	Date      string
	StartTime string
	EndTime   string
	Status    reservation.Status
	CreatedAt time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		CourtID:   uuid.New(),
		CourtName: "Court 1",
		Location:  "Riverside Club",
		Date:      "2025-03-12",
		StartTime: "09:00",
		EndTime:   "10:00",
		Status:    reservation.StatusConfirmed,
		CreatedAt: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Fluent builder methods
func (b *ReservationBuilder) WithSlot(start, end string) *ReservationBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *ReservationBuilder) WithDate(date string) *ReservationBuilder {
	b.Date = date
	return b
}

func (b *ReservationBuilder) WithCourt(id uuid.UUID) *ReservationBuilder {
	b.CourtID = id
	return b
}

func (b *ReservationBuilder) WithUser(id uuid.UUID) *ReservationBuilder {
	b.UserID = id
	return b
}

func (b *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDate() reservation.Date {
	d, err := reservation.ParseDate(b.Date)
	if err != nil {
		panic("builder: " + err.Error())
	}
	return d
}

func (b *ReservationBuilder) BuildSlot() reservation.TimeSlot {
	start, err := reservation.ParseTimeOfDay(b.StartTime)
	if err != nil {
		panic("builder: " + err.Error())
	}
	end, err := reservation.ParseTimeOfDay(b.EndTime)
	if err != nil {
		panic("builder: " + err.Error())
	}
	slot, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		panic("builder: " + err.Error())
	}
	return slot
}

func (b *ReservationBuilder) BuildBookingRequest() reservation.BookingRequest {
	return reservation.BookingRequest{
		UserID:  b.UserID,
		CourtID: b.CourtID,
		Date:    b.BuildDate(),
		Slot:    b.BuildSlot(),
	}
}

func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(
		b.ID, b.UserID, b.CourtID,
		b.BuildDate(), b.BuildSlot(), b.Status,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		CourtID:   b.CourtID,
		Date:      b.Date,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:           b.ID,
		UserID:       b.UserID,
		CourtID:      b.CourtID,
		CourtName:    b.CourtName,
		LocationName: b.Location,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       b.Status.String(),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.CreatedAt,
	}
}
