package shared

import (
	"context"
	"time"

	"court-reservations/internal/domain/reservation"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	// LockCourtDay serializes bookings of one court on one date until the transaction ends.
	LockCourtDay(ctx context.Context, courtID uuid.UUID, date reservation.Date) error
	// Calendar sees reservations committed before the lock was taken.
	Calendar() reservation.SlotCalendar
	Reservations() ReservationRepository
	Identities() IdentityRepository
	Reads() CommandReads
}

type CommandReads interface {
	// ReservationByID locks the row until commit when called through Tx.Reads.
	ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	CourtByID(ctx context.Context, id uuid.UUID) (*CourtSnapshot, error)
	IdentityByID(ctx context.Context, id uuid.UUID) (*IdentitySnapshot, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	UpdateStatus(ctx context.Context, res *reservation.Reservation) error
}

type IdentityRepository interface {
	Activate(ctx context.Context, id uuid.UUID, at time.Time) error
}
