package converter

import (
	"court-reservations/internal/domain/reservation"
	"court-reservations/internal/pkg/errs"
	"court-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ReservationRow mirrors the reservations table.
type ReservationRow struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CourtID     uuid.UUID
	ReservedOn  pgtype.Date
	StartMinute int16
	EndMinute   int16
	Status      string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

// ScanTargets lists the fields in reservationColumns order.
func (r *ReservationRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.UserID, &r.CourtID, &r.ReservedOn,
		&r.StartMinute, &r.EndMinute, &r.Status,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

// ReservationToRow stores the normalized end minute.
func ReservationToRow(res *reservation.Reservation) ReservationRow {
	slot := res.TimeSlot()
	return ReservationRow{
		ID:          res.ID(),
		UserID:      res.UserID(),
		CourtID:     res.CourtID(),
		ReservedOn:  pgconv.DateToPgtype(res.Date()),
		StartMinute: int16(slot.Start().Minutes()),
		EndMinute:   int16(slot.End().Minutes()),
		Status:      res.Status().String(),
		CreatedAt:   pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func ReservationFromRow(row ReservationRow) (*reservation.Reservation, error) {
	date, err := pgconv.DateFromPgtype(row.ReservedOn)
	if err != nil {
		return nil, errs.Wrap(err, "reserved_on")
	}
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, errs.Wrap(err, "status")
	}
	slot := reservation.ReconstructTimeSlot(
		reservation.TimeOfDay(row.StartMinute),
		reservation.TimeOfDay(row.EndMinute),
	)
	return reservation.ReconstructReservation(
		row.ID, row.UserID, row.CourtID,
		date, slot, status,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

// MinuteString renders a stored minute-of-day as "HH:MM".
func MinuteString(m int16) string {
	return reservation.TimeOfDay(m).String()
}
