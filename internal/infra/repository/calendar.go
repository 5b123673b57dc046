package repository

import (
	"context"

	"court-reservations/internal/domain/reservation"
	"court-reservations/internal/infra"
	"court-reservations/internal/infra/converter"
	"court-reservations/internal/infra/db"
	"court-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// Closed intervals: a slot ending 09:59 overlaps one starting 09:59.
const findConflicts = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE court_id = $1
  AND reserved_on = $2
  AND status = 'confirmed'
  AND start_minute <= $4
  AND end_minute >= $3
  AND ($5::uuid IS NULL OR id <> $5)
ORDER BY start_minute`

// SlotCalendar answers overlap queries from the reservations table.
type SlotCalendar struct {
	db db.DBTX
}

func NewSlotCalendar(dbtx db.DBTX) *SlotCalendar {
	return &SlotCalendar{db: dbtx}
}

func (c *SlotCalendar) FindConflicts(ctx context.Context, courtID uuid.UUID, date reservation.Date, slot reservation.TimeSlot, excludeID *uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := c.db.Query(ctx, findConflicts,
		courtID, pgconv.DateToPgtype(date),
		int16(slot.Start().Minutes()), int16(slot.End().Minutes()),
		pgconv.UUIDPtrToPgtype(excludeID),
	)
	if err != nil {
		return nil, infra.WrapPgErr("failed to query conflicting reservations", err)
	}
	defer rows.Close()

	var out []*reservation.Reservation
	for rows.Next() {
		var row converter.ReservationRow
		if err := rows.Scan(row.ScanTargets()...); err != nil {
			return nil, infra.WrapPgErr("failed to scan reservation", err)
		}
		res, err := converter.ReservationFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid reservation row", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr("failed to iterate reservations", err)
	}
	return out, nil
}
