package repository

import (
	"context"

	"court-reservations/internal/domain/reservation"
	"court-reservations/internal/infra"
	"court-reservations/internal/infra/converter"
	"court-reservations/internal/infra/db"
	"court-reservations/internal/pkg/pgconv"
)

const reservationColumns = `id, user_id, court_id, reserved_on, start_minute, end_minute, status, created_at, updated_at`

const insertReservation = `
INSERT INTO reservations (` + reservationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const updateReservationStatus = `
UPDATE reservations SET status = $2, updated_at = $3 WHERE id = $1`

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	row := converter.ReservationToRow(res)
	_, err := r.db.Exec(ctx, insertReservation,
		row.ID, row.UserID, row.CourtID, row.ReservedOn,
		row.StartMinute, row.EndMinute, row.Status,
		row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return infra.WrapPgErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, updateReservationStatus,
		res.ID(), res.Status().String(), pgconv.TimeToPgtype(res.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapPgErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("reservation not found")
	}
	return nil
}
