package readstore

import (
	"context"

	"court-reservations/internal/domain/reservation"
	"court-reservations/internal/infra"
	"court-reservations/internal/infra/converter"
	"court-reservations/internal/infra/db"
	"court-reservations/internal/pkg/pgconv"
	"court-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationViewSelect = `
SELECT r.id, r.user_id, r.court_id, c.name, l.name,
       r.reserved_on, r.start_minute, r.end_minute, r.status,
       r.created_at, r.updated_at
FROM reservations r
JOIN courts c ON c.id = r.court_id
JOIN locations l ON l.id = c.location_id`

const getReservationView = reservationViewSelect + `
WHERE r.id = $1`

const listUpcomingByUser = reservationViewSelect + `
WHERE r.user_id = $1
  AND r.status = 'confirmed'
  AND (r.reserved_on > $2 OR (r.reserved_on = $2 AND r.start_minute > $3))
ORDER BY r.reserved_on ASC, r.start_minute ASC`

const listPastByUser = reservationViewSelect + `
WHERE r.user_id = $1
  AND r.status = 'confirmed'
  AND (r.reserved_on < $2 OR (r.reserved_on = $2 AND r.end_minute < $3))
ORDER BY r.reserved_on DESC, r.start_minute DESC`

const listCancelledByUser = reservationViewSelect + `
WHERE r.user_id = $1
  AND r.status = 'cancelled'
ORDER BY r.reserved_on DESC, r.start_minute DESC`

const getReservation = `
SELECT id, user_id, court_id, reserved_on, start_minute, end_minute, status, created_at, updated_at
FROM reservations
WHERE id = $1`

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, getReservationView, id)
	if err != nil {
		return nil, infra.WrapPgErr("failed to find reservation by ID", err)
	}
	views, err := collectViews(rows)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, infra.NotFound("reservation not found")
	}
	return views[0], nil
}

func (r *ReservationReadStore) FindUpcomingByUser(ctx context.Context, userID uuid.UUID, today reservation.Date, now reservation.TimeOfDay) ([]*queries.ReservationView, error) {
	return r.list(ctx, "upcoming", listUpcomingByUser, userID, pgconv.DateToPgtype(today), int16(now.Minutes()))
}

func (r *ReservationReadStore) FindPastByUser(ctx context.Context, userID uuid.UUID, today reservation.Date, now reservation.TimeOfDay) ([]*queries.ReservationView, error) {
	return r.list(ctx, "past", listPastByUser, userID, pgconv.DateToPgtype(today), int16(now.Minutes()))
}

func (r *ReservationReadStore) FindCancelledByUser(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationView, error) {
	return r.list(ctx, "cancelled", listCancelledByUser, userID)
}

// FindDomainByID loads the aggregate for command paths. forUpdate takes a
// row lock that lasts until the surrounding transaction ends.
func (r *ReservationReadStore) FindDomainByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*reservation.Reservation, error) {
	query := getReservation
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var row converter.ReservationRow
	if err := r.db.QueryRow(ctx, query, id).Scan(row.ScanTargets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NotFound("reservation not found")
		}
		return nil, infra.WrapPgErr("failed to load reservation", err)
	}

	res, err := converter.ReservationFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid reservation row", err)
	}
	return res, nil
}

func (r *ReservationReadStore) list(ctx context.Context, scope, query string, args ...any) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapPgErr("failed to list "+scope+" reservations", err)
	}
	return collectViews(rows)
}

func collectViews(rows pgx.Rows) ([]*queries.ReservationView, error) {
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ReservationView, error) {
		var (
			v          queries.ReservationView
			reservedOn pgtype.Date
			start, end int16
			createdAt  pgtype.Timestamptz
			updatedAt  pgtype.Timestamptz
		)
		if err := row.Scan(
			&v.ID, &v.UserID, &v.CourtID, &v.CourtName, &v.LocationName,
			&reservedOn, &start, &end, &v.Status,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}
		date, err := pgconv.DateFromPgtype(reservedOn)
		if err != nil {
			return nil, err
		}
		v.Date = date.String()
		v.StartTime = converter.MinuteString(start)
		v.EndTime = converter.MinuteString(end + 1)
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
		return &v, nil
	})
	if err != nil {
		return nil, infra.WrapPgErr("failed to scan reservation view", err)
	}
	return views, nil
}
