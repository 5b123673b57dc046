package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"court-reservations/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var ErrInvalidDate = errors.New("invalid date value in pgtype.Date")

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func StringPtrFromPgtype(pt pgtype.Text) *string {
	if !pt.Valid {
		return nil
	}
	return &pt.String
}

func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// DateToPgtype binds a calendar date without any zone conversion.
func DateToPgtype(d reservation.Date) pgtype.Date {
	return pgtype.Date{Time: d.Midnight(), Valid: true}
}

func DateFromPgtype(pd pgtype.Date) (reservation.Date, error) {
	if !pd.Valid || pd.InfinityModifier != pgtype.Finite {
		return reservation.Date{}, ErrInvalidDate
	}
	return reservation.DateOf(pd.Time.UTC()), nil
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
