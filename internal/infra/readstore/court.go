package readstore

import (
	"context"

	"court-reservations/internal/infra"
	"court-reservations/internal/infra/db"
	"court-reservations/internal/pkg/pgconv"
	"court-reservations/internal/usecase/queries"
	"court-reservations/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const listLocations = `
SELECT id, name, city, state, address, zip_code, phone_number, image_url
FROM locations
ORDER BY name`

const listCourts = `
SELECT c.id, c.name, l.id, l.name, l.city, l.state
FROM courts c
JOIN locations l ON l.id = c.location_id
WHERE ($1::uuid IS NULL OR c.location_id = $1)
ORDER BY l.name, c.name`

const getCourtSnapshot = `
SELECT c.id, c.name, l.id, l.name
FROM courts c
JOIN locations l ON l.id = c.location_id
WHERE c.id = $1`

type CourtReadStore struct {
	db db.DBTX
}

func NewCourtReadStore(dbtx db.DBTX) *CourtReadStore {
	return &CourtReadStore{db: dbtx}
}

func (r *CourtReadStore) ListLocations(ctx context.Context) ([]*queries.LocationView, error) {
	rows, err := r.db.Query(ctx, listLocations)
	if err != nil {
		return nil, infra.WrapPgErr("failed to list locations", err)
	}
	locations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.LocationView, error) {
		var (
			v        queries.LocationView
			imageURL pgtype.Text
		)
		if err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.ZipCode, &v.PhoneNumber, &imageURL); err != nil {
			return nil, err
		}
		v.ImageURL = pgconv.StringPtrFromPgtype(imageURL)
		return &v, nil
	})
	if err != nil {
		return nil, infra.WrapPgErr("failed to scan location", err)
	}
	return locations, nil
}

func (r *CourtReadStore) ListCourts(ctx context.Context, locationID *uuid.UUID) ([]*queries.CourtView, error) {
	rows, err := r.db.Query(ctx, listCourts, pgconv.UUIDPtrToPgtype(locationID))
	if err != nil {
		return nil, infra.WrapPgErr("failed to list courts", err)
	}
	courts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.CourtView, error) {
		var v queries.CourtView
		err := row.Scan(&v.ID, &v.Name, &v.LocationID, &v.LocationName, &v.City, &v.State)
		return &v, err
	})
	if err != nil {
		return nil, infra.WrapPgErr("failed to scan court", err)
	}
	return courts, nil
}

func (r *CourtReadStore) FindSnapshot(ctx context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
	var s shared.CourtSnapshot
	err := r.db.QueryRow(ctx, getCourtSnapshot, id).Scan(&s.ID, &s.Name, &s.LocationID, &s.LocationName)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NotFound("court not found")
		}
		return nil, infra.WrapPgErr("failed to find court", err)
	}
	return &s, nil
}
