package queries

import (
	"context"

	"court-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=court.go -destination=../../../tests/mock/queries/mock_court.go -package=queriesmock
type CourtQueries interface {
	ListLocations(ctx context.Context) ([]*LocationView, error)
	// ListCourts lists every court, or only those at locationID when set.
	ListCourts(ctx context.Context, locationID *uuid.UUID) ([]*CourtView, error)
}

type CourtReadStore interface {
	ListLocations(ctx context.Context) ([]*LocationView, error)
	ListCourts(ctx context.Context, locationID *uuid.UUID) ([]*CourtView, error)
}

type courtQueriesImpl struct {
	store CourtReadStore
}

func NewCourtQueries(store CourtReadStore) CourtQueries {
	return &courtQueriesImpl{store: store}
}

func (q *courtQueriesImpl) ListLocations(ctx context.Context) ([]*LocationView, error) {
	locations, err := q.store.ListLocations(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return locations, nil
}

func (q *courtQueriesImpl) ListCourts(ctx context.Context, locationID *uuid.UUID) ([]*CourtView, error) {
	courts, err := q.store.ListCourts(ctx, locationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return courts, nil
}
