package queries

import (
	"context"
	"time"

	"court-reservations/internal/domain/reservation"
	"court-reservations/internal/domain/user"
	"court-reservations/internal/infra"
	"court-reservations/internal/pkg/clock"
	"court-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrInvalidScope        = errs.New("invalid reservation scope")
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/mock_reservation.go -package=queriesmock
type ReservationQueries interface {
	GetByID(ctx context.Context, id, actorID uuid.UUID, actorRole user.Role) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, scope Scope) ([]*ReservationView, error)
}

// Upcoming: confirmed, on a later date or later today (ascending).
// Past: confirmed, on an earlier date or already ended today (descending).
// Cancelled: descending by date.
type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindUpcomingByUser(ctx context.Context, userID uuid.UUID, today reservation.Date, now reservation.TimeOfDay) ([]*ReservationView, error)
	FindPastByUser(ctx context.Context, userID uuid.UUID, today reservation.Date, now reservation.TimeOfDay) ([]*ReservationView, error)
	FindCancelledByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
	clock clock.Clock
	loc   *time.Location
}

func NewReservationQueries(store ReservationReadStore, clk clock.Clock, loc *time.Location) ReservationQueries {
	return &reservationQueriesImpl{store: store, clock: clk, loc: loc}
}

// GetByID hides reservations of other users from everyone but admins.
func (q *reservationQueriesImpl) GetByID(ctx context.Context, id, actorID uuid.UUID, actorRole user.Role) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsNotFound(err) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if view.UserID != actorID && !actorRole.AtLeast(user.RoleAdmin) {
		return nil, ErrReservationNotFound
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, scope Scope) ([]*ReservationView, error) {
	local := q.clock.Now().In(q.loc)
	today := reservation.DateOf(local)
	now := reservation.ClockOf(local)

	var (
		views []*ReservationView
		err   error
	)
	switch scope {
	case ScopeUpcoming:
		views, err = q.store.FindUpcomingByUser(ctx, userID, today, now)
	case ScopePast:
		views, err = q.store.FindPastByUser(ctx, userID, today, now)
	case ScopeCancelled:
		views, err = q.store.FindCancelledByUser(ctx, userID)
	default:
		return nil, ErrInvalidScope
	}
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if views == nil {
		views = []*ReservationView{}
	}
	return views, nil
}
