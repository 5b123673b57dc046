package commands

import (
	"context"
	"log/slog"
	"time"

	"court-reservations/internal/domain/reservation"
	"court-reservations/internal/domain/user"
	"court-reservations/internal/infra"
	"court-reservations/internal/pkg/clock"
	"court-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	UserID  uuid.UUID
	CourtID uuid.UUID
	Date    reservation.Date
	Slot    reservation.TimeSlot
}

type CreateReservationResult struct {
	ReservationID uuid.UUID
}

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/mock_reservation.go -package=commandsmock
type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error)
	Cancel(ctx context.Context, reservationID, actorID uuid.UUID, actorRole user.Role) error
}

type reservationCommandsImpl struct {
	uow      shared.UnitOfWork
	engine   *reservation.Engine
	policy   *reservation.CancellationPolicy
	notifier shared.Notifier
	clock    clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	engine *reservation.Engine,
	policy *reservation.CancellationPolicy,
	notifier shared.Notifier,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:      uow,
		engine:   engine,
		policy:   policy,
		notifier: notifier,
		clock:    clk,
	}
}

func (c *reservationCommandsImpl) Create(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error) {
	identity, err := c.uow.CommandReads().IdentityByID(ctx, in.UserID)
	if err != nil {
		if infra.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, classify(err)
	}
	if !identity.IsActive {
		return nil, ErrUserInactive
	}

	court, err := c.uow.CommandReads().CourtByID(ctx, in.CourtID)
	if err != nil {
		if infra.IsNotFound(err) {
			return nil, ErrCourtNotFound
		}
		return nil, classify(err)
	}

	now := c.clock.Now()
	req := reservation.BookingRequest{
		UserID:  in.UserID,
		CourtID: in.CourtID,
		Date:    in.Date,
		Slot:    in.Slot,
	}

	var created *reservation.Reservation
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if lockErr := tx.LockCourtDay(ctx, in.CourtID, in.Date); lockErr != nil {
			return lockErr
		}
		res, bookErr := c.engine.Book(ctx, tx.Calendar(), req, now)
		if bookErr != nil {
			return bookErr
		}
		if createErr := tx.Reservations().Create(ctx, res); createErr != nil {
			return createErr
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	ev := c.reservationEvent(created, identity, court, now)
	notify(ctx, "reservation.created", func() error {
		return c.notifier.ReservationCreated(ctx, ev)
	})

	return &CreateReservationResult{ReservationID: created.ID()}, nil
}

// Cancel lets owners cancel their own reservations and admins cancel any.
func (c *reservationCommandsImpl) Cancel(ctx context.Context, reservationID, actorID uuid.UUID, actorRole user.Role) error {
	now := c.clock.Now()

	var cancelled *reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, readErr := tx.Reads().ReservationByID(ctx, reservationID)
		if readErr != nil {
			if infra.IsNotFound(readErr) {
				return ErrReservationNotFound
			}
			return readErr
		}
		if !res.IsOwnedBy(actorID) && !actorRole.AtLeast(user.RoleAdmin) {
			return ErrReservationNotOwned
		}

		next, policyErr := c.policy.Cancel(res, now)
		if policyErr != nil {
			return policyErr
		}
		if updateErr := tx.Reservations().UpdateStatus(ctx, next); updateErr != nil {
			return updateErr
		}
		cancelled = next
		return nil
	})
	if err != nil {
		return classify(err)
	}

	reads := c.uow.CommandReads()
	identity, err := reads.IdentityByID(ctx, cancelled.UserID())
	if err != nil {
		slog.WarnContext(ctx, "cancellation notice without identity", "reservation_id", cancelled.ID(), "error", err)
		identity = &shared.IdentitySnapshot{ID: cancelled.UserID()}
	}
	court, err := reads.CourtByID(ctx, cancelled.CourtID())
	if err != nil {
		slog.WarnContext(ctx, "cancellation notice without court", "reservation_id", cancelled.ID(), "error", err)
		court = &shared.CourtSnapshot{ID: cancelled.CourtID()}
	}

	ev := c.reservationEvent(cancelled, identity, court, now)
	notify(ctx, "reservation.cancelled", func() error {
		return c.notifier.ReservationCancelled(ctx, ev)
	})
	return nil
}

func (c *reservationCommandsImpl) reservationEvent(res *reservation.Reservation, identity *shared.IdentitySnapshot, court *shared.CourtSnapshot, at time.Time) shared.ReservationEvent {
	return shared.ReservationEvent{
		ReservationID: res.ID(),
		UserID:        res.UserID(),
		Email:         identity.Email,
		Username:      identity.Username,
		CourtID:       res.CourtID(),
		CourtName:     court.Name,
		LocationName:  court.LocationName,
		Date:          res.Date().String(),
		StartTime:     res.TimeSlot().Start().String(),
		EndTime:       res.TimeSlot().RequestedEnd().String(),
		OccurredAt:    at,
	}
}

// notify never fails the surrounding command.
func notify(ctx context.Context, event string, send func() error) {
	if err := send(); err != nil {
		slog.WarnContext(ctx, "notification failed", "event", event, "error", err.Error())
	}
}
