package components

import (
	"time"

	"court-reservations/internal/domain/reservation"
	"court-reservations/internal/domain/verification"
	"court-reservations/internal/pkg/clock"
	"court-reservations/internal/pkg/codehash"
	"court-reservations/internal/pkg/config"
	"court-reservations/internal/usecase"
	"court-reservations/internal/usecase/commands"
	"court-reservations/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	reservation.NewEngine,
	NewCancellationPolicy,
	NewVerificationManager,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewVerificationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewCourtQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewCancellationPolicy(loc *time.Location, cfg config.Config) *reservation.CancellationPolicy {
	return reservation.NewCancellationPolicy(loc, cfg.Booking.CancelCutoff)
}

func NewVerificationManager(store verification.Store, cfg config.Config) *verification.Manager {
	return verification.NewManager(
		store,
		codehash.NewHasher(cfg.Verification.HashCost),
		verification.NewRandomGenerator(),
		cfg.Verification.CodeTTL,
	)
}
