package components

import (
	"court-reservations/internal/handler"
	"court-reservations/internal/handler/api"
	"court-reservations/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewVerificationHandler,
		api.NewCourtHandler,
		middleware.NewAuthMiddleware,
		func(r *api.ReservationHandler, v *api.VerificationHandler, c *api.CourtHandler) handler.Handlers {
			return handler.Handlers{Reservation: r, Verification: v, Court: c}
		},
	),
	fx.Invoke(handler.NewRouter),
)
