package notify

import (
	"context"
	"log/slog"

	"court-reservations/internal/usecase/shared"
)

// LogNotifier is used when no broker is configured. Codes are never logged.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) ReservationCreated(ctx context.Context, ev shared.ReservationEvent) error {
	n.reservation(ctx, RKReservationCreated, ev)
	return nil
}

func (n *LogNotifier) ReservationCancelled(ctx context.Context, ev shared.ReservationEvent) error {
	n.reservation(ctx, RKReservationCancelled, ev)
	return nil
}

func (n *LogNotifier) CodeIssued(ctx context.Context, ev shared.CodeEvent) error {
	n.code(ctx, RKCodeIssued, ev)
	return nil
}

func (n *LogNotifier) CodeResent(ctx context.Context, ev shared.CodeEvent) error {
	n.code(ctx, RKCodeResent, ev)
	return nil
}

func (n *LogNotifier) reservation(ctx context.Context, key string, ev shared.ReservationEvent) {
	n.logger.InfoContext(ctx, "notification",
		"event", key,
		"reservation_id", ev.ReservationID,
		"user_id", ev.UserID,
		"court", ev.CourtName,
		"date", ev.Date,
		"start", ev.StartTime,
		"end", ev.EndTime,
	)
}

func (n *LogNotifier) code(ctx context.Context, key string, ev shared.CodeEvent) {
	n.logger.InfoContext(ctx, "notification",
		"event", key,
		"subject_id", ev.SubjectID,
		"expires_at", ev.ExpiresAt,
	)
}
