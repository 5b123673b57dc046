package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ReservationEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	UserID        uuid.UUID `json:"user_id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	CourtID       uuid.UUID `json:"court_id"`
	CourtName     string    `json:"court_name"`
	LocationName  string    `json:"location_name"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type CodeEvent struct {
	SubjectID  uuid.UUID `json:"subject_id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Code       string    `json:"code"`
	ExpiresAt  time.Time `json:"expires_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier receives booking and verification events after they are committed.
// Delivery is best effort: callers log a returned error and carry on.
//
//go:generate mockgen -source=notifier.go -destination=../../../tests/mock/shared/mock_notifier.go -package=sharedmock
type Notifier interface {
	ReservationCreated(ctx context.Context, ev ReservationEvent) error
	ReservationCancelled(ctx context.Context, ev ReservationEvent) error
	CodeIssued(ctx context.Context, ev CodeEvent) error
	CodeResent(ctx context.Context, ev CodeEvent) error
}
