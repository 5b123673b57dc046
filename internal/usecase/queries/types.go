package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	CourtID      uuid.UUID `json:"court_id"`
	CourtName    string    `json:"court_name"`
	LocationName string    `json:"location_name"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"` // requested end, exclusive
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type LocationView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Address     string    `json:"address"`
	ZipCode     string    `json:"zip_code"`
	PhoneNumber string    `json:"phone_number"`
	ImageURL    *string   `json:"image_url,omitempty"`
}

type CourtView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	LocationID   uuid.UUID `json:"location_id"`
	LocationName string    `json:"location_name"`
	City         string    `json:"city"`
	State        string    `json:"state"`
}

// Scope selects which of a user's reservations to list.
type Scope string

const (
	ScopeUpcoming  Scope = "upcoming"
	ScopePast      Scope = "past"
	ScopeCancelled Scope = "cancelled"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "":
		return ScopeUpcoming, nil
	case ScopeUpcoming, ScopePast, ScopeCancelled:
		return Scope(s), nil
	default:
		return "", ErrInvalidScope
	}
}
