package shared

import "github.com/google/uuid"

// Minimal snapshots for command read operations
type CourtSnapshot struct {
	ID           uuid.UUID
	Name         string
	LocationID   uuid.UUID
	LocationName string
}

// IdentitySnapshot is the part of the identity provider's user record the
// booking core needs.
type IdentitySnapshot struct {
	ID       uuid.UUID
	Email    string
	Username string
	IsActive bool
}
