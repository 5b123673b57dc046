package verification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrExpired          = errors.New("verification code expired")
	ErrMismatch         = errors.New("verification code does not match")
	ErrNoPendingSubject = errors.New("no pending verification for subject")
)

const DefaultTTL = 3 * time.Minute

// Code is the single live verification code of a subject. Only a digest of
// the plaintext is kept.
type Code struct {
	subjectID uuid.UUID
	hash      string
	issuedAt  time.Time
}

func ReconstructCode(subjectID uuid.UUID, hash string, issuedAt time.Time) *Code {
	return &Code{subjectID: subjectID, hash: hash, issuedAt: issuedAt}
}

func (c *Code) SubjectID() uuid.UUID { return c.subjectID }
func (c *Code) Hash() string         { return c.hash }
func (c *Code) IssuedAt() time.Time  { return c.issuedAt }

// IsExpired reports whether more than ttl has elapsed since issue.
// A code is still valid at exactly ttl.
func (c *Code) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.issuedAt) > ttl
}

func (c *Code) ExpiresAt(ttl time.Duration) time.Time {
	return c.issuedAt.Add(ttl)
}

type Store interface {
	// Get returns the unconsumed code of subjectID, or ErrNoPendingSubject.
	Get(ctx context.Context, subjectID uuid.UUID) (*Code, error)
	// Put replaces whatever code the subject holds.
	Put(ctx context.Context, code *Code) error
	// Consume clears the subject's code only if it is still the one issued at
	// issuedAt, and reports whether it did.
	Consume(ctx context.Context, subjectID uuid.UUID, issuedAt, consumedAt time.Time) (bool, error)
	Delete(ctx context.Context, subjectID uuid.UUID) error
}

type Hasher interface {
	Hash(code string) (string, error)
	// Compare returns codehash.ErrMismatch when code does not produce hashed.
	Compare(hashed, code string) error
}

type Generator interface {
	Generate() (string, error)
}
