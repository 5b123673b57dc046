package verification

import (
	"context"
	"errors"
	"time"

	"court-reservations/internal/pkg/codehash"
	"court-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

// Manager runs the per-subject code lifecycle:
// no code -> issued -> consumed or expired, with resend replacing an issued code.
type Manager struct {
	store  Store
	hasher Hasher
	gen    Generator
	ttl    time.Duration
}

func NewManager(store Store, hasher Hasher, gen Generator, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, hasher: hasher, gen: gen, ttl: ttl}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue creates a fresh code for subjectID, replacing any previous one.
// The plaintext is returned for delivery and never stored.
func (m *Manager) Issue(ctx context.Context, subjectID uuid.UUID, now time.Time) (string, error) {
	plain, err := m.gen.Generate()
	if err != nil {
		return "", err
	}
	hashed, err := m.hasher.Hash(plain)
	if err != nil {
		return "", errs.Wrap(err, "hash verification code")
	}
	if err := m.store.Put(ctx, ReconstructCode(subjectID, hashed, now)); err != nil {
		return "", errs.Wrap(err, "store verification code")
	}
	return plain, nil
}

// Resend issues a replacement code. The subject must still hold an
// unconsumed code, expired or not.
func (m *Manager) Resend(ctx context.Context, subjectID uuid.UUID, now time.Time) (string, error) {
	if _, err := m.store.Get(ctx, subjectID); err != nil {
		return "", err
	}
	return m.Issue(ctx, subjectID, now)
}

// Verify checks submitted against the subject's code and consumes it on success.
// Attempts are not limited.
func (m *Manager) Verify(ctx context.Context, subjectID uuid.UUID, submitted string, now time.Time) error {
	code, err := m.store.Get(ctx, subjectID)
	if err != nil {
		return err
	}
	if code.IsExpired(now, m.ttl) {
		return ErrExpired
	}
	if err := m.hasher.Compare(code.Hash(), submitted); err != nil {
		if errors.Is(err, codehash.ErrMismatch) {
			return ErrMismatch
		}
		return errs.Wrap(err, "compare verification code")
	}

	consumed, err := m.store.Consume(ctx, subjectID, code.IssuedAt(), now)
	if err != nil {
		return errs.Wrap(err, "consume verification code")
	}
	if consumed {
		return nil
	}

	// Lost a race: either a resend replaced the code or another verify consumed it.
	if _, err := m.store.Get(ctx, subjectID); err != nil {
		return err
	}
	return ErrMismatch
}

// Expire drops the subject's code explicitly.
func (m *Manager) Expire(ctx context.Context, subjectID uuid.UUID) error {
	return m.store.Delete(ctx, subjectID)
}
