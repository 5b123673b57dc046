//go:build unit

package verification_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"court-reservations/internal/domain/verification"
	"court-reservations/internal/pkg/codehash"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mapStore struct {
	mu      sync.Mutex
	codes   map[uuid.UUID]*verification.Code
	failPut error
	// runs after Get inside Consume, simulating a concurrent writer
	beforeConsume func()
}

func newMapStore() *mapStore {
	return &mapStore{codes: map[uuid.UUID]*verification.Code{}}
}

func (s *mapStore) Get(_ context.Context, id uuid.UUID) (*verification.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[id]
	if !ok {
		return nil, verification.ErrNoPendingSubject
	}
	return c, nil
}

func (s *mapStore) Put(_ context.Context, c *verification.Code) error {
	if s.failPut != nil {
		return s.failPut
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[c.SubjectID()] = c
	return nil
}

func (s *mapStore) Consume(_ context.Context, id uuid.UUID, issuedAt, _ time.Time) (bool, error) {
	if s.beforeConsume != nil {
		s.beforeConsume()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[id]
	if !ok || !c.IssuedAt().Equal(issuedAt) {
		return false, nil
	}
	delete(s.codes, id)
	return true, nil
}

func (s *mapStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, id)
	return nil
}

type sequenceGenerator struct {
	next int
}

func (g *sequenceGenerator) Generate() (string, error) {
	g.next++
	return strconv.Itoa(100000 + g.next), nil
}

func newManager(store verification.Store) *verification.Manager {
	return verification.NewManager(store, codehash.NewHasher(bcrypt.MinCost), &sequenceGenerator{}, verification.DefaultTTL)
}

var issuedAt = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestManagerVerify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		submitted func(code string) string
		elapsed   time.Duration
		errIs     error
	}{
		{name: "correct code immediately", submitted: same},
		{name: "correct code at exactly three minutes", submitted: same, elapsed: 3 * time.Minute},
		{name: "correct code after three minutes", submitted: same, elapsed: 3*time.Minute + time.Second, errIs: verification.ErrExpired},
		{name: "wrong code", submitted: func(string) string { return "999999" }, errIs: verification.ErrMismatch},
		{name: "expiry reported before mismatch", submitted: func(string) string { return "999999" }, elapsed: 4 * time.Minute, errIs: verification.ErrExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMapStore()
			m := newManager(store)
			subject := uuid.New()

			code, err := m.Issue(ctx, subject, issuedAt)
			require.NoError(t, err)

			err = m.Verify(ctx, subject, tt.submitted(code), issuedAt.Add(tt.elapsed))
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				_, getErr := store.Get(ctx, subject)
				assert.NoError(t, getErr, "failed verification must keep the code")
				return
			}
			require.NoError(t, err)
			_, getErr := store.Get(ctx, subject)
			assert.ErrorIs(t, getErr, verification.ErrNoPendingSubject, "success must clear the code")
		})
	}

	t.Run("code is single use", func(t *testing.T) {
		m := newManager(newMapStore())
		subject := uuid.New()
		code, err := m.Issue(ctx, subject, issuedAt)
		require.NoError(t, err)

		require.NoError(t, m.Verify(ctx, subject, code, issuedAt))
		assert.ErrorIs(t, m.Verify(ctx, subject, code, issuedAt), verification.ErrNoPendingSubject)
	})

	t.Run("unknown subject", func(t *testing.T) {
		m := newManager(newMapStore())
		assert.ErrorIs(t, m.Verify(ctx, uuid.New(), "123456", issuedAt), verification.ErrNoPendingSubject)
	})

	t.Run("replaced between compare and consume", func(t *testing.T) {
		store := newMapStore()
		m := newManager(store)
		subject := uuid.New()
		code, err := m.Issue(ctx, subject, issuedAt)
		require.NoError(t, err)

		store.beforeConsume = func() {
			store.beforeConsume = nil
			_, _ = m.Resend(ctx, subject, issuedAt.Add(time.Second))
		}
		assert.ErrorIs(t, m.Verify(ctx, subject, code, issuedAt.Add(2*time.Second)), verification.ErrMismatch)
	})
}

func TestManagerResend(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the previous code", func(t *testing.T) {
		m := newManager(newMapStore())
		subject := uuid.New()
		first, err := m.Issue(ctx, subject, issuedAt)
		require.NoError(t, err)

		second, err := m.Resend(ctx, subject, issuedAt.Add(time.Minute))
		require.NoError(t, err)
		assert.NotEqual(t, first, second)

		assert.ErrorIs(t, m.Verify(ctx, subject, first, issuedAt.Add(time.Minute)), verification.ErrMismatch)
		assert.NoError(t, m.Verify(ctx, subject, second, issuedAt.Add(time.Minute)))
	})

	t.Run("restarts the expiry window", func(t *testing.T) {
		m := newManager(newMapStore())
		subject := uuid.New()
		_, err := m.Issue(ctx, subject, issuedAt)
		require.NoError(t, err)

		resentAt := issuedAt.Add(10 * time.Minute)
		code, err := m.Resend(ctx, subject, resentAt)
		require.NoError(t, err, "an expired code can still be resent")
		assert.NoError(t, m.Verify(ctx, subject, code, resentAt.Add(2*time.Minute)))
	})

	t.Run("no pending subject", func(t *testing.T) {
		m := newManager(newMapStore())
		_, err := m.Resend(ctx, uuid.New(), issuedAt)
		assert.ErrorIs(t, err, verification.ErrNoPendingSubject)
	})

	t.Run("after successful verification", func(t *testing.T) {
		m := newManager(newMapStore())
		subject := uuid.New()
		code, err := m.Issue(ctx, subject, issuedAt)
		require.NoError(t, err)
		require.NoError(t, m.Verify(ctx, subject, code, issuedAt))

		_, err = m.Resend(ctx, subject, issuedAt)
		assert.ErrorIs(t, err, verification.ErrNoPendingSubject)
	})
}

func TestManagerIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("store failure surfaces", func(t *testing.T) {
		store := newMapStore()
		store.failPut = errors.New("disk full")
		_, err := newManager(store).Issue(ctx, uuid.New(), issuedAt)
		assert.ErrorIs(t, err, store.failPut)
	})

	t.Run("plaintext is not stored", func(t *testing.T) {
		store := newMapStore()
		subject := uuid.New()
		code, err := newManager(store).Issue(ctx, subject, issuedAt)
		require.NoError(t, err)

		stored, err := store.Get(ctx, subject)
		require.NoError(t, err)
		assert.NotEqual(t, code, stored.Hash())
		assert.Equal(t, issuedAt.Add(3*time.Minute), stored.ExpiresAt(verification.DefaultTTL))
	})

	t.Run("explicit expiry clears the code", func(t *testing.T) {
		store := newMapStore()
		m := newManager(store)
		subject := uuid.New()
		_, err := m.Issue(ctx, subject, issuedAt)
		require.NoError(t, err)

		require.NoError(t, m.Expire(ctx, subject))
		_, err = m.Resend(ctx, subject, issuedAt)
		assert.ErrorIs(t, err, verification.ErrNoPendingSubject)
	})
}

func TestRandomGenerator(t *testing.T) {
	g := verification.NewRandomGenerator()
	for range 200 {
		code, err := g.Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, verification.MinCode)
		assert.LessOrEqual(t, n, verification.MaxCode)
	}
}

func same(code string) string { return code }
