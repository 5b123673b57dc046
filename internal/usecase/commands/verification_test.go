//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"court-reservations/internal/domain/verification"
	"court-reservations/internal/infra/memstore"
	"court-reservations/internal/pkg/clock"
	"court-reservations/internal/pkg/codehash"
	"court-reservations/internal/pkg/errs"
	"court-reservations/internal/usecase/commands"
	"court-reservations/internal/usecase/shared"
	sharedmock "court-reservations/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type fixedGenerator struct {
	codes []string
}

func (g *fixedGenerator) Generate() (string, error) {
	code := g.codes[0]
	if len(g.codes) > 1 {
		g.codes = g.codes[1:]
	}
	return code, nil
}

type VerificationCommandsTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	notifier *sharedmock.MockNotifier
	store    *memstore.Store
	codes    *memstore.CodeStore
	clock    *clock.MockClock
	cmds     commands.VerificationCommands

	pending shared.IdentitySnapshot
}

func TestVerificationCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(VerificationCommandsTestSuite))
}

func (s *VerificationCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.notifier = sharedmock.NewMockNotifier(s.ctrl)
	s.store = memstore.New()
	s.codes = memstore.NewCodeStore()
	s.clock = clock.NewMockClock(time.Date(2025, 3, 10, 9, 0, 0, 0, jst))

	s.pending = shared.IdentitySnapshot{ID: uuid.New(), Email: "new@example.com", Username: "newbie"}
	s.store.AddIdentity(s.pending)

	manager := verification.NewManager(
		s.codes,
		codehash.NewHasher(bcrypt.MinCost),
		&fixedGenerator{codes: []string{"123456", "654321"}},
		3*time.Minute,
	)
	s.cmds = commands.NewVerificationCommands(s.store, manager, s.notifier, s.clock)
}

func (s *VerificationCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *VerificationCommandsTestSuite) TestIssueThenVerifyActivates() {
	ctx := context.Background()
	s.notifier.EXPECT().CodeIssued(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev shared.CodeEvent) error {
			s.Equal("123456", ev.Code)
			s.Equal("new@example.com", ev.Email)
			s.Equal(s.clock.Now().Add(3*time.Minute), ev.ExpiresAt)
			return nil
		})

	s.Require().NoError(s.cmds.Issue(ctx, s.pending.ID))

	s.clock.Add(3 * time.Minute)
	s.Require().NoError(s.cmds.Verify(ctx, s.pending.ID, "123456"))

	got, ok := s.store.Identity(s.pending.ID)
	s.Require().True(ok)
	s.True(got.IsActive)

	err := s.cmds.Verify(ctx, s.pending.ID, "123456")
	s.ErrorIs(err, commands.ErrAlreadyActive)
}

func (s *VerificationCommandsTestSuite) TestVerifyFailures() {
	ctx := context.Background()

	s.Run("no code issued", func() {
		err := s.cmds.Verify(ctx, s.pending.ID, "123456")
		s.ErrorIs(err, verification.ErrNoPendingSubject)
	})

	s.notifier.EXPECT().CodeIssued(gomock.Any(), gomock.Any()).Return(nil)
	s.Require().NoError(s.cmds.Issue(ctx, s.pending.ID))

	s.Run("wrong code", func() {
		err := s.cmds.Verify(ctx, s.pending.ID, "000000")
		s.ErrorIs(err, verification.ErrMismatch)
	})

	s.Run("expired code", func() {
		s.clock.Add(3*time.Minute + time.Second)
		err := s.cmds.Verify(ctx, s.pending.ID, "123456")
		s.ErrorIs(err, verification.ErrExpired)

		got, _ := s.store.Identity(s.pending.ID)
		s.False(got.IsActive)
	})

	s.Run("unknown subject", func() {
		err := s.cmds.Verify(ctx, uuid.New(), "123456")
		s.ErrorIs(err, commands.ErrIdentityNotFound)
	})
}

func (s *VerificationCommandsTestSuite) TestResend() {
	ctx := context.Background()

	s.Run("without a prior code", func() {
		err := s.cmds.Resend(ctx, s.pending.ID)
		s.ErrorIs(err, verification.ErrNoPendingSubject)
	})

	s.Run("expired code is replaced", func() {
		s.notifier.EXPECT().CodeIssued(gomock.Any(), gomock.Any()).Return(nil)
		s.notifier.EXPECT().CodeResent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev shared.CodeEvent) error {
				s.Equal("654321", ev.Code)
				return nil
			})

		s.Require().NoError(s.cmds.Issue(ctx, s.pending.ID))
		s.clock.Add(10 * time.Minute)
		s.Require().NoError(s.cmds.Resend(ctx, s.pending.ID))

		s.ErrorIs(s.cmds.Verify(ctx, s.pending.ID, "123456"), verification.ErrMismatch)
		s.NoError(s.cmds.Verify(ctx, s.pending.ID, "654321"))
	})

	s.Run("active identity", func() {
		err := s.cmds.Resend(ctx, s.pending.ID)
		s.ErrorIs(err, commands.ErrAlreadyActive)
	})
}

func (s *VerificationCommandsTestSuite) TestExpire() {
	ctx := context.Background()
	s.notifier.EXPECT().CodeIssued(gomock.Any(), gomock.Any()).Return(nil)
	s.Require().NoError(s.cmds.Issue(ctx, s.pending.ID))

	s.Run("drops the outstanding code", func() {
		s.Require().NoError(s.cmds.Expire(ctx, s.pending.ID))

		s.ErrorIs(s.cmds.Verify(ctx, s.pending.ID, "123456"), verification.ErrNoPendingSubject)
		s.ErrorIs(s.cmds.Resend(ctx, s.pending.ID), verification.ErrNoPendingSubject)

		got, _ := s.store.Identity(s.pending.ID)
		s.False(got.IsActive)
	})

	s.Run("unknown subject", func() {
		s.ErrorIs(s.cmds.Expire(ctx, uuid.New()), commands.ErrIdentityNotFound)
	})

	s.Run("active identity", func() {
		active := shared.IdentitySnapshot{ID: uuid.New(), Email: "old@example.com", IsActive: true}
		s.store.AddIdentity(active)
		s.ErrorIs(s.cmds.Expire(ctx, active.ID), commands.ErrAlreadyActive)
	})
}

// failingActivation runs on the in-memory store but rejects every activation.
type failingActivation struct {
	*memstore.Store
	err error
}

func (u *failingActivation) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.Store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return fn(ctx, &failingActivationTx{Tx: tx, err: u.err})
	})
}

type failingActivationTx struct {
	shared.Tx
	err error
}

func (t *failingActivationTx) Identities() shared.IdentityRepository { return t }

func (t *failingActivationTx) Activate(context.Context, uuid.UUID, time.Time) error { return t.err }

func (s *VerificationCommandsTestSuite) TestVerify_ActivationFailureKeepsCode() {
	ctx := context.Background()
	s.notifier.EXPECT().CodeIssued(gomock.Any(), gomock.Any()).Return(nil)
	s.Require().NoError(s.cmds.Issue(ctx, s.pending.ID))

	manager := verification.NewManager(
		s.codes,
		codehash.NewHasher(bcrypt.MinCost),
		&fixedGenerator{codes: []string{"999999"}},
		3*time.Minute,
	)
	broken := commands.NewVerificationCommands(
		&failingActivation{Store: s.store, err: errors.New("connection reset")},
		manager, s.notifier, s.clock,
	)

	err := broken.Verify(ctx, s.pending.ID, "123456")
	s.True(errs.Is(err, errs.ErrDatabaseOperationFailed), "got %v", err)

	got, _ := s.store.Identity(s.pending.ID)
	s.False(got.IsActive)

	// the code survived the failed attempt
	s.NoError(s.cmds.Verify(ctx, s.pending.ID, "123456"))
	got, _ = s.store.Identity(s.pending.ID)
	s.True(got.IsActive)
}
