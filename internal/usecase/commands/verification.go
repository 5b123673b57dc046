package commands

import (
	"context"
	"time"

	"court-reservations/internal/domain/verification"
	"court-reservations/internal/infra"
	"court-reservations/internal/pkg/clock"
	"court-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=verification.go -destination=../../../tests/mock/commands/mock_verification.go -package=commandsmock
type VerificationCommands interface {
	// Issue sends a first code to an identity awaiting activation.
	Issue(ctx context.Context, subjectID uuid.UUID) error
	Resend(ctx context.Context, subjectID uuid.UUID) error
	// Verify consumes the code and activates the identity.
	Verify(ctx context.Context, subjectID uuid.UUID, code string) error
	// Expire drops an outstanding code; the identity stays inactive.
	Expire(ctx context.Context, subjectID uuid.UUID) error
}

type verificationCommandsImpl struct {
	uow      shared.UnitOfWork
	manager  *verification.Manager
	notifier shared.Notifier
	clock    clock.Clock
}

func NewVerificationCommands(
	uow shared.UnitOfWork,
	manager *verification.Manager,
	notifier shared.Notifier,
	clk clock.Clock,
) VerificationCommands {
	return &verificationCommandsImpl{
		uow:      uow,
		manager:  manager,
		notifier: notifier,
		clock:    clk,
	}
}

func (c *verificationCommandsImpl) Issue(ctx context.Context, subjectID uuid.UUID) error {
	identity, err := c.pendingIdentity(ctx, subjectID)
	if err != nil {
		return err
	}

	now := c.clock.Now()
	code, err := c.manager.Issue(ctx, subjectID, now)
	if err != nil {
		return classify(err)
	}

	ev := c.codeEvent(identity, code, now)
	notify(ctx, "verification.code_issued", func() error {
		return c.notifier.CodeIssued(ctx, ev)
	})
	return nil
}

func (c *verificationCommandsImpl) Resend(ctx context.Context, subjectID uuid.UUID) error {
	identity, err := c.pendingIdentity(ctx, subjectID)
	if err != nil {
		return err
	}

	now := c.clock.Now()
	code, err := c.manager.Resend(ctx, subjectID, now)
	if err != nil {
		return classify(err)
	}

	ev := c.codeEvent(identity, code, now)
	notify(ctx, "verification.code_resent", func() error {
		return c.notifier.CodeResent(ctx, ev)
	})
	return nil
}

func (c *verificationCommandsImpl) Verify(ctx context.Context, subjectID uuid.UUID, code string) error {
	if _, err := c.pendingIdentity(ctx, subjectID); err != nil {
		return err
	}

	now := c.clock.Now()
	// activation rolls back unless the code is consumed in the same unit of work
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Identities().Activate(ctx, subjectID, now); err != nil {
			return err
		}
		return c.manager.Verify(ctx, subjectID, code, now)
	})
	return classify(err)
}

func (c *verificationCommandsImpl) Expire(ctx context.Context, subjectID uuid.UUID) error {
	if _, err := c.pendingIdentity(ctx, subjectID); err != nil {
		return err
	}
	return classify(c.manager.Expire(ctx, subjectID))
}

func (c *verificationCommandsImpl) pendingIdentity(ctx context.Context, subjectID uuid.UUID) (*shared.IdentitySnapshot, error) {
	identity, err := c.uow.CommandReads().IdentityByID(ctx, subjectID)
	if err != nil {
		if infra.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, classify(err)
	}
	if identity.IsActive {
		return nil, ErrAlreadyActive
	}
	return identity, nil
}

func (c *verificationCommandsImpl) codeEvent(identity *shared.IdentitySnapshot, code string, now time.Time) shared.CodeEvent {
	return shared.CodeEvent{
		SubjectID:  identity.ID,
		Email:      identity.Email,
		Username:   identity.Username,
		Code:       code,
		ExpiresAt:  now.Add(c.manager.TTL()),
		OccurredAt: now,
	}
}
