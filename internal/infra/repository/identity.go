package repository

import (
	"context"
	"time"

	"court-reservations/internal/infra"
	"court-reservations/internal/infra/db"

	"github.com/google/uuid"
)

const activateUser = `
UPDATE users SET is_active = TRUE, activated_at = $2, updated_at = $2
WHERE id = $1`

type IdentityRepository struct {
	db db.DBTX
}

func NewIdentityRepository(dbtx db.DBTX) *IdentityRepository {
	return &IdentityRepository{db: dbtx}
}

func (r *IdentityRepository) Activate(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, activateUser, id, at)
	if err != nil {
		return infra.WrapPgErr("failed to activate user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("user not found")
	}
	return nil
}
