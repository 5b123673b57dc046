package readstore

import (
	"context"

	"court-reservations/internal/infra"
	"court-reservations/internal/infra/db"
	"court-reservations/internal/pkg/pgconv"
	"court-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

const getIdentity = `
SELECT id, email, username, is_active
FROM users
WHERE id = $1`

type IdentityReadStore struct {
	db db.DBTX
}

func NewIdentityReadStore(dbtx db.DBTX) *IdentityReadStore {
	return &IdentityReadStore{db: dbtx}
}

func (r *IdentityReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.IdentitySnapshot, error) {
	var s shared.IdentitySnapshot
	err := r.db.QueryRow(ctx, getIdentity, id).Scan(&s.ID, &s.Email, &s.Username, &s.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NotFound("user not found")
		}
		return nil, infra.WrapPgErr("failed to find user", err)
	}
	return &s, nil
}
