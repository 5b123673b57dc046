package codestore

import (
	"context"
	"time"

	"court-reservations/internal/domain/verification"
	"court-reservations/internal/infra"
	"court-reservations/internal/infra/db"
	"court-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// One row per subject. Consumed rows stay for audit until the next issue.
const (
	getCode = `
SELECT subject_id, code_hash, issued_at
FROM verification_codes
WHERE subject_id = $1 AND consumed_at IS NULL`

	putCode = `
INSERT INTO verification_codes (subject_id, code_hash, issued_at, consumed_at)
VALUES ($1, $2, $3, NULL)
ON CONFLICT (subject_id) DO UPDATE
SET code_hash = EXCLUDED.code_hash, issued_at = EXCLUDED.issued_at, consumed_at = NULL`

	consumeCode = `
UPDATE verification_codes SET consumed_at = $3
WHERE subject_id = $1 AND issued_at = $2 AND consumed_at IS NULL`

	deleteCode = `DELETE FROM verification_codes WHERE subject_id = $1`
)

type PostgresStore struct {
	db db.DBTX
}

func NewPostgresStore(dbtx db.DBTX) *PostgresStore {
	return &PostgresStore{db: dbtx}
}

func (s *PostgresStore) Get(ctx context.Context, subjectID uuid.UUID) (*verification.Code, error) {
	var (
		id       uuid.UUID
		hash     string
		issuedAt time.Time
	)
	if err := s.db.QueryRow(ctx, getCode, subjectID).Scan(&id, &hash, &issuedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, verification.ErrNoPendingSubject
		}
		return nil, infra.WrapPgErr("failed to load verification code", err)
	}
	return verification.ReconstructCode(id, hash, issuedAt), nil
}

// Put truncates issuedAt to the column's microsecond precision so Consume
// can match the value Get returns.
func (s *PostgresStore) Put(ctx context.Context, code *verification.Code) error {
	issuedAt := code.IssuedAt().Truncate(time.Microsecond)
	if _, err := s.db.Exec(ctx, putCode, code.SubjectID(), code.Hash(), issuedAt); err != nil {
		return infra.WrapPgErr("failed to store verification code", err)
	}
	return nil
}

func (s *PostgresStore) Consume(ctx context.Context, subjectID uuid.UUID, issuedAt, consumedAt time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx, consumeCode, subjectID, issuedAt.Truncate(time.Microsecond), consumedAt)
	if err != nil {
		return false, infra.WrapPgErr("failed to consume verification code", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) Delete(ctx context.Context, subjectID uuid.UUID) error {
	if _, err := s.db.Exec(ctx, deleteCode, subjectID); err != nil {
		return infra.WrapPgErr("failed to delete verification code", err)
	}
	return nil
}
