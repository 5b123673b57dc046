package codestore

import (
	"context"
	"errors"
	"strconv"
	"time"

	"court-reservations/internal/domain/verification"
	"court-reservations/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	keyPrefix   = "verification:code:"
	fieldHash   = "hash"
	fieldIssued = "issued_at"
	DefaultKeep = 24 * time.Hour
)

// Deletes the key only while it still holds the code issued at ARGV[1].
var consumeScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'issued_at') == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// RedisStore keeps one hash per subject. The key TTL only bounds how long an
// abandoned code lingers; expiry itself is decided from issued_at.
type RedisStore struct {
	client *redis.Client
	keep   time.Duration
}

func NewRedisStore(client *redis.Client, keep time.Duration) *RedisStore {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &RedisStore{client: client, keep: keep}
}

func key(subjectID uuid.UUID) string {
	return keyPrefix + subjectID.String()
}

func (s *RedisStore) Get(ctx context.Context, subjectID uuid.UUID) (*verification.Code, error) {
	fields, err := s.client.HGetAll(ctx, key(subjectID)).Result()
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "redis HGETALL"), errs.ErrCacheOperationFailed)
	}
	hash, ok := fields[fieldHash]
	if !ok {
		return nil, verification.ErrNoPendingSubject
	}
	nanos, err := strconv.ParseInt(fields[fieldIssued], 10, 64)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "parse issued_at"), errs.ErrCacheOperationFailed)
	}
	return verification.ReconstructCode(subjectID, hash, time.Unix(0, nanos)), nil
}

func (s *RedisStore) Put(ctx context.Context, code *verification.Code) error {
	k := key(code.SubjectID())
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, k)
		p.HSet(ctx, k, fieldHash, code.Hash(), fieldIssued, issuedField(code.IssuedAt()))
		p.Expire(ctx, k, s.keep)
		return nil
	})
	if err != nil {
		return errs.Mark(errs.Wrap(err, "redis put code"), errs.ErrCacheOperationFailed)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, subjectID uuid.UUID, issuedAt, _ time.Time) (bool, error) {
	n, err := consumeScript.Run(ctx, s.client, []string{key(subjectID)}, issuedField(issuedAt)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, errs.Mark(errs.Wrap(err, "redis consume code"), errs.ErrCacheOperationFailed)
	}
	return n == 1, nil
}

func (s *RedisStore) Delete(ctx context.Context, subjectID uuid.UUID) error {
	if err := s.client.Del(ctx, key(subjectID)).Err(); err != nil {
		return errs.Mark(errs.Wrap(err, "redis DEL"), errs.ErrCacheOperationFailed)
	}
	return nil
}

func issuedField(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}
