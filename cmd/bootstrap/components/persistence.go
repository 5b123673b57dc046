package components

import (
	"context"
	"time"

	"court-reservations/internal/domain/verification"
	"court-reservations/internal/infra/codestore"
	"court-reservations/internal/infra/db"
	"court-reservations/internal/infra/readstore"
	"court-reservations/internal/infra/uow"
	"court-reservations/internal/pkg/config"
	"court-reservations/internal/pkg/errs"
	"court-reservations/internal/usecase/queries"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewCourtReadStore,
			fx.As(new(queries.CourtReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork owns the write repositories and the in-transaction reads
		uow.NewPostgresUoW,
		NewCodeStore,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewCodeStore keeps verification codes in Postgres unless VERIFICATION_STORE=redis.
func NewCodeStore(lc fx.Lifecycle, cfg config.Config, dbtx db.DBTX) verification.Store {
	if cfg.Verification.Store == config.CodeStoreRedis {
		return codestore.NewRedisStore(newRedisClient(lc, cfg.Redis), codestore.DefaultKeep)
	}
	return codestore.NewPostgresStore(dbtx)
}

// pings on start, closes on stop
func newRedisClient(lc fx.Lifecycle, cfg config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := client.Ping(ctx).Err(); err != nil {
				return errs.Wrapf(err, "redis ping %s", cfg.Addr)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}
