//go:build unit || e2e

package dbtest

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"court-reservations/internal/domain/user"
	"court-reservations/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const DefaultLocationName = "Default Location"

// CreateTestUser mirrors an identity provider user. Inactive users still need verification.
func CreateTestUser(t *testing.T, db DBLike, email string, role user.Role, active bool) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO users (id, email, username, role, is_active, activated_at)
		VALUES ($1, $2, $3, $4, $5, CASE WHEN $5 THEN now() END) ON CONFLICT (email) DO NOTHING`,
		userID, email, strings.Split(email, "@")[0], role.String(), active)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestLocation(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	var locationID uuid.UUID
	err := db.QueryRow(context.Background(), `INSERT INTO locations (name, address, city, state, zip_code, phone_number)
		VALUES ($1, '1 Court St', 'Austin', 'TX', '78701', '512-555-0100') RETURNING id`, name).Scan(&locationID)
	require.NoError(t, err)

	return locationID
}

// CreateTestCourt adds a court at the seeded default location.
func CreateTestCourt(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	var locationID uuid.UUID
	err := db.QueryRow(ctx, "SELECT id FROM locations WHERE name = $1 LIMIT 1", DefaultLocationName).Scan(&locationID)
	require.NoError(t, err)

	return CreateTestCourtAt(t, db, locationID, name)
}

func CreateTestCourtAt(t *testing.T, db DBLike, locationID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	var courtID uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO courts (location_id, name) VALUES ($1, $2) RETURNING id", locationID, name).Scan(&courtID)
	require.NoError(t, err)

	return courtID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO locations (name, address, city, state, zip_code, phone_number)
		VALUES ($1, '100 Main St', 'Austin', 'TX', '78701', '512-555-0199');
	`, DefaultLocationName)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return errs.New("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
