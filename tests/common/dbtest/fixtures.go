//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DefaultTelescopeName is seeded by SeedReferenceData.
const DefaultTelescopeName = "Haystack"

func CreateTestUser(t *testing.T, db DBLike, firstName, lastName, email string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, first_name, last_name, email) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, firstName, lastName, email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

// GrantRole stores an approved role row. It does not touch the allotted time cap.
func GrantRole(t *testing.T, db DBLike, userID uuid.UUID, role string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO user_roles (user_id, role, approved) VALUES ($1, $2, true) ON CONFLICT (user_id, role) DO UPDATE SET approved = true",
		userID, role)
	require.NoError(t, err)
}

// SetAllottedTime writes the cap record. A nil cap is unlimited.
func SetAllottedTime(t *testing.T, db DBLike, userID uuid.UUID, capTime *time.Duration) {
	t.Helper()

	var ms *int64
	if capTime != nil {
		v := capTime.Milliseconds()
		ms = &v
	}
	_, err := db.Exec(context.Background(),
		"INSERT INTO allotted_time_caps (user_id, allotted_time_ms) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET allotted_time_ms = EXCLUDED.allotted_time_ms",
		userID, ms)
	require.NoError(t, err)
}

// CreateObserver creates a user approved for category with the given cap.
func CreateObserver(t *testing.T, db DBLike, email, category string, capTime *time.Duration) uuid.UUID {
	t.Helper()

	userID := CreateTestUser(t, db, "Jocelyn", "Bell", email)
	GrantRole(t, db, userID, category)
	SetAllottedTime(t, db, userID, capTime)
	return userID
}

func CreateTestTelescope(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	telescopeID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO telescopes (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING", telescopeID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM telescopes WHERE name = $1", name).Scan(&telescopeID)
	}

	return telescopeID
}

func CreateTestCelestialBody(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	bodyID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO celestial_bodies (id, name, hours, minutes, seconds, declination) VALUES ($1, $2, 5, 35, 17, -5.39)",
		bodyID, name)
	require.NoError(t, err)
	return bodyID
}

func CountAppointments(t *testing.T, db DBLike, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM appointments WHERE status = $1", status).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountLogs(t *testing.T, db DBLike, event string, success bool) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM logs WHERE event = $1 AND success = $2", event, success).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO telescopes (id, name) VALUES
		    (gen_random_uuid(), $1)
		ON CONFLICT (name) DO NOTHING;
	`, DefaultTelescopeName)
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
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
