//go:build e2e

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

// SeedWallet sets an actor's balance, creating the wallet if needed.
func SeedWallet(t *testing.T, db DBLike, actor uuid.UUID, cents int64) {
	t.Helper()
	_, err := db.Exec(context.Background(), `INSERT INTO wallets (actor_id, balance_cents) VALUES ($1, $2)
		ON CONFLICT (actor_id) DO UPDATE SET balance_cents = EXCLUDED.balance_cents`, actor, cents)
	require.NoError(t, err)
}

// SetInventoryCapacity overrides the default capacity for one actor.
func SetInventoryCapacity(t *testing.T, db DBLike, actor uuid.UUID, capacity int) {
	t.Helper()
	_, err := db.Exec(context.Background(), `INSERT INTO inventories (actor_id, capacity) VALUES ($1, $2)
		ON CONFLICT (actor_id) DO UPDATE SET capacity = EXCLUDED.capacity`, actor, capacity)
	require.NoError(t, err)
}

// CountRows counts rows in table matching where, e.g. CountRows(t, db, "mailbox_items", "actor_id = $1", id).
func CountRows(t *testing.T, db DBLike, table, where string, args ...any) int {
	t.Helper()
	query := "SELECT count(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
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
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
