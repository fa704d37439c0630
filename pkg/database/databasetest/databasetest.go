// Package databasetest opens throwaway in-memory SQLite databases with the
// full schema applied, for use in tests of packages that talk to the store.
package databasetest

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database"
)

var seq atomic.Int64

// Open returns a migrated in-memory database that is closed when t ends.
// A single connection is used so the memory database lives as long as the pool.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:memdb%d?mode=memory&cache=shared&_pragma=foreign_keys(1)&_time_format=sqlite", seq.Add(1))
	db, err := sqlx.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = database.Migrate(context.Background(), db)
	require.NoError(t, err)
	return db
}
