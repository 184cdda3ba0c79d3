// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/car-catalog/internal/database"
)

// SeededDB opens a fresh SQLite file in a temp dir and loads the
// reference data.  The handle is closed when the test ends.
func SeededDB(t testing.TB) *sql.DB {
	t.Helper()
	db := EmptyDB(t)
	dialect, err := database.DialectFor(database.DriverSQLite)
	require.NoError(t, err)
	_, err = database.Initialize(context.Background(), db, dialect)
	require.NoError(t, err)
	return db
}

// EmptyDB opens a fresh SQLite file without any tables.
func EmptyDB(t testing.TB) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "cars.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// InsertCar adds a car row for modelID directly, bypassing the seed.
func InsertCar(t testing.TB, db *sql.DB, modelID uint64, year int, price float64, color *string) uint64 {
	t.Helper()
	var c sql.NullString
	if color != nil {
		c = sql.NullString{String: *color, Valid: true}
	}
	res, err := db.Exec("INSERT INTO cars (model_id, year, price, color) VALUES (?, ?, ?, ?)", modelID, year, price, c)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}
