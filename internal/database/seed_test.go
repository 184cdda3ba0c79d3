package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "cars.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type carRow struct {
	ID      int64
	ModelID int64
	Year    int
	Price   float64
	Color   sql.NullString
}

func loadCars(t *testing.T, db *sql.DB) []carRow {
	t.Helper()
	rows, err := db.Query("SELECT id, model_id, year, price, color FROM cars ORDER BY id")
	require.NoError(t, err)
	defer rows.Close()
	var out []carRow
	for rows.Next() {
		var c carRow
		require.NoError(t, rows.Scan(&c.ID, &c.ModelID, &c.Year, &c.Price, &c.Color))
		out = append(out, c)
	}
	require.NoError(t, rows.Err())
	return out
}

func loadNames(t *testing.T, db *sql.DB, q string) []string {
	t.Helper()
	rows, err := db.Query(q)
	require.NoError(t, err)
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		out = append(out, s)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestInitializeLoadsReferenceData(t *testing.T) {
	db := openTestDB(t)

	summary, err := Initialize(context.Background(), db, sqliteDialect)
	require.NoError(t, err)
	assert.Equal(t, SeedSummary{Manufacturers: 3, Models: 6, Cars: 6}, summary)

	assert.Equal(t, []string{"Toyota", "BMW", "Tesla"},
		loadNames(t, db, "SELECT name FROM manufacturers ORDER BY id"))
	assert.Equal(t,
		[]string{"Toyota/Corolla", "Toyota/Camry", "Tesla/Model S", "Tesla/Model 3", "BMW/3 Series", "BMW/5 Series"},
		loadNames(t, db, `SELECT mf.name || '/' || m.name FROM models m
			JOIN manufacturers mf ON mf.id = m.manufacturer_id ORDER BY m.id`))

	cars := loadCars(t, db)
	require.Len(t, cars, len(SeedCars))
	for i, want := range SeedCars {
		got := cars[i]
		assert.Equal(t, int64(i+1), got.ID)
		assert.Equal(t, int64(i+1), got.ModelID, "car %d model", i+1)
		assert.Equal(t, want.Year, got.Year)
		assert.Equal(t, want.Price, got.Price)
		assert.Equal(t, sql.NullString{String: want.Color, Valid: true}, got.Color)
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first, err := Initialize(ctx, db, sqliteDialect)
	require.NoError(t, err)
	before := loadCars(t, db)

	// extra rows must not survive a reset
	_, err = db.Exec("INSERT INTO cars (model_id, year, price, color) VALUES (1, 1999, 1000, NULL)")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := Initialize(ctx, db, sqliteDialect)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, before, loadCars(t, db))
}

func TestSeedSkipsDuplicateManufacturers(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, ResetSchema(ctx, db, sqliteDialect))
	_, err := db.Exec("INSERT INTO manufacturers (name) VALUES ('Tesla')")
	require.NoError(t, err)

	summary, err := Seed(ctx, db, sqliteDialect)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Manufacturers)
	assert.Equal(t, []string{"Tesla", "Toyota", "BMW"},
		loadNames(t, db, "SELECT name FROM manufacturers ORDER BY id"))
}

func TestResetSchemaOnFreshFile(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, ResetSchema(context.Background(), db, sqliteDialect))
	assert.Empty(t, loadCars(t, db))
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	_, err := Initialize(ctx, db, sqliteDialect)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO cars (model_id, year, price) VALUES (999, 2024, 1)")
	assert.Error(t, err)
	_, err = db.Exec("INSERT INTO models (name, manufacturer_id) VALUES ('Ghost', 999)")
	assert.Error(t, err)
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("mysql")
	require.NoError(t, err)
	assert.Equal(t, "INSERT IGNORE", d.InsertIgnore)

	d, err = DialectFor("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, d.Driver)

	_, err = DialectFor("oracle")
	assert.Error(t, err)
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "  ")
	assert.Error(t, err)
}
