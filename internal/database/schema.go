// Package database opens the relational store and owns its schema and
// reference data.  The store is reset wholesale on every start: tables are
// dropped, recreated and reseeded, so prior contents never survive a
// restart.  This is a demo reset, not a migration.
package database

import (
	"context"
	"database/sql"
	"fmt"
)

// dropOrder lists tables children first so foreign keys never block a drop.
var dropOrder = []string{"cars", "models", "manufacturers"}

// ResetSchema drops the catalog tables (ignoring absence) and recreates
// them empty.
func ResetSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	for _, table := range dropOrder {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	creates := []struct {
		table string
		ddl   string
	}{
		{"manufacturers", d.CreateManufacturers},
		{"models", d.CreateModels},
		{"cars", d.CreateCars},
	}
	for _, c := range creates {
		if _, err := db.ExecContext(ctx, c.ddl); err != nil {
			return fmt.Errorf("create %s: %w", c.table, err)
		}
	}
	return nil
}

// Initialize resets the schema and loads the reference data.  Any error
// is fatal to the caller.
func Initialize(ctx context.Context, db *sql.DB, d Dialect) (SeedSummary, error) {
	if err := ResetSchema(ctx, db, d); err != nil {
		return SeedSummary{}, fmt.Errorf("reset schema: %w", err)
	}
	summary, err := Seed(ctx, db, d)
	if err != nil {
		return SeedSummary{}, fmt.Errorf("seed: %w", err)
	}
	return summary, nil
}
