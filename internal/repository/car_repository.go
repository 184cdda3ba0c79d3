// Package repository contains data access logic separated from HTTP handlers.
// This file holds the catalog join that flattens manufacturers, models and
// cars into one record per car.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers

	"github.com/iliyamo/car-catalog/internal/model"
)

// CarRepo encapsulates the read-only car queries.  It depends on a sql.DB
// pool configured elsewhere; each query borrows one connection and returns
// it when the rows are closed.
type CarRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewCarRepo constructs a CarRepo with the provided DB handle.
func NewCarRepo(db *sql.DB) *CarRepo {
	return &CarRepo{db: db}
}

// ListRecords joins cars to their model and manufacturer and returns one
// flat record per car ordered by car id.  Cars whose chain is broken are
// excluded by the inner joins.  The result is never nil.
func (r *CarRepo) ListRecords(ctx context.Context) ([]model.CarRecord, error) {
	const q = `SELECT
			c.id,
			mf.name AS manufacturer,
			m.name  AS model,
			c.year,
			c.price,
			c.color
		FROM cars c
		JOIN models m         ON m.id = c.model_id
		JOIN manufacturers mf ON mf.id = m.manufacturer_id
		ORDER BY c.id`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.CarRecord, 0)
	for rows.Next() {
		var (
			rec   model.CarRecord
			color sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Manufacturer, &rec.Model, &rec.Year, &rec.Price, &color); err != nil {
			return nil, err
		}
		if color.Valid {
			v := color.String
			rec.Color = &v
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
