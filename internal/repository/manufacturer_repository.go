package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/car-catalog/internal/model"
)

// ManufacturerRepo reads the manufacturers table.
type ManufacturerRepo struct {
	db *sql.DB
}

// NewManufacturerRepo constructs a ManufacturerRepo with the provided DB handle.
func NewManufacturerRepo(db *sql.DB) *ManufacturerRepo {
	return &ManufacturerRepo{db: db}
}

// GetByID fetches a manufacturer by its ID.  It returns
// ErrManufacturerNotFound if no row is found.
func (r *ManufacturerRepo) GetByID(ctx context.Context, id uint64) (*model.Manufacturer, error) {
	const q = "SELECT id, name FROM manufacturers WHERE id = ?"
	var m model.Manufacturer
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrManufacturerNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListAll returns all manufacturers ordered by id.
func (r *ManufacturerRepo) ListAll(ctx context.Context) ([]*model.Manufacturer, error) {
	const q = `SELECT id, name FROM manufacturers ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Manufacturer
	for rows.Next() {
		m := &model.Manufacturer{}
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
