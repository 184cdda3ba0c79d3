package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/car-catalog/internal/model"
)

// ModelRepo reads the models table.
type ModelRepo struct {
	db *sql.DB
}

// NewModelRepo constructs a ModelRepo with the provided DB handle.
func NewModelRepo(db *sql.DB) *ModelRepo {
	return &ModelRepo{db: db}
}

// ListByManufacturer returns the models of one manufacturer ordered by id.
// An unknown manufacturer yields an empty slice; callers check existence
// through ManufacturerRepo.GetByID.
func (r *ModelRepo) ListByManufacturer(ctx context.Context, manufacturerID uint64) ([]*model.Model, error) {
	const q = `SELECT id, name, manufacturer_id
	           FROM models WHERE manufacturer_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, manufacturerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Model
	for rows.Next() {
		m := new(model.Model)
		if err := rows.Scan(&m.ID, &m.Name, &m.ManufacturerID); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
