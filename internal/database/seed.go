package database

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedModel names a model and the manufacturer that owns it.
type SeedModel struct {
	Name         string
	Manufacturer string
}

// SeedCar is one car of the reference data, bound to its model by name.
type SeedCar struct {
	Model string
	Year  int
	Price float64
	Color string
}

// SeedSummary counts the rows each seed step inserted.
type SeedSummary struct {
	Manufacturers int64
	Models        int64
	Cars          int64
}

// Reference data loaded on every start.  Insertion order fixes the ids.
var (
	SeedManufacturers = []string{"Toyota", "BMW", "Tesla"}

	SeedModels = []SeedModel{
		{Name: "Corolla", Manufacturer: "Toyota"},
		{Name: "Camry", Manufacturer: "Toyota"},
		{Name: "Model S", Manufacturer: "Tesla"},
		{Name: "Model 3", Manufacturer: "Tesla"},
		{Name: "3 Series", Manufacturer: "BMW"},
		{Name: "5 Series", Manufacturer: "BMW"},
	}

	SeedCars = []SeedCar{
		{Model: "Corolla", Year: 2020, Price: 20000, Color: "Red"},
		{Model: "Camry", Year: 2021, Price: 25000, Color: "Blue"},
		{Model: "Model S", Year: 2022, Price: 50000, Color: "White"},
		{Model: "Model 3", Year: 2023, Price: 45000, Color: "Black"},
		{Model: "3 Series", Year: 2019, Price: 30000, Color: "Silver"},
		{Model: "5 Series", Year: 2020, Price: 35000, Color: "Gray"},
	}
)

// Seed inserts the reference data in a single transaction.  Rows that
// would violate a unique constraint are skipped.  Models and cars look up
// their parent by name, so a missing parent inserts nothing.
func Seed(ctx context.Context, db *sql.DB, d Dialect) (summary SeedSummary, err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return SeedSummary{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if summary.Manufacturers, err = seedManufacturers(ctx, tx, d); err != nil {
		return SeedSummary{}, fmt.Errorf("seed manufacturers: %w", err)
	}
	if summary.Models, err = seedModels(ctx, tx, d); err != nil {
		return SeedSummary{}, fmt.Errorf("seed models: %w", err)
	}
	if summary.Cars, err = seedCars(ctx, tx, d); err != nil {
		return SeedSummary{}, fmt.Errorf("seed cars: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return SeedSummary{}, fmt.Errorf("commit seed: %w", err)
	}
	return summary, nil
}

func seedManufacturers(ctx context.Context, tx *sql.Tx, d Dialect) (int64, error) {
	q := d.InsertIgnore + " INTO manufacturers (name) VALUES (?)"
	var n int64
	for _, name := range SeedManufacturers {
		res, err := tx.ExecContext(ctx, q, name)
		if err != nil {
			return n, err
		}
		n += affected(res)
	}
	return n, nil
}

func seedModels(ctx context.Context, tx *sql.Tx, d Dialect) (int64, error) {
	q := d.InsertIgnore + ` INTO models (name, manufacturer_id)
		SELECT ?, id FROM manufacturers WHERE name = ?`
	var n int64
	for _, m := range SeedModels {
		res, err := tx.ExecContext(ctx, q, m.Name, m.Manufacturer)
		if err != nil {
			return n, err
		}
		n += affected(res)
	}
	return n, nil
}

func seedCars(ctx context.Context, tx *sql.Tx, d Dialect) (int64, error) {
	q := d.InsertIgnore + ` INTO cars (model_id, year, price, color)
		SELECT id, ?, ?, ? FROM models WHERE name = ?`
	var n int64
	for _, c := range SeedCars {
		color := sql.NullString{String: c.Color, Valid: c.Color != ""}
		res, err := tx.ExecContext(ctx, q, c.Year, c.Price, color, c.Model)
		if err != nil {
			return n, err
		}
		n += affected(res)
	}
	return n, nil
}

func affected(res sql.Result) int64 {
	n, _ := res.RowsAffected()
	return n
}
