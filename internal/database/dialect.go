package database

import "fmt"

// Supported drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Dialect holds the statements that differ between the supported stores.
type Dialect struct {
	Driver string

	CreateManufacturers string
	CreateModels        string
	CreateCars          string

	// InsertIgnore is the insert verb that skips rows violating a unique
	// constraint instead of failing.
	InsertIgnore string
}

var sqliteDialect = Dialect{
	Driver: DriverSQLite,
	CreateManufacturers: `CREATE TABLE manufacturers (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	CreateModels: `CREATE TABLE models (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL,
		manufacturer_id INTEGER NOT NULL,
		FOREIGN KEY (manufacturer_id) REFERENCES manufacturers (id)
	)`,
	CreateCars: `CREATE TABLE cars (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		model_id INTEGER NOT NULL,
		year     INTEGER NOT NULL,
		price    REAL NOT NULL,
		color    TEXT,
		FOREIGN KEY (model_id) REFERENCES models (id)
	)`,
	InsertIgnore: "INSERT OR IGNORE",
}

var mysqlDialect = Dialect{
	Driver: DriverMySQL,
	CreateManufacturers: `CREATE TABLE manufacturers (
		id   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(191) NOT NULL,
		UNIQUE KEY uq_manufacturers_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	CreateModels: `CREATE TABLE models (
		id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name            VARCHAR(191) NOT NULL,
		manufacturer_id BIGINT UNSIGNED NOT NULL,
		CONSTRAINT fk_models_manufacturer FOREIGN KEY (manufacturer_id) REFERENCES manufacturers (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	CreateCars: `CREATE TABLE cars (
		id       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		model_id BIGINT UNSIGNED NOT NULL,
		year     INT NOT NULL,
		price    DECIMAL(12,2) NOT NULL,
		color    VARCHAR(64) NULL,
		CONSTRAINT fk_cars_model FOREIGN KEY (model_id) REFERENCES models (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	InsertIgnore: "INSERT IGNORE",
}

// DialectFor returns the dialect registered for driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverSQLite, "":
		return sqliteDialect, nil
	case DriverMySQL:
		return mysqlDialect, nil
	}
	return Dialect{}, fmt.Errorf("unsupported driver %q", driver)
}
