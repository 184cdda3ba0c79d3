package model

// Model is a named product line belonging to exactly one Manufacturer.
// It corresponds to a row in the `models` table.
type Model struct {
    ID             uint64 // models.id
    Name           string // models.name
    ManufacturerID uint64 // models.manufacturer_id
}
