// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish a missing row from a storage failure.
package repository

import "errors"

// ErrManufacturerNotFound is returned when a manufacturer cannot be found.
// Handlers should translate this into an HTTP 404 response.
var ErrManufacturerNotFound = errors.New("manufacturer not found")
