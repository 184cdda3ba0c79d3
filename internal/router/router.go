package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/car-catalog/internal/handler"
)

// RegisterRoutes registers the read-only catalog API on the provided Echo
// instance.  None of these routes require authentication.
func RegisterRoutes(e *echo.Echo, health echo.HandlerFunc, h *handler.CatalogHandler) {
	// liveness for load balancers and the viewer's own startup wait
	e.GET("/healthz", health)

	// flat manufacturer→model→car records, always a JSON array
	e.GET("/cars", h.ListCars)

	e.GET("/manufacturers", h.ListManufacturers)
	e.GET("/manufacturers/:id/models", h.ListModelsByManufacturer)
}
