// Package handler exposes the HTTP handlers of the public catalog API.
// All routes are read-only and unauthenticated.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/car-catalog/internal/model"
	"github.com/iliyamo/car-catalog/internal/repository"
)

// CarLister is the query the car listing depends on.
type CarLister interface {
	ListRecords(ctx context.Context) ([]model.CarRecord, error)
}

// CatalogHandler aggregates the repositories behind the catalog routes.
type CatalogHandler struct {
	Cars          CarLister
	Manufacturers *repository.ManufacturerRepo
	Models        *repository.ModelRepo
	Logger        *zap.Logger
}

// NewCatalogHandler constructs a CatalogHandler and panics if any dependency is nil.
func NewCatalogHandler(cars CarLister, manufacturers *repository.ManufacturerRepo, models *repository.ModelRepo, logger *zap.Logger) *CatalogHandler {
	if cars == nil || manufacturers == nil || models == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{Cars: cars, Manufacturers: manufacturers, Models: models, Logger: logger}
}

// PublicModel is a model as listed under its manufacturer.
type PublicModel struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ListCars returns every car as a flat record.  The body is always a JSON
// array, empty when there are no cars.
func (h *CatalogHandler) ListCars(c echo.Context) error {
	recs, err := h.Cars.ListRecords(c.Request().Context())
	if err != nil {
		h.Logger.Error("list cars", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if recs == nil {
		recs = []model.CarRecord{}
	}
	return c.JSON(http.StatusOK, recs)
}

// ListManufacturers returns all manufacturers under an "items" key.
func (h *CatalogHandler) ListManufacturers(c echo.Context) error {
	list, err := h.Manufacturers.ListAll(c.Request().Context())
	if err != nil {
		h.Logger.Error("list manufacturers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]model.Manufacturer, 0, len(list))
	for _, m := range list {
		out = append(out, *m)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListModelsByManufacturer lists the models of one manufacturer.  It
// validates the manufacturer exists so that an unknown id is a 404
// rather than an empty list.
func (h *CatalogHandler) ListModelsByManufacturer(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.Manufacturers.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrManufacturerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "manufacturer not found"})
		}
		h.Logger.Error("get manufacturer", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	models, err := h.Models.ListByManufacturer(ctx, id)
	if err != nil {
		h.Logger.Error("list models", zap.Uint64("manufacturer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicModel, 0, len(models))
	for _, m := range models {
		out = append(out, PublicModel{ID: m.ID, Name: m.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
