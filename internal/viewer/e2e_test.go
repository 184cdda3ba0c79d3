package viewer_test

import (
	"context"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/car-catalog/internal/handler"
	"github.com/iliyamo/car-catalog/internal/repository"
	"github.com/iliyamo/car-catalog/internal/router"
	"github.com/iliyamo/car-catalog/internal/server"
	"github.com/iliyamo/car-catalog/internal/testutil"
	"github.com/iliyamo/car-catalog/internal/viewer"
)

func TestViewerAgainstLiveServer(t *testing.T) {
	db := testutil.SeededDB(t)
	catalog := handler.NewCatalogHandler(repository.NewCarRepo(db), repository.NewManufacturerRepo(db), repository.NewModelRepo(db), nil)
	srv := server.New("127.0.0.1:0", nil, func(e *echo.Echo) { router.RegisterRoutes(e, handler.Health(db), catalog) })
	require.NoError(t, srv.Start())

	ctx := context.Background()
	ctrl := viewer.NewController(viewer.NewClient("http://"+srv.Addr()+"/cars", 2*time.Second))

	require.NoError(t, ctrl.Refresh(ctx))
	s := ctrl.Snapshot()
	require.Len(t, s.Rows, 6)
	assert.Equal(t, viewer.StatePopulated, s.State)
	assert.Equal(t, "Tesla", s.Rows[2].Manufacturer)
	assert.Equal(t, "Model S", s.Rows[2].Model)
	assert.Equal(t, 2022, s.Rows[2].Year)
	assert.Equal(t, 50000.0, s.Rows[2].Price)
	assert.Equal(t, "White", s.Rows[2].ColorOr(""))

	// rows written straight to storage show up on the next fetch
	red := "Red"
	id := testutil.InsertCar(t, db, 6, 2025, 52000, &red)
	require.NoError(t, ctrl.Refresh(ctx))
	s = ctrl.Snapshot()
	require.Len(t, s.Rows, 7)
	last := s.Rows[6]
	assert.Equal(t, id, last.ID)
	assert.Equal(t, "BMW", last.Manufacturer)
	assert.Equal(t, "5 Series", last.Model)
	assert.Equal(t, 52000.0, last.Price)

	// once the listener is gone the table stays and the error is shown
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(shutdownCtx))

	require.Error(t, ctrl.Refresh(ctx))
	s = ctrl.Snapshot()
	assert.Equal(t, viewer.StateError, s.State)
	assert.Len(t, s.Rows, 7)
	assert.NotEmpty(t, s.ErrorText)
}
