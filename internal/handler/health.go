package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether the store is reachable.  *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health returns a liveness handler answering "ok" while the store
// responds and 503 otherwise.  A nil pinger only reports the process as up.
func Health(db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if db != nil {
			if err := db.PingContext(c.Request().Context()); err != nil {
				return c.String(http.StatusServiceUnavailable, "storage unavailable")
			}
		}
		return c.String(http.StatusOK, "ok")
	}
}
