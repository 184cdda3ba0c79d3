package viewer

import (
	"context"
	"sync"

	"github.com/iliyamo/car-catalog/internal/model"
)

// State is what the display currently shows.
type State int

const (
	StateEmpty State = iota
	StatePopulated
	StateError
)

func (s State) String() string {
	switch s {
	case StatePopulated:
		return "populated"
	case StateError:
		return "error"
	default:
		return "empty"
	}
}

// Fetcher returns the current car listing.  *Client implements it.
type Fetcher interface {
	FetchCars(ctx context.Context) ([]model.CarRecord, error)
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	State     State
	Rows      []model.CarRecord
	ErrorText string
}

// Controller owns the viewer state.  A failed refresh keeps the rows that
// were already shown and only replaces the error text.
type Controller struct {
	fetcher Fetcher

	mu      sync.Mutex
	state   State
	rows    []model.CarRecord
	errText string
}

// NewController returns a controller in the Empty state.
func NewController(f Fetcher) *Controller {
	return &Controller{fetcher: f}
}

// Refresh fetches once and applies the result.  The returned error is the
// fetch failure, already reflected in the error text.
func (c *Controller) Refresh(ctx context.Context) error {
	rows, err := c.fetcher.FetchCars(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateError
		c.errText = "Error: " + err.Error()
		return err
	}
	c.rows = append(c.rows[:0:0], rows...)
	c.errText = ""
	c.state = StatePopulated
	return nil
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:     c.state,
		Rows:      append([]model.CarRecord(nil), c.rows...),
		ErrorText: c.errText,
	}
}
