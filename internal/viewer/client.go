// Package viewer fetches the car listing from the catalog API and keeps
// the state a table view renders: the rows, the last error and which of
// Empty, Populated or Error the display is in.
package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iliyamo/car-catalog/internal/model"
)

var (
	// ErrUnexpectedStatus wraps any non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrMalformedPayload wraps a body that is not an array of car records.
	ErrMalformedPayload = errors.New("malformed payload")
)

// Client issues GET requests to the car listing URL.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient returns a client for url.  A zero timeout means the request
// blocks until the server answers or the connection fails.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{url: url, httpClient: &http.Client{Timeout: timeout}}
}

// wireRecord mirrors model.CarRecord with pointers so absent fields can be
// told apart from zero values.
type wireRecord struct {
	ID           *uint64  `json:"id"`
	Manufacturer *string  `json:"manufacturer"`
	Model        *string  `json:"model"`
	Year         *int     `json:"year"`
	Price        *float64 `json:"price"`
	Color        *string  `json:"color"`
}

func (w wireRecord) record(i int) (model.CarRecord, error) {
	missing := ""
	switch {
	case w.ID == nil:
		missing = "id"
	case w.Manufacturer == nil:
		missing = "manufacturer"
	case w.Model == nil:
		missing = "model"
	case w.Year == nil:
		missing = "year"
	case w.Price == nil:
		missing = "price"
	}
	if missing != "" {
		return model.CarRecord{}, fmt.Errorf("%w: record %d has no %s", ErrMalformedPayload, i, missing)
	}
	return model.CarRecord{
		ID:           *w.ID,
		Manufacturer: *w.Manufacturer,
		Model:        *w.Model,
		Year:         *w.Year,
		Price:        *w.Price,
		Color:        w.Color,
	}, nil
}

// FetchCars performs one synchronous request and decodes the response.
func (c *Client) FetchCars(ctx context.Context) ([]model.CarRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	return decodeRecords(resp.Body)
}

func decodeRecords(r io.Reader) ([]model.CarRecord, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var wire []wireRecord
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if wire == nil {
		return nil, fmt.Errorf("%w: expected an array", ErrMalformedPayload)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after array", ErrMalformedPayload)
	}

	out := make([]model.CarRecord, 0, len(wire))
	for i, w := range wire {
		rec, err := w.record(i)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
