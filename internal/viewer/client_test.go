package viewer

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/car-catalog/internal/model"
)

func serveBody(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchCarsDecodesRecords(t *testing.T) {
	srv := serveBody(t, http.StatusOK, `[
		{"id":3,"manufacturer":"Tesla","model":"Model S","year":2022,"price":50000,"color":"White"},
		{"id":7,"manufacturer":"BMW","model":"5 Series","year":2024,"price":61000.5,"color":null}
	]`)

	recs, err := NewClient(srv.URL, 0).FetchCars(context.Background())
	require.NoError(t, err)
	white := "White"
	assert.Equal(t, []model.CarRecord{
		{ID: 3, Manufacturer: "Tesla", Model: "Model S", Year: 2022, Price: 50000, Color: &white},
		{ID: 7, Manufacturer: "BMW", Model: "5 Series", Year: 2024, Price: 61000.5},
	}, recs)
}

func TestFetchCarsEmptyArray(t *testing.T) {
	srv := serveBody(t, http.StatusOK, `[]`)

	recs, err := NewClient(srv.URL, 0).FetchCars(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestFetchCarsRejectsMalformedPayloads(t *testing.T) {
	cases := map[string]string{
		"object":        `{"items":[]}`,
		"null":          `null`,
		"not json":      `<html>oops</html>`,
		"unknown field": `[{"id":1,"manufacturer":"BMW","model":"3 Series","year":2019,"price":1,"color":null,"vin":"x"}]`,
		"missing price": `[{"id":1,"manufacturer":"BMW","model":"3 Series","year":2019,"color":null}]`,
		"missing id":    `[{"manufacturer":"BMW","model":"3 Series","year":2019,"price":1}]`,
		"wrong type":    `[{"id":"one","manufacturer":"BMW","model":"3 Series","year":2019,"price":1}]`,
		"trailing":      `[] []`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := serveBody(t, http.StatusOK, body)
			_, err := NewClient(srv.URL, 0).FetchCars(context.Background())
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestFetchCarsErrorStatus(t *testing.T) {
	srv := serveBody(t, http.StatusInternalServerError, `{"error":"database error"}`)

	_, err := NewClient(srv.URL, 0).FetchCars(context.Background())
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchCarsConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = NewClient("http://"+addr+"/cars", time.Second).FetchCars(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "refused") || strings.Contains(err.Error(), "connect"), err.Error())
}
