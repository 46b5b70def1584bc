package sink

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/orayew2002/rast-words/domain"
	"github.com/orayew2002/rast-words/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

func newTestSheets(t *testing.T, h http.HandlerFunc) *GoogleSheets {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	g, err := NewGoogleSheets(context.Background(), "sheet-123", logger.New(io.Discard, true),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return g
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func forbidden(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusForbidden, map[string]any{
		"error": map[string]any{
			"code":    403,
			"message": "The caller does not have permission",
			"status":  "PERMISSION_DENIED",
		},
	})
}

func TestGoogleSheetsPersist(t *testing.T) {
	var (
		method string
		path   string
		input  string
		body   sheetsv4.ValueRange
	)

	g := newTestSheets(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		input = r.URL.Query().Get("valueInputOption")
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"spreadsheetId": "sheet-123",
			"updatedRange":  "Sheet1!A1:B3",
			"updatedRows":   3,
		})
	})

	rows := domain.Rows(1, 3)
	err := g.Persist(context.Background(), Range{Sheet: "Sheet1", Start: 1, End: 3}, rows)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, method)
	assert.True(t, strings.HasPrefix(path, "/v4/spreadsheets/sheet-123/values/"), path)
	assert.Contains(t, path, "A1:B3")
	assert.Equal(t, "RAW", input)
	assert.Equal(t, "ROWS", body.MajorDimension)
	assert.Equal(t, [][]any{
		{float64(1), "one"},
		{float64(2), "two"},
		{float64(3), "three"},
	}, body.Values)
}

func TestGoogleSheetsPersistForbidden(t *testing.T) {
	g := newTestSheets(t, forbidden)

	err := g.Persist(context.Background(), Range{Sheet: "Sheet1", Start: 1, End: 2}, domain.Rows(1, 2))
	require.ErrorIs(t, err, ErrUnavailable)

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Code)
}

func TestGoogleSheetsPersistInvalidRangeSkipsRequest(t *testing.T) {
	called := false
	g := newTestSheets(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	err := g.Persist(context.Background(), Range{Sheet: "Sheet1", Start: 0, End: 1}, domain.Rows(0, 1))
	require.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, called)
}

func TestGoogleSheetsClear(t *testing.T) {
	var method, path string
	g := newTestSheets(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		writeJSON(w, http.StatusOK, map[string]any{"spreadsheetId": "sheet-123", "clearedRange": "Sheet1!A1:B100"})
	})

	require.NoError(t, g.Clear(context.Background(), "'Sheet1'!A1:B100"))
	assert.Equal(t, http.MethodPost, method)
	assert.True(t, strings.HasSuffix(path, ":clear"), path)
}

func TestGoogleSheetsPing(t *testing.T) {
	g := newTestSheets(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(w, http.StatusOK, map[string]any{
			"spreadsheetId": "sheet-123",
			"properties":    map[string]any{"title": "Counting"},
		})
	})

	require.NoError(t, g.Ping(context.Background()))

	info, err := g.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Counting", info.Properties.Title)
}

func TestGoogleSheetsPingForbidden(t *testing.T) {
	g := newTestSheets(t, forbidden)
	assert.ErrorIs(t, g.Ping(context.Background()), ErrUnavailable)
}

func TestNewGoogleSheetsRequiresID(t *testing.T) {
	_, err := NewGoogleSheets(context.Background(), "", logger.New(io.Discard, false))
	assert.ErrorIs(t, err, ErrUnavailable)
}
