package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/orayew2002/rast-words/domain"
	"github.com/remiges-tech/logharbour/logharbour"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// sampleSize is how many written rows are echoed to the log after an update.
const sampleSize = 5

// GoogleSheets writes rows into a Google spreadsheet through the Sheets v4 API.
type GoogleSheets struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	logger        *logharbour.Logger
}

// NewGoogleSheets creates a Sheets client for spreadsheetID. Callers pass the
// authentication options, typically option.WithCredentialsFile.
func NewGoogleSheets(ctx context.Context, spreadsheetID string, logger *logharbour.Logger, opts ...option.ClientOption) (*GoogleSheets, error) {
	if spreadsheetID == "" {
		return nil, unavailable("connect sheets", errors.New("spreadsheet id is empty"))
	}

	opts = append([]option.ClientOption{option.WithScopes(sheetsv4.SpreadsheetsScope)}, opts...)
	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, unavailable("connect sheets", err)
	}

	return &GoogleSheets{
		srv:           srv,
		spreadsheetID: spreadsheetID,
		logger:        logger.WithModule("gsheets"),
	}, nil
}

// SpreadsheetID returns the target spreadsheet.
func (g *GoogleSheets) SpreadsheetID() string { return g.spreadsheetID }

// Persist writes rows as RAW values into rng.
func (g *GoogleSheets) Persist(ctx context.Context, rng Range, rows []domain.Row) error {
	if err := rng.Validate(rows); err != nil {
		return err
	}

	g.logger.Debug0().LogActivity("Updating spreadsheet", map[string]any{
		"spreadsheet_id": g.spreadsheetID,
		"range":          rng.A1(),
	})

	vr := &sheetsv4.ValueRange{
		Range:          rng.A1(),
		MajorDimension: "ROWS",
		Values:         values(rows),
	}

	resp, err := g.srv.Spreadsheets.Values.Update(g.spreadsheetID, rng.A1(), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		g.logger.Error(err).LogActivity("Error updating spreadsheet", map[string]any{
			"spreadsheet_id": g.spreadsheetID,
			"range":          rng.A1(),
		})
		return unavailable("update values", err)
	}

	sample := make([]string, 0, sampleSize)
	for _, r := range rows[:min(sampleSize, len(rows))] {
		sample = append(sample, fmt.Sprintf("%d: %s", r.Number, r.Words))
	}

	g.logger.Info().LogActivity("Spreadsheet updated", map[string]any{
		"spreadsheet_id": g.spreadsheetID,
		"range":          resp.UpdatedRange,
		"entries":        len(rows),
		"updated_rows":   resp.UpdatedRows,
		"sample":         sample,
	})
	return nil
}

// Clear empties the values in rng, leaving formatting untouched.
func (g *GoogleSheets) Clear(ctx context.Context, rng string) error {
	_, err := g.srv.Spreadsheets.Values.Clear(g.spreadsheetID, rng, &sheetsv4.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return unavailable("clear values", err)
	}

	g.logger.Info().LogActivity("Cleared range", map[string]any{"range": rng})
	return nil
}

// Info fetches the spreadsheet metadata.
func (g *GoogleSheets) Info(ctx context.Context) (*sheetsv4.Spreadsheet, error) {
	s, err := g.srv.Spreadsheets.Get(g.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, unavailable("get spreadsheet", err)
	}
	return s, nil
}

// Ping reports whether the spreadsheet can be reached with the configured credentials.
func (g *GoogleSheets) Ping(ctx context.Context) error {
	s, err := g.Info(ctx)
	if err != nil {
		g.logger.Warn().LogActivity("Google Sheets API connection failed", map[string]any{"error": err.Error()})
		return err
	}

	title := ""
	if s.Properties != nil {
		title = s.Properties.Title
	}
	g.logger.Info().LogActivity("Google Sheets API connection successful", map[string]any{"title": title})
	return nil
}
