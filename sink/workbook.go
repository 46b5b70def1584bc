package sink

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/orayew2002/rast-words/domain"
	"github.com/orayew2002/rast-words/excel"
	"github.com/remiges-tech/logharbour/logharbour"
	"github.com/xuri/excelize/v2"
)

// columnWidths for the number and words columns.
var columnWidths = []float64{10, 70}

// Workbook writes rows into a local .xlsx file. An existing file is updated
// in place, keeping its other sheets and cells.
type Workbook struct {
	Path   string
	logger *logharbour.Logger
}

// NewWorkbook creates a Workbook sink for path.
func NewWorkbook(path string, logger *logharbour.Logger) *Workbook {
	return &Workbook{Path: path, logger: logger.WithModule("workbook")}
}

// Persist writes rows into rng and saves the file.
func (w *Workbook) Persist(ctx context.Context, rng Range, rows []domain.Row) error {
	if err := rng.Validate(rows); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return unavailable("persist workbook", err)
	}

	f, err := openOrCreate(w.Path)
	if err != nil {
		return unavailable("persist workbook", err)
	}
	defer f.Close()

	if err := fill(f, rng, rows); err != nil {
		return unavailable("persist workbook", err)
	}

	if err := f.SaveAs(w.Path); err != nil {
		return unavailable("persist workbook", fmt.Errorf("save %s: %w", w.Path, err))
	}

	w.logger.Info().LogActivity("Workbook updated", map[string]any{
		"path":    w.Path,
		"range":   rng.A1(),
		"entries": len(rows),
	})
	return nil
}

// Render builds a new workbook containing rows at rng and returns it as bytes.
func Render(rng Range, rows []domain.Row) ([]byte, error) {
	if err := rng.Validate(rows); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := fill(f, rng, rows); err != nil {
		return nil, err
	}

	// A fresh file always carries "Sheet1"; drop it unless it is the target.
	if rng.Sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("delete default sheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write to buffer: %w", err)
	}

	return buf.Bytes(), nil
}

func openOrCreate(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return excelize.NewFile(), nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func fill(f *excelize.File, rng Range, rows []domain.Row) error {
	idx, err := f.GetSheetIndex(rng.Sheet)
	if err != nil {
		return fmt.Errorf("sheet %q: %w", rng.Sheet, err)
	}
	if idx == -1 {
		if idx, err = f.NewSheet(rng.Sheet); err != nil {
			return fmt.Errorf("new sheet %q: %w", rng.Sheet, err)
		}
	}
	f.SetActiveSheet(idx)

	if err := writeRows(f, rng, rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}

	if err := autoFitColumns(f, rng.Sheet); err != nil {
		return fmt.Errorf("auto fit columns: %w", err)
	}

	return nil
}

func writeRows(f *excelize.File, rng Range, rows []domain.Row) error {
	sm := excel.NewStyleManager(f)

	numberStyle, err := sm.Number()
	if err != nil {
		return fmt.Errorf("number style: %w", err)
	}
	wordsStyle, err := sm.Words()
	if err != nil {
		return fmt.Errorf("words style: %w", err)
	}

	for i, r := range rows {
		row := rng.Start - 1 + i

		numCell := excel.CellName(row, 0)
		if err := f.SetCellInt(rng.Sheet, numCell, int64(r.Number)); err != nil {
			return fmt.Errorf("number %d: %w", r.Number, err)
		}

		wordsCell := excel.CellName(row, 1)
		if err := f.SetCellStr(rng.Sheet, wordsCell, r.Words); err != nil {
			return fmt.Errorf("words %d: %w", r.Number, err)
		}

		if err := f.SetCellStyle(rng.Sheet, numCell, numCell, numberStyle); err != nil {
			return fmt.Errorf("number style %d: %w", r.Number, err)
		}
		if err := f.SetCellStyle(rng.Sheet, wordsCell, wordsCell, wordsStyle); err != nil {
			return fmt.Errorf("words style %d: %w", r.Number, err)
		}
	}

	return nil
}

func autoFitColumns(f *excelize.File, sheet string) error {
	for col, w := range columnWidths {
		colName := excel.IndexToColumn(col)
		if err := f.SetColWidth(sheet, colName, colName, w); err != nil {
			return err
		}
	}
	return nil
}
