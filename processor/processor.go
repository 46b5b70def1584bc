package processor

import (
	"bytes"
	"fmt"

	"github.com/orayew2002/rast-words/excel"
	"github.com/orayew2002/rast-words/template"
	"github.com/remiges-tech/logharbour/logharbour"
	"github.com/xuri/excelize/v2"
)

// Processor expands template placeholders across every sheet of a workbook.
type Processor struct {
	registry *template.Registry
	logger   *logharbour.Logger
	expanded int
}

// New creates a Processor with the given template registry.
func New(registry *template.Registry, logger *logharbour.Logger) *Processor {
	return &Processor{registry: registry, logger: logger.WithModule("processor")}
}

// Expanded reports how many placeholder cells were handled so far.
func (p *Processor) Expanded() int {
	return p.expanded
}

// ProcessFile opens input, processes all sheets, saves the result to output,
// and returns the resulting file as bytes.
func (p *Processor) ProcessFile(input, output string) ([]byte, error) {
	f, err := excelize.OpenFile(input)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", input, err)
	}
	defer f.Close()

	if err := p.processFile(f); err != nil {
		return nil, err
	}

	if err := f.SaveAs(output); err != nil {
		return nil, fmt.Errorf("save %s: %w", output, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write to buffer: %w", err)
	}

	return buf.Bytes(), nil
}

// ProcessBytes reads a workbook from raw bytes, processes all sheets,
// and returns the resulting file as bytes.
func (p *Processor) ProcessBytes(data []byte) ([]byte, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open from bytes: %w", err)
	}
	defer f.Close()

	if err := p.processFile(f); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write to buffer: %w", err)
	}

	return buf.Bytes(), nil
}

func (p *Processor) processFile(f *excelize.File) error {
	for _, sheet := range f.GetSheetList() {
		if err := p.processSheet(f, sheet); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}
	}
	return nil
}

// processSheet walks a snapshot of the sheet taken before any handler runs,
// so rows inserted by a handler are never revisited. Snapshot rows below an
// expansion are addressed through the running offset of the rows it added.
func (p *Processor) processSheet(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("get rows: %w", err)
	}

	offset := 0
	for row := range rows {
		for col := range rows[row] {
			value := rows[row][col]
			if value == "" {
				continue
			}

			at := row + offset
			cell := excel.CellName(at, col)
			placeholder, change, err := p.registry.Process(f, sheet, at, col, value)
			if err != nil {
				return fmt.Errorf("cell %s: %w", cell, err)
			}
			if placeholder == "" {
				continue
			}

			p.expanded++
			p.logger.Debug0().LogActivity("Placeholder expanded", map[string]any{
				"sheet":       sheet,
				"cell":        cell,
				"placeholder": placeholder,
				"shift":       change.Shift(),
			})

			offset += change.Shift()
			if change.Replaced {
				// the rest of this template row went with it
				break
			}
		}
	}

	return nil
}
