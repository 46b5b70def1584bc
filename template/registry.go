package template

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Change describes what a handler did to the rows of its sheet.
// The zero value means the cell was edited in place.
type Change struct {
	// Replaced is set when the cell's row was removed from the sheet.
	Replaced bool
	// Inserted is the number of rows written where the removed row was.
	Inserted int
}

// Shift is how far rows below the handled cell moved down (negative: up).
func (c Change) Shift() int {
	if !c.Replaced {
		return 0
	}
	return c.Inserted - 1
}

// HandlerFunc expands a placeholder found in a cell.
// It receives the file, sheet name, 0-based row/col indices, and the raw cell value,
// and reports how the sheet layout changed.
type HandlerFunc func(f *excelize.File, sheet string, row, col int, value string) (Change, error)

// Registry maps the placeholders of a counting template to the handlers that
// fill them in.
type Registry struct {
	handlers []entry
}

type entry struct {
	placeholder string
	handler     HandlerFunc
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Register adds a handler for placeholder (e.g. "{{sequence}}").
// Placeholders are matched in registration order; the first one contained in a cell wins.
func (r *Registry) Register(placeholder string, handler HandlerFunc) {
	r.handlers = append(r.handlers, entry{placeholder: placeholder, handler: handler})
}

// Placeholders lists the registered placeholders in match order.
func (r *Registry) Placeholders() []string {
	out := make([]string, len(r.handlers))
	for i, e := range r.handlers {
		out[i] = e.placeholder
	}
	return out
}

// Process runs the first handler whose placeholder appears in value and
// returns that placeholder with the layout change it made. The placeholder
// is "" when none matched.
func (r *Registry) Process(f *excelize.File, sheet string, row, col int, value string) (string, Change, error) {
	for _, e := range r.handlers {
		if !strings.Contains(value, e.placeholder) {
			continue
		}
		change, err := e.handler(f, sheet, row, col, value)
		if err != nil {
			return "", Change{}, err
		}
		return e.placeholder, change, nil
	}

	return "", Change{}, nil
}
