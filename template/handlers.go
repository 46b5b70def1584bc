package template

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/orayew2002/rast-words/domain"
	"github.com/orayew2002/rast-words/excel"
	"github.com/orayew2002/rast-words/words"
	"github.com/xuri/excelize/v2"
)

// SequencePlaceholder marks the template row that expands into one row per number.
const SequencePlaceholder = "{{sequence}}"

// RegisterDefaults registers the sequence expansion and the summary keys
// ({{start}}, {{end}}, {{count}} and their _words forms) for rows.
func RegisterDefaults(r *Registry, start, end int, rows []domain.Row) {
	RegisterSummaryHandler(r, start, end)
	RegisterSequenceHandler(r, rows)
}

// ---------- {{sequence}} ----------

// RegisterSequenceHandler registers the {{sequence}} handler.
// The template row holding the placeholder is replaced by one row per entry:
// the number goes into the placeholder's column and its words into the next one.
func RegisterSequenceHandler(r *Registry, rows []domain.Row) {
	r.Register(SequencePlaceholder, func(f *excelize.File, sheet string, row, col int, _ string) (Change, error) {
		if err := writeSequence(f, sheet, row, col, rows); err != nil {
			return Change{}, err
		}
		return Change{Replaced: true, Inserted: len(rows)}, nil
	})
}

func writeSequence(f *excelize.File, sheet string, row, col int, rows []domain.Row) error {
	if err := f.RemoveRow(sheet, row+1); err != nil {
		return fmt.Errorf("remove template row: %w", err)
	}

	if len(rows) == 0 {
		return nil
	}

	if err := removePhantomRows(f, sheet, len(rows)); err != nil {
		return fmt.Errorf("clean phantom rows: %w", err)
	}

	if err := f.InsertRows(sheet, row+1, len(rows)); err != nil {
		return fmt.Errorf("insert rows: %w", err)
	}

	sm := excel.NewStyleManager(f)
	numberStyle, err := sm.Number()
	if err != nil {
		return fmt.Errorf("number style: %w", err)
	}
	wordsStyle, err := sm.Words()
	if err != nil {
		return fmt.Errorf("words style: %w", err)
	}

	for i, entry := range rows {
		numCell := excel.CellName(row+i, col)
		wordsCell := excel.CellName(row+i, col+1)

		if err := f.SetCellInt(sheet, numCell, int64(entry.Number)); err != nil {
			return fmt.Errorf("number %d: %w", entry.Number, err)
		}
		if err := f.SetCellStyle(sheet, numCell, numCell, numberStyle); err != nil {
			return fmt.Errorf("number style %d: %w", entry.Number, err)
		}
		if err := f.SetCellStr(sheet, wordsCell, entry.Words); err != nil {
			return fmt.Errorf("words %d: %w", entry.Number, err)
		}
		if err := f.SetCellStyle(sheet, wordsCell, wordsCell, wordsStyle); err != nil {
			return fmt.Errorf("words style %d: %w", entry.Number, err)
		}
	}

	return nil
}

// ---------- summary keys ----------

// RegisterSummaryHandler registers text replacements describing the range:
//
//	{{start}} {{end}} {{count}}                    → "1" "100" "100"
//	{{start_words}} {{end_words}} {{count_words}}  → "one" "one hundred" "one hundred"
//
// The _words keys are registered first so {{start}} never shadows {{start_words}}.
func RegisterSummaryHandler(r *Registry, start, end int) {
	count := 0
	if start <= end {
		count = end - start + 1
	}

	NewReplaceHandler().
		Add("{{start_words}}", words.For(start)).
		Add("{{end_words}}", words.For(end)).
		Add("{{count_words}}", words.For(count)).
		Add("{{start}}", strconv.Itoa(start)).
		Add("{{end}}", strconv.Itoa(end)).
		Add("{{count}}", strconv.Itoa(count)).
		Register(r)
}

// ---------- ReplaceHandler ----------

// ReplaceHandler fills the summary keys of a counting template. Every key it
// holds maps to the same handler, so a caption such as
// "Counting {{count_words}} numbers from {{start}} to {{end}}" is rendered in
// a single write whichever key matched first. The cell keeps its style and
// its row stays where it is.
type ReplaceHandler struct {
	pairs []replacePair
}

type replacePair struct{ key, val string }

// NewReplaceHandler creates a ReplaceHandler with no keys.
func NewReplaceHandler() *ReplaceHandler {
	return &ReplaceHandler{}
}

// Add maps key to val. Keys are substituted in the order added, so a key that
// is a prefix of another ({{start}} of {{start_words}}) must come after it.
func (h *ReplaceHandler) Add(key, val string) *ReplaceHandler {
	h.pairs = append(h.pairs, replacePair{key, val})
	return h
}

// Register makes every key of h a placeholder in r.
func (h *ReplaceHandler) Register(r *Registry) {
	for _, p := range h.pairs {
		r.Register(p.key, h.apply)
	}
}

func (h *ReplaceHandler) apply(f *excelize.File, sheet string, row, col int, value string) (Change, error) {
	cell := excel.CellName(row, col)

	styleID, _ := f.GetCellStyle(sheet, cell)

	caption := value
	for _, p := range h.pairs {
		caption = strings.ReplaceAll(caption, p.key, p.val)
	}

	if err := f.SetCellStr(sheet, cell, caption); err != nil {
		return Change{}, fmt.Errorf("summary %s: %w", cell, err)
	}

	if styleID != 0 {
		if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
			return Change{}, fmt.Errorf("restore style %s: %w", cell, err)
		}
	}

	return Change{}, nil
}

// ---------- helpers ----------

// removePhantomRows clears the bottom n rows of the sheet before a sequence of
// n rows is inserted. Workbooks saved by Excel may carry empty row elements
// down there, and InsertRows refuses to push any row past excelize.TotalRows.
func removePhantomRows(f *excelize.File, sheet string, n int) error {
	const totalRows = excelize.TotalRows
	for r := totalRows; r > totalRows-n; r-- {
		if err := f.RemoveRow(sheet, r); err != nil {
			return err
		}
	}
	return nil
}
