package pdfreader

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Gap thresholds in points between positioned text fragments on one row.
// A gap wider than cellGap starts a new cell; a gap wider than wordGap
// inserts a space inside the current cell.
const (
	cellGap = 14.0
	wordGap = 1.5
)

// PageTables reconstructs tables from the positioned text of page n
// (1-based). Fragments on one visual row are split into cells at wide
// horizontal gaps; contiguous runs of rows with two or more cells form a
// table. The result is a crude but deterministic approximation of the page's
// tabular layout.
func (d *Document) PageTables(n int) ([][][]string, error) {
	p := d.reader.Page(n)
	if p.V.IsNull() {
		return nil, nil
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("failed to extract rows from page %d: %w", n, err)
	}

	cellRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		if cells := splitCells(row.Content); len(cells) > 0 {
			cellRows = append(cellRows, cells)
		}
	}

	return groupTables(cellRows), nil
}

// splitCells merges positioned text fragments into cell strings, starting a
// new cell whenever the horizontal gap exceeds cellGap.
func splitCells(texts []pdf.Text) []string {
	var cells []string
	var cell strings.Builder
	var prevEnd float64
	started := false

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if started {
			gap := t.X - prevEnd
			switch {
			case gap > cellGap:
				cells = append(cells, strings.TrimSpace(cell.String()))
				cell.Reset()
			case gap > wordGap:
				cell.WriteByte(' ')
			}
		}
		cell.WriteString(t.S)
		prevEnd = t.X + t.W
		started = true
	}

	if cell.Len() > 0 {
		if s := strings.TrimSpace(cell.String()); s != "" {
			cells = append(cells, s)
		}
	}
	return cells
}

// groupTables collects contiguous runs of multi-cell rows into tables.
// Single-cell rows are ordinary text lines and break the run.
func groupTables(cellRows [][]string) [][][]string {
	var tables [][][]string
	var current [][]string

	flush := func() {
		if len(current) >= 2 {
			tables = append(tables, current)
		}
		current = nil
	}

	for _, row := range cellRows {
		if len(row) >= 2 {
			current = append(current, row)
		} else {
			flush()
		}
	}
	flush()

	return tables
}
