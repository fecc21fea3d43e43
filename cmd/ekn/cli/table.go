// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// columnGap separates adjacent table columns.
const columnGap = "  "

// Table accumulates rows and writes them with aligned columns. Widths
// are measured in terminal cells with escape sequences ignored, so
// styled cells line up with plain ones.
type Table struct {
	styles  *Styles
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(styles *Styles, headers ...string) *Table {
	return &Table{styles: styles, headers: headers}
}

// AddRow appends a row. Missing trailing cells render empty; extra
// cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Render writes the header and every row to w.
func (t *Table) Render(w io.Writer) error {
	header := make([]string, len(t.headers))
	for i, name := range t.headers {
		header[i] = t.styles.Header(name)
	}

	widths := make([]int, len(t.headers))
	for _, row := range append([][]string{header}, t.rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], ansi.StringWidth(cell))
		}
	}

	for _, row := range append([][]string{header}, t.rows...) {
		if _, err := fmt.Fprintln(w, formatRow(row, widths)); err != nil {
			return err
		}
	}
	return nil
}

func formatRow(row []string, widths []int) string {
	var builder strings.Builder
	for i, cell := range row {
		if i > 0 {
			builder.WriteString(columnGap)
		}
		builder.WriteString(cell)
		if i < len(row)-1 {
			builder.WriteString(strings.Repeat(" ", widths[i]-ansi.StringWidth(cell)))
		}
	}
	return strings.TrimRight(builder.String(), " ")
}
