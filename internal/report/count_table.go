package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/remarklens/remarklens/internal/count"
)

const tableGutter = "  "

// WriteCountTable renders a count table aligned for terminals. The group
// column is left-aligned, numeric columns right-aligned; widths are measured
// with runewidth so wide characters in symbol names don't skew the layout.
func WriteCountTable(w io.Writer, t count.Table) error {
	cells := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		formatted := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			formatted[j] = strconv.FormatInt(cell, 10)
		}
		cells[i] = formatted
	}

	widths := make([]int, len(t.Columns)+1)
	widths[0] = runewidth.StringWidth(t.GroupBy)
	for i, col := range t.Columns {
		widths[i+1] = runewidth.StringWidth(col)
	}
	for i, row := range t.Rows {
		widths[0] = max(widths[0], runewidth.StringWidth(row.Key))
		for j, cell := range cells[i] {
			widths[j+1] = max(widths[j+1], runewidth.StringWidth(cell))
		}
	}

	ew := &errWriter{w: w}
	ew.puts(padRight(t.GroupBy, widths[0]))
	for i, col := range t.Columns {
		ew.puts(tableGutter + padLeft(col, widths[i+1]))
	}
	ew.puts("\n")
	for i, row := range t.Rows {
		ew.puts(padRight(row.Key, widths[0]))
		for j, cell := range cells[i] {
			ew.puts(tableGutter + padLeft(cell, widths[j+1]))
		}
		ew.puts("\n")
	}
	return ew.err
}

func padRight(s string, width int) string {
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", width-runewidth.StringWidth(s)) + s
}
