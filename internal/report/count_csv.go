package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/remarklens/remarklens/internal/count"
)

// WriteCountCSV renders a count table as CSV: the group-by column followed by
// one column per tallied key, rows in the table's own order.
func WriteCountCSV(w io.Writer, t count.Table) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, t.GroupBy)
	header = append(header, t.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, row := range t.Rows {
		record[0] = row.Key
		for i, cell := range row.Cells {
			record[i+1] = strconv.FormatInt(cell, 10)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
