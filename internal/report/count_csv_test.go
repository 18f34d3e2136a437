package report

import (
	"bytes"
	"testing"

	"github.com/remarklens/remarklens/internal/count"
)

func TestWriteCountCSVRemarkTally(t *testing.T) {
	table := count.Table{
		GroupBy: "Function",
		Columns: []string{"Count"},
		Rows: []count.Row{
			{Key: "main", Cells: []int64{2}},
			{Key: "helper", Cells: []int64{1}},
		},
	}

	var buf bytes.Buffer
	if err := WriteCountCSV(&buf, table); err != nil {
		t.Fatalf("WriteCountCSV: %v", err)
	}
	want := "Function,Count\nmain,2\nhelper,1\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteCountCSVKeyColumns(t *testing.T) {
	table := count.Table{
		GroupBy: "Source",
		Columns: []string{"cost", "size"},
		Rows: []count.Row{
			{Key: "a.c", Cells: []int64{6, 0}},
			{Key: "b.c", Cells: []int64{0, 12}},
		},
	}

	var buf bytes.Buffer
	if err := WriteCountCSV(&buf, table); err != nil {
		t.Fatalf("WriteCountCSV: %v", err)
	}
	want := "Source,cost,size\na.c,6,0\nb.c,0,12\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteCountCSVQuotesReservedCharacters(t *testing.T) {
	table := count.Table{
		GroupBy: "Function",
		Columns: []string{"Count"},
		Rows:    []count.Row{{Key: `operator,()`, Cells: []int64{3}}},
	}

	var buf bytes.Buffer
	if err := WriteCountCSV(&buf, table); err != nil {
		t.Fatalf("WriteCountCSV: %v", err)
	}
	want := "Function,Count\n\"operator,()\",3\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
