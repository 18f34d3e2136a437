// Package count aggregates remark streams into grouped tallies and key sums.
package count

import (
	"fmt"

	"github.com/remarklens/remarklens/internal/filter"
	"github.com/remarklens/remarklens/internal/remark"
)

// GroupBy selects how remarks are bucketed while counting.
type GroupBy uint8

const (
	GroupByTotal GroupBy = iota
	GroupBySource
	GroupByFunction
	GroupByFunctionWithLoc
)

// ParseGroupBy converts the command-line spelling to a GroupBy.
func ParseGroupBy(s string) (GroupBy, error) {
	switch s {
	case "total":
		return GroupByTotal, nil
	case "source":
		return GroupBySource, nil
	case "function":
		return GroupByFunction, nil
	case "function-with-loc":
		return GroupByFunctionWithLoc, nil
	}
	return GroupByTotal, fmt.Errorf("unknown group-by mode %q, expected total, source, function or function-with-loc", s)
}

// String returns the name used as the group column header in reports.
func (g GroupBy) String() string {
	switch g {
	case GroupBySource:
		return "Source"
	case GroupByFunction:
		return "Function"
	case GroupByFunctionWithLoc:
		return "FunctionWithDebugLoc"
	default:
		return "Total"
	}
}

// groupKey derives the bucket for a remark. The boolean is false when the
// remark must be skipped because the grouping needs a location it lacks.
func (g GroupBy) groupKey(r *remark.Remark) (string, bool) {
	switch g {
	case GroupByFunction:
		return r.Function, true
	case GroupBySource:
		if r.Loc == nil {
			return "", false
		}
		return r.Loc.File, true
	case GroupByFunctionWithLoc:
		if r.Loc == nil {
			return "", false
		}
		return r.Loc.File + ":" + r.Function, true
	default:
		return "Total", true
	}
}

// Row is one group's cells in a Table.
type Row struct {
	Key   string
	Cells []int64
}

// Table is the order-preserving snapshot both counters produce: one row per
// group key in first-insertion order. Reporters render it as-is.
type Table struct {
	GroupBy string
	Columns []string
	Rows    []Row
}

// Counter is the shared surface of both counting strategies.
type Counter interface {
	Collect(*remark.Remark)
	Table() Table
}

// RemarkCounter tallies one count per remark, grouped by the configured key.
type RemarkCounter struct {
	groupBy GroupBy
	keys    []string
	counts  map[string]int64
}

// NewRemarkCounter returns an empty remark counter.
func NewRemarkCounter(groupBy GroupBy) *RemarkCounter {
	return &RemarkCounter{groupBy: groupBy, counts: make(map[string]int64)}
}

// Collect records one remark.
func (c *RemarkCounter) Collect(r *remark.Remark) {
	key, ok := c.groupBy.groupKey(r)
	if !ok {
		return
	}
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

// Table snapshots the accumulated tallies.
func (c *RemarkCounter) Table() Table {
	t := Table{GroupBy: c.groupBy.String(), Columns: []string{"Count"}}
	for _, key := range c.keys {
		t.Rows = append(t.Rows, Row{Key: key, Cells: []int64{c.counts[key]}})
	}
	return t
}

// Run drains the source through the filters into the counter.
func Run(src remark.Source, f filter.Filters, c Counter) error {
	return remark.Drain(src, func(r *remark.Remark) error {
		if f.Match(r) {
			c.Collect(r)
		}
		return nil
	})
}
