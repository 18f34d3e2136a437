package count

import (
	"strconv"

	"github.com/remarklens/remarklens/internal/filter"
	"github.com/remarklens/remarklens/internal/remark"
)

// KeyCounter sums the integer values of matched argument keys per group. It
// needs two passes over the stream: DiscoverKeys registers the column set,
// then Collect accumulates a row per group over exactly those columns.
type KeyCounter struct {
	groupBy GroupBy
	columns []string
	index   map[string]int
	rowKeys []string
	rows    map[string][]int64
}

// NewKeyCounter returns an empty key counter.
func NewKeyCounter(groupBy GroupBy) *KeyCounter {
	return &KeyCounter{
		groupBy: groupBy,
		index:   make(map[string]int),
		rows:    make(map[string][]int64),
	}
}

// DiscoverKeys scans the whole stream once and registers, in first-seen
// order, every argument key that matches one of the key matchers and whose
// value parses as a base-10 integer. The filters apply exactly as they do
// during collection; duplicate keys are ignored.
func (c *KeyCounter) DiscoverKeys(src remark.Source, f filter.Filters, keyMatchers []filter.Matcher) error {
	return remark.Drain(src, func(r *remark.Remark) error {
		if !f.Match(r) {
			return nil
		}
		for _, m := range keyMatchers {
			for _, arg := range r.Args {
				if !m.Match(arg.Key) {
					continue
				}
				if _, ok := intValue(arg.Value); !ok {
					continue
				}
				if _, dup := c.index[arg.Key]; dup {
					continue
				}
				c.index[arg.Key] = len(c.columns)
				c.columns = append(c.columns, arg.Key)
			}
		}
		return nil
	})
}

// Collect accumulates one remark into its group row. Rows start zero-filled;
// each registered key adds the value of its first integer-valued occurrence
// on the remark, or nothing when the remark lacks it.
func (c *KeyCounter) Collect(r *remark.Remark) {
	key, ok := c.groupBy.groupKey(r)
	if !ok {
		return
	}
	row, seen := c.rows[key]
	if !seen {
		row = make([]int64, len(c.columns))
		c.rows[key] = row
		c.rowKeys = append(c.rowKeys, key)
	}
	for col, name := range c.columns {
		row[col] += valueForKey(name, r)
	}
}

// Table snapshots the accumulated rows.
func (c *KeyCounter) Table() Table {
	t := Table{GroupBy: c.groupBy.String(), Columns: c.columns}
	for _, key := range c.rowKeys {
		t.Rows = append(t.Rows, Row{Key: key, Cells: c.rows[key]})
	}
	return t
}

// valueForKey returns the integer value of the first argument carrying the
// key, or zero when the remark has no integer-valued argument under it.
func valueForKey(key string, r *remark.Remark) int64 {
	for _, arg := range r.Args {
		if arg.Key != key {
			continue
		}
		if v, ok := intValue(arg.Value); ok {
			return v
		}
	}
	return 0
}

func intValue(raw string) (int64, bool) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
