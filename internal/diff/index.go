// Package diff matches remarks between two runs and computes per-location
// differences.
package diff

import (
	"github.com/remarklens/remarklens/internal/filter"
	"github.com/remarklens/remarklens/internal/remark"
)

// Location is the composite key remarks are grouped under before diffing.
// Remarks without a source location all collapse to the zero value and are
// compared against each other regardless of true origin.
type Location struct {
	File     string
	Function string
	Line     uint32
	Column   uint32
}

// Less orders locations by field tuple.
func (l Location) Less(o Location) bool {
	if l.File != o.File {
		return l.File < o.File
	}
	if l.Function != o.Function {
		return l.Function < o.Function
	}
	if l.Line != o.Line {
		return l.Line < o.Line
	}
	return l.Column < o.Column
}

func locationOf(r *remark.Remark) Location {
	if r.Loc == nil {
		return Location{}
	}
	return Location{
		File:     r.Loc.File,
		Function: r.Function,
		Line:     r.Loc.Line,
		Column:   r.Loc.Column,
	}
}

// Index groups remarks by location. It preserves both the first-seen order
// of locations and the arrival order of remarks within each location, so
// downstream iteration is deterministic.
type Index struct {
	keys    []Location
	remarks map[Location][]remark.Remark
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{remarks: make(map[Location][]remark.Remark)}
}

// Add appends the remark to its location bucket.
func (ix *Index) Add(r *remark.Remark) {
	key := locationOf(r)
	if _, ok := ix.remarks[key]; !ok {
		ix.keys = append(ix.keys, key)
	}
	ix.remarks[key] = append(ix.remarks[key], *r)
}

// Keys returns the locations in first-seen order.
func (ix *Index) Keys() []Location {
	return ix.keys
}

// At returns the remarks recorded at the location, in arrival order.
func (ix *Index) At(key Location) []remark.Remark {
	return ix.remarks[key]
}

// Len returns the total number of indexed remarks.
func (ix *Index) Len() int {
	n := 0
	for _, rs := range ix.remarks {
		n += len(rs)
	}
	return n
}

// BuildIndex drains the source and groups the remarks passing the filters.
// A decode failure aborts the build and the partial index is discarded.
func BuildIndex(src remark.Source, f filter.Filters) (*Index, error) {
	ix := NewIndex()
	err := remark.Drain(src, func(r *remark.Remark) error {
		if f.Match(r) {
			ix.Add(r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ix, nil
}
