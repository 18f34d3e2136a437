// Package remark defines the in-memory model for compiler optimization
// remarks and the streaming sources that produce them.
package remark

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Type classifies a remark the way the emitting compiler did.
type Type uint8

const (
	Unknown Type = iota
	Passed
	Missed
	Analysis
	AnalysisFPCommute
	AnalysisAliasing
	Failure
)

var typeNames = [...]string{
	Unknown:           "Unknown",
	Passed:            "Passed",
	Missed:            "Missed",
	Analysis:          "Analysis",
	AnalysisFPCommute: "AnalysisFPCommute",
	AnalysisAliasing:  "AnalysisAliasing",
	Failure:           "Failure",
}

// String returns the canonical spelling, which is also the YAML tag name.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// ParseType converts a type name to a Type. It accepts the canonical
// spelling as well as the lowercase, hyphenated form used on the command
// line ("analysis-fp-commute").
func ParseType(s string) (Type, error) {
	normalized := strings.ToLower(strings.ReplaceAll(s, "-", ""))
	for t, name := range typeNames {
		if normalized == strings.ToLower(name) {
			return Type(t), nil
		}
	}
	return Unknown, fmt.Errorf("unknown remark type %q", s)
}

// DebugLoc points at the source position a remark or argument refers to.
type DebugLoc struct {
	File   string `msgpack:"file"`
	Line   uint32 `msgpack:"line"`
	Column uint32 `msgpack:"column"`
}

// Argument is one key/value pair attached to a remark. Some arguments carry
// their own source location, e.g. the callee position of an inlining remark.
type Argument struct {
	Key   string    `msgpack:"key"`
	Value string    `msgpack:"value"`
	Loc   *DebugLoc `msgpack:"loc,omitempty"`
}

// Equal reports whether both arguments carry the same key and value.
// Argument locations are ignored; see EqualStrict.
func (a Argument) Equal(b Argument) bool {
	return a.Key == b.Key && a.Value == b.Value
}

// EqualStrict additionally requires the argument locations to match.
func (a Argument) EqualStrict(b Argument) bool {
	if !a.Equal(b) {
		return false
	}
	if (a.Loc == nil) != (b.Loc == nil) {
		return false
	}
	return a.Loc == nil || *a.Loc == *b.Loc
}

// Remark is a single compiler diagnostic record. Instances are produced by a
// Source and treated as read-only afterwards.
type Remark struct {
	Type     Type       `msgpack:"type"`
	Pass     string     `msgpack:"pass"`
	Name     string     `msgpack:"name"`
	Function string     `msgpack:"function"`
	Loc      *DebugLoc  `msgpack:"loc,omitempty"`
	Hotness  *uint64    `msgpack:"hotness,omitempty"`
	Args     []Argument `msgpack:"args,omitempty"`
}

// SameHeader reports whether both remarks carry the same (name, function,
// pass) identity, independent of type and arguments.
func (r *Remark) SameHeader(o *Remark) bool {
	return r.Name == o.Name && r.Function == o.Function && r.Pass == o.Pass
}

// Source produces a finite, ordered stream of remarks. Next returns io.EOF
// after the last remark; any other error is a decode failure that callers
// propagate unchanged.
type Source interface {
	Next() (*Remark, error)
}

// Sink consumes remarks one at a time, encoding each onto an output stream.
type Sink interface {
	Write(*Remark) error
}

// SliceSource adapts an in-memory slice of remarks to the Source interface,
// allowing multiple passes over a stream that was buffered once.
type SliceSource struct {
	remarks []Remark
	pos     int
}

// NewSliceSource returns a Source yielding the given remarks in order.
func NewSliceSource(remarks []Remark) *SliceSource {
	return &SliceSource{remarks: remarks}
}

// Next yields the next buffered remark, or io.EOF past the end.
func (s *SliceSource) Next() (*Remark, error) {
	if s.pos >= len(s.remarks) {
		return nil, io.EOF
	}
	r := &s.remarks[s.pos]
	s.pos++
	return r, nil
}

// ReadAll drains src into memory. The returned slice can be replayed through
// NewSliceSource when an engine needs more than one pass over the stream.
func ReadAll(src Source) ([]Remark, error) {
	var remarks []Remark
	err := Drain(src, func(r *Remark) error {
		remarks = append(remarks, *r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return remarks, nil
}

// Drain feeds every remark from src to fn until the stream is exhausted.
// A decode failure or an error from fn aborts the drain.
func Drain(src Source, fn func(*Remark) error) error {
	for {
		r, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
	}
}
