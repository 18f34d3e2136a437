// Package filter selects remarks by name, pass, argument value and type.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/remarklens/remarklens/internal/remark"
	"github.com/remarklens/remarklens/pkg/shared/errors"
)

// Matcher matches a candidate string against a configured pattern. It has
// exactly two implementations, one per pattern kind.
type Matcher interface {
	Match(candidate string) bool
}

// literal requires exact equality after trimming surrounding whitespace from
// the candidate.
type literal string

func (l literal) Match(candidate string) bool {
	return string(l) == strings.TrimSpace(candidate)
}

// pattern matches with a compiled regular expression.
type pattern struct {
	re *regexp.Regexp
}

func (p pattern) Match(candidate string) bool {
	return p.re.MatchString(candidate)
}

// NewMatcher builds a literal or regex matcher. Regex compilation failures
// surface immediately as *errors.InvalidPatternError, before any remark has
// been read.
func NewMatcher(expr string, isRegex bool) (Matcher, error) {
	if !isRegex {
		return literal(expr), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.NewInvalidPatternError(expr, err)
	}
	return pattern{re: re}, nil
}

// Filters combines up to four optional matchers into one predicate over a
// remark. A nil field means the corresponding property is not filtered.
type Filters struct {
	Name Matcher
	Pass Matcher
	Arg  Matcher
	Type *remark.Type
}

// Match reports whether the remark passes every configured filter. It is a
// pure function of the filter configuration and the remark.
//
// When a type filter is configured it becomes the sole deciding factor once
// the name and pass filters have passed; in particular the argument filter
// is not consulted. Callers combining a type filter with an argument filter
// should be aware of this limitation.
func (f Filters) Match(r *remark.Remark) bool {
	if f.Name != nil && !f.Name.Match(r.Name) {
		return false
	}
	if f.Pass != nil && !f.Pass.Match(r.Pass) {
		return false
	}
	if f.Type != nil {
		return *f.Type == r.Type
	}
	if f.Arg != nil {
		for _, arg := range r.Args {
			if f.Arg.Match(arg.Value) {
				return true
			}
		}
		return false
	}
	return true
}

// Spec carries the raw filter values as they arrive from command-line flags.
// For each property the literal and regex variants are mutually exclusive.
type Spec struct {
	Name      string
	NameRegex string
	Pass      string
	PassRegex string
	Arg       string
	ArgRegex  string
	Type      string
}

// Build validates the raw values and compiles them into Filters.
func (s Spec) Build() (Filters, error) {
	var f Filters

	matchers := []struct {
		property string
		literal  string
		regex    string
		dst      *Matcher
	}{
		{"remark name", s.Name, s.NameRegex, &f.Name},
		{"pass name", s.Pass, s.PassRegex, &f.Pass},
		{"argument", s.Arg, s.ArgRegex, &f.Arg},
	}
	for _, m := range matchers {
		if m.literal != "" && m.regex != "" {
			return Filters{}, fmt.Errorf("%s filter: literal and regex variants are mutually exclusive", m.property)
		}
		expr, isRegex := m.literal, false
		if m.regex != "" {
			expr, isRegex = m.regex, true
		}
		if expr == "" {
			continue
		}
		matcher, err := NewMatcher(expr, isRegex)
		if err != nil {
			return Filters{}, err
		}
		*m.dst = matcher
	}

	if s.Type != "" {
		typ, err := remark.ParseType(s.Type)
		if err != nil {
			return Filters{}, err
		}
		f.Type = &typ
	}
	return f, nil
}
