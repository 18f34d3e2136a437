package diff

import (
	"fmt"
	"strings"

	"github.com/remarklens/remarklens/internal/remark"
)

// Options narrow what Diff reports.
type Options struct {
	// StrictCompare keeps location-bearing arguments in play: two remarks
	// differing only in argument locations count as different. The default
	// loose policy drops such arguments before comparing.
	StrictCompare bool
	// OnlyCommon suppresses the OnlyA and OnlyB lists entirely.
	OnlyCommon bool
	// OnlyDifferent skips header-matched pairs entirely.
	OnlyDifferent bool
	// TypeDiffOnly keeps only header-matched pairs whose types differ.
	TypeDiffOnly bool
	// ArgDiffOnly keeps only header-matched pairs with equal types, whose
	// difference therefore lies in the arguments. Set together with
	// TypeDiffOnly the two select the union.
	ArgDiffOnly bool
}

// TypePair records a type disagreement between two header-matched remarks.
type TypePair struct {
	A remark.Type
	B remark.Type
}

// RemarkDiff is the difference between two remarks sharing a header: an
// optional type pair plus the positional argument split.
type RemarkDiff struct {
	// Base is the A-side remark; reporters print its header.
	Base     remark.Remark
	TypeDiff *TypePair
	OnlyA    []remark.Argument
	OnlyB    []remark.Argument
	InBoth   []remark.Argument
}

// LocationDiff is the per-location diff result.
type LocationDiff struct {
	Loc        Location
	OnlyA      []remark.Remark
	OnlyB      []remark.Remark
	SameHeader []RemarkDiff
}

// Empty reports whether the location shows no difference.
func (d *LocationDiff) Empty() bool {
	return len(d.OnlyA) == 0 && len(d.OnlyB) == 0 && len(d.SameHeader) == 0
}

// Diff compares two indexes location by location. The result holds one entry
// per location in the union of both key sets, ordered by first appearance in
// a and then b; entries for locations without differences are kept empty so
// the slice layout is deterministic.
func Diff(a, b *Index, opts Options) []LocationDiff {
	keys := unionKeys(a, b)
	diffs := make([]LocationDiff, 0, len(keys))
	for _, key := range keys {
		diffs = append(diffs, diffAtLocation(key, a.At(key), b.At(key), opts))
	}
	return diffs
}

func unionKeys(a, b *Index) []Location {
	keys := make([]Location, 0, len(a.Keys())+len(b.Keys()))
	seen := make(map[Location]struct{}, len(a.Keys())+len(b.Keys()))
	for _, ks := range [][]Location{a.Keys(), b.Keys()} {
		for _, k := range ks {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}

// diffAtLocation runs the two matching passes over one location bucket.
//
// The exact pass marks every remark whose identity appears on both sides;
// marking is by value, so duplicates share the mark. The header pass then
// pairs leftovers first-fit: each unmarked A remark takes the first unmarked
// B remark with the same header, in list order. No optimal assignment is
// attempted.
func diffAtLocation(key Location, remarksA, remarksB []remark.Remark, opts Options) LocationDiff {
	d := LocationDiff{Loc: key}

	fpA := fingerprints(remarksA, opts.StrictCompare)
	fpB := fingerprints(remarksB, opts.StrictCompare)

	found := make(map[string]struct{})
	onB := make(map[string]struct{}, len(fpB))
	for _, fp := range fpB {
		onB[fp] = struct{}{}
	}
	for _, fp := range fpA {
		if _, ok := onB[fp]; ok {
			found[fp] = struct{}{}
		}
	}

	type pairing struct{ a, b int }
	var pairs []pairing
	for i := range remarksA {
		if _, ok := found[fpA[i]]; ok {
			continue
		}
		for j := range remarksB {
			if _, ok := found[fpB[j]]; ok {
				continue
			}
			if remarksA[i].SameHeader(&remarksB[j]) {
				pairs = append(pairs, pairing{i, j})
				found[fpA[i]] = struct{}{}
				found[fpB[j]] = struct{}{}
				break
			}
		}
	}

	if !opts.OnlyCommon {
		for i := range remarksA {
			if _, ok := found[fpA[i]]; !ok {
				d.OnlyA = append(d.OnlyA, remarksA[i])
			}
		}
		for j := range remarksB {
			if _, ok := found[fpB[j]]; !ok {
				d.OnlyB = append(d.OnlyB, remarksB[j])
			}
		}
	}

	if opts.OnlyDifferent {
		return d
	}
	for _, p := range pairs {
		rd := argDiff(&remarksA[p.a], &remarksB[p.b], opts.StrictCompare)
		if keepPair(&rd, opts) {
			d.SameHeader = append(d.SameHeader, rd)
		}
	}
	return d
}

func keepPair(rd *RemarkDiff, opts Options) bool {
	if !opts.TypeDiffOnly && !opts.ArgDiffOnly {
		return true
	}
	if opts.TypeDiffOnly && rd.TypeDiff != nil {
		return true
	}
	return opts.ArgDiffOnly && rd.TypeDiff == nil
}

// argDiff walks both argument lists positionally: equal pairs at the same
// index land in InBoth, unequal pairs in OnlyA and OnlyB, and the tail of
// the longer list goes wholly to its side. Comparison is positional rather
// than key-based, so argument reordering between runs shows up as a diff.
func argDiff(ra, rb *remark.Remark, strict bool) RemarkDiff {
	rd := RemarkDiff{Base: *ra}
	argsA := compareArgs(ra, strict)
	argsB := compareArgs(rb, strict)

	i := 0
	for ; i < min(len(argsA), len(argsB)); i++ {
		if argsEqual(argsA[i], argsB[i], strict) {
			rd.InBoth = append(rd.InBoth, argsA[i])
		} else {
			rd.OnlyA = append(rd.OnlyA, argsA[i])
			rd.OnlyB = append(rd.OnlyB, argsB[i])
		}
	}
	rd.OnlyA = append(rd.OnlyA, argsA[i:]...)
	rd.OnlyB = append(rd.OnlyB, argsB[i:]...)

	if ra.Type != rb.Type {
		rd.TypeDiff = &TypePair{A: ra.Type, B: rb.Type}
	}
	return rd
}

func argsEqual(a, b remark.Argument, strict bool) bool {
	if strict {
		return a.EqualStrict(b)
	}
	return a.Equal(b)
}

// compareArgs returns the argument list used for comparison. The loose
// policy drops arguments carrying their own location.
func compareArgs(r *remark.Remark, strict bool) []remark.Argument {
	if strict {
		return r.Args
	}
	args := make([]remark.Argument, 0, len(r.Args))
	for _, a := range r.Args {
		if a.Loc == nil {
			args = append(args, a)
		}
	}
	return args
}

// fingerprint renders a remark's comparable identity. Two remarks with equal
// fingerprints are exact matches under the configured compare policy.
func fingerprint(r *remark.Remark, strict bool) string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	sb.WriteByte(0)
	sb.WriteString(r.Function)
	sb.WriteByte(0)
	sb.WriteString(r.Pass)
	sb.WriteByte(0)
	sb.WriteString(r.Type.String())
	for _, a := range compareArgs(r, strict) {
		sb.WriteByte(1)
		sb.WriteString(a.Key)
		sb.WriteByte(0)
		sb.WriteString(a.Value)
		if strict && a.Loc != nil {
			fmt.Fprintf(&sb, "\x00%s:%d:%d", a.Loc.File, a.Loc.Line, a.Loc.Column)
		}
	}
	return sb.String()
}

func fingerprints(remarks []remark.Remark, strict bool) []string {
	fps := make([]string, len(remarks))
	for i := range remarks {
		fps[i] = fingerprint(&remarks[i], strict)
	}
	return fps
}
