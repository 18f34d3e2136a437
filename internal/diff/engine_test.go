package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remarklens/remarklens/internal/filter"
	"github.com/remarklens/remarklens/internal/remark"
)

func index(t *testing.T, remarks ...remark.Remark) *Index {
	t.Helper()
	ix, err := BuildIndex(remark.NewSliceSource(remarks), filter.Filters{})
	require.NoError(t, err)
	return ix
}

func nonEmpty(diffs []LocationDiff) []LocationDiff {
	var out []LocationDiff
	for i := range diffs {
		if !diffs[i].Empty() {
			out = append(out, diffs[i])
		}
	}
	return out
}

func TestDiffIdenticalStreamsIsEmpty(t *testing.T) {
	remarks := []remark.Remark{
		{Type: remark.Passed, Pass: "inliner", Name: "inline", Function: "f",
			Loc:  &remark.DebugLoc{File: "a.c", Line: 10, Column: 1},
			Args: []remark.Argument{{Key: "cost", Value: "5"}}},
		{Type: remark.Missed, Pass: "unroll", Name: "NotUnrolled", Function: "g",
			Loc: &remark.DebugLoc{File: "b.c", Line: 4, Column: 2}},
		{Type: remark.Analysis, Pass: "size-info", Name: "FunctionSize", Function: "f"},
	}

	diffs := Diff(index(t, remarks...), index(t, remarks...), Options{})
	assert.Len(t, diffs, 3, "one entry per location in the union")
	assert.Empty(t, nonEmpty(diffs), "identical inputs must produce an empty diff everywhere")
}

func TestDiffArgumentValueChange(t *testing.T) {
	a := remark.Remark{Type: remark.Passed, Pass: "inliner", Name: "inline", Function: "f",
		Loc:  &remark.DebugLoc{File: "a.c", Line: 10, Column: 1},
		Args: []remark.Argument{{Key: "cost", Value: "5"}}}
	b := a
	b.Args = []remark.Argument{{Key: "cost", Value: "7"}}

	diffs := nonEmpty(Diff(index(t, a), index(t, b), Options{}))
	require.Len(t, diffs, 1)

	d := diffs[0]
	assert.Equal(t, Location{File: "a.c", Function: "f", Line: 10, Column: 1}, d.Loc)
	assert.Empty(t, d.OnlyA)
	assert.Empty(t, d.OnlyB)
	require.Len(t, d.SameHeader, 1)

	rd := d.SameHeader[0]
	assert.Equal(t, []remark.Argument{{Key: "cost", Value: "5"}}, rd.OnlyA)
	assert.Equal(t, []remark.Argument{{Key: "cost", Value: "7"}}, rd.OnlyB)
	assert.Empty(t, rd.InBoth)
	assert.Nil(t, rd.TypeDiff)
}

func TestDiffUnrelatedRemarksAtSameLocation(t *testing.T) {
	loc := &remark.DebugLoc{File: "a.c", Line: 3, Column: 9}
	a := remark.Remark{Type: remark.Passed, Pass: "inliner", Name: "inline", Function: "f", Loc: loc}
	b := remark.Remark{Type: remark.Passed, Pass: "inliner", Name: "alwaysinline", Function: "f", Loc: loc}

	diffs := nonEmpty(Diff(index(t, a), index(t, b), Options{}))
	require.Len(t, diffs, 1)

	d := diffs[0]
	assert.Empty(t, d.SameHeader)
	require.Len(t, d.OnlyA, 1)
	require.Len(t, d.OnlyB, 1)
	assert.Equal(t, "inline", d.OnlyA[0].Name)
	assert.Equal(t, "alwaysinline", d.OnlyB[0].Name)
}

func TestDiffTypeChange(t *testing.T) {
	a := remark.Remark{Type: remark.Passed, Pass: "unroll", Name: "Unrolled", Function: "loop",
		Loc:  &remark.DebugLoc{File: "a.c", Line: 8, Column: 5},
		Args: []remark.Argument{{Key: "UnrollCount", Value: "4"}}}
	b := a
	b.Type = remark.Missed

	diffs := nonEmpty(Diff(index(t, a), index(t, b), Options{}))
	require.Len(t, diffs, 1)
	require.Len(t, diffs[0].SameHeader, 1)

	rd := diffs[0].SameHeader[0]
	require.NotNil(t, rd.TypeDiff)
	assert.Equal(t, remark.Passed, rd.TypeDiff.A)
	assert.Equal(t, remark.Missed, rd.TypeDiff.B)
	assert.Equal(t, []remark.Argument{{Key: "UnrollCount", Value: "4"}}, rd.InBoth,
		"equal arguments stay in InBoth even when the type differs")
}

func TestDiffSymmetry(t *testing.T) {
	locA := &remark.DebugLoc{File: "a.c", Line: 10, Column: 1}
	locB := &remark.DebugLoc{File: "b.c", Line: 2, Column: 2}

	remarksA := []remark.Remark{
		{Type: remark.Passed, Pass: "inliner", Name: "inline", Function: "f", Loc: locA,
			Args: []remark.Argument{{Key: "cost", Value: "5"}, {Key: "threshold", Value: "300"}}},
		{Type: remark.Missed, Pass: "unroll", Name: "NotUnrolled", Function: "g", Loc: locB},
	}
	remarksB := []remark.Remark{
		{Type: remark.Missed, Pass: "inliner", Name: "inline", Function: "f", Loc: locA,
			Args: []remark.Argument{{Key: "cost", Value: "9"}, {Key: "threshold", Value: "300"}}},
		{Type: remark.Analysis, Pass: "size-info", Name: "FunctionSize", Function: "h"},
	}

	forward := Diff(index(t, remarksA...), index(t, remarksB...), Options{})
	backward := Diff(index(t, remarksB...), index(t, remarksA...), Options{})

	fwd := make(map[Location]LocationDiff, len(forward))
	for _, d := range forward {
		fwd[d.Loc] = d
	}

	for _, bd := range backward {
		fd, ok := fwd[bd.Loc]
		require.True(t, ok, "same location set in both directions")

		assert.Equal(t, fd.OnlyA, bd.OnlyB, "OnlyA and OnlyB must swap")
		assert.Equal(t, fd.OnlyB, bd.OnlyA, "OnlyB and OnlyA must swap")
		require.Equal(t, len(fd.SameHeader), len(bd.SameHeader))
		for i := range fd.SameHeader {
			assert.Equal(t, fd.SameHeader[i].OnlyA, bd.SameHeader[i].OnlyB)
			assert.Equal(t, fd.SameHeader[i].OnlyB, bd.SameHeader[i].OnlyA)
			assert.Equal(t, fd.SameHeader[i].InBoth, bd.SameHeader[i].InBoth)
			if fd.SameHeader[i].TypeDiff != nil {
				require.NotNil(t, bd.SameHeader[i].TypeDiff)
				assert.Equal(t, fd.SameHeader[i].TypeDiff.A, bd.SameHeader[i].TypeDiff.B)
				assert.Equal(t, fd.SameHeader[i].TypeDiff.B, bd.SameHeader[i].TypeDiff.A)
			}
		}
	}
}

func TestDiffFirstFitPairing(t *testing.T) {
	loc := &remark.DebugLoc{File: "a.c", Line: 1, Column: 1}
	mk := func(cost string) remark.Remark {
		return remark.Remark{Type: remark.Passed, Pass: "inliner", Name: "inline", Function: "f",
			Loc: loc, Args: []remark.Argument{{Key: "cost", Value: cost}}}
	}

	// Two A candidates share a header with a single B remark: the first A in
	// list order takes the pair, the second lands in OnlyA.
	diffs := nonEmpty(Diff(index(t, mk("1"), mk("2")), index(t, mk("3")), Options{}))
	require.Len(t, diffs, 1)

	d := diffs[0]
	require.Len(t, d.SameHeader, 1)
	assert.Equal(t, []remark.Argument{{Key: "cost", Value: "1"}}, d.SameHeader[0].OnlyA)
	assert.Equal(t, []remark.Argument{{Key: "cost", Value: "3"}}, d.SameHeader[0].OnlyB)
	require.Len(t, d.OnlyA, 1)
	assert.Equal(t, "2", d.OnlyA[0].Args[0].Value)
	assert.Empty(t, d.OnlyB)
}

func TestDiffArgumentTailAppend(t *testing.T) {
	loc := &remark.DebugLoc{File: "a.c", Line: 2, Column: 2}
	a := remark.Remark{Type: remark.Passed, Pass: "vectorize", Name: "Vectorized", Function: "f", Loc: loc,
		Args: []remark.Argument{{Key: "Factor", Value: "4"}, {Key: "Width", Value: "128"}, {Key: "Extra", Value: "x"}}}
	b := remark.Remark{Type: remark.Passed, Pass: "vectorize", Name: "Vectorized", Function: "f", Loc: loc,
		Args: []remark.Argument{{Key: "Factor", Value: "4"}}}

	diffs := nonEmpty(Diff(index(t, a), index(t, b), Options{}))
	require.Len(t, diffs, 1)
	require.Len(t, diffs[0].SameHeader, 1)

	rd := diffs[0].SameHeader[0]
	assert.Equal(t, []remark.Argument{{Key: "Factor", Value: "4"}}, rd.InBoth)
	assert.Equal(t, []remark.Argument{{Key: "Width", Value: "128"}, {Key: "Extra", Value: "x"}}, rd.OnlyA,
		"the longer list's tail goes wholly to its side")
	assert.Empty(t, rd.OnlyB)
}

func TestDiffStrictCompare(t *testing.T) {
	loc := &remark.DebugLoc{File: "a.c", Line: 5, Column: 1}
	argLocA := &remark.DebugLoc{File: "a.c", Line: 7, Column: 3}
	argLocB := &remark.DebugLoc{File: "a.c", Line: 9, Column: 3}

	a := remark.Remark{Type: remark.Missed, Pass: "inline", Name: "NoDefinition", Function: "f", Loc: loc,
		Args: []remark.Argument{{Key: "Callee", Value: "ext", Loc: argLocA}, {Key: "Reason", Value: "external"}}}
	b := a
	b.Args = []remark.Argument{{Key: "Callee", Value: "ext", Loc: argLocB}, {Key: "Reason", Value: "external"}}

	loose := nonEmpty(Diff(index(t, a), index(t, b), Options{}))
	assert.Empty(t, loose, "location-bearing arguments are dropped under the loose policy")

	strict := nonEmpty(Diff(index(t, a), index(t, b), Options{StrictCompare: true}))
	require.Len(t, strict, 1)
	require.Len(t, strict[0].SameHeader, 1)
	rd := strict[0].SameHeader[0]
	require.Len(t, rd.OnlyA, 1)
	assert.Equal(t, argLocA, rd.OnlyA[0].Loc)
	require.Len(t, rd.OnlyB, 1)
	assert.Equal(t, argLocB, rd.OnlyB[0].Loc)
	assert.Equal(t, []remark.Argument{{Key: "Reason", Value: "external"}}, rd.InBoth)
}

func TestDiffNarrowingOptions(t *testing.T) {
	loc := &remark.DebugLoc{File: "a.c", Line: 1, Column: 1}

	// typePair differs only in type, argPair only in arguments, aOnly has no
	// counterpart on the B side.
	typePairA := remark.Remark{Type: remark.Passed, Pass: "unroll", Name: "Unrolled", Function: "f", Loc: loc}
	typePairB := typePairA
	typePairB.Type = remark.Missed

	argPairA := remark.Remark{Type: remark.Passed, Pass: "inliner", Name: "inline", Function: "f", Loc: loc,
		Args: []remark.Argument{{Key: "cost", Value: "5"}}}
	argPairB := argPairA
	argPairB.Args = []remark.Argument{{Key: "cost", Value: "7"}}

	aOnly := remark.Remark{Type: remark.Analysis, Pass: "size-info", Name: "FunctionSize", Function: "f", Loc: loc}

	ixA := func() *Index { return index(t, typePairA, argPairA, aOnly) }
	ixB := func() *Index { return index(t, typePairB, argPairB) }

	t.Run("Default reports everything", func(t *testing.T) {
		d := nonEmpty(Diff(ixA(), ixB(), Options{}))[0]
		assert.Len(t, d.OnlyA, 1)
		assert.Len(t, d.SameHeader, 2)
	})

	t.Run("OnlyCommon suppresses one-sided remarks", func(t *testing.T) {
		d := nonEmpty(Diff(ixA(), ixB(), Options{OnlyCommon: true}))[0]
		assert.Empty(t, d.OnlyA)
		assert.Empty(t, d.OnlyB)
		assert.Len(t, d.SameHeader, 2)
	})

	t.Run("OnlyDifferent skips header pairs", func(t *testing.T) {
		d := nonEmpty(Diff(ixA(), ixB(), Options{OnlyDifferent: true}))[0]
		assert.Empty(t, d.SameHeader)
		assert.Len(t, d.OnlyA, 1)
	})

	t.Run("TypeDiffOnly keeps type-differing pairs", func(t *testing.T) {
		d := nonEmpty(Diff(ixA(), ixB(), Options{TypeDiffOnly: true}))[0]
		require.Len(t, d.SameHeader, 1)
		assert.NotNil(t, d.SameHeader[0].TypeDiff)
	})

	t.Run("ArgDiffOnly keeps equal-type pairs", func(t *testing.T) {
		d := nonEmpty(Diff(ixA(), ixB(), Options{ArgDiffOnly: true}))[0]
		require.Len(t, d.SameHeader, 1)
		assert.Nil(t, d.SameHeader[0].TypeDiff)
		assert.NotEmpty(t, d.SameHeader[0].OnlyA)
	})

	t.Run("Both narrowing flags select the union", func(t *testing.T) {
		d := nonEmpty(Diff(ixA(), ixB(), Options{TypeDiffOnly: true, ArgDiffOnly: true}))[0]
		assert.Len(t, d.SameHeader, 2)
	})
}

func TestDiffDuplicatesShareTheMark(t *testing.T) {
	loc := &remark.DebugLoc{File: "a.c", Line: 1, Column: 1}
	r := remark.Remark{Type: remark.Passed, Pass: "inliner", Name: "inline", Function: "f", Loc: loc,
		Args: []remark.Argument{{Key: "cost", Value: "5"}}}

	// Two identical copies on the A side against one on the B side: marking
	// is by value, so both copies count as found.
	diffs := nonEmpty(Diff(index(t, r, r), index(t, r), Options{}))
	assert.Empty(t, diffs)
}

func TestDiffUnionKeyOrder(t *testing.T) {
	mk := func(file string, line uint32) remark.Remark {
		return remark.Remark{Type: remark.Passed, Pass: "p", Name: "n", Function: "f",
			Loc: &remark.DebugLoc{File: file, Line: line, Column: 1}}
	}

	ixA := index(t, mk("a.c", 1), mk("a.c", 2))
	ixB := index(t, mk("a.c", 2), mk("b.c", 9))

	diffs := Diff(ixA, ixB, Options{})
	require.Len(t, diffs, 3)
	assert.Equal(t, "a.c", diffs[0].Loc.File)
	assert.Equal(t, uint32(1), diffs[0].Loc.Line)
	assert.Equal(t, uint32(2), diffs[1].Loc.Line)
	assert.Equal(t, "b.c", diffs[2].Loc.File, "keys unique to b follow a's keys")
}
