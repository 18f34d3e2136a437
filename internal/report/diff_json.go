package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/remarklens/remarklens/internal/diff"
	"github.com/remarklens/remarklens/internal/remark"
)

type jsonReport struct {
	Files jsonFiles     `json:"files"`
	Diff  []jsonLocDiff `json:"diff"`
}

type jsonFiles struct {
	A string `json:"a"`
	B string `json:"b"`
}

type jsonLocation struct {
	File     string `json:"file"`
	Function string `json:"function"`
	Line     uint32 `json:"line"`
	Column   uint32 `json:"column"`
}

type jsonLocDiff struct {
	Location jsonLocation  `json:"location"`
	OnlyA    []jsonRemark  `json:"only_a,omitempty"`
	OnlyB    []jsonRemark  `json:"only_b,omitempty"`
	Changed  []jsonChanged `json:"changed,omitempty"`
}

type jsonRemark struct {
	Name     string    `json:"name"`
	Function string    `json:"function"`
	Pass     string    `json:"pass"`
	Type     string    `json:"type"`
	Args     []jsonArg `json:"args,omitempty"`
}

type jsonChanged struct {
	Name     string    `json:"name"`
	Function string    `json:"function"`
	Pass     string    `json:"pass"`
	Type     string    `json:"type,omitempty"`
	TypeA    string    `json:"type_a,omitempty"`
	TypeB    string    `json:"type_b,omitempty"`
	ArgsA    []jsonArg `json:"args_a,omitempty"`
	ArgsB    []jsonArg `json:"args_b,omitempty"`
	InBoth   []jsonArg `json:"args_in_both,omitempty"`
}

// jsonArg marshals as a single-pair object, mirroring the wire form of a
// remark argument.
type jsonArg struct {
	Key   string
	Value string
}

func (a jsonArg) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{a.Key: a.Value})
}

// WriteDiffJSON renders the diff as one indented JSON document. Empty
// locations are skipped; verbose additionally includes the argument lists of
// one-sided remarks and the arguments shared by changed pairs.
func WriteDiffJSON(w io.Writer, in Inputs, diffs []diff.LocationDiff, verbose bool) error {
	out := jsonReport{
		Files: jsonFiles{A: in.A, B: in.B},
		Diff:  []jsonLocDiff{},
	}
	for i := range diffs {
		d := &diffs[i]
		if d.Empty() {
			continue
		}
		ld := jsonLocDiff{
			Location: jsonLocation{
				File:     d.Loc.File,
				Function: d.Loc.Function,
				Line:     d.Loc.Line,
				Column:   d.Loc.Column,
			},
		}
		for j := range d.OnlyA {
			ld.OnlyA = append(ld.OnlyA, remarkToJSON(&d.OnlyA[j], verbose))
		}
		for j := range d.OnlyB {
			ld.OnlyB = append(ld.OnlyB, remarkToJSON(&d.OnlyB[j], verbose))
		}
		for j := range d.SameHeader {
			ld.Changed = append(ld.Changed, changedToJSON(&d.SameHeader[j], verbose))
		}
		out.Diff = append(out.Diff, ld)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling diff report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func remarkToJSON(r *remark.Remark, verbose bool) jsonRemark {
	jr := jsonRemark{
		Name:     r.Name,
		Function: r.Function,
		Pass:     r.Pass,
		Type:     r.Type.String(),
	}
	if verbose {
		jr.Args = argsToJSON(r.Args)
	}
	return jr
}

func changedToJSON(rd *diff.RemarkDiff, verbose bool) jsonChanged {
	jc := jsonChanged{
		Name:     rd.Base.Name,
		Function: rd.Base.Function,
		Pass:     rd.Base.Pass,
		ArgsA:    argsToJSON(rd.OnlyA),
		ArgsB:    argsToJSON(rd.OnlyB),
	}
	// The type is stated once when both sides agree, as a pair otherwise.
	if rd.TypeDiff != nil {
		jc.TypeA = rd.TypeDiff.A.String()
		jc.TypeB = rd.TypeDiff.B.String()
	} else {
		jc.Type = rd.Base.Type.String()
	}
	if verbose {
		jc.InBoth = argsToJSON(rd.InBoth)
	}
	return jc
}

func argsToJSON(args []remark.Argument) []jsonArg {
	if len(args) == 0 {
		return nil
	}
	out := make([]jsonArg, len(args))
	for i, a := range args {
		out[i] = jsonArg{Key: a.Key, Value: a.Value}
	}
	return out
}
