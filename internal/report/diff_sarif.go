package report

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/remarklens/remarklens/internal/diff"
)

const (
	toolName       = "remarklens"
	informationURI = "https://github.com/remarklens/remarklens"
)

// WriteDiffSarif renders the diff as a SARIF 2.1.0 report: one note-level
// result per one-sided remark, one warning-level result per changed pair.
// The run GUID is derived from the input names, so identical invocations
// produce byte-identical reports.
func WriteDiffSarif(w io.Writer, in Inputs, diffs []diff.LocationDiff, version string) error {
	rep, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("creating SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, informationURI)
	if version != "" {
		run.Tool.Driver.SemanticVersion = &version
	}
	run.WithAutomationDetails(sarif.NewRunAutomationDetails().WithGUID(runGUID(in)))

	for i := range diffs {
		d := &diffs[i]
		if d.Empty() {
			continue
		}
		for j := range d.OnlyA {
			r := &d.OnlyA[j]
			addResult(run, d, r.Pass, r.Name, "note",
				fmt.Sprintf("%s remark %q from pass %q is only in %s", r.Type, r.Name, r.Pass, in.A))
		}
		for j := range d.OnlyB {
			r := &d.OnlyB[j]
			addResult(run, d, r.Pass, r.Name, "note",
				fmt.Sprintf("%s remark %q from pass %q is only in %s", r.Type, r.Name, r.Pass, in.B))
		}
		for j := range d.SameHeader {
			rd := &d.SameHeader[j]
			addResult(run, d, rd.Base.Pass, rd.Base.Name, "warning", changeMessage(rd, in))
		}
	}

	rep.AddRun(run)
	return rep.PrettyWrite(w)
}

func changeMessage(rd *diff.RemarkDiff, in Inputs) string {
	if rd.TypeDiff != nil {
		return fmt.Sprintf("remark %q from pass %q changed type from %s in %s to %s in %s",
			rd.Base.Name, rd.Base.Pass, rd.TypeDiff.A, in.A, rd.TypeDiff.B, in.B)
	}
	return fmt.Sprintf("remark %q from pass %q has %d argument(s) only in %s and %d only in %s",
		rd.Base.Name, rd.Base.Pass, len(rd.OnlyA), in.A, len(rd.OnlyB), in.B)
}

func addResult(run *sarif.Run, d *diff.LocationDiff, pass, name, level, message string) {
	ruleID := pass + ":" + name
	run.AddRule(ruleID).
		WithDescription(fmt.Sprintf("remark %q emitted by pass %q", name, pass))

	result := sarif.NewRuleResult(ruleID).
		WithMessage(sarif.NewTextMessage(message)).
		WithLevel(level)
	if d.Loc.File != "" {
		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(d.Loc.File)).
				WithRegion(sarif.NewRegion().
					WithStartLine(int(d.Loc.Line)).
					WithStartColumn(int(d.Loc.Column))),
		)
		result.WithLocations([]*sarif.Location{location})
	}
	run.AddResult(result)
}

// runGUID derives a stable identifier for the (A, B) input pair.
func runGUID(in Inputs) string {
	seed := toolName + ":" + in.A + "\x00" + in.B
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
}
