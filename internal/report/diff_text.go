package report

import (
	"io"

	"github.com/fatih/color"

	"github.com/remarklens/remarklens/internal/diff"
	"github.com/remarklens/remarklens/internal/remark"
)

// TextOptions controls the human diff rendering.
type TextOptions struct {
	// Color highlights A-only content red, B-only green and type changes
	// yellow. Plain text otherwise.
	Color bool
	// Verbose prints the full argument list of one-sided remarks and the
	// arguments both sides share. The changed-argument split is always
	// printed.
	Verbose bool
}

var (
	onlyAColor    = color.New(color.FgRed)
	onlyBColor    = color.New(color.FgGreen)
	typeDiffColor = color.New(color.FgYellow)
)

const (
	onlyAMarker      = "Only at A >>>>"
	onlyBMarker      = "Only at B <<<<"
	blockEndMarker   = "====="
	sameHeaderMarker = "--- Has the same header ---"
)

// WriteDiffText renders location diffs in the layout compiler engineers read
// in their terminals: a dashed separator per location, the one-sided remarks,
// then the header-matched pairs with their argument split. Empty locations
// are skipped.
func WriteDiffText(w io.Writer, diffs []diff.LocationDiff, opts TextOptions) error {
	p := textPrinter{ew: &errWriter{w: w}, opts: opts}
	for i := range diffs {
		d := &diffs[i]
		if d.Empty() {
			continue
		}
		p.ew.puts("----------\n")
		p.ew.printf("%s:%s  Ln %d Col %d\n", d.Loc.File, d.Loc.Function, d.Loc.Line, d.Loc.Column)
		p.onlySide(d.OnlyA, onlyAMarker, onlyAColor)
		p.onlySide(d.OnlyB, onlyBMarker, onlyBColor)
		if len(d.SameHeader) > 0 {
			p.ew.puts(sameHeaderMarker + "\n")
			for j := range d.SameHeader {
				p.remarkDiff(&d.SameHeader[j])
			}
		}
	}
	return p.ew.err
}

type textPrinter struct {
	ew   *errWriter
	opts TextOptions
}

// line writes one colored line, or a plain one when color is off.
func (p *textPrinter) line(c *color.Color, s string) {
	if p.opts.Color {
		p.ew.puts(c.Sprint(s) + "\n")
	} else {
		p.ew.puts(s + "\n")
	}
}

func (p *textPrinter) onlySide(remarks []remark.Remark, marker string, c *color.Color) {
	if len(remarks) == 0 {
		return
	}
	p.line(c, marker)
	for i := range remarks {
		p.remark(&remarks[i])
		if i < len(remarks)-1 {
			p.ew.puts("\n")
		}
	}
	p.ew.puts(blockEndMarker + "\n")
}

func (p *textPrinter) remark(r *remark.Remark) {
	p.header(r.Name, r.Function, r.Pass)
	p.ew.printf("Type: %s\n", r.Type)
	if p.opts.Verbose && len(r.Args) > 0 {
		p.ew.puts("Args:\n")
		for _, a := range r.Args {
			p.ew.printf("\t%s: %s\n", a.Key, a.Value)
		}
	}
}

func (p *textPrinter) header(name, function, pass string) {
	p.ew.printf("Name: %s\n", name)
	p.ew.printf("FunctionName: %s\n", function)
	p.ew.printf("PassName: %s\n", pass)
}

func (p *textPrinter) remarkDiff(rd *diff.RemarkDiff) {
	p.header(rd.Base.Name, rd.Base.Function, rd.Base.Pass)
	if rd.TypeDiff != nil {
		p.line(onlyAColor, onlyAMarker)
		p.line(typeDiffColor, "Type: "+rd.TypeDiff.A.String())
		p.ew.puts(blockEndMarker + "\n")
		p.line(onlyBColor, onlyBMarker)
		p.line(typeDiffColor, "Type: "+rd.TypeDiff.B.String())
		p.ew.puts(blockEndMarker + "\n")
	}
	p.argSide(rd.OnlyA, onlyAMarker, onlyAColor)
	p.argSide(rd.OnlyB, onlyBMarker, onlyBColor)
	if p.opts.Verbose {
		for _, a := range rd.InBoth {
			p.ew.printf("%s: %s\n\n", a.Key, a.Value)
		}
	}
}

func (p *textPrinter) argSide(args []remark.Argument, marker string, c *color.Color) {
	if len(args) == 0 {
		return
	}
	p.line(c, marker)
	for i, a := range args {
		p.ew.printf("%s: %s\n", a.Key, a.Value)
		if i < len(args)-1 {
			p.ew.puts("\n")
		}
	}
	p.ew.puts(blockEndMarker + "\n")
}
