// Package report renders diff and count results. Writers never re-sort:
// whatever order the engines produced is the order on the wire.
package report

import (
	"fmt"
	"io"
)

// Inputs names the two compared remark files, for report headers and for
// deriving a stable run identity.
type Inputs struct {
	A string
	B string
}

// errWriter wraps an io.Writer and remembers the first write error, so the
// line-oriented writers don't need an error check per line.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) puts(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}
