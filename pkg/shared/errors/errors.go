package errors

import "fmt"

// InvalidPatternError reports a filter expression that failed to compile as a
// regular expression. It is raised while filters are being constructed,
// before any remark record has been read.
type InvalidPatternError struct {
	Expr string
	Err  error
}

// Error implements the error interface for InvalidPatternError.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid filter pattern %q: %v", e.Expr, e.Err)
}

// Unwrap returns the underlying regexp compilation error.
func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// NewInvalidPatternError creates a new InvalidPatternError instance.
func NewInvalidPatternError(expr string, err error) error {
	return &InvalidPatternError{Expr: expr, Err: err}
}

// SourceError reports a failure while decoding a remark stream. The decoder
// error is carried verbatim; end-of-stream is signalled with io.EOF and is
// never wrapped in a SourceError.
type SourceError struct {
	Path string
	Err  error
}

// Error implements the error interface for SourceError.
func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to read remarks from %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError instance.
func NewSourceError(path string, err error) error {
	return &SourceError{Path: path, Err: err}
}

// SinkError reports a failure while writing a report to its destination.
type SinkError struct {
	Path string
	Err  error
}

// Error implements the error interface for SinkError.
func (e *SinkError) Error() string {
	return fmt.Sprintf("failed to write report to %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying write error.
func (e *SinkError) Unwrap() error {
	return e.Err
}

// NewSinkError creates a new SinkError instance.
func NewSinkError(path string, err error) error {
	return &SinkError{Path: path, Err: err}
}
