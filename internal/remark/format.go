package remark

import (
	"fmt"
	"io"
)

// Format identifies an on-disk remark stream encoding.
type Format uint8

const (
	FormatYAML Format = iota
	FormatMsgpack
)

// ParseFormat converts a format name from the command line to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "yaml":
		return FormatYAML, nil
	case "msgpack":
		return FormatMsgpack, nil
	}
	return FormatYAML, fmt.Errorf("unknown remark format %q, expected yaml or msgpack", s)
}

// String returns the command-line spelling of the format.
func (f Format) String() string {
	switch f {
	case FormatMsgpack:
		return "msgpack"
	default:
		return "yaml"
	}
}

// NewSource returns the stream decoder for the format.
func (f Format) NewSource(r io.Reader) Source {
	if f == FormatMsgpack {
		return NewMsgpackSource(r)
	}
	return NewYAMLSource(r)
}

// NewSink returns the stream encoder for the format.
func (f Format) NewSink(w io.Writer) Sink {
	if f == FormatMsgpack {
		return NewMsgpackSink(w)
	}
	return NewYAMLSink(w)
}
