package remark

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackSource decodes a stream of msgpack-encoded remarks: a length-free
// concatenation of records read until EOF, the binary analogue of the YAML
// document stream.
type MsgpackSource struct {
	dec *msgpack.Decoder
	rec int
}

// NewMsgpackSource returns a Source reading msgpack records from r.
func NewMsgpackSource(r io.Reader) *MsgpackSource {
	return &MsgpackSource{dec: msgpack.NewDecoder(r)}
}

// Next decodes the next record. io.EOF signals a cleanly exhausted stream.
func (s *MsgpackSource) Next() (*Remark, error) {
	var r Remark
	if err := s.dec.Decode(&r); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("record %d: %w", s.rec+1, err)
	}
	s.rec++
	return &r, nil
}

// MsgpackSink writes remarks as concatenated msgpack records.
type MsgpackSink struct {
	enc *msgpack.Encoder
}

// NewMsgpackSink returns a Sink encoding remarks onto w.
func NewMsgpackSink(w io.Writer) *MsgpackSink {
	return &MsgpackSink{enc: msgpack.NewEncoder(w)}
}

// Write encodes one remark.
func (s *MsgpackSink) Write(r *Remark) error {
	return s.enc.Encode(r)
}
