package remark

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"gopkg.in/yaml.v3"
)

// YAMLSource decodes the YAML document stream emitted by compilers: one
// document per remark, tagged with the remark type ("--- !Missed").
type YAMLSource struct {
	dec *yaml.Decoder
	doc int
}

// NewYAMLSource returns a Source reading the YAML remark stream from r.
func NewYAMLSource(r io.Reader) *YAMLSource {
	return &YAMLSource{dec: yaml.NewDecoder(r)}
}

// Next decodes the next document. io.EOF signals a cleanly exhausted stream.
func (s *YAMLSource) Next() (*Remark, error) {
	var node yaml.Node
	if err := s.dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	s.doc++

	root := &node
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) != 1 {
			return nil, fmt.Errorf("document %d: expected a single remark mapping", s.doc)
		}
		root = root.Content[0]
	}
	r, err := remarkFromNode(root)
	if err != nil {
		return nil, fmt.Errorf("document %d: %w", s.doc, err)
	}
	return r, nil
}

func remarkFromNode(root *yaml.Node) (*Remark, error) {
	typ, err := typeFromTag(root.Tag)
	if err != nil {
		return nil, err
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("remark body must be a mapping")
	}

	r := &Remark{Type: typ}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "Pass":
			r.Pass, err = scalarValue("Pass", value)
		case "Name":
			r.Name, err = scalarValue("Name", value)
		case "Function":
			r.Function, err = scalarValue("Function", value)
		case "DebugLoc":
			var loc DebugLoc
			if loc, err = locFromNode(value); err == nil {
				r.Loc = &loc
			}
		case "Hotness":
			var raw string
			if raw, err = scalarValue("Hotness", value); err == nil {
				var h uint64
				if h, err = strconv.ParseUint(raw, 10, 64); err == nil {
					r.Hotness = &h
				} else {
					err = fmt.Errorf("invalid Hotness %q: %w", raw, err)
				}
			}
		case "Args":
			r.Args, err = argsFromNode(value)
		default:
			err = fmt.Errorf("unknown remark field %q", key.Value)
		}
		if err != nil {
			return nil, err
		}
	}

	for _, req := range []struct{ field, value string }{
		{"Pass", r.Pass}, {"Name", r.Name}, {"Function", r.Function},
	} {
		if req.value == "" {
			return nil, fmt.Errorf("missing required field %q", req.field)
		}
	}
	return r, nil
}

// typeFromTag resolves the document tag to a remark type. Untagged documents
// carry the implicit "!!map" tag and are rejected like any other unknown tag.
func typeFromTag(tag string) (Type, error) {
	name := strings.TrimPrefix(tag, "!")
	for t, known := range typeNames {
		if Type(t) != Unknown && name == known {
			return Type(t), nil
		}
	}
	return Unknown, fmt.Errorf("unknown remark tag %q", tag)
}

func scalarValue(field string, n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("field %q must be a scalar", field)
	}
	return n.Value, nil
}

func locFromNode(n *yaml.Node) (DebugLoc, error) {
	if n.Kind != yaml.MappingNode {
		return DebugLoc{}, fmt.Errorf("DebugLoc must be a mapping")
	}
	var loc DebugLoc
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		raw, err := scalarValue(key.Value, value)
		if err != nil {
			return DebugLoc{}, err
		}
		switch key.Value {
		case "File":
			loc.File = raw
		case "Line":
			loc.Line, err = parseCoordinate("Line", raw)
		case "Column":
			loc.Column, err = parseCoordinate("Column", raw)
		default:
			err = fmt.Errorf("unknown DebugLoc field %q", key.Value)
		}
		if err != nil {
			return DebugLoc{}, err
		}
	}
	return loc, nil
}

// parseCoordinate rejects negative and overflowing line/column values instead
// of letting them wrap.
func parseCoordinate(field, raw string) (uint32, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	c, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	return c, nil
}

func argsFromNode(n *yaml.Node) ([]Argument, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("Args must be a sequence")
	}
	args := make([]Argument, 0, len(n.Content))
	for idx, el := range n.Content {
		arg, err := argFromNode(el)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", idx, err)
		}
		args = append(args, arg)
	}
	return args, nil
}

// argFromNode decodes one argument mapping: exactly one key/value pair plus
// an optional DebugLoc entry.
func argFromNode(n *yaml.Node) (Argument, error) {
	if n.Kind != yaml.MappingNode {
		return Argument{}, fmt.Errorf("argument must be a mapping")
	}
	var arg Argument
	seen := false
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.Value == "DebugLoc" {
			loc, err := locFromNode(value)
			if err != nil {
				return Argument{}, err
			}
			arg.Loc = &loc
			continue
		}
		if seen {
			return Argument{}, fmt.Errorf("argument carries more than one value key")
		}
		raw, err := scalarValue(key.Value, value)
		if err != nil {
			return Argument{}, err
		}
		arg.Key, arg.Value = key.Value, raw
		seen = true
	}
	if !seen {
		return Argument{}, fmt.Errorf("argument carries no value key")
	}
	return arg, nil
}

// YAMLSink writes remarks as a YAML document stream in the same layout
// compilers emit, so the output remains readable by other remark tooling.
type YAMLSink struct {
	w io.Writer
}

// NewYAMLSink returns a Sink encoding remarks onto w.
func NewYAMLSink(w io.Writer) *YAMLSink {
	return &YAMLSink{w: w}
}

// Write encodes one remark as a tagged YAML document.
func (s *YAMLSink) Write(r *Remark) error {
	if r.Type == Unknown {
		return fmt.Errorf("cannot encode remark %q: unknown remark type", r.Name)
	}
	body, err := yaml.Marshal(bodyNode(r))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "--- !%s\n", r.Type); err != nil {
		return err
	}
	_, err = s.w.Write(body)
	return err
}

func bodyNode(r *Remark) *yaml.Node {
	body := &yaml.Node{Kind: yaml.MappingNode}
	pair := func(key string, value *yaml.Node) {
		body.Content = append(body.Content, scalarNode(key), value)
	}
	pair("Pass", scalarNode(r.Pass))
	pair("Name", scalarNode(r.Name))
	if r.Loc != nil {
		pair("DebugLoc", locNode(*r.Loc))
	}
	pair("Function", scalarNode(r.Function))
	if r.Hotness != nil {
		pair("Hotness", scalarNode(strconv.FormatUint(*r.Hotness, 10)))
	}
	if len(r.Args) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, arg := range r.Args {
			seq.Content = append(seq.Content, argNode(arg))
		}
		pair("Args", seq)
	}
	return body
}

func argNode(arg Argument) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	n.Content = append(n.Content, scalarNode(arg.Key), scalarNode(arg.Value))
	if arg.Loc != nil {
		n.Content = append(n.Content, scalarNode("DebugLoc"), locNode(*arg.Loc))
	}
	return n
}

func locNode(loc DebugLoc) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
	n.Content = append(n.Content,
		scalarNode("File"), scalarNode(loc.File),
		scalarNode("Line"), scalarNode(strconv.FormatUint(uint64(loc.Line), 10)),
		scalarNode("Column"), scalarNode(strconv.FormatUint(uint64(loc.Column), 10)),
	)
	return n
}

func scalarNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}
