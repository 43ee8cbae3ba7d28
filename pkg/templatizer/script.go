package templatizer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadScriptFile reads an input script from path. See ParseScript.
func LoadScriptFile(path string) (*Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read script", Path: path, Cause: err}
	}
	ch, err := parseScript(data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return ch, nil
}

// ParseScript reads a YAML input script: a sequence whose entries are
// either `text: <string>`, `control: skip|enter|repeat|stop`, or a bare
// string as shorthand for text.
//
//	- control: enter
//	- text: a
//	- control: repeat
//	- b
//	- control: stop
func ParseScript(r io.Reader) (*Channel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read script", Cause: err}
	}
	return parseScript(data)
}

func parseScript(data []byte) (*Channel, error) {
	ch := NewChannel()
	if len(bytes.TrimSpace(data)) == 0 {
		return ch, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	seq := &doc
	if seq.Kind == yaml.DocumentNode && len(seq.Content) == 1 {
		seq = seq.Content[0]
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, &ParseError{Line: seq.Line, Message: "input script must be a sequence"}
	}

	for _, entry := range seq.Content {
		in, err := scriptEntry(entry)
		if err != nil {
			return nil, err
		}
		ch.Add(in)
	}
	return ch, nil
}

func scriptEntry(n *yaml.Node) (Input, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return FillerText(n.Value), nil
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return Input{}, &ParseError{Line: n.Line, Message: "script entry must have exactly one key"}
		}
		key, value := n.Content[0], n.Content[1]
		if value.Kind != yaml.ScalarNode {
			return Input{}, &ParseError{Line: value.Line, Message: fmt.Sprintf("value of %q must be a scalar", key.Value)}
		}
		switch key.Value {
		case "text":
			return FillerText(value.Value), nil
		case "control":
			d, err := ParseDecision(value.Value)
			if err != nil {
				return Input{}, &ParseError{Line: value.Line, Message: err.Error()}
			}
			return Control(d), nil
		default:
			return Input{}, &ParseError{Line: key.Line, Message: fmt.Sprintf("unknown script key %q", key.Value)}
		}
	default:
		return Input{}, &ParseError{Line: n.Line, Message: "script entry must be a string or a mapping"}
	}
}
