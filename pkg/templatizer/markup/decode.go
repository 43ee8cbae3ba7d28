package markup

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// SyntaxError reports markup that cannot be turned into a node sequence.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// Decode reads a single well-formed document from r and returns one node per
// start tag, end tag and run of character data, in document order. The
// outermost element is flagged Root. Comments, processing instructions and
// doctype declarations are dropped. Whitespace outside the root element is
// ignored; anything else there is an error.
//
// A declared encoding other than UTF-8 is transcoded; an encoding that is
// not recognized is a SyntaxError.
//
// Tag names are registered in reg. Errors from r are returned unchanged so
// callers can tell I/O failures from bad markup.
func Decode(r io.Reader, reg *Registry) ([]Node, error) {
	d := xml.NewDecoder(r)
	d.Strict = true
	d.Entity = xml.HTMLEntity

	var badCharset string
	d.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		cr, err := charset.NewReaderLabel(label, input)
		if err != nil {
			badCharset = label
			return nil, err
		}
		return cr, nil
	}

	var (
		nodes    []Node
		open     []string
		seenRoot bool
	)
	for {
		tok, err := d.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if badCharset != "" {
				line, _ := d.InputPos()
				return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("unsupported encoding %q", badCharset)}
			}
			var se *xml.SyntaxError
			if errors.As(err, &se) {
				return nil, &SyntaxError{Line: se.Line, Msg: se.Msg}
			}
			return nil, err
		}
		line, _ := d.InputPos()

		switch t := tok.(type) {
		case xml.StartElement:
			name := qualify(t.Name)
			if len(open) == 0 {
				if seenRoot {
					return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("unexpected second root element <%s>", name)}
				}
				seenRoot = true
			}
			attrs := make([]Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				attrs = append(attrs, Attr{Name: qualify(a.Name), Value: a.Value})
			}
			n := StartNode(name, reg.Lookup(name), attrs, line)
			n.Root = len(open) == 0
			nodes = append(nodes, n)
			open = append(open, name)

		case xml.EndElement:
			name := qualify(t.Name)
			if len(open) == 0 {
				return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("unexpected end element </%s>", name)}
			}
			if top := open[len(open)-1]; top != name {
				return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("element <%s> closed by </%s>", top, name)}
			}
			open = open[:len(open)-1]
			n := EndNode(name, reg.Lookup(name), line)
			n.Root = len(open) == 0
			nodes = append(nodes, n)

		case xml.CharData:
			text := string(t)
			if len(open) == 0 {
				if strings.TrimSpace(text) != "" {
					return nil, &SyntaxError{Line: line, Msg: "character data outside the root element"}
				}
				continue
			}
			// CDATA sections and entity boundaries can split a run of text.
			if last := len(nodes) - 1; last >= 0 && nodes[last].Kind == KindText {
				nodes[last].Text += text
				continue
			}
			nodes = append(nodes, TextNode(text, line))
		}
	}

	if len(open) > 0 {
		line, _ := d.InputPos()
		return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("unexpected end of input, <%s> is not closed", open[len(open)-1])}
	}
	if !seenRoot {
		return nil, &SyntaxError{Msg: "no root element"}
	}
	return nodes, nil
}

func qualify(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
