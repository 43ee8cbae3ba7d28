package templatizer

import (
	"bufio"
	"io"
	"strings"

	"github.com/benjaminschreck/go-templatizer/pkg/templatizer/markup"
)

// interpreter walks a resolved node list with an instruction pointer,
// consuming one input item per placeholder or directive it reaches.
type interpreter struct {
	nodes     []markup.Node
	in        *Channel
	w         *bufio.Writer
	marker    rune
	rawFiller bool
	ip        int
}

func newInterpreter(t *Template, w io.Writer, in *Channel) *interpreter {
	return &interpreter{
		nodes:     t.nodes,
		in:        in,
		w:         bufio.NewWriter(w),
		marker:    t.marker,
		rawFiller: t.rawFiller,
	}
}

// run executes until the instruction pointer passes the last node. Buffered
// output is flushed whether or not an error occurred.
func (it *interpreter) run() error {
	err := it.exec()
	if ferr := it.w.Flush(); ferr != nil && err == nil {
		err = &IOError{Op: "write", Cause: ferr}
	}
	return err
}

func (it *interpreter) exec() error {
	for it.ip < len(it.nodes) {
		next, err := it.step(&it.nodes[it.ip])
		if err != nil {
			return err
		}
		it.ip = next
	}
	if n := it.in.Len(); n > 0 {
		return &TrailingInputError{Remaining: n}
	}
	return nil
}

// step executes the node at ip and returns the next instruction pointer.
func (it *interpreter) step(n *markup.Node) (int, error) {
	next := it.ip + 1

	switch n.Kind {
	case markup.KindStart:
		switch n.Directive() {
		case markup.DirectiveIf, markup.DirectiveLoop:
			d, err := it.control(n)
			if err != nil {
				return 0, err
			}
			if !d.Proceeds() {
				return n.Jump, nil
			}
			return next, nil
		case markup.DirectiveDoLoop:
			return next, nil
		}
		if n.Root {
			return next, nil
		}
		return next, it.startTag(n)

	case markup.KindEnd:
		switch n.Directive() {
		case markup.DirectiveLoop, markup.DirectiveDoLoop:
			d, err := it.control(n)
			if err != nil {
				return 0, err
			}
			if d.Proceeds() {
				// Resume at the first body node so the loop-open decision
				// is only asked when the loop is first reached.
				return n.Jump + 1, nil
			}
			return next, nil
		case markup.DirectiveIf:
			return next, nil
		}
		if n.Root {
			return next, nil
		}
		it.w.WriteString("</")
		it.w.WriteString(n.Name)
		it.w.WriteByte('>')
		return next, nil

	case markup.KindText:
		return next, it.text(n)
	}
	return next, nil
}

func (it *interpreter) startTag(n *markup.Node) error {
	it.w.WriteByte('<')
	it.w.WriteString(n.Name)
	for _, a := range n.Attrs {
		value := a.Value
		raw := false
		if isMarker(value, it.marker) {
			filler, err := it.filler(n)
			if err != nil {
				return err
			}
			value, raw = filler, it.rawFiller
		}
		it.w.WriteByte(' ')
		it.w.WriteString(a.Name)
		it.w.WriteString(`="`)
		if raw {
			it.w.WriteString(value)
		} else {
			escape(it.w, value, true)
		}
		it.w.WriteByte('"')
	}
	it.w.WriteByte('>')
	return nil
}

func (it *interpreter) text(n *markup.Node) error {
	s := n.Text
	for {
		i := strings.IndexRune(s, it.marker)
		if i < 0 {
			escape(it.w, s, false)
			return nil
		}
		escape(it.w, s[:i], false)
		filler, err := it.filler(n)
		if err != nil {
			return err
		}
		if it.rawFiller {
			it.w.WriteString(filler)
		} else {
			escape(it.w, filler, false)
		}
		s = s[i+len(string(it.marker)):]
	}
}

// filler pops the text item for a placeholder of n.
func (it *interpreter) filler(n *markup.Node) (string, error) {
	in, err := it.pop(n, InputText)
	return in.Text, err
}

// control pops the decision for the directive n.
func (it *interpreter) control(n *markup.Node) (Decision, error) {
	in, err := it.pop(n, InputControl)
	return in.Decision, err
}

func (it *interpreter) pop(n *markup.Node, want InputKind) (Input, error) {
	in, ok := it.in.pop()
	if !ok {
		return Input{}, &ExhaustedInputError{Index: it.ip, Node: n.String(), Expected: want}
	}
	if in.Kind != want {
		return Input{}, &TypeMismatchError{Index: it.ip, Node: n.String(), Expected: want, Found: in.Kind}
	}
	return in, nil
}

// escape writes s with the characters that would change its meaning as
// markup replaced by entities.
func escape(w *bufio.Writer, s string, attr bool) {
	last := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			if !attr {
				continue
			}
			esc = "&quot;"
		default:
			continue
		}
		w.WriteString(s[last:i])
		w.WriteString(esc)
		last = i + 1
	}
	w.WriteString(s[last:])
}
