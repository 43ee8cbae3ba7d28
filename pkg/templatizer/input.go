package templatizer

import (
	"fmt"
	"strings"
)

// InputKind is the type of an input item.
type InputKind int

const (
	InputText InputKind = iota
	InputControl
)

func (k InputKind) String() string {
	switch k {
	case InputText:
		return "text"
	case InputControl:
		return "control"
	default:
		return "unknown"
	}
}

// Decision is the caller's answer at a directive.
//
// Enter and Repeat proceed: they enter a conditional or loop body, or
// iterate a loop once more. Skip and Stop decline: they skip a body or
// leave a loop. Any decision is accepted at any directive.
type Decision int

const (
	Skip Decision = iota
	Enter
	Repeat
	Stop
)

func (d Decision) String() string {
	switch d {
	case Skip:
		return "skip"
	case Enter:
		return "enter"
	case Repeat:
		return "repeat"
	case Stop:
		return "stop"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Proceeds reports whether the decision enters or continues a body.
func (d Decision) Proceeds() bool {
	return d == Enter || d == Repeat
}

// ParseDecision parses the lower-case decision names.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip":
		return Skip, nil
	case "enter":
		return Enter, nil
	case "repeat":
		return Repeat, nil
	case "stop":
		return Stop, nil
	}
	return 0, fmt.Errorf("unknown control decision %q", s)
}

// Input is a single item of the input stream: filler text for a
// placeholder or a decision for a directive.
type Input struct {
	Kind     InputKind
	Text     string
	Decision Decision
}

// FillerText returns a text input item.
func FillerText(text string) Input {
	return Input{Kind: InputText, Text: text}
}

// Control returns a control input item.
func Control(d Decision) Input {
	return Input{Kind: InputControl, Decision: d}
}

func (in Input) String() string {
	if in.Kind == InputControl {
		return "control(" + in.Decision.String() + ")"
	}
	return fmt.Sprintf("text(%q)", in.Text)
}

// Channel is the ordered input stream of one render. Items are consumed
// first-in first-out, in the order they were added. A Channel is drained by
// rendering and is not safe for concurrent use.
type Channel struct {
	items []Input
	head  int
}

// NewChannel returns a channel holding items.
func NewChannel(items ...Input) *Channel {
	c := &Channel{}
	c.Add(items...)
	return c
}

// Add appends items to the end of the stream.
func (c *Channel) Add(items ...Input) {
	c.items = append(c.items, items...)
}

// AddFillerText appends one text item per argument.
func (c *Channel) AddFillerText(texts ...string) {
	for _, t := range texts {
		c.items = append(c.items, FillerText(t))
	}
}

// AddControl appends one control item per argument.
func (c *Channel) AddControl(decisions ...Decision) {
	for _, d := range decisions {
		c.items = append(c.items, Control(d))
	}
}

// Len returns the number of items not yet consumed.
func (c *Channel) Len() int {
	return len(c.items) - c.head
}

// Items returns a copy of the items not yet consumed.
func (c *Channel) Items() []Input {
	out := make([]Input, c.Len())
	copy(out, c.items[c.head:])
	return out
}

// Reset drops every pending item.
func (c *Channel) Reset() {
	c.items = nil
	c.head = 0
}

func (c *Channel) pop() (Input, bool) {
	if c.head >= len(c.items) {
		return Input{}, false
	}
	in := c.items[c.head]
	c.items[c.head] = Input{}
	c.head++
	if c.head == len(c.items) {
		c.items = c.items[:0]
		c.head = 0
	}
	return in, true
}
