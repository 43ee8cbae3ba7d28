package markup

import "fmt"

// Kind identifies which variant of Node is populated.
type Kind int

const (
	KindStart Kind = iota
	KindEnd
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Directive classifies structural tags that steer traversal instead of
// being emitted as markup.
type Directive int

const (
	DirectiveNone Directive = iota
	// DirectiveIf is a conditional body entered or skipped on one decision.
	DirectiveIf
	// DirectiveLoop is tested on entry and again at every close.
	DirectiveLoop
	// DirectiveDoLoop is tested only at its close, so its body runs at least once.
	DirectiveDoLoop
)

func (d Directive) String() string {
	switch d {
	case DirectiveIf:
		return KeywordIf
	case DirectiveLoop:
		return KeywordLoop
	case DirectiveDoLoop:
		return KeywordDoLoop
	default:
		return "none"
	}
}

// IsLoop reports whether closing the directive can jump backwards.
func (d Directive) IsLoop() bool {
	return d == DirectiveLoop || d == DirectiveDoLoop
}

// Reserved tag names.
const (
	KeywordIf      = "if"
	KeywordLoop    = "swhile"
	KeywordDoLoop  = "ewhile"
	KeywordInclude = "include"
)

// NoJump is the Jump value of a node that has no resolved target.
const NoJump = -1

// Attr is a single attribute as written in the template.
type Attr struct {
	Name  string
	Value string
}

// Node is one instruction of a compiled template. Which fields are
// meaningful depends on Kind:
//
//   - KindStart: Name, Tag, Attrs, Jump
//   - KindEnd:   Name, Tag, LoopBack, Jump
//   - KindText:  Text
//
// Jump is filled in once by jump resolution and is NoJump before that.
type Node struct {
	Kind     Kind
	Name     string
	Tag      int
	Attrs    []Attr
	Text     string
	Root     bool
	LoopBack bool
	Jump     int
	Line     int
}

// StartNode returns an unresolved start-tag node.
func StartNode(name string, tag int, attrs []Attr, line int) Node {
	return Node{Kind: KindStart, Name: name, Tag: tag, Attrs: attrs, Jump: NoJump, Line: line}
}

// EndNode returns an unresolved end-tag node.
func EndNode(name string, tag int, line int) Node {
	return Node{Kind: KindEnd, Name: name, Tag: tag, Jump: NoJump, Line: line}
}

// TextNode returns a character-data node.
func TextNode(text string, line int) Node {
	return Node{Kind: KindText, Tag: NoJump, Text: text, Jump: NoJump, Line: line}
}

// Directive returns the structural role of the node. Text nodes and the
// wrapper element are never directives.
func (n *Node) Directive() Directive {
	if n.Kind == KindText || n.Root {
		return DirectiveNone
	}
	return directiveForTag(n.Tag)
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *Node) String() string {
	switch n.Kind {
	case KindStart:
		if n.Jump != NoJump {
			return fmt.Sprintf("Start(%s -> %d)", n.Name, n.Jump)
		}
		return fmt.Sprintf("Start(%s)", n.Name)
	case KindEnd:
		if n.Jump != NoJump {
			return fmt.Sprintf("End(%s -> %d)", n.Name, n.Jump)
		}
		return fmt.Sprintf("End(%s)", n.Name)
	case KindText:
		return fmt.Sprintf("Text(%q)", n.Text)
	default:
		return "Node(?)"
	}
}
