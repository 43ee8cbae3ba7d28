package render

import (
	"errors"
	"fmt"

	"github.com/benjaminschreck/go-templatizer/pkg/templatizer/markup"
)

// ErrAlreadyResolved is returned when Resolve finds a jump target that was
// written before. Jump targets are set exactly once per node sequence.
var ErrAlreadyResolved = errors.New("node sequence is already resolved")

// UnbalancedError reports a directive that is closed without being opened,
// closed by a different directive, or never closed.
type UnbalancedError struct {
	Index int    // Index of the offending node
	Name  string // Tag name of the offending node
	Line  int
	Msg   string
}

func (e *UnbalancedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("unbalanced <%s> at node %d (line %d): %s", e.Name, e.Index, e.Line, e.Msg)
	}
	return fmt.Sprintf("unbalanced <%s> at node %d: %s", e.Name, e.Index, e.Msg)
}

// Resolve fills in the jump targets of every directive in nodes with a
// single forward pass:
//
//   - if: Start.Jump is the node after the matching End, used to skip the
//     body. The End falls through.
//   - swhile, ewhile: End.Jump is the index of the matching Start and End is
//     flagged LoopBack; Start.Jump is the node after the End, used to leave
//     the loop before its first iteration.
//
// Nodes are modified in place. On error the sequence is partially written
// and must be discarded.
func Resolve(nodes []markup.Node) error {
	var stack []int
	for i := range nodes {
		n := &nodes[i]
		d := n.Directive()
		if d == markup.DirectiveNone {
			continue
		}
		if n.Jump != markup.NoJump {
			return fmt.Errorf("node %d: %w", i, ErrAlreadyResolved)
		}

		switch n.Kind {
		case markup.KindStart:
			stack = append(stack, i)

		case markup.KindEnd:
			if len(stack) == 0 {
				return &UnbalancedError{Index: i, Name: n.Name, Line: n.Line, Msg: "closed without a matching open"}
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			open := &nodes[top]
			if open.Directive() != d {
				return &UnbalancedError{Index: i, Name: n.Name, Line: n.Line,
					Msg: fmt.Sprintf("closes <%s> opened at node %d", open.Name, top)}
			}

			open.Jump = i + 1
			if d.IsLoop() {
				n.Jump = top
				n.LoopBack = true
			}
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return &UnbalancedError{Index: top, Name: nodes[top].Name, Line: nodes[top].Line, Msg: "never closed"}
	}
	return nil
}

// MatchingEnd returns the index of the End node closing the Start node at
// startIdx.
func MatchingEnd(nodes []markup.Node, startIdx int) (int, error) {
	if startIdx < 0 || startIdx >= len(nodes) || nodes[startIdx].Kind != markup.KindStart {
		return -1, fmt.Errorf("node %d is not a start tag", startIdx)
	}
	depth := 1
	for i := startIdx + 1; i < len(nodes); i++ {
		switch nodes[i].Kind {
		case markup.KindStart:
			depth++
		case markup.KindEnd:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("no matching end found for <%s>", nodes[startIdx].Name)
}
