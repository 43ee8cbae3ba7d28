package templatizer

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel values matched by errors.Is against every typed error below.
var (
	ErrIO            = errors.New("i/o error")
	ErrParse         = errors.New("parse error")
	ErrUnbalanced    = errors.New("unbalanced control flow")
	ErrCyclicInclude = errors.New("cyclic include")
	ErrTypeMismatch  = errors.New("input type mismatch")
	ErrExhausted     = errors.New("input exhausted")
	ErrTrailingInput = errors.New("trailing input")
)

// IOError represents a failure to read a template or write rendered output
type IOError struct {
	Op    string
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("i/o error during %s of '%s': %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("i/o error during %s: %v", e.Op, e.Cause)
}

func (e *IOError) Unwrap() error        { return e.Cause }
func (e *IOError) Is(target error) bool { return target == ErrIO }

// ParseError represents markup that could not be loaded as a template
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error")
	if e.Path != "" {
		fmt.Fprintf(&b, " in '%s'", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ControlFlowError represents directives that do not nest properly
type ControlFlowError struct {
	Path  string
	Cause error
}

func (e *ControlFlowError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("control flow error in '%s': %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("control flow error: %v", e.Cause)
}

func (e *ControlFlowError) Unwrap() error        { return e.Cause }
func (e *ControlFlowError) Is(target error) bool { return target == ErrUnbalanced }

// CyclicIncludeError represents an include chain that revisits a file or
// exceeds the configured depth
type CyclicIncludeError struct {
	Chain    []string
	MaxDepth int
}

func (e *CyclicIncludeError) Error() string {
	chain := strings.Join(e.Chain, " -> ")
	if e.MaxDepth > 0 {
		return fmt.Sprintf("include depth exceeds %d: %s", e.MaxDepth, chain)
	}
	return fmt.Sprintf("cyclic include: %s", chain)
}

func (e *CyclicIncludeError) Is(target error) bool { return target == ErrCyclicInclude }

// TypeMismatchError represents an input item of the wrong kind at a
// substitution or directive point
type TypeMismatchError struct {
	Index    int
	Node     string
	Expected InputKind
	Found    InputKind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch at node %d %s: expected %s input, found %s", e.Index, e.Node, e.Expected, e.Found)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// ExhaustedInputError represents a substitution or directive point reached
// with no input left
type ExhaustedInputError struct {
	Index    int
	Node     string
	Expected InputKind
}

func (e *ExhaustedInputError) Error() string {
	return fmt.Sprintf("input exhausted at node %d %s: expected %s input", e.Index, e.Node, e.Expected)
}

func (e *ExhaustedInputError) Is(target error) bool { return target == ErrExhausted }

// TrailingInputError represents input left over when rendering reached the
// end of the template
type TrailingInputError struct {
	Remaining int
}

func (e *TrailingInputError) Error() string {
	return fmt.Sprintf("trailing input: %d item(s) not consumed", e.Remaining)
}

func (e *TrailingInputError) Is(target error) bool { return target == ErrTrailingInput }

// IsIOError checks if an error is an I/O error
func IsIOError(err error) bool {
	var e *IOError
	return errors.As(err, &e)
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// IsControlFlowError checks if an error is an unbalanced directive error
func IsControlFlowError(err error) bool {
	var e *ControlFlowError
	return errors.As(err, &e)
}

// IsRenderError checks if an error was raised while consuming input
func IsRenderError(err error) bool {
	return errors.Is(err, ErrTypeMismatch) || errors.Is(err, ErrExhausted) || errors.Is(err, ErrTrailingInput)
}

// errorKind names the error for logs and metric labels.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrExhausted):
		return "exhausted_input"
	case errors.Is(err, ErrTrailingInput):
		return "trailing_input"
	case errors.Is(err, ErrCyclicInclude):
		return "cyclic_include"
	case errors.Is(err, ErrUnbalanced):
		return "unbalanced"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "unknown"
	}
}
