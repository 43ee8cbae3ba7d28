package templatizer

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestErrorTypes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		wantMsg  string
	}{
		{
			name:     "IOError",
			err:      &IOError{Op: "open", Path: "page.xml", Cause: os.ErrNotExist},
			sentinel: ErrIO,
			wantMsg:  "i/o error during open of 'page.xml': file does not exist",
		},
		{
			name:     "IOError without path",
			err:      &IOError{Op: "write", Cause: errors.New("broken pipe")},
			sentinel: ErrIO,
			wantMsg:  "i/o error during write: broken pipe",
		},
		{
			name:     "ParseError",
			err:      &ParseError{Path: "page.xml", Line: 3, Message: "element <p> closed by </r>"},
			sentinel: ErrParse,
			wantMsg:  "parse error in 'page.xml' at line 3: element <p> closed by </r>",
		},
		{
			name:     "ParseError without position",
			err:      &ParseError{Message: "no root element"},
			sentinel: ErrParse,
			wantMsg:  "parse error: no root element",
		},
		{
			name:     "ControlFlowError",
			err:      &ControlFlowError{Path: "page.xml", Cause: errors.New("unmatched </if>")},
			sentinel: ErrUnbalanced,
			wantMsg:  "control flow error in 'page.xml': unmatched </if>",
		},
		{
			name:     "CyclicIncludeError",
			err:      &CyclicIncludeError{Chain: []string{"a.xml", "b.xml", "a.xml"}},
			sentinel: ErrCyclicInclude,
			wantMsg:  "cyclic include: a.xml -> b.xml -> a.xml",
		},
		{
			name:     "CyclicIncludeError depth",
			err:      &CyclicIncludeError{Chain: []string{"0.xml", "1.xml"}, MaxDepth: 1},
			sentinel: ErrCyclicInclude,
			wantMsg:  "include depth exceeds 1: 0.xml -> 1.xml",
		},
		{
			name:     "TypeMismatchError",
			err:      &TypeMismatchError{Index: 4, Node: "Start(if -> 7)", Expected: InputControl, Found: InputText},
			sentinel: ErrTypeMismatch,
			wantMsg:  "type mismatch at node 4 Start(if -> 7): expected control input, found text",
		},
		{
			name:     "ExhaustedInputError",
			err:      &ExhaustedInputError{Index: 2, Node: `Text("@")`, Expected: InputText},
			sentinel: ErrExhausted,
			wantMsg:  `input exhausted at node 2 Text("@"): expected text input`,
		},
		{
			name:     "TrailingInputError",
			err:      &TrailingInputError{Remaining: 2},
			sentinel: ErrTrailingInput,
			wantMsg:  "trailing input: 2 item(s) not consumed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%T, %v) = false", tt.err, tt.sentinel)
			}
			wrapped := fmt.Errorf("render page: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("wrapped %T does not match %v", tt.err, tt.sentinel)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk on fire")

	ioErr := &IOError{Op: "read", Cause: cause}
	if !errors.Is(ioErr, cause) {
		t.Error("IOError should unwrap to its cause")
	}

	cfErr := &ControlFlowError{Cause: cause}
	if !errors.Is(cfErr, cause) {
		t.Error("ControlFlowError should unwrap to its cause")
	}
}

func TestErrorHelpers(t *testing.T) {
	ioErr := fmt.Errorf("wrapped: %w", &IOError{Op: "open", Cause: os.ErrNotExist})
	parseErr := &ParseError{Message: "bad"}
	cfErr := &ControlFlowError{Cause: errors.New("x")}
	renderErr := &ExhaustedInputError{Expected: InputText}

	if !IsIOError(ioErr) || IsIOError(parseErr) {
		t.Error("IsIOError mismatch")
	}
	if !IsParseError(parseErr) || IsParseError(ioErr) {
		t.Error("IsParseError mismatch")
	}
	if !IsControlFlowError(cfErr) || IsControlFlowError(parseErr) {
		t.Error("IsControlFlowError mismatch")
	}
	if !IsRenderError(renderErr) || IsRenderError(ioErr) {
		t.Error("IsRenderError mismatch")
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&TypeMismatchError{}, "type_mismatch"},
		{&ExhaustedInputError{}, "exhausted_input"},
		{&TrailingInputError{}, "trailing_input"},
		{&CyclicIncludeError{}, "cyclic_include"},
		{&ControlFlowError{}, "unbalanced"},
		{&ParseError{}, "parse"},
		{&IOError{}, "io"},
		{errors.New("other"), "unknown"},
	}
	for _, tt := range tests {
		if got := errorKind(tt.err); got != tt.want {
			t.Errorf("errorKind(%T) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
