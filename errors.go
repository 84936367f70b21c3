// errors.go — the error taxonomy (spec.md §7) and caret-snippet rendering.
//
// Grounded on the teacher's errors.go (WrapErrorWithSource /
// prettyErrorStringLabeled), which turns a *LexError/*ParseError/
// *RuntimeError with 1-based Line/Col into a Python-style snippet with a
// caret under the offending column. Here a single *EvalError type carries
// the §7 Kind tag instead of three separate Go types, since spec.md's
// taxonomy is a single flat enum rather than the teacher's lex/parse/
// runtime split.
package goscheme

import (
	"fmt"
	"strings"
)

// ErrorKind is the closed set of error tags from spec.md §7.
type ErrorKind uint8

const (
	KindNumArgs ErrorKind = iota
	KindTypeMismatch
	KindParser
	KindBadSpecialForm
	KindNotFunction
	KindUnboundVar
	KindDivideByZero
	KindNotImplemented
	KindDefault
)

func (k ErrorKind) String() string {
	switch k {
	case KindNumArgs:
		return "NumArgs"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindParser:
		return "Parser"
	case KindBadSpecialForm:
		return "BadSpecialForm"
	case KindNotFunction:
		return "NotFunction"
	case KindUnboundVar:
		return "UnboundVar"
	case KindDivideByZero:
		return "DivideByZero"
	case KindNotImplemented:
		return "NotImplemented"
	default:
		return "Default"
	}
}

// EvalError is the Go error type every operation in this repository
// returns or panics with. Line/Col are 1-based when known (0 otherwise);
// Form, when non-zero, is the offending value for diagnostic display.
type EvalError struct {
	Kind ErrorKind
	Msg  string
	Line int
	Col  int
	Form Value
	hasForm bool
}

func (e *EvalError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newEvalError(kind ErrorKind, msg string, form Value) *EvalError {
	return &EvalError{Kind: kind, Msg: msg, Form: form, hasForm: true}
}

func newEvalErrorNoForm(kind ErrorKind, msg string) *EvalError {
	return &EvalError{Kind: kind, Msg: msg}
}

func errNumArgs(expected, given int) *EvalError {
	return newEvalErrorNoForm(KindNumArgs, fmt.Sprintf("expected %d argument(s), got %d", expected, given))
}

func errNumArgsAtLeast(expected, given int) *EvalError {
	return newEvalErrorNoForm(KindNumArgs, fmt.Sprintf("expected at least %d argument(s), got %d", expected, given))
}

func errTypeMismatch(expected string, got Value) *EvalError {
	return newEvalError(KindTypeMismatch, fmt.Sprintf("expected %s, got %s", expected, got.typeName()), got)
}

func errNotFunction(v Value) *EvalError {
	return newEvalError(KindNotFunction, fmt.Sprintf("not a procedure: %s", Show(v)), v)
}

func errUnboundVar(ns, name string) *EvalError {
	kind := "variable"
	if ns == NsMacro {
		kind = "macro"
	}
	return newEvalErrorNoForm(KindUnboundVar, fmt.Sprintf("unbound %s: %s", kind, name))
}

func errBadSpecialForm(msg string, form Value) *EvalError {
	return newEvalError(KindBadSpecialForm, msg, form)
}

// WithLocation attaches (or overwrites) 1-based source coordinates,
// returning the same error for chaining at parse/load sites.
func (e *EvalError) WithLocation(line, col int) *EvalError {
	e.Line, e.Col = line, col
	return e
}

// WrapErrorWithSource renders err as a caret-annotated snippet against src
// if err is an *EvalError carrying a known location; otherwise err is
// returned unchanged. Mirrors the teacher's WrapErrorWithSource contract.
func WrapErrorWithSource(err error, name, src string) error {
	ee, ok := err.(*EvalError)
	if !ok || ee.Line <= 0 {
		return err
	}
	return fmt.Errorf("%s", prettyErrorSnippet(src, ee.Kind.String(), name, ee.Line, ee.Col, ee.Msg))
}

func prettyErrorSnippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
