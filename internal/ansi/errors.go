package ansi

import "fmt"

// Error values reported through Sink.ReportError. All of them are
// recoverable: the parser returns to the Ground state and keeps going.

// MalformedSequenceError reports an escape sequence that did not match
// any recognized grammar.
type MalformedSequenceError struct {
	Description string
}

func (e MalformedSequenceError) Error() string {
	return "malformed sequence: " + e.Description
}

// InvalidParameterError reports a numeric parameter outside the domain
// the target command accepts (unknown SGR code, unknown mode number).
type InvalidParameterError struct {
	Command string
	Value   uint16
}

func (e InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %d for %s", e.Value, e.Command)
}

// IncompleteSequenceError reports a multi-parameter extended form
// (SGR 38/48) that ran out of parameters before its sub-grammar was
// satisfied.
type IncompleteSequenceError struct {
	Context string
}

func (e IncompleteSequenceError) Error() string {
	return "incomplete sequence: " + e.Context
}

// MacroRecursionError reports a macro invocation that exceeded the
// parser's recursion depth limit. The nested invocation is skipped;
// the stream continues.
type MacroRecursionError struct {
	ID int
}

func (e MacroRecursionError) Error() string {
	return fmt.Sprintf("macro %d exceeds recursion depth limit", e.ID)
}
