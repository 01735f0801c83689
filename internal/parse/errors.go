// Package parse lowers the three CLI surfaces into ordered action lists.
package parse

import "fmt"

// ParseError reports a malformed flag, clause or sequence document.
// Execution never starts once one is raised.
type ParseError struct {
	Fragment string
	Err      error
}

// Error names the offending fragment when one is known.
func (e *ParseError) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("%s: %v", e.Fragment, e.Err)
	}
	return e.Err.Error()
}

// Unwrap exposes the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnknownCommandError reports an unrecognized mini-language command.
type UnknownCommandError struct {
	Index  int
	Clause string
}

// Error names the clause index and text.
func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("clause %d: unknown command in %q", e.Index, e.Clause)
}

// MalformedActionError reports a clause or step missing required
// arguments or carrying unparseable values.
type MalformedActionError struct {
	Index  int
	Clause string
	Reason string
}

// Error names the clause index, text and reason.
func (e *MalformedActionError) Error() string {
	if e.Clause != "" {
		return fmt.Sprintf("clause %d (%q): %s", e.Index, e.Clause, e.Reason)
	}
	return fmt.Sprintf("step %d: %s", e.Index, e.Reason)
}

// UnknownActionTypeError reports an unrecognized type field in a
// sequence document.
type UnknownActionTypeError struct {
	Index int
	Type  string
}

// Error names the step index and the offending type string.
func (e *UnknownActionTypeError) Error() string {
	return fmt.Sprintf("step %d: unknown action type %q", e.Index, e.Type)
}
