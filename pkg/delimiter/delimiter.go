// Package delimiter decides, token by token, what terminates the SQL
// statement currently being scanned.
//
// The default terminator is ";", but scripts can rebind it (the DELIMITER
// command), override it with a session-wide alternate, or suspend it
// entirely inside constructs whose bodies contain semicolons that are not
// statement boundaries (COPY payloads, BEGIN ATOMIC procedure bodies).
// A Policy is a small state machine fed every token in document order;
// the statement splitter asks it for the effective terminator after each
// token.
package delimiter

import "github.com/querybench/querybench/pkg/token"

// Definition describes a statement terminator. It is a value type: policies
// and splitters copy it freely and never share it mutably.
type Definition struct {
	// Text is the terminator text, e.g. ";", "//" or "GO".
	Text string

	// Inclusive marks a terminator that belongs to the statement it ends,
	// such as the lone "." line closing a COPY ... FROM STDIN payload.
	// The splitter extends the statement span through an inclusive
	// terminator instead of cutting before it.
	Inclusive bool
}

// Standard is the default single-character ";" terminator.
var Standard = Definition{Text: ";"}

// IsStandard reports whether this is the default ";" terminator.
func (d Definition) IsStandard() bool {
	return d.Text == ";"
}

// IsNonStandard reports whether the terminator is a multi-character or
// otherwise non-default delimiter. Non-standard delimiters are only
// recognized when they form the sole content of a line.
func (d Definition) IsNonStandard() bool {
	return d.Text != "" && !d.IsStandard()
}

// IsEmpty reports whether no terminator is defined.
func (d Definition) IsEmpty() bool {
	return d.Text == ""
}

// Policy classifies tokens to track the effective statement terminator.
// A Policy instance carries scratch state for one source text only and is
// not safe for concurrent use; create a fresh one per scan.
type Policy interface {
	// CurrentToken feeds the next token in document order. atStatementStart
	// is true for the first non-trivia token of a statement or line.
	// Each token is fed exactly once.
	CurrentToken(tok token.Token, atStatementStart bool)

	// CurrentDelimiter returns the terminator that ends the statement
	// currently being scanned.
	CurrentDelimiter() Definition

	// IsSingleLineStatement reports whether the current statement ends at
	// the next line break regardless of the configured terminator.
	IsSingleLineStatement() bool

	// StatementFinished resets per-statement state. The splitter calls it
	// after closing each statement span.
	StatementFinished()

	// LineEnd notifies the policy of a line boundary.
	LineEnd()
}
