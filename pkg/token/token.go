// Package token defines the lexical token model for SQL script analysis.
//
// Tokens cover the entire source text with no gaps: whitespace and comments
// are tokens too, so consumers that need exact source offsets (the statement
// splitter, the completion analyzer) never have to re-derive them.
package token

import "strings"

// Kind classifies a lexical token.
type Kind int

const (
	// EOF marks the end of input.
	EOF Kind = iota
	// Whitespace is a run of spaces, tabs and newlines.
	Whitespace
	// Comment is a line (--) or block (/* */) comment, markers included.
	Comment
	// Keyword is an identifier that matches a reserved word.
	Keyword
	// Ident is a plain, unquoted identifier.
	Ident
	// QuotedIdent is a quoted identifier ("...", `...` or [...]), quotes included.
	QuotedIdent
	// Operator is a punctuation or operator token (including ';', '(' and ')').
	Operator
	// Number is a numeric literal.
	Number
	// String is a single-quoted string literal, quotes included.
	String
)

var kindNames = map[Kind]string{
	EOF:         "EOF",
	Whitespace:  "WHITESPACE",
	Comment:     "COMMENT",
	Keyword:     "KEYWORD",
	Ident:       "IDENT",
	QuotedIdent: "QUOTED_IDENT",
	Operator:    "OPERATOR",
	Number:      "NUMBER",
	String:      "STRING",
}

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is one lexical token with its source offsets.
// Tokens are immutable values once produced by the lexer.
type Token struct {
	Kind     Kind
	Text     string
	Start    int // byte offset of the first byte
	End      int // byte offset just past the last byte
	Reserved bool
}

// IsTrivia returns true for whitespace and comment tokens, which never
// carry statement structure.
func (t Token) IsTrivia() bool {
	return t.Kind == Whitespace || t.Kind == Comment
}

// Is reports whether the token text matches the given word, ignoring case.
// Intended for keyword and identifier comparisons.
func (t Token) Is(word string) bool {
	return strings.EqualFold(t.Text, word)
}

// ContainsNewline reports whether the token spans a line boundary.
func (t Token) ContainsNewline() bool {
	return strings.IndexByte(t.Text, '\n') >= 0
}

// Span is a half-open byte range in the source text.
type Span struct {
	Start int
	End   int
}

// Contains reports whether the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}
