// Package lexer tokenizes SQL text for the statement splitter and the
// completion analyzer.
//
// Unlike a parser-oriented scanner, this lexer covers the entire input:
// whitespace and comments are returned as tokens, so every byte of the
// source belongs to exactly one token and offsets can be mapped back
// without gaps. The input is usually mid-typing, so nothing here is an
// error: an unterminated string or block comment simply extends to the
// end of the input.
package lexer

import (
	"github.com/querybench/querybench/pkg/token"
)

// Options configures dialect-specific lexical rules.
type Options struct {
	// BacktickQuoting enables `...` quoted identifiers (MySQL).
	BacktickQuoting bool
	// BracketQuoting enables [...] quoted identifiers (SQL Server).
	BracketQuoting bool
	// NestedComments makes /* */ comments nest (Postgres).
	NestedComments bool
	// Reserved contains dialect-specific reserved words in addition to
	// the ANSI core set. Keys are lowercase.
	Reserved map[string]bool
}

// Lexer produces tokens for a single source text in one left-to-right pass.
// It is restartable by creating a new instance, not resumable mid-stream,
// and holds no state other than its scan cursor. Not safe for concurrent
// use; each analysis uses its own instance.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	opts    Options
}

// New creates a Lexer with default (ANSI) options.
func New(input string) *Lexer {
	return NewWithOptions(input, Options{})
}

// NewWithOptions creates a Lexer with dialect-specific options.
func NewWithOptions(input string, opts Options) *Lexer {
	l := &Lexer{input: input, opts: opts}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// atEOF reports whether the cursor is past the last input byte. The input
// may contain literal NUL bytes, so l.ch alone cannot serve as the end
// test.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// Next returns the next token. After the input is exhausted it returns
// EOF tokens indefinitely.
func (l *Lexer) Next() token.Token {
	start := l.pos

	switch {
	case l.atEOF():
		return token.Token{Kind: token.EOF, Start: len(l.input), End: len(l.input)}

	case isSpace(l.ch):
		for isSpace(l.ch) {
			l.readChar()
		}
		return l.emit(token.Whitespace, start)

	case l.ch == '-' && l.peekChar() == '-':
		l.readLineComment()
		return l.emit(token.Comment, start)

	case l.ch == '/' && l.peekChar() == '*':
		l.readBlockComment()
		return l.emit(token.Comment, start)

	case l.ch == '\'':
		l.readQuoted('\'')
		return l.emit(token.String, start)

	case l.ch == '"':
		l.readQuoted('"')
		return l.emit(token.QuotedIdent, start)

	case l.ch == '`' && l.opts.BacktickQuoting:
		l.readQuoted('`')
		return l.emit(token.QuotedIdent, start)

	case l.ch == '[' && l.opts.BracketQuoting:
		l.readBracketQuoted()
		return l.emit(token.QuotedIdent, start)

	case isLetter(l.ch) || l.ch == '_':
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '$' {
			l.readChar()
		}
		tok := l.emit(token.Ident, start)
		if l.isReserved(tok.Text) {
			tok.Kind = token.Keyword
			tok.Reserved = true
		}
		return tok

	case isDigit(l.ch):
		l.readNumber()
		return l.emit(token.Number, start)

	default:
		l.readOperator()
		return l.emit(token.Operator, start)
	}
}

// emit builds a token from the given start offset to the current position.
func (l *Lexer) emit(kind token.Kind, start int) token.Token {
	return token.Token{
		Kind:  kind,
		Text:  l.input[start:l.pos],
		Start: start,
		End:   l.pos,
	}
}

func (l *Lexer) isReserved(word string) bool {
	if token.IsReserved(word) {
		return true
	}
	if l.opts.Reserved == nil {
		return false
	}
	return l.opts.Reserved[asciiLower(word)]
}

// readLineComment consumes "--" up to but excluding the line break, so the
// newline stays visible to line-oriented consumers as whitespace.
func (l *Lexer) readLineComment() {
	for !l.atEOF() && l.ch != '\n' {
		l.readChar()
	}
}

// readBlockComment consumes a "/* */" comment. With NestedComments each
// inner "/*" requires its own "*/". An unterminated comment extends to EOF.
func (l *Lexer) readBlockComment() {
	l.readChar() // /
	l.readChar() // *
	depth := 1
	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			depth--
			if depth == 0 {
				return
			}
			continue
		}
		if l.opts.NestedComments && l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			depth++
			continue
		}
		l.readChar()
	}
}

// readQuoted consumes a quoted region delimited by q, honoring the
// doubled-quote escape. An unterminated quote extends to EOF.
func (l *Lexer) readQuoted(q byte) {
	l.readChar() // opening quote
	for !l.atEOF() {
		if l.ch == q {
			if l.peekChar() == q {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // closing quote
			return
		}
		l.readChar()
	}
}

// readBracketQuoted consumes a [...] identifier. No escape form exists.
func (l *Lexer) readBracketQuoted() {
	l.readChar() // [
	for !l.atEOF() && l.ch != ']' {
		l.readChar()
	}
	if l.ch == ']' {
		l.readChar()
	}
}

func (l *Lexer) readNumber() {
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
}

// readOperator consumes one operator, preferring two-char forms.
func (l *Lexer) readOperator() {
	switch l.ch {
	case '<':
		l.readChar()
		if l.ch == '=' || l.ch == '>' {
			l.readChar()
		}
	case '>', '!':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
		}
	case '|':
		l.readChar()
		if l.ch == '|' {
			l.readChar()
		}
	case ':':
		l.readChar()
		if l.ch == ':' {
			l.readChar()
		}
	default:
		l.readChar()
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func asciiLower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
