// Package splitter carves a script into individually executable statement
// spans.
//
// The splitter drives the lexer token by token and asks a delimiter.Policy
// for the effective terminator after each token, so vendor constructs whose
// bodies contain semicolons (COPY payloads, BEGIN ATOMIC bodies) stay in
// one piece. It never fails on malformed input: an unterminated trailing
// statement simply becomes the final span.
package splitter

import (
	"github.com/querybench/querybench/pkg/delimiter"
	"github.com/querybench/querybench/pkg/lexer"
	"github.com/querybench/querybench/pkg/token"
)

// Span is one statement's half-open byte range in the source text.
// Spans produced for one text are non-overlapping and strictly increasing.
type Span struct {
	Start int
	End   int

	// Delimiter is the terminator that closed this span. It is the zero
	// Definition for a trailing statement that was never terminated.
	Delimiter delimiter.Definition
}

// Text returns the statement text for this span.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

// Terminated reports whether the span was closed by an explicit terminator.
func (s Span) Terminated() bool {
	return !s.Delimiter.IsEmpty()
}

// Splitter splits scripts using dialect-specific lexical rules.
// The zero value uses ANSI rules.
type Splitter struct {
	LexOptions lexer.Options
}

// Split splits text with ANSI lexical rules and the given policy.
func Split(text string, pol delimiter.Policy) []Span {
	return Splitter{}.Split(text, pol)
}

// Split carves text into statement spans. The policy instance carries state
// for this one scan; callers pass a fresh one each time.
func (sp Splitter) Split(text string, pol delimiter.Policy) []Span {
	lx := lexer.NewWithOptions(text, sp.LexOptions)

	var spans []Span
	stmtStart := -1 // start of current statement, -1 while between statements
	lastEnd := 0    // end of the last non-trivia token of the current statement
	atStart := true // next non-trivia token opens a statement
	lineSeen := false

	// Non-trivia tokens of the current line, used to recognize
	// non-standard delimiters that must stand alone on a line.
	// endBeforeLine is lastEnd as of the line's first token, so a
	// delimiter line closes the statement at the previous line's last
	// token rather than at the line break.
	var lineToks []token.Token
	endBeforeLine := 0

	closeSpan := func(end int, del delimiter.Definition) {
		if stmtStart >= 0 && end > stmtStart {
			spans = append(spans, Span{Start: stmtStart, End: end, Delimiter: del})
		}
		pol.StatementFinished()
		stmtStart = -1
		atStart = true
		lineToks = lineToks[:0]
	}

	lineEnd := func() {
		switch {
		case stmtStart >= 0 && pol.IsSingleLineStatement():
			closeSpan(lastEnd, pol.CurrentDelimiter())
		default:
			if del := pol.CurrentDelimiter(); del.IsNonStandard() && lineIsDelimiter(lineToks, del.Text) {
				if del.Inclusive {
					closeSpan(lineToks[len(lineToks)-1].End, del)
				} else {
					closeSpan(endBeforeLine, del)
				}
			}
		}
		pol.LineEnd()
		lineToks = lineToks[:0]
		lineSeen = false
	}

	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			lineEnd()
			break
		}
		if tok.IsTrivia() {
			if tok.Kind == token.Whitespace && tok.ContainsNewline() {
				for range newlineCount(tok.Text) {
					lineEnd()
				}
			}
			continue
		}

		if stmtStart < 0 {
			stmtStart = tok.Start
		}
		first := atStart || !lineSeen
		atStart = false
		lineSeen = true

		pol.CurrentToken(tok, first)

		if del := pol.CurrentDelimiter(); del.IsStandard() &&
			tok.Kind == token.Operator && tok.Text == del.Text {
			closeSpan(lastEnd, del)
			continue
		}

		if len(lineToks) == 0 {
			endBeforeLine = lastEnd
		}
		lastEnd = tok.End
		lineToks = append(lineToks, tok)
	}

	// Trailing text with real tokens becomes a final unterminated span;
	// trailing whitespace and comments are discarded.
	if stmtStart >= 0 && lastEnd > stmtStart {
		spans = append(spans, Span{Start: stmtStart, End: lastEnd})
	}
	return spans
}

// lineIsDelimiter reports whether the line's tokens form exactly the given
// delimiter text, with no other content and no gaps between the pieces
// ("//" lexes as two slashes but forms one delimiter).
func lineIsDelimiter(toks []token.Token, delim string) bool {
	if len(toks) == 0 {
		return false
	}
	var joined string
	for i, t := range toks {
		if i > 0 && t.Start != toks[i-1].End {
			return false
		}
		joined += t.Text
	}
	return joined == delim
}

func newlineCount(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
		}
	}
	return n
}
