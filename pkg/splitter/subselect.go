package splitter

import (
	"github.com/querybench/querybench/pkg/lexer"
	"github.com/querybench/querybench/pkg/token"
)

// SubSelectAt returns the boundaries of the query that should be analyzed
// for a cursor inside text, using ANSI lexical rules.
func SubSelectAt(text string, cursor int) token.Span {
	return Splitter{}.SubSelectAt(text, cursor)
}

// SubSelectAt locates the query branch containing the cursor:
//
//   - the innermost complete "( SELECT ... )" construct enclosing the cursor
//     wins, with the span exclusive of the parentheses;
//   - otherwise set-operation keywords (UNION, UNION ALL, INTERSECT, EXCEPT,
//     MINUS) at bracket depth zero carve the text into branches and the
//     branch containing the cursor is returned;
//   - with neither, or with unbalanced brackets, the whole text is the query.
//
// An enclosing parenthesis always takes precedence over a set-operation
// branch, including when the cursor sits exactly on a boundary token.
func (sp Splitter) SubSelectAt(text string, cursor int) token.Span {
	lx := lexer.NewWithOptions(text, sp.LexOptions)

	type paren struct {
		open     token.Token
		isSelect bool
		pending  bool // first token after "(" not yet seen
	}

	var (
		toks  []token.Token
		stack []paren
		best  token.Span
		found bool
	)

	// Set-operation boundaries at depth zero: start of the keyword and
	// start of the branch following it.
	type boundary struct {
		opStart     int
		branchStart int
	}
	var bounds []boundary

	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		if tok.IsTrivia() {
			continue
		}
		toks = append(toks, tok)
	}

	for i, tok := range toks {
		if len(stack) > 0 && stack[len(stack)-1].pending {
			top := &stack[len(stack)-1]
			top.pending = false
			top.isSelect = tok.Is("select") || tok.Is("with") || tok.Is("values")
		}

		switch {
		case tok.Kind == token.Operator && tok.Text == "(":
			stack = append(stack, paren{open: tok, pending: true})

		case tok.Kind == token.Operator && tok.Text == ")":
			if len(stack) == 0 {
				continue // unbalanced close, best effort
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !found && top.isSelect && cursor >= top.open.End && cursor <= tok.Start {
				best = token.Span{Start: top.open.End, End: tok.Start}
				found = true
			}

		case len(stack) == 0 && isSetOperation(tok):
			branch := tok.End
			if tok.Is("union") && i+1 < len(toks) && toks[i+1].Is("all") {
				branch = toks[i+1].End
			}
			bounds = append(bounds, boundary{opStart: tok.Start, branchStart: branch})
		}
	}

	if found {
		return trimmed(text, best)
	}

	if len(bounds) > 0 && len(toks) > 0 {
		start := toks[0].Start
		for _, b := range bounds {
			if cursor < b.opStart {
				return trimmed(text, token.Span{Start: start, End: b.opStart})
			}
			start = b.branchStart
		}
		// Cursor past the last boundary: the remainder is the branch.
		return trimmed(text, token.Span{Start: start, End: len(text)})
	}

	return trimmed(text, token.Span{Start: 0, End: len(text)})
}

func isSetOperation(tok token.Token) bool {
	return tok.Is("union") || tok.Is("intersect") || tok.Is("except") || tok.Is("minus")
}

// trimmed shrinks a span to exclude surrounding whitespace.
func trimmed(text string, s token.Span) token.Span {
	if s.Start < 0 {
		s.Start = 0
	}
	if s.End > len(text) {
		s.End = len(text)
	}
	for s.Start < s.End && isSpaceByte(text[s.Start]) {
		s.Start++
	}
	for s.End > s.Start && isSpaceByte(text[s.End-1]) {
		s.End--
	}
	return s
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
