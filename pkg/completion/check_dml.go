package completion

import (
	"github.com/querybench/querybench/pkg/token"
)

// dmlChecker classifies cursor positions inside INSERT, UPDATE and DELETE
// statements.
type dmlChecker struct{}

func (dmlChecker) checkContext(a *Analyzer, req Request, toks []token.Token) Result {
	switch {
	case toks[0].Is("insert"):
		return checkInsert(a, req, toks)
	case toks[0].Is("update"):
		return checkUpdate(a, req, toks)
	case toks[0].Is("delete"):
		return checkDelete(a, req, toks)
	}
	return Result{}
}

// checkInsert distinguishes the three zones of an INSERT: the target table
// after INTO, the column list in the first parenthesis group, and the
// values after VALUES.
func checkInsert(a *Analyzer, req Request, toks []token.Token) Result {
	cursor := req.Cursor

	into := indexOfWord(toks, "into")
	if into < 0 || cursor <= toks[into].End {
		return Result{}
	}

	table, nameEnd, next := qualifiedNameAt(a, toks, into+1)

	// Between INTO and the end of the table name: complete the table.
	if nameEnd < 0 || cursor <= nameEnd {
		q := qualifierAt(req.Text, cursor)
		return Result{
			Context:    TableList,
			Namespace:  a.namespaceFor(q),
			TypeFilter: TableTypes,
			Title:      "Tables",
		}
	}

	values := indexOfWord(toks, "values")

	// Inside the column list parenthesis group, before VALUES.
	if next < len(toks) && toks[next].Kind == token.Operator && toks[next].Text == "(" &&
		(values < 0 || next < values) && cursor > toks[next].Start {
		close := matchParen(toks, next)
		if close < 0 || cursor <= toks[close].Start {
			return Result{
				Context:         ColumnList,
				Tables:          []TableRef{table},
				ResolveSynonyms: true,
				Title:           "Columns",
			}
		}
	}

	if values >= 0 && cursor > toks[values].End {
		return Result{
			Context: ValueList,
			Tables:  []TableRef{table},
			Title:   "Values",
		}
	}
	return Result{}
}

// checkUpdate distinguishes the target table, the SET column list and the
// WHERE condition of an UPDATE.
func checkUpdate(a *Analyzer, req Request, toks []token.Token) Result {
	cursor := req.Cursor
	if cursor <= toks[0].End {
		return Result{}
	}

	table, nameEnd, _ := qualifiedNameAt(a, toks, 1)
	if nameEnd < 0 || cursor <= nameEnd {
		q := qualifierAt(req.Text, cursor)
		return Result{
			Context:    TableList,
			Namespace:  a.namespaceFor(q),
			TypeFilter: TableTypes,
			Title:      "Tables",
		}
	}

	set := indexOfWord(toks, "set")
	if set >= 0 && cursor > toks[set].End {
		// Assignments and WHERE conditions both take values on the
		// right-hand side of a comparison.
		if fk := fkProbe(req, toks, []tableBinding{{ref: table}}); fk != nil {
			return Result{Context: ValueList, FK: fk, Title: "Values"}
		}
		return Result{
			Context:         ColumnList,
			Tables:          []TableRef{table},
			ResolveSynonyms: true,
			Title:           "Columns",
		}
	}
	return Result{}
}

// checkDelete distinguishes the target table after FROM and the WHERE
// condition of a DELETE.
func checkDelete(a *Analyzer, req Request, toks []token.Token) Result {
	cursor := req.Cursor

	from := indexOfWord(toks, "from")
	start := 1
	if from >= 0 {
		if cursor <= toks[from].End {
			return Result{}
		}
		start = from + 1
	}

	table, nameEnd, _ := qualifiedNameAt(a, toks, start)
	if nameEnd < 0 || cursor <= nameEnd {
		q := qualifierAt(req.Text, cursor)
		return Result{
			Context:    TableList,
			Namespace:  a.namespaceFor(q),
			TypeFilter: TableTypes,
			Title:      "Tables",
		}
	}

	where := indexOfWord(toks, "where")
	if where >= 0 && cursor > toks[where].End {
		bindings := []tableBinding{{ref: table}}
		if fk := fkProbe(req, toks, bindings); fk != nil {
			return Result{Context: ValueList, FK: fk, Title: "Values"}
		}
		return Result{
			Context:         ColumnList,
			Tables:          []TableRef{table},
			ResolveSynonyms: true,
			Title:           "Columns",
		}
	}
	return Result{}
}

// qualifiedNameAt scans an optionally qualified object name starting at
// index i. It returns the table reference, the end offset of the last name
// token, and the index of the first token after the name. nameEnd is -1
// when no name token is present.
func qualifiedNameAt(a *Analyzer, toks []token.Token, i int) (TableRef, int, int) {
	if i >= len(toks) || (toks[i].Kind != token.Ident && toks[i].Kind != token.QuotedIdent) {
		return TableRef{}, -1, i
	}
	parts := []string{unquote(toks[i].Text)}
	end := toks[i].End
	j := i + 1
	for j < len(toks) && toks[j].Kind == token.Operator && toks[j].Text == "." {
		end = toks[j].End
		j++
		if j < len(toks) && (toks[j].Kind == token.Ident || toks[j].Kind == token.QuotedIdent) {
			parts = append(parts, unquote(toks[j].Text))
			end = toks[j].End
			j++
			continue
		}
		break
	}
	return tableRefFor(a, parts), end, j
}

// indexOfWord finds the first token matching the given word.
func indexOfWord(toks []token.Token, word string) int {
	for i, t := range toks {
		if t.Is(word) {
			return i
		}
	}
	return -1
}

// matchParen finds the index of the ")" closing the "(" at index open.
func matchParen(toks []token.Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		if toks[i].Kind != token.Operator {
			continue
		}
		switch toks[i].Text {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
