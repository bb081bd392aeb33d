package completion

import (
	"strings"

	"github.com/querybench/querybench/pkg/token"
)

// selectClause is the clause of a SELECT statement that contains the
// cursor. The zones matter, not the individual keywords: ON, WHERE and
// HAVING all behave the same for completion purposes.
type selectClause int

const (
	clauseNone selectClause = iota
	clauseSelect
	clauseFrom
	clauseCondition
	clauseColumns
)

// selectChecker classifies cursor positions inside SELECT statements.
// Callers that want sub-query awareness extract the enclosing branch with
// the splitter first and analyze that text on its own.
type selectChecker struct{}

func (selectChecker) checkContext(a *Analyzer, req Request, toks []token.Token) Result {
	bindings := fromTables(a, toks)

	switch clauseAt(toks, req.Cursor) {
	case clauseSelect:
		return checkSelectList(a, req, bindings)
	case clauseFrom:
		q := qualifierAt(req.Text, req.Cursor)
		return Result{
			Context:   FromList,
			Namespace: a.namespaceFor(q),
			Title:     "Tables",
		}
	case clauseCondition:
		if fk := fkProbe(req, toks, bindings); fk != nil {
			return Result{
				Context: ValueList,
				FK:      fk,
				Title:   "Values",
			}
		}
		return checkColumnList(a, req, bindings, false)
	case clauseColumns:
		return checkColumnList(a, req, bindings, false)
	}
	return Result{}
}

// checkSelectList handles the cursor inside the select list. A qualified
// reference narrows to that table's columns; otherwise both tables and
// columns of every bound table are offered, plus the select-all marker.
func checkSelectList(a *Analyzer, req Request, bindings []tableBinding) Result {
	if q := qualifierAt(req.Text, req.Cursor); q != "" {
		ref, ok := resolveBinding(bindings, q)
		if !ok {
			ref = TableRef{Namespace: a.namespaceFor(q), Name: q}
		}
		return Result{
			Context:         ColumnList,
			Tables:          []TableRef{ref},
			ResolveSynonyms: true,
			Title:           "Columns",
		}
	}
	return Result{
		Context:         TableOrColumnList,
		Tables:          bindingRefs(bindings),
		ResolveSynonyms: true,
		OfferSelectAll:  true,
		Title:           "Columns",
	}
}

// checkColumnList handles cursor positions that complete to columns only:
// WHERE, ON, HAVING, GROUP BY and ORDER BY expressions.
func checkColumnList(a *Analyzer, req Request, bindings []tableBinding, offerAll bool) Result {
	if q := qualifierAt(req.Text, req.Cursor); q != "" {
		ref, ok := resolveBinding(bindings, q)
		if !ok {
			ref = TableRef{Namespace: a.namespaceFor(q), Name: q}
		}
		return Result{
			Context:         ColumnList,
			Tables:          []TableRef{ref},
			ResolveSynonyms: true,
			Title:           "Columns",
		}
	}
	return Result{
		Context:         ColumnList,
		Tables:          bindingRefs(bindings),
		ResolveSynonyms: true,
		OfferSelectAll:  offerAll,
		Title:           "Columns",
	}
}

// clauseAt finds the clause containing the cursor by scanning the
// depth-zero clause keywords before it. The classification depends only
// on token offsets relative to the cursor.
func clauseAt(toks []token.Token, cursor int) selectClause {
	clause := clauseNone
	depth := 0
	for _, t := range toks {
		if t.Start >= cursor {
			break
		}
		if t.Kind == token.Operator {
			switch t.Text {
			case "(":
				depth++
			case ")":
				if depth > 0 {
					depth--
				}
			}
			continue
		}
		if depth != 0 {
			continue
		}
		switch strings.ToLower(t.Text) {
		case "select":
			clause = clauseSelect
		case "from", "join", "into":
			clause = clauseFrom
		case "left", "right", "inner", "outer", "full", "cross", "natural":
			// join prefixes keep the FROM zone open
			if clause == clauseFrom || clause == clauseCondition {
				clause = clauseFrom
			}
		case "on", "using", "where", "having", "qualify":
			clause = clauseCondition
		case "group", "order", "partition":
			clause = clauseColumns
		case "limit", "offset", "fetch", "for":
			clause = clauseNone
		}
	}
	return clause
}
