package completion

import (
	"strings"

	"github.com/querybench/querybench/pkg/token"
)

// tableBinding is one table reference in a FROM clause together with its
// alias, used to resolve qualified column references.
type tableBinding struct {
	ref   TableRef
	alias string
}

// clauseKeywords end a FROM clause's table list at depth zero.
var clauseKeywords = map[string]bool{
	"where": true, "group": true, "order": true, "having": true,
	"limit": true, "offset": true, "union": true, "intersect": true,
	"except": true, "minus": true, "window": true, "qualify": true,
	"set": true, "returning": true, "values": true, "on": true, "using": true,
}

var joinKeywords = map[string]bool{
	"join": true, "left": true, "right": true, "inner": true,
	"outer": true, "full": true, "cross": true, "natural": true,
	"lateral": true, "straight_join": true,
}

// fromTables collects the table bindings of every depth-zero FROM or JOIN
// clause in the statement. The scan is lexical and tolerant: anything that
// does not look like a table reference is skipped.
func fromTables(a *Analyzer, toks []token.Token) []tableBinding {
	var out []tableBinding
	depth := 0
	expect := false // next name token starts a table reference

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Kind == token.Operator {
			switch t.Text {
			case "(":
				depth++
			case ")":
				depth--
			case ",":
				if depth == 0 {
					expect = true
				}
			}
			continue
		}
		if depth != 0 {
			continue
		}
		lower := strings.ToLower(t.Text)
		switch {
		case lower == "from" || joinKeywords[lower]:
			expect = true
			continue
		case clauseKeywords[lower]:
			expect = false
			continue
		}
		if !expect || (t.Kind != token.Ident && t.Kind != token.QuotedIdent) {
			continue
		}

		parts := []string{unquote(t.Text)}
		j := i + 1
		for j+1 < len(toks) && toks[j].Kind == token.Operator && toks[j].Text == "." &&
			(toks[j+1].Kind == token.Ident || toks[j+1].Kind == token.QuotedIdent) {
			parts = append(parts, unquote(toks[j+1].Text))
			j += 2
		}

		b := tableBinding{ref: tableRefFor(a, parts)}

		// Optional [AS] alias.
		if j < len(toks) && toks[j].Is("as") {
			j++
		}
		if j < len(toks) && toks[j].Kind == token.Ident && !joinKeywords[strings.ToLower(toks[j].Text)] &&
			!clauseKeywords[strings.ToLower(toks[j].Text)] && strings.ToLower(toks[j].Text) != "from" {
			b.alias = unquote(toks[j].Text)
			j++
		}

		out = append(out, b)
		expect = false
		i = j - 1
	}
	return out
}

// tableRefFor builds a TableRef from a qualified name's parts.
func tableRefFor(a *Analyzer, parts []string) TableRef {
	switch len(parts) {
	case 1:
		return TableRef{Name: parts[0]}
	case 2:
		return TableRef{Namespace: a.namespaceFor(parts[0]), Name: parts[1]}
	default:
		return TableRef{
			Namespace: Namespace{Catalog: &parts[0], Schema: &parts[1]},
			Name:      parts[len(parts)-1],
		}
	}
}

// resolveBinding maps an alias or table name to its binding.
func resolveBinding(bindings []tableBinding, name string) (TableRef, bool) {
	folded := strings.ToLower(name)
	for _, b := range bindings {
		if strings.ToLower(b.alias) == folded || strings.ToLower(b.ref.Name) == folded {
			return b.ref, true
		}
	}
	return TableRef{}, false
}

func bindingRefs(bindings []tableBinding) []TableRef {
	refs := make([]TableRef, len(bindings))
	for i, b := range bindings {
		refs[i] = b.ref
	}
	return refs
}

// fkProbe recognizes "column <op> |" and "column IN (|" shapes right before
// the cursor and prepares a foreign key lookup for the column.
func fkProbe(req Request, toks []token.Token, bindings []tableBinding) *FKLookup {
	// Tokens strictly before the cursor.
	last := -1
	for i, t := range toks {
		if t.End <= req.Cursor {
			last = i
		}
	}
	if last < 1 {
		return nil
	}

	i := last
	if toks[i].Kind == token.Operator && toks[i].Text == "(" && i > 0 && isMultiValueOp(toks[i-1]) {
		i--
	}

	var multi bool
	switch {
	case isMultiValueOp(toks[i]):
		multi = true
	case toks[i].Kind == token.Operator && isCompareOp(toks[i].Text):
		multi = false
	default:
		return nil
	}

	// The column reference preceding the operator, optionally qualified.
	j := i - 1
	if j < 0 || (toks[j].Kind != token.Ident && toks[j].Kind != token.QuotedIdent) {
		return nil
	}
	column := unquote(toks[j].Text)

	var table TableRef
	var ok bool
	if j >= 2 && toks[j-1].Kind == token.Operator && toks[j-1].Text == "." &&
		(toks[j-2].Kind == token.Ident || toks[j-2].Kind == token.QuotedIdent) {
		table, ok = resolveBinding(bindings, unquote(toks[j-2].Text))
		if !ok {
			table = TableRef{Name: unquote(toks[j-2].Text)}
		}
	} else if len(bindings) > 0 {
		table = bindings[0].ref
	} else {
		return nil
	}

	return &FKLookup{Table: table, Column: column, MultiSelect: multi}
}

func isMultiValueOp(t token.Token) bool {
	return t.Is("in") || t.Is("any") || t.Is("all")
}

func isCompareOp(s string) bool {
	switch s {
	case "=", "<", ">", "<=", ">=", "<>", "!=":
		return true
	}
	return false
}

// unquote strips identifier quoting, folding the doubled escape.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	switch {
	case s[0] == '"' && s[len(s)-1] == '"':
		return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	case s[0] == '`' && s[len(s)-1] == '`':
		return strings.ReplaceAll(s[1:len(s)-1], "``", "`")
	case s[0] == '[' && s[len(s)-1] == ']':
		return s[1 : len(s)-1]
	}
	return s
}
