package completion

import (
	"strings"

	"github.com/querybench/querybench/pkg/token"
)

// Table type filters handed to Metadata.ListTables.
var (
	// TableTypes restricts a lookup to plain tables.
	TableTypes = []string{"TABLE"}
	// ViewTypes restricts a lookup to view-like objects.
	ViewTypes = []string{"VIEW", "MATERIALIZED VIEW"}
)

// droppableTypes are the object types offered between DROP and the type.
var droppableTypes = []string{
	"TABLE", "INDEX", "VIEW", "MATERIALIZED VIEW", "SCHEMA", "SEQUENCE", "DATABASE",
}

// ddlChecker classifies cursor positions inside DDL statements. TRUNCATE
// and DROP are handled precisely; other DDL verbs yield no context.
type ddlChecker struct{}

func (ddlChecker) checkContext(a *Analyzer, req Request, toks []token.Token) Result {
	verb := toks[0]
	switch {
	case verb.Is("truncate"):
		if req.Cursor <= verb.End {
			return Result{}
		}
		q := qualifierAt(req.Text, req.Cursor)
		return Result{
			Context:    TableList,
			Namespace:  a.namespaceFor(q),
			TypeFilter: TableTypes,
			Title:      "Tables",
		}
	case verb.Is("drop"):
		return checkDrop(a, req, toks)
	}
	return Result{}
}

// checkDrop decides the context from the cursor's position relative to the
// verb, the object-type token and the object-name token. The decision uses
// offset ranges between tokens, not the text under the cursor.
func checkDrop(a *Analyzer, req Request, toks []token.Token) Result {
	verb := toks[0]
	cursor := req.Cursor
	if cursor <= verb.End {
		return Result{}
	}

	typeName, typeEnd, next := dropObjectType(toks)

	// No type yet, or still typing it: offer the droppable object types.
	if typeName == "" || cursor < typeEnd {
		return Result{
			Context:  KeywordList,
			Keywords: droppableTypes,
			Title:    "DROP",
		}
	}

	// Skip IF EXISTS between type and name.
	for next < len(toks) && (toks[next].Is("if") || toks[next].Is("exists")) {
		next++
	}

	nameEnd := -1
	for next < len(toks) {
		t := toks[next]
		if t.Kind != token.Ident && t.Kind != token.QuotedIdent {
			break
		}
		nameEnd = t.End
		next++
		if next < len(toks) && toks[next].Kind == token.Operator && toks[next].Text == "." {
			nameEnd = toks[next].End
			next++
			continue
		}
		break
	}

	// No name yet, or cursor before or at its end: offer the object list
	// for the type, scoped to any typed qualifier.
	if nameEnd < 0 || cursor <= nameEnd {
		return dropObjectList(a, typeName, qualifierAt(req.Text, cursor))
	}

	// Cursor strictly after the name: offer the per-type drop options.
	return Result{
		Context:    KeywordList,
		KeywordKey: dropOptionsKey(typeName),
		Title:      "Options",
	}
}

// dropObjectType locates the object-type token(s) right after DROP.
// It returns the normalized type name, the end offset of the type token
// and the index of the first token after it.
func dropObjectType(toks []token.Token) (string, int, int) {
	if len(toks) < 2 {
		return "", 0, 1
	}
	t := toks[1]
	switch {
	case t.Is("materialized"):
		if len(toks) > 2 && toks[2].Is("view") {
			return "materialized view", toks[2].End, 3
		}
		return "", t.End, 2
	case t.Is("table"), t.Is("index"), t.Is("view"), t.Is("schema"),
		t.Is("user"), t.Is("database"), t.Is("sequence"):
		return strings.ToLower(t.Text), t.End, 2
	}
	return "", 0, 1
}

// dropObjectList maps a droppable object type to its candidate context.
func dropObjectList(a *Analyzer, typeName, qualifier string) Result {
	ns := a.namespaceFor(qualifier)
	switch typeName {
	case "table":
		return Result{Context: TableList, Namespace: ns, TypeFilter: TableTypes, Title: "Tables"}
	case "index":
		return Result{Context: IndexList, Namespace: ns, Title: "Indexes"}
	case "view", "materialized view":
		return Result{Context: TableList, Namespace: ns, TypeFilter: ViewTypes, Title: "Views"}
	case "schema", "user":
		return Result{Context: SchemaList, Title: "Schemas"}
	case "database":
		return Result{Context: CatalogList, Title: "Databases"}
	case "sequence":
		return Result{Context: SequenceList, Namespace: ns, Title: "Sequences"}
	}
	return Result{}
}

// dropOptionsKey names the keyword resource holding the options that may
// follow "DROP <type> <name>", e.g. "table.drop_options.txt".
func dropOptionsKey(typeName string) string {
	return strings.ReplaceAll(typeName, " ", "_") + ".drop_options.txt"
}
