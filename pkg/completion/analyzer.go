package completion

import (
	"strings"

	"github.com/querybench/querybench/pkg/dialect"
	"github.com/querybench/querybench/pkg/lexer"
	"github.com/querybench/querybench/pkg/token"
)

// Request is one analysis request: a statement text and a cursor offset
// into it. Requests are immutable; the analyzer derives everything else.
type Request struct {
	Text   string
	Cursor int
}

// Result is the outcome of one analysis: the completion context, the scope
// to look candidates up in, and, after resolution, the candidates
// themselves. A Result is immutable once returned.
type Result struct {
	Context   Context
	Namespace Namespace

	// Tables are the owning tables for column contexts.
	Tables []TableRef

	// TypeFilter restricts table lookups to the given object types.
	TypeFilter []string

	// KeywordKey names the keyword resource to load for KeywordList
	// contexts; Keywords carries inline candidates instead when set.
	KeywordKey string
	Keywords   []string

	// FK is set for value contexts that should probe for a foreign key.
	FK *FKLookup

	// ResolveSynonyms asks the resolver to map synonym tables to their
	// targets before listing columns.
	ResolveSynonyms bool

	// OfferSelectAll adds the synthetic "select all columns" marker to
	// column candidates.
	OfferSelectAll bool

	// Prefix is the partial word at the cursor, for candidate filtering
	// by the UI.
	Prefix string

	// Title is a short human-readable description of the candidate list.
	Title string

	Candidates []Candidate
}

// checker is implemented once per statement verb. Each variant classifies
// cursor positions for its own grammar fragment only.
type checker interface {
	checkContext(a *Analyzer, req Request, toks []token.Token) Result
}

// Analyzer classifies cursor positions. It is stateless across requests;
// one Analyze call is one complete, self-contained analysis. Instances are
// cheap and not shared across goroutines.
type Analyzer struct {
	dialect *dialect.Dialect
}

// NewAnalyzer creates an analyzer for the given dialect. A nil dialect
// falls back to ANSI lexical rules and namespace handling.
func NewAnalyzer(d *dialect.Dialect) *Analyzer {
	return &Analyzer{dialect: d}
}

// Analyze classifies the cursor position in the request. It never fails:
// unsupported or unparseable statements yield a NoContext result.
func (a *Analyzer) Analyze(req Request) Result {
	if req.Cursor < 0 || req.Cursor > len(req.Text) {
		return Result{}
	}
	toks := a.tokens(req.Text)
	if len(toks) == 0 {
		return Result{}
	}

	var c checker
	verb := toks[0]
	switch {
	case verb.Is("select") || verb.Is("with"):
		c = selectChecker{}
	case verb.Is("insert") || verb.Is("update") || verb.Is("delete"):
		c = dmlChecker{}
	case verb.Is("create") || verb.Is("drop") || verb.Is("alter") || verb.Is("truncate"):
		c = ddlChecker{}
	case verb.Text == "@" || verb.Text == `\` || strings.HasPrefix(strings.ToLower(verb.Text), "wb"):
		c = clientChecker{}
	default:
		return Result{Prefix: prefixAt(req.Text, req.Cursor)}
	}

	res := c.checkContext(a, req, toks)
	if res.Prefix == "" {
		res.Prefix = prefixAt(req.Text, req.Cursor)
	}
	return res
}

// tokens lexes the statement into its non-trivia tokens.
func (a *Analyzer) tokens(text string) []token.Token {
	var opts lexer.Options
	if a.dialect != nil {
		opts = a.dialect.LexOptions
	}
	lx := lexer.NewWithOptions(text, opts)
	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return toks
		}
		if tok.IsTrivia() {
			continue
		}
		toks = append(toks, tok)
	}
}

// namespaceFor maps a single qualifier to the namespace level the dialect
// supports: schema where available, catalog otherwise.
func (a *Analyzer) namespaceFor(qualifier string) Namespace {
	if qualifier == "" {
		return Namespace{}
	}
	if a.dialect != nil && !a.dialect.SupportsSchemas && a.dialect.SupportsCatalogs {
		return CatalogNamespace(qualifier)
	}
	return SchemaNamespace(qualifier)
}

// prefixAt returns the partial identifier being typed at the cursor.
func prefixAt(text string, cursor int) string {
	start := cursor
	for start > 0 && isIdentChar(text[start-1]) {
		start--
	}
	return text[start:cursor]
}

// qualifierAt returns the identifier before a "." immediately preceding
// the word at the cursor, e.g. "myschema" for "DROP INDEX myschema.ix_|".
func qualifierAt(text string, cursor int) string {
	start := cursor
	for start > 0 && isIdentChar(text[start-1]) {
		start--
	}
	if start == 0 || text[start-1] != '.' {
		return ""
	}
	end := start - 1
	start = end
	for start > 0 && isIdentChar(text[start-1]) {
		start--
	}
	return text[start:end]
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_' || c == '$'
}
