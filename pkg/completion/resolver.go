package completion

import (
	"context"
	"log/slog"

	"github.com/querybench/querybench/pkg/dialect"
)

// Resolver turns an analyzed Result into a candidate list by querying the
// injected metadata and keyword sources. Resolution is best effort: lookup
// failures are logged and yield an empty candidate list, never an error.
type Resolver struct {
	meta     Metadata
	keywords KeywordSource
	dialect  *dialect.Dialect
	logger   *slog.Logger
}

// NewResolver creates a resolver over the given sources. meta and keywords
// may be nil, in which case the corresponding contexts resolve to nothing.
func NewResolver(meta Metadata, keywords KeywordSource, d *dialect.Dialect) *Resolver {
	return &Resolver{
		meta:     meta,
		keywords: keywords,
		dialect:  d,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// SetLogger replaces the discard logger.
func (r *Resolver) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Resolve fills in the candidate list for an analyzed result. The input is
// not mutated; the returned copy carries the candidates.
func (r *Resolver) Resolve(ctx context.Context, res Result) Result {
	// Fold typed qualifiers to stored-identifier case once, right before
	// they are compared against live metadata.
	idCase := dialect.CasePreserve
	if r.dialect != nil {
		idCase = r.dialect.IdentifierCase
	}
	res.Namespace = res.Namespace.Normalized(idCase)

	switch res.Context {
	case TableList, FromList:
		res.Candidates = r.tableCandidates(ctx, res)
	case ColumnList:
		res.Candidates = r.columnCandidates(ctx, res, idCase)
	case TableOrColumnList:
		cols := r.columnCandidates(ctx, res, idCase)
		if len(cols) == 0 {
			// Nothing bound yet: degrade to a plain table list so the
			// popup is never empty mid-typing.
			res.Candidates = r.tableCandidates(ctx, res)
			break
		}
		tables := r.tableCandidates(ctx, res)
		res.Candidates = append(cols, tables...)
	case SchemaList:
		res.Candidates = r.nameCandidates(ctx, res, CandidateSchema)
	case CatalogList:
		res.Candidates = r.nameCandidates(ctx, res, CandidateCatalog)
	case SequenceList:
		res.Candidates = r.nameCandidates(ctx, res, CandidateSequence)
	case IndexList:
		res.Candidates = r.nameCandidates(ctx, res, CandidateIndex)
	case KeywordList:
		res.Candidates = r.keywordCandidates(res, CandidateKeyword)
	case StatementParameter:
		res.Candidates = r.keywordCandidates(res, CandidateParameter)
	case ValueList:
		res.Candidates = r.valueCandidates(ctx, res, idCase)
	}
	return res
}

func (r *Resolver) tableCandidates(ctx context.Context, res Result) []Candidate {
	if r.meta == nil {
		return nil
	}
	refs, err := r.meta.ListTables(ctx, res.Namespace, res.TypeFilter)
	if err != nil {
		r.logger.Warn("table lookup failed", "namespace", res.Namespace.String(), "error", err)
		return nil
	}
	out := make([]Candidate, 0, len(refs))
	for _, ref := range refs {
		ref := ref
		out = append(out, Candidate{Kind: CandidateTable, Text: ref.Name, Table: &ref})
	}
	return out
}

func (r *Resolver) columnCandidates(ctx context.Context, res Result, idCase dialect.IdentifierCase) []Candidate {
	if r.meta == nil {
		return nil
	}
	var out []Candidate
	if res.OfferSelectAll && len(res.Tables) > 0 {
		out = append(out, Candidate{Kind: CandidateSelectAll, Text: "*"})
	}
	for _, t := range res.Tables {
		ref := TableRef{Namespace: t.Namespace.Normalized(idCase), Name: idCase.Apply(t.Name)}
		if res.ResolveSynonyms {
			target, ok, err := r.meta.ResolveSynonym(ctx, ref)
			if err != nil {
				r.logger.Warn("synonym lookup failed", "table", ref.String(), "error", err)
				continue
			}
			if ok {
				ref = target
			}
		}
		cols, err := r.meta.ListColumns(ctx, ref)
		if err != nil {
			r.logger.Warn("column lookup failed", "table", ref.String(), "error", err)
			continue
		}
		owner := ref
		for _, c := range cols {
			out = append(out, Candidate{Kind: CandidateColumn, Text: c, Table: &owner})
		}
	}
	return out
}

func (r *Resolver) nameCandidates(ctx context.Context, res Result, kind CandidateKind) []Candidate {
	if r.meta == nil {
		return nil
	}
	var names []string
	var err error
	switch kind {
	case CandidateSchema:
		names, err = r.meta.ListSchemas(ctx)
	case CandidateCatalog:
		names, err = r.meta.ListCatalogs(ctx)
	case CandidateSequence:
		names, err = r.meta.ListSequences(ctx, res.Namespace)
	case CandidateIndex:
		names, err = r.meta.ListIndexes(ctx, res.Namespace)
	}
	if err != nil {
		r.logger.Warn("name lookup failed", "context", res.Context.String(), "error", err)
		return nil
	}
	out := make([]Candidate, 0, len(names))
	for _, n := range names {
		out = append(out, Candidate{Kind: kind, Text: n})
	}
	return out
}

func (r *Resolver) keywordCandidates(res Result, kind CandidateKind) []Candidate {
	words := res.Keywords
	if len(words) == 0 && res.KeywordKey != "" && r.keywords != nil {
		loaded, err := r.keywords.Keywords(res.KeywordKey)
		if err != nil {
			r.logger.Warn("keyword lookup failed", "key", res.KeywordKey, "error", err)
			return nil
		}
		words = loaded
	}
	out := make([]Candidate, 0, len(words))
	for _, w := range words {
		out = append(out, Candidate{Kind: kind, Text: w})
	}
	return out
}

// valueCandidates probes the FK lookup for value contexts. A foreign key
// column yields the synthetic lookup marker; anything else yields nothing,
// since literal values cannot be enumerated.
func (r *Resolver) valueCandidates(ctx context.Context, res Result, idCase dialect.IdentifierCase) []Candidate {
	if r.meta == nil || res.FK == nil {
		return nil
	}
	table := TableRef{
		Namespace: res.FK.Table.Namespace.Normalized(idCase),
		Name:      idCase.Apply(res.FK.Table.Name),
	}
	fk, err := r.meta.ForeignKey(ctx, table, idCase.Apply(res.FK.Column))
	if err != nil {
		r.logger.Warn("foreign key lookup failed", "table", table.String(), "column", res.FK.Column, "error", err)
		return nil
	}
	if fk == nil {
		return nil
	}
	ref := fk.ReferencedTable
	return []Candidate{{
		Kind:        CandidateFKLookup,
		Text:        "(select value from " + ref.String() + ")",
		Table:       &ref,
		MultiSelect: res.FK.MultiSelect,
	}}
}
