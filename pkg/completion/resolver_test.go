package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/querybench/querybench/pkg/dialect"
)

// fakeMeta is a canned-answer Metadata for resolver tests.
type fakeMeta struct {
	tables   []TableRef
	columns  map[string][]string
	schemas  []string
	catalogs []string
	synonyms map[string]TableRef
	fks      map[string]*ForeignKey

	err error

	// lastNamespace records the namespace of the last ListTables call.
	lastNamespace Namespace
}

func (m *fakeMeta) ListTables(_ context.Context, ns Namespace, _ []string) ([]TableRef, error) {
	m.lastNamespace = ns
	return m.tables, m.err
}

func (m *fakeMeta) ListColumns(_ context.Context, table TableRef) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.columns[table.String()], nil
}

func (m *fakeMeta) ListSchemas(context.Context) ([]string, error)  { return m.schemas, m.err }
func (m *fakeMeta) ListCatalogs(context.Context) ([]string, error) { return m.catalogs, m.err }

func (m *fakeMeta) ListSequences(context.Context, Namespace) ([]string, error) {
	return nil, m.err
}

func (m *fakeMeta) ListIndexes(context.Context, Namespace) ([]string, error) {
	return nil, m.err
}

func (m *fakeMeta) ResolveSynonym(_ context.Context, table TableRef) (TableRef, bool, error) {
	if t, ok := m.synonyms[table.String()]; ok {
		return t, true, nil
	}
	return TableRef{}, false, nil
}

func (m *fakeMeta) ForeignKey(_ context.Context, table TableRef, column string) (*ForeignKey, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.fks[table.String()+"."+column], nil
}

// fakeKeywords serves keyword lists from a map.
type fakeKeywords map[string][]string

func (k fakeKeywords) Keywords(key string) ([]string, error) {
	words, ok := k[key]
	if !ok {
		return nil, errors.New("unknown keyword list " + key)
	}
	return words, nil
}

func candidateTexts(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Text
	}
	return out
}

func TestResolveTableList(t *testing.T) {
	meta := &fakeMeta{tables: []TableRef{{Name: "orders"}, {Name: "items"}}}
	r := NewResolver(meta, nil, nil)

	res := r.Resolve(context.Background(), Result{Context: TableList})
	got := candidateTexts(res.Candidates)
	if len(got) != 2 || got[0] != "orders" || got[1] != "items" {
		t.Fatalf("candidates = %v", got)
	}
	for _, c := range res.Candidates {
		if c.Kind != CandidateTable {
			t.Errorf("candidate %q kind = %v, want CandidateTable", c.Text, c.Kind)
		}
		if c.Table == nil {
			t.Errorf("candidate %q missing table ref", c.Text)
		}
	}
}

func TestResolveColumnList(t *testing.T) {
	meta := &fakeMeta{columns: map[string][]string{
		"orders": {"id", "customer_id", "status"},
	}}
	r := NewResolver(meta, nil, nil)

	res := r.Resolve(context.Background(), Result{
		Context: ColumnList,
		Tables:  []TableRef{{Name: "orders"}},
	})
	got := candidateTexts(res.Candidates)
	if len(got) != 3 || got[0] != "id" {
		t.Fatalf("candidates = %v", got)
	}
	if res.Candidates[0].Table == nil || res.Candidates[0].Table.Name != "orders" {
		t.Error("column candidates must carry their owning table")
	}
}

func TestResolveSelectAllMarker(t *testing.T) {
	meta := &fakeMeta{columns: map[string][]string{"t": {"a"}}}
	r := NewResolver(meta, nil, nil)

	res := r.Resolve(context.Background(), Result{
		Context:        TableOrColumnList,
		Tables:         []TableRef{{Name: "t"}},
		OfferSelectAll: true,
	})
	if len(res.Candidates) == 0 || res.Candidates[0].Kind != CandidateSelectAll {
		t.Fatalf("first candidate = %+v, want the select-all marker", res.Candidates)
	}
	if res.Candidates[0].Text != "*" {
		t.Errorf("marker text = %q, want *", res.Candidates[0].Text)
	}
}

func TestResolveTableOrColumnFallback(t *testing.T) {
	// With no bound tables the combined context degrades to a table list.
	meta := &fakeMeta{tables: []TableRef{{Name: "orders"}}}
	r := NewResolver(meta, nil, nil)

	res := r.Resolve(context.Background(), Result{Context: TableOrColumnList})
	got := candidateTexts(res.Candidates)
	if len(got) != 1 || got[0] != "orders" {
		t.Fatalf("candidates = %v, want the table list", got)
	}
}

func TestResolveSynonym(t *testing.T) {
	meta := &fakeMeta{
		columns:  map[string][]string{"orders_v2": {"id"}},
		synonyms: map[string]TableRef{"orders": {Name: "orders_v2"}},
	}
	r := NewResolver(meta, nil, nil)

	res := r.Resolve(context.Background(), Result{
		Context:         ColumnList,
		Tables:          []TableRef{{Name: "orders"}},
		ResolveSynonyms: true,
	})
	if len(res.Candidates) != 1 || res.Candidates[0].Text != "id" {
		t.Fatalf("candidates = %v, want the synonym target's columns", candidateTexts(res.Candidates))
	}
	if res.Candidates[0].Table.Name != "orders_v2" {
		t.Errorf("owning table = %q, want orders_v2", res.Candidates[0].Table.Name)
	}
}

func TestResolveIdentifierCase(t *testing.T) {
	// A lower-folding dialect folds typed qualifiers and table names
	// before they hit metadata.
	meta := &fakeMeta{columns: map[string][]string{"public.orders": {"id"}}}
	d := &dialect.Dialect{Name: "folding", SupportsSchemas: true, IdentifierCase: dialect.CaseLower}
	r := NewResolver(meta, nil, d)

	res := r.Resolve(context.Background(), Result{
		Context: ColumnList,
		Tables:  []TableRef{{Namespace: SchemaNamespace("PUBLIC"), Name: "ORDERS"}},
	})
	if len(res.Candidates) != 1 || res.Candidates[0].Text != "id" {
		t.Fatalf("candidates = %v, want folded lookup to hit", candidateTexts(res.Candidates))
	}
}

func TestResolveNamespacePassedThrough(t *testing.T) {
	meta := &fakeMeta{}
	r := NewResolver(meta, nil, nil)
	r.Resolve(context.Background(), Result{
		Context:   TableList,
		Namespace: SchemaNamespace("sales"),
	})
	if meta.lastNamespace.Schema == nil || *meta.lastNamespace.Schema != "sales" {
		t.Errorf("lookup namespace = %v, want schema sales", meta.lastNamespace)
	}
}

func TestResolveKeywords(t *testing.T) {
	kw := fakeKeywords{"table.drop_options.txt": {"CASCADE", "RESTRICT"}}
	r := NewResolver(nil, kw, nil)

	res := r.Resolve(context.Background(), Result{
		Context:    KeywordList,
		KeywordKey: "table.drop_options.txt",
	})
	got := candidateTexts(res.Candidates)
	if len(got) != 2 || got[0] != "CASCADE" {
		t.Fatalf("candidates = %v", got)
	}

	// Inline keywords win over the key.
	res = r.Resolve(context.Background(), Result{
		Context:    KeywordList,
		Keywords:   []string{"TABLE"},
		KeywordKey: "table.drop_options.txt",
	})
	if got := candidateTexts(res.Candidates); len(got) != 1 || got[0] != "TABLE" {
		t.Fatalf("inline candidates = %v", got)
	}

	// Unknown keys resolve to nothing.
	res = r.Resolve(context.Background(), Result{
		Context:    KeywordList,
		KeywordKey: "missing.txt",
	})
	if len(res.Candidates) != 0 {
		t.Errorf("unknown key candidates = %v", candidateTexts(res.Candidates))
	}
}

func TestResolveForeignKeyLookup(t *testing.T) {
	meta := &fakeMeta{fks: map[string]*ForeignKey{
		"orders.customer_id": {
			ReferencedTable:  TableRef{Name: "customers"},
			ReferencedColumn: "id",
		},
	}}
	r := NewResolver(meta, nil, nil)

	res := r.Resolve(context.Background(), Result{
		Context: ValueList,
		FK:      &FKLookup{Table: TableRef{Name: "orders"}, Column: "customer_id", MultiSelect: true},
	})
	if len(res.Candidates) != 1 {
		t.Fatalf("candidates = %v, want one lookup marker", candidateTexts(res.Candidates))
	}
	c := res.Candidates[0]
	if c.Kind != CandidateFKLookup {
		t.Errorf("kind = %v, want CandidateFKLookup", c.Kind)
	}
	if c.Text != "(select value from customers)" {
		t.Errorf("text = %q", c.Text)
	}
	if !c.MultiSelect {
		t.Error("multi-select must carry through from the probe")
	}

	// A column without a foreign key yields nothing.
	res = r.Resolve(context.Background(), Result{
		Context: ValueList,
		FK:      &FKLookup{Table: TableRef{Name: "orders"}, Column: "status"},
	})
	if len(res.Candidates) != 0 {
		t.Errorf("non-FK candidates = %v", candidateTexts(res.Candidates))
	}
}

func TestResolveLookupErrors(t *testing.T) {
	meta := &fakeMeta{err: errors.New("connection lost")}
	r := NewResolver(meta, nil, nil)

	res := r.Resolve(context.Background(), Result{Context: TableList})
	if len(res.Candidates) != 0 {
		t.Errorf("failed lookup candidates = %v", candidateTexts(res.Candidates))
	}

	res = r.Resolve(context.Background(), Result{
		Context: ColumnList,
		Tables:  []TableRef{{Name: "t"}},
	})
	if len(res.Candidates) != 0 {
		t.Errorf("failed column lookup candidates = %v", candidateTexts(res.Candidates))
	}
}

func TestResolveNilSources(t *testing.T) {
	r := NewResolver(nil, nil, nil)
	res := r.Resolve(context.Background(), Result{Context: TableList})
	if len(res.Candidates) != 0 {
		t.Error("nil metadata must resolve to nothing")
	}
}
