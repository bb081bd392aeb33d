package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/querybench/querybench/pkg/completion"
)

// Cache memoizes metadata lookups in front of another source. Entries
// never expire on their own; Invalidate drops everything, which the client
// does after running DDL or on an explicit refresh. Errors are not cached,
// so a transient failure does not pin an empty result.
type Cache struct {
	next completion.Metadata

	mu      sync.RWMutex
	tables  map[string][]completion.TableRef
	lists   map[string][]string
	fks     map[string]*fkEntry
}

type fkEntry struct {
	fk *completion.ForeignKey
}

// NewCache wraps a metadata source with memoization.
func NewCache(next completion.Metadata) *Cache {
	c := &Cache{next: next}
	c.reset()
	return c
}

// Invalidate drops all cached entries.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Cache) reset() {
	c.tables = make(map[string][]completion.TableRef)
	c.lists = make(map[string][]string)
	c.fks = make(map[string]*fkEntry)
}

func (c *Cache) ListTables(ctx context.Context, ns completion.Namespace, typeFilter []string) ([]completion.TableRef, error) {
	key := "tables|" + ns.String() + "|" + strings.Join(typeFilter, ",")
	c.mu.RLock()
	cached, ok := c.tables[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}
	refs, err := c.next.ListTables(ctx, ns, typeFilter)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.tables[key] = refs
	c.mu.Unlock()
	return refs, nil
}

func (c *Cache) ListColumns(ctx context.Context, table completion.TableRef) ([]string, error) {
	return c.memoStrings(ctx, "columns|"+table.String(), func() ([]string, error) {
		return c.next.ListColumns(ctx, table)
	})
}

func (c *Cache) ListSchemas(ctx context.Context) ([]string, error) {
	return c.memoStrings(ctx, "schemas", func() ([]string, error) {
		return c.next.ListSchemas(ctx)
	})
}

func (c *Cache) ListCatalogs(ctx context.Context) ([]string, error) {
	return c.memoStrings(ctx, "catalogs", func() ([]string, error) {
		return c.next.ListCatalogs(ctx)
	})
}

func (c *Cache) ListSequences(ctx context.Context, ns completion.Namespace) ([]string, error) {
	return c.memoStrings(ctx, "sequences|"+ns.String(), func() ([]string, error) {
		return c.next.ListSequences(ctx, ns)
	})
}

func (c *Cache) ListIndexes(ctx context.Context, ns completion.Namespace) ([]string, error) {
	return c.memoStrings(ctx, "indexes|"+ns.String(), func() ([]string, error) {
		return c.next.ListIndexes(ctx, ns)
	})
}

// ResolveSynonym is passed through uncached: none of the supported engines
// has synonyms, so the call is already free.
func (c *Cache) ResolveSynonym(ctx context.Context, table completion.TableRef) (completion.TableRef, bool, error) {
	return c.next.ResolveSynonym(ctx, table)
}

func (c *Cache) ForeignKey(ctx context.Context, table completion.TableRef, column string) (*completion.ForeignKey, error) {
	key := table.String() + "|" + column
	c.mu.RLock()
	cached, ok := c.fks[key]
	c.mu.RUnlock()
	if ok {
		return cached.fk, nil
	}
	fk, err := c.next.ForeignKey(ctx, table, column)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.fks[key] = &fkEntry{fk: fk}
	c.mu.Unlock()
	return fk, nil
}

func (c *Cache) memoStrings(_ context.Context, key string, load func() ([]string, error)) ([]string, error) {
	c.mu.RLock()
	cached, ok := c.lists[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}
	values, err := load()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.lists[key] = values
	c.mu.Unlock()
	return values, nil
}
