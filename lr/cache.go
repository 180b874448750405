package lr

import "sync"

// TableCache holds SLR(1) tables by grammar fingerprint. Grammars with
// identical rules share one set of tables. A TableCache is safe for
// concurrent use.
type TableCache struct {
	sync.RWMutex
	tables map[string]*Tables
}

// NewTableCache creates an empty cache.
func NewTableCache() *TableCache {
	return &TableCache{tables: make(map[string]*Tables)}
}

// Tables returns the tables for g, building them if necessary. Grammars which
// are not SLR(1) are not cached; every call will report the conflict again.
func (c *TableCache) Tables(g *Grammar) (*Tables, error) {
	key := g.Fingerprint()
	c.RLock()
	t, ok := c.tables[key]
	c.RUnlock()
	if ok {
		tracer().Debugf("table cache hit for grammar %s", g.Name)
		return t, nil
	}
	t, err := Build(g)
	if err != nil {
		return nil, err
	}
	c.Lock()
	defer c.Unlock()
	if cached, ok := c.tables[key]; ok { // built concurrently
		return cached, nil
	}
	c.tables[key] = t
	return t, nil
}

// Len returns the number of cached tables.
func (c *TableCache) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.tables)
}
