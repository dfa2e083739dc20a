// internal/storage/catalog.go

// Package storage persists the book catalog as a single keyed map and hands it
// out through scoped read-modify-write sessions.
package storage

// Record is the persisted shape of a book. The id is the catalog key.
type Record struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Year   int    `json:"year" yaml:"year"`
	Status string `json:"status" yaml:"status"`
}

// Catalog is an insertion-ordered map of id to Record.
type Catalog struct {
	keys    []string
	records map[string]Record
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{records: make(map[string]Record)}
}

// Get returns the record stored under id.
func (c *Catalog) Get(id string) (Record, bool) {
	rec, ok := c.records[id]
	return rec, ok
}

// Has reports whether id is present.
func (c *Catalog) Has(id string) bool {
	_, ok := c.records[id]
	return ok
}

// Set stores rec under id. New ids are appended; existing ids keep their position.
func (c *Catalog) Set(id string, rec Record) {
	if _, ok := c.records[id]; !ok {
		c.keys = append(c.keys, id)
	}
	c.records[id] = rec
}

// Delete removes id and reports whether it was present.
func (c *Catalog) Delete(id string) bool {
	if _, ok := c.records[id]; !ok {
		return false
	}
	delete(c.records, id)
	for i, k := range c.keys {
		if k == id {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Keys returns a copy of the ids in insertion order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Each calls fn for every record in insertion order until fn returns false.
func (c *Catalog) Each(fn func(id string, rec Record) bool) {
	for _, id := range c.keys {
		if !fn(id, c.records[id]) {
			return
		}
	}
}
