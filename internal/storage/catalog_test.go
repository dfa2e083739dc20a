// internal/storage/catalog_test.go
package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogPreservesInsertionOrder(t *testing.T) {
	c := NewCatalog()
	c.Set("b", Record{Title: "Second"})
	c.Set("a", Record{Title: "First"})
	c.Set("c", Record{Title: "Third"})

	assert.Equal(t, []string{"b", "a", "c"}, c.Keys())

	c.Set("b", Record{Title: "Second!"})
	assert.Equal(t, []string{"b", "a", "c"}, c.Keys())
	rec, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "Second!", rec.Title)
}

func TestCatalogDelete(t *testing.T) {
	c := NewCatalog()
	c.Set("a", Record{})
	c.Set("b", Record{})
	c.Set("c", Record{})

	assert.True(t, c.Delete("b"))
	assert.False(t, c.Delete("b"))
	assert.False(t, c.Has("b"))
	assert.Equal(t, []string{"a", "c"}, c.Keys())
	assert.Equal(t, 2, c.Len())
}

func TestCatalogEachStops(t *testing.T) {
	c := NewCatalog()
	for _, id := range []string{"a", "b", "c"} {
		c.Set(id, Record{})
	}

	var seen []string
	c.Each(func(id string, _ Record) bool {
		seen = append(seen, id)
		return id != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}
