// internal/catalog/paginate.go
package catalog

// Paginate pages through items from either end.
//
// A limit of 0 returns every item. A positive limit k returns the first k
// items and a negative limit -k returns the last k. When k exceeds the number
// of items the whole slice is returned.
func Paginate[T any](items []T, limit int) []T {
	n := len(items)
	switch {
	case limit == 0:
		return items
	case limit > 0:
		if limit > n {
			limit = n
		}
		return items[:limit]
	default:
		k := -limit
		if k < 0 || k > n {
			k = n
		}
		return items[n-k:]
	}
}
