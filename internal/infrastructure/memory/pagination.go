package memory

import "github.com/openadr/vtn/internal/core/ports"

// paginate slices items per page.Skip/page.Limit and returns the total
// count alongside the page, mirroring how a real query would report
// count separately from the bounded result set.
func paginate[T any](items []T, page ports.Pagination) ports.ListPage[T] {
	total := int64(len(items))
	start := page.Skip
	if start > len(items) {
		start = len(items)
	}
	end := len(items)
	if page.Limit > 0 && start+page.Limit < end {
		end = start + page.Limit
	}
	return ports.ListPage[T]{Items: items[start:end], Total: total}
}
