// Package listing implements the shared pagination and keyword filter
// semantics for owner-scoped collection endpoints. Collections are
// assumed small enough to page in memory after an owner-scoped fetch.
package listing

import "strings"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is one slice of a filtered, sorted collection. TotalCount is the
// post-filter size of the whole collection, not the slice length.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
}

// Resolve applies the defaulting and clamping rules: page < 1 becomes 1,
// pageSize < 1 becomes 10, pageSize above 100 is silently reduced to 100.
func Resolve(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Paginate slices items for the requested page. A page beyond the end of
// the collection yields an empty item list, never an error.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	page, pageSize = Resolve(page, pageSize)

	from := (page - 1) * pageSize
	if from > len(items) {
		from = len(items)
	}
	to := from + pageSize
	if to > len(items) {
		to = len(items)
	}

	pageItems := make([]T, 0, to-from)
	pageItems = append(pageItems, items[from:to]...)

	return Page[T]{
		Items:      pageItems,
		TotalCount: len(items),
		Page:       page,
		PageSize:   pageSize,
	}
}

// MatchesKeyword reports whether value contains keyword, ignoring case.
// A blank keyword matches everything.
func MatchesKeyword(value, keyword string) bool {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(keyword))
}
