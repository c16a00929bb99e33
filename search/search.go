// Package search filters the loaded page window on the client side.
//
// Search scope is limited to the records currently loaded in the window: the
// collection is not searched, additional pages are never fetched, and page
// counts are not affected. User interfaces must present this as "search in
// this page", since a match on another page is not found.
package search

import (
	"strings"

	"github.com/n-r-w/docpager"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
)

// Scope describes the search limitation for display next to a search box.
const Scope = "searches the current page only"

// DefaultFields searchable fields of a product document.
var DefaultFields = []string{"name", "sellerName"} //nolint:gochecknoglobals // ok

// Filter returns the items having query as a case-insensitive substring of any of fields.
// A blank query returns items unchanged. Otherwise the query is matched as is, surrounding spaces included.
func Filter(items []docpager.Record, query string, fields ...string) []docpager.Record {
	if strings.TrimSpace(query) == "" {
		return items
	}

	folder := cases.Fold()
	needle := folder.String(query)

	return lo.Filter(items, func(r docpager.Record, _ int) bool {
		return lo.SomeBy(fields, func(field string) bool {
			v := r.String(field)
			return v != "" && strings.Contains(folder.String(v), needle)
		})
	})
}

// Matches returns true if rec would be kept by Filter.
func Matches(rec docpager.Record, query string, fields ...string) bool {
	return len(Filter([]docpager.Record{rec}, query, fields...)) == 1
}
