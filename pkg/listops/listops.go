// Package listops holds the list transforms shared by every dashboard
// listing: search filter, multi-field sort with tie-breaks, and
// pagination slicing.
package listops

import (
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter keeps the items whose searchable text contains q,
// case-insensitively. An empty q keeps everything.
func Filter[T any](items []T, q string, text func(T) string) []T {
	q = strings.TrimSpace(strings.ToLower(q))
	if q == "" {
		return items
	}
	var out []T
	for _, item := range items {
		if strings.Contains(strings.ToLower(text(item)), q) {
			out = append(out, item)
		}
	}
	return out
}

// SortBy sorts items with the given comparators in order. Each comparator
// returns <0, 0 or >0; later comparators break ties left by earlier ones.
// The sort is stable so equal items keep their incoming order.
func SortBy[T any](items []T, cmps ...func(a, b T) int) {
	if len(cmps) == 0 {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		for _, cmp := range cmps {
			switch c := cmp(items[i], items[j]); {
			case c < 0:
				return true
			case c > 0:
				return false
			}
		}
		return false
	})
}

// Reverse flips a comparator for descending order.
func Reverse[T any](cmp func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		return -cmp(a, b)
	}
}

// Paginate slices items for the given 1-based page. Pages before the first
// are treated as the first, pageSize is clamped to [1, MaxPageSize], and
// pages past the end come back empty.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ParsePage reads page/pageSize query values, falling back to defaults on
// anything that does not parse.
func ParsePage(pageParam, sizeParam string) (page, pageSize int) {
	page = 1
	pageSize = DefaultPageSize
	if n, err := strconv.Atoi(pageParam); err == nil && n > 0 {
		page = n
	}
	if n, err := strconv.Atoi(sizeParam); err == nil && n > 0 {
		pageSize = n
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
