package listops

import (
	"strings"
	"testing"
)

type row struct {
	Name string
	Date string
}

func names(rows []row) string {
	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		parts = append(parts, r.Name)
	}
	return strings.Join(parts, ",")
}

func TestFilter(t *testing.T) {
	rows := []row{
		{Name: "Summer Gala"},
		{Name: "Winter Market"},
		{Name: "summer camp"},
	}

	got := Filter(rows, "SUMMER", func(r row) string { return r.Name })
	if names(got) != "Summer Gala,summer camp" {
		t.Errorf("Expected case-insensitive matches, got %s", names(got))
	}

	got = Filter(rows, "  ", func(r row) string { return r.Name })
	if len(got) != 3 {
		t.Errorf("Expected blank query to keep everything, got %d rows", len(got))
	}

	got = Filter(rows, "nothing", func(r row) string { return r.Name })
	if len(got) != 0 {
		t.Errorf("Expected no matches, got %d rows", len(got))
	}
}

func TestSortByTieBreak(t *testing.T) {
	rows := []row{
		{Name: "b", Date: "2024-06-01"},
		{Name: "a", Date: "2024-06-01"},
		{Name: "c", Date: "2024-05-01"},
	}

	byDate := func(a, b row) int { return strings.Compare(a.Date, b.Date) }
	byName := func(a, b row) int { return strings.Compare(a.Name, b.Name) }

	SortBy(rows, byDate, byName)
	if names(rows) != "c,a,b" {
		t.Errorf("Expected date sort with name tie-break, got %s", names(rows))
	}

	SortBy(rows, Reverse(byDate), byName)
	if names(rows) != "a,b,c" {
		t.Errorf("Expected descending date sort, got %s", names(rows))
	}
}

func TestSortByNoComparators(t *testing.T) {
	rows := []row{{Name: "b"}, {Name: "a"}}
	SortBy(rows)
	if names(rows) != "b,a" {
		t.Errorf("Expected order untouched without comparators, got %s", names(rows))
	}
}

func TestPaginate(t *testing.T) {
	rows := []row{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e"}}

	if got := Paginate(rows, 1, 2); names(got) != "a,b" {
		t.Errorf("Expected first page, got %s", names(got))
	}
	if got := Paginate(rows, 3, 2); names(got) != "e" {
		t.Errorf("Expected short last page, got %s", names(got))
	}
	if got := Paginate(rows, 4, 2); len(got) != 0 {
		t.Errorf("Expected empty page past the end, got %s", names(got))
	}
	if got := Paginate(rows, 0, 2); names(got) != "a,b" {
		t.Errorf("Expected page clamp to first, got %s", names(got))
	}
	if got := Paginate(rows, 1, 0); names(got) != "a" {
		t.Errorf("Expected page size clamp to one, got %s", names(got))
	}
	if got := Paginate(rows, 1, MaxPageSize+1); len(got) != 5 {
		t.Errorf("Expected page size clamp to the cap, got %d rows", len(got))
	}
}

func TestParsePage(t *testing.T) {
	page, size := ParsePage("3", "10")
	if page != 3 || size != 10 {
		t.Errorf("Expected 3/10, got %d/%d", page, size)
	}

	page, size = ParsePage("junk", "")
	if page != 1 || size != DefaultPageSize {
		t.Errorf("Expected defaults, got %d/%d", page, size)
	}

	_, size = ParsePage("1", "5000")
	if size != MaxPageSize {
		t.Errorf("Expected page size clamp, got %d", size)
	}
}
