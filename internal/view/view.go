// Package view derives the filtered, paged table rows from the employee
// collection. Everything here is pure.
package view

import (
	"strings"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
)

// PageSize is the number of rows shown per table page.
const PageSize = 10

// Filter returns, in store order, the records for which some attribute
// contains q case-insensitively. An empty q matches everything; q is used
// as given, so callers trim user input.
func Filter(records []domain.Employee, q string) []domain.Employee {
	q = strings.ToLower(q)
	out := make([]domain.Employee, 0, len(records))
	for _, r := range records {
		if q == "" || matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r domain.Employee, lowered string) bool {
	for _, v := range r.Values() {
		if strings.Contains(strings.ToLower(v), lowered) {
			return true
		}
	}
	return false
}

// PageCount is the number of pages needed for n rows; 0 when n is 0.
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage pins a 1-based page index into [1, pageCount]. With no pages the
// result is 1.
func ClampPage(page, pageCount int) int {
	if pageCount < 1 || page < 1 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	return page
}

// Paginate returns the rows of the 1-based page. Out-of-range pages yield an
// empty slice; callers clamp first.
func Paginate(records []domain.Employee, page, size int) []domain.Employee {
	if size <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(records) {
		return nil
	}
	end := min(start+size, len(records))
	return records[start:end]
}

// Cursor is the user-controlled part of the table view.
type Cursor struct {
	Query string
	Page  int
}

// Page is one rendered table page.
type Page struct {
	Rows []domain.Employee
	// Offset is the 0-based position of Rows[0] in the filtered list; the UI
	// numbers rows Offset+1, Offset+2, ...
	Offset int
	Total  int
	Page   int
	Pages  int
	Query  string
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Page < p.Pages }

// Apply filters and pages records. The page index is clamped, so a shrinking
// result set never leaves the cursor on an empty page while data exists.
func (c Cursor) Apply(records []domain.Employee, size int) Page {
	if size <= 0 {
		size = PageSize
	}
	filtered := Filter(records, c.Query)
	pages := PageCount(len(filtered), size)
	page := ClampPage(c.Page, pages)
	return Page{
		Rows:   Paginate(filtered, page, size),
		Offset: (page - 1) * size,
		Total:  len(filtered),
		Page:   page,
		Pages:  pages,
		Query:  c.Query,
	}
}

// Clamped returns c with its page pinned to what Apply would show.
func (c Cursor) Clamped(records []domain.Employee, size int) Cursor {
	c.Page = c.Apply(records, size).Page
	return c
}
