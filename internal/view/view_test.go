package view_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/view"
)

func employees(n int) []domain.Employee {
	out := make([]domain.Employee, n)
	for i := range out {
		id := strconv.Itoa(i + 1)
		out[i] = domain.Employee{ID: domain.EmployeeID(id), Name: "Name" + id, Surname: "Surname" + id}
	}
	return out
}

func TestFilter(t *testing.T) {
	records := []domain.Employee{
		{ID: "1", Name: "John", Surname: "Doe", Nationality: "DEU"},
		{ID: "2", Name: "Jane", Surname: "Roe", Sex: "F"},
		{ID: "3", Name: "Max", Surname: "Mustermann", IDNumber: "L01X00T47"},
	}

	tests := []struct {
		name string
		q    string
		want []domain.EmployeeID
	}{
		{"empty matches all", "", []domain.EmployeeID{"1", "2", "3"}},
		{"whitespace is literal", " john", nil},
		{"inner whitespace", "n d", nil},
		{"case insensitive", "JOHN", []domain.EmployeeID{"1"}},
		{"substring across fields", "oe", []domain.EmployeeID{"1", "2"}},
		{"non-name attribute", "deu", []domain.EmployeeID{"1"}},
		{"id number", "x00t", []domain.EmployeeID{"3"}},
		{"identifier matches", "2", []domain.EmployeeID{"2"}},
		{"no match", "zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := view.Filter(records, tt.q)
			var ids []domain.EmployeeID
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterMatchesExactlyRecordsWithMatchingField(t *testing.T) {
	records := employees(25)
	for _, q := range []string{"", "1", "name2", "SURNAME1", "5", "x", " 1", "name2 "} {
		got := view.Filter(records, q)
		i := 0
		for _, r := range records {
			hit := false
			for _, v := range r.Values() {
				if containsFold(v, q) {
					hit = true
				}
			}
			if hit {
				require.Less(t, i, len(got), "query %q", q)
				assert.Equal(t, r, got[i], "query %q", q)
				i++
			}
		}
		assert.Len(t, got, i, "query %q", q)
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func TestPaginationReconstructsFilteredList(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 20, 37} {
		records := employees(n)
		for _, size := range []int{1, 3, 10} {
			pages := view.PageCount(len(records), size)
			var joined []domain.Employee
			for p := 1; p <= pages; p++ {
				rows := view.Paginate(records, p, size)
				require.LessOrEqual(t, len(rows), size)
				require.NotEmpty(t, rows)
				joined = append(joined, rows...)
			}
			if n == 0 {
				assert.Empty(t, joined)
				continue
			}
			assert.Equal(t, records, joined, "n=%d size=%d", n, size)
		}
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, view.ClampPage(0, 3))
	assert.Equal(t, 1, view.ClampPage(-4, 3))
	assert.Equal(t, 2, view.ClampPage(2, 3))
	assert.Equal(t, 3, view.ClampPage(9, 3))
	assert.Equal(t, 1, view.ClampPage(5, 0))
}

func TestCursorElevenRecordsAndDeleteClamp(t *testing.T) {
	records := employees(11)

	first := view.Cursor{Page: 1}.Apply(records, view.PageSize)
	require.Len(t, first.Rows, 10)
	assert.Equal(t, domain.EmployeeID("1"), first.Rows[0].ID)
	assert.Equal(t, domain.EmployeeID("10"), first.Rows[9].ID)
	assert.Equal(t, 2, first.Pages)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())

	cur := view.Cursor{Page: 2}
	second := cur.Apply(records, view.PageSize)
	require.Len(t, second.Rows, 1)
	assert.Equal(t, domain.EmployeeID("11"), second.Rows[0].ID)
	assert.Equal(t, 10, second.Offset)

	// record 11 deleted while on page 2
	after := cur.Apply(records[:10], view.PageSize)
	assert.Equal(t, 1, after.Page)
	assert.Equal(t, 1, after.Pages)
	assert.Len(t, after.Rows, 10)
	assert.Equal(t, 1, cur.Clamped(records[:10], view.PageSize).Page)
}

func TestCursorFilterShrinksResult(t *testing.T) {
	records := employees(30)
	got := view.Cursor{Query: "surname3", Page: 3}.Apply(records, view.PageSize)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 2, got.Total) // Surname3, Surname30
	assert.Equal(t, "surname3", got.Query)
}

func TestCursorEmpty(t *testing.T) {
	got := view.Cursor{Page: 4}.Apply(nil, view.PageSize)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 0, got.Pages)
	assert.Empty(t, got.Rows)
	assert.False(t, got.HasNext())
}

func TestCursorDeterministic(t *testing.T) {
	records := employees(23)
	c := view.Cursor{Query: "2", Page: 2}
	assert.Equal(t, c.Apply(records, 5), c.Apply(records, 5))
}
