package templates

import (
	"html/template"
	"net/url"
	"strconv"
	"time"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/charts"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
)

var funcs = template.FuncMap{
	"fields": func() []string { return domain.EditableFields },
	"label":  func(name string) string { return domain.FieldLabels[name] },
	"field":  func(e domain.Employee, name string) string { return e.Field(name) },
	"ms":     millis,
	"seq":    seq,
	"add":    func(a, b int) int { return a + b },
	// hx-* attributes are not URL-typed for html/template.
	"urlq": url.QueryEscape,
	// Chart markup comes from html/template in the charts package and is
	// already escaped.
	"areaSVG": func(id, title string, series []charts.Point) (template.HTML, error) {
		svg, err := charts.AreaSVG(id, title, series)
		return template.HTML(svg), err
	},
	"donutSVG": func(title string, slices []charts.Slice) (template.HTML, error) {
		svg, err := charts.DonutSVG(title, slices)
		return template.HTML(svg), err
	},
	"percent": func(s charts.Segment) string {
		return strconv.FormatFloat(s.Percent(), 'f', 0, 64) + "%"
	},
	"segments": charts.DonutGeometry,
}

// millis converts a duration for use in data attributes read by the toast
// script.
func millis(d time.Duration) int64 {
	return d.Milliseconds()
}

// seq returns 1..n, used for the pager.
func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
