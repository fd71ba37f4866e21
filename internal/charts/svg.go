package charts

import (
	"html/template"
	"strings"

	"github.com/go-faster/errors"
)

var svgTmpl = template.Must(template.New("charts").Funcs(template.FuncMap{
	"num":   Num,
	"circ":  func() string { return Num(DonutCircumference()) },
	"width": func() string { return Num(AreaWidth) },
}).Parse(`
{{- define "area" -}}
<svg viewBox="0 0 {{width}} 120" width="100%" height="120" class="area-chart" role="img" aria-label="{{.Title}}">
<defs><linearGradient id="{{.ID}}" x1="0" y1="0" x2="0" y2="1"><stop offset="0%" stop-color="#38bdf8" stop-opacity="0.7"/><stop offset="100%" stop-color="#fff" stop-opacity="0.1"/></linearGradient></defs>
{{- if .Geo.StrokePath}}
<path d="{{.Geo.FillPath}}" fill="url(#{{.ID}})"/>
<path d="{{.Geo.StrokePath}}" fill="none" stroke="#38bdf8" stroke-width="3"/>
{{- end}}
</svg>
{{- end -}}
{{- define "donut" -}}
<svg viewBox="0 0 120 120" width="120" height="120" class="donut-chart" role="img" aria-label="{{.Title}}">
<circle cx="{{num .CX}}" cy="{{num .CY}}" r="{{num .R}}" fill="none" stroke="#e0e7ef" stroke-width="{{num .Stroke}}"/>
{{- range .Segments}}
<circle cx="{{num $.CX}}" cy="{{num $.CY}}" r="{{num $.R}}" fill="none" stroke="{{.Color}}" stroke-width="{{num $.Stroke}}" stroke-dasharray="{{.DashArray}}" stroke-dashoffset="{{.DashOffset}}" transform="rotate({{num $.Origin}} {{num $.CX}} {{num $.CY}})"><title>{{.Label}}</title></circle>
{{- end}}
</svg>
{{- end -}}`))

// AreaSVG renders series as an inline SVG area chart. id names the gradient
// and must be unique within the page.
func AreaSVG(id, title string, series []Point) (string, error) {
	var b strings.Builder
	err := svgTmpl.ExecuteTemplate(&b, "area", struct {
		ID, Title string
		Geo       Area
	}{id, title, AreaGeometry(series)})
	if err != nil {
		return "", errors.Wrap(err, "render area chart")
	}
	return b.String(), nil
}

// DonutSVG renders slices as an inline SVG donut over a track circle.
func DonutSVG(title string, slices []Slice) (string, error) {
	var b strings.Builder
	err := svgTmpl.ExecuteTemplate(&b, "donut", struct {
		Title                     string
		CX, CY, R, Stroke, Origin float64
		Segments                  []Segment
	}{title, DonutCenterX, DonutCenterY, DonutRadius, DonutStroke, DonutOrigin, DonutGeometry(slices)})
	if err != nil {
		return "", errors.Wrap(err, "render donut chart")
	}
	return b.String(), nil
}
