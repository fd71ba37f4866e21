// Package charts computes the geometry of the dashboard's area and donut
// charts. Functions are pure; the same input always yields the same output.
package charts

import (
	"math"
	"strconv"
	"strings"
)

// Area chart canvas, in SVG user units.
const (
	AreaWidth  = 320.0
	AreaHeight = 120.0
	// AreaBand is the plotting band height; the largest value is drawn at
	// AreaHeight-AreaBand.
	AreaBand = 100.0
)

// Donut chart canvas.
const (
	DonutCenterX = 60.0
	DonutCenterY = 60.0
	DonutRadius  = 48.0
	DonutStroke  = 18.0
	// DonutOrigin is the start angle in degrees; -90 is 12 o'clock.
	DonutOrigin = -90.0
)

// Point is one sample of the area series.
type Point struct {
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
}

// Slice is one category of the donut.
type Slice struct {
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
	Color string  `yaml:"color"`
}

// XY is a point on the canvas.
type XY struct {
	X, Y float64
}

// Area is the computed area chart.
type Area struct {
	Points []XY
	// StrokePath is the open line through the points.
	StrokePath string
	// FillPath runs baseline, points, baseline and closes.
	FillPath string
}

// AreaGeometry scales series into the area canvas. x is spread evenly from 0
// to AreaWidth; a single point becomes a flat line across the canvas. y maps
// 0 to the baseline and the maximum to the top of the band; when the
// maximum is not positive every point sits on the baseline.
func AreaGeometry(series []Point) Area {
	n := len(series)
	if n == 0 {
		return Area{}
	}

	maxV := series[0].Value
	for _, p := range series[1:] {
		maxV = max(maxV, p.Value)
	}
	scaleY := func(v float64) float64 {
		if maxV <= 0 {
			return AreaHeight
		}
		return AreaHeight - v/maxV*AreaBand
	}

	var pts []XY
	if n == 1 {
		y := scaleY(series[0].Value)
		pts = []XY{{0, y}, {AreaWidth, y}}
	} else {
		pts = make([]XY, n)
		for i, p := range series {
			pts[i] = XY{X: float64(i) / float64(n-1) * AreaWidth, Y: scaleY(p.Value)}
		}
	}

	var stroke strings.Builder
	for i, p := range pts {
		if i == 0 {
			stroke.WriteString("M")
		} else {
			stroke.WriteString(" L")
		}
		writeXY(&stroke, p)
	}

	var fill strings.Builder
	fill.WriteString("M")
	writeXY(&fill, XY{pts[0].X, AreaHeight})
	for _, p := range pts {
		fill.WriteString(" L")
		writeXY(&fill, p)
	}
	fill.WriteString(" L")
	writeXY(&fill, XY{pts[len(pts)-1].X, AreaHeight})
	fill.WriteString(" Z")

	return Area{Points: pts, StrokePath: stroke.String(), FillPath: fill.String()}
}

// Segment is one stroked arc of the donut.
type Segment struct {
	Label string
	Color string
	Value float64
	// Length is the arc length along the circumference.
	Length float64
	// Offset is the arc length already used by earlier segments.
	Offset     float64
	StartAngle float64
	SweepAngle float64
}

// DashArray is the stroke-dasharray drawing only this segment.
func (s Segment) DashArray() string {
	return Num(s.Length) + " " + Num(DonutCircumference()-s.Length)
}

// DashOffset is the stroke-dashoffset placing the segment after its
// predecessors.
func (s Segment) DashOffset() string {
	return Num(-s.Offset)
}

// Percent is the segment's share of the total, 0..100.
func (s Segment) Percent() float64 {
	return s.Length / DonutCircumference() * 100
}

// DonutCircumference is 2πr of the donut ring.
func DonutCircumference() float64 {
	return 2 * math.Pi * DonutRadius
}

// DonutGeometry allocates each slice an arc proportional to its share of the
// total, laid end to end from DonutOrigin. Negative values count as zero. A
// zero total yields no segments.
func DonutGeometry(slices []Slice) []Segment {
	var total float64
	for _, s := range slices {
		total += max(s.Value, 0)
	}
	if total <= 0 {
		return nil
	}

	circ := DonutCircumference()
	segs := make([]Segment, 0, len(slices))
	var offset float64
	for _, s := range slices {
		v := max(s.Value, 0)
		length := v / total * circ
		segs = append(segs, Segment{
			Label:      s.Label,
			Color:      s.Color,
			Value:      s.Value,
			Length:     length,
			Offset:     offset,
			StartAngle: DonutOrigin + offset/circ*360,
			SweepAngle: v / total * 360,
		})
		offset += length
	}
	return segs
}

// Num formats a coordinate with at most two decimals and no trailing zeros.
func Num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeXY(b *strings.Builder, p XY) {
	b.WriteString(Num(p.X))
	b.WriteString(",")
	b.WriteString(Num(p.Y))
}
