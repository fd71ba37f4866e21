package pdf

import (
	"io"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-pdf/fpdf"
)

// epoch is stamped as creation and modification date so that identical
// documents render to identical bytes.
var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	margin = 10.0

	titleBarH  = 5.5
	sectionGap = 2.5
	minRowH    = 7.5

	labelH  = 2.8
	subH    = 2.5
	optionH = 3.6
	valueH  = 4.2
	boxSize = 2.6
)

var (
	shade = [3]int{238, 238, 238}
	ink   = [3]int{34, 34, 34}
)

// Render draws doc as an A4 PDF into w.
func Render(doc Document, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetCreationDate(epoch)
	pdf.SetModificationDate(epoch)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("gestionEmpl", true)

	pageW, pageH := pdf.GetPageSize()
	r := &renderer{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		left:  margin,
		width: pageW - 2*margin,
		pageH: pageH,
	}
	for _, p := range doc.Pages {
		pdf.AddPage()
		r.page(p)
	}
	if err := pdf.Error(); err != nil {
		return errors.Wrap(err, "layout pdf")
	}
	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "write pdf")
	}
	return nil
}

type renderer struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	left  float64
	width float64
	pageH float64
	y     float64
}

func (r *renderer) page(p Page) {
	r.y = margin
	for _, b := range p.Blocks {
		switch b := b.(type) {
		case Header:
			r.header(b)
		case NameBar:
			r.nameBar(b)
		case Section:
			r.section(b)
		case Declaration:
			r.declaration(b)
		case Signatures:
			r.signatures(b)
		}
	}
	r.footer(p)
}

func (r *renderer) header(h Header) {
	p := r.pdf
	p.SetTextColor(0, 0, 0)
	p.SetFont("Helvetica", "B", 15)
	p.SetXY(r.left, r.y)
	p.CellFormat(r.width/2, 6, r.tr(h.Title), "", 0, "L", false, 0, "")
	p.SetFont("Helvetica", "B", 17)
	p.SetXY(r.left+r.width/2, r.y)
	p.CellFormat(r.width/2, 7, r.tr(h.Brand), "", 0, "R", false, 0, "")

	p.SetFont("Helvetica", "", 6)
	p.SetXY(r.left, r.y+6.5)
	p.CellFormat(r.width/2, 3, r.tr(h.Subtitle), "", 0, "L", false, 0, "")
	p.SetFont("Helvetica", "", 7)
	p.SetXY(r.left, r.y+10.5)
	p.CellFormat(r.width/2, 3, r.tr(h.Company), "", 0, "L", false, 0, "")
	r.y += 15
}

func (r *renderer) nameBar(n NameBar) {
	p := r.pdf
	nameW := r.width*0.56 - 3
	numX := r.left + r.width*0.56
	numW := r.width - r.width*0.56

	p.SetFont("Helvetica", "", 9)
	p.SetXY(r.left, r.y)
	p.CellFormat(nameW, 4, r.tr(n.Label), "", 0, "L", false, 0, "")
	p.SetXY(numX, r.y)
	p.CellFormat(numW, 4, r.tr(n.NumberLabel), "", 0, "R", false, 0, "")

	r.fill(shade)
	p.Rect(r.left, r.y+4.5, nameW, 7, "F")
	p.Rect(numX, r.y+4.5, numW, 7, "F")

	p.SetFont("Helvetica", "", 10)
	p.SetXY(r.left+2, r.y+4.5)
	p.CellFormat(nameW-4, 7, r.fit(n.Value, nameW-4), "", 0, "LM", false, 0, "")
	p.SetXY(numX+2, r.y+4.5)
	p.CellFormat(numW-4, 7, r.fit(n.Number, numW-4), "", 0, "LM", false, 0, "")
	r.y += 14
}

func (r *renderer) section(s Section) {
	p := r.pdf
	top := r.y

	r.fill(shade)
	p.Rect(r.left, top, r.width, titleBarH, "F")
	p.SetFont("Helvetica", "B", 8)
	title := r.tr(s.Title)
	titleW := p.GetStringWidth(title) + 2
	p.SetXY(r.left+1, top)
	p.CellFormat(titleW, titleBarH, title, "", 0, "LM", false, 0, "")
	if s.Note != "" {
		p.SetFont("Helvetica", "", 6)
		p.SetXY(r.left+1+titleW, top)
		p.CellFormat(r.width-titleW-2, titleBarH, r.tr(s.Note), "", 0, "LM", false, 0, "")
	}
	r.y += titleBarH

	for _, row := range s.Rows {
		r.row(row)
	}

	r.draw(ink)
	p.SetLineWidth(0.45)
	p.Rect(r.left, top, r.width, r.y-top, "D")
	p.SetLineWidth(0.2)
	p.Line(r.left, top+titleBarH, r.left+r.width, top+titleBarH)
	r.y += sectionGap
}

func (r *renderer) row(row Row) {
	var total float64
	for _, c := range row.Cells {
		total += weight(c)
	}
	widths := make([]float64, len(row.Cells))
	used := 0.0
	for i, c := range row.Cells {
		if i == len(row.Cells)-1 {
			widths[i] = r.width - used
			break
		}
		widths[i] = r.width * weight(c) / total
		used += widths[i]
	}

	h := row.Height
	if h == 0 {
		h = minRowH
	}
	for _, c := range row.Cells {
		h = max(h, cellHeight(c))
	}

	x := r.left
	for i, c := range row.Cells {
		r.cell(c, x, r.y, widths[i], h)
		x += widths[i]
	}
	r.y += h
}

func weight(c Cell) float64 {
	if c.Weight <= 0 {
		return 1
	}
	return c.Weight
}

func cellHeight(c Cell) float64 {
	if c.Inline {
		return 0
	}
	h := 2.2
	if c.Label != "" {
		h += labelH
	}
	if c.Sub != "" {
		h += subH
	}
	switch {
	case c.Stacked:
		h += float64(len(c.Options)) * optionH
	case len(c.Options) > 0:
		h += optionH
	}
	if c.Value != "" {
		h += valueH
	}
	return h
}

func (r *renderer) cell(c Cell, x, y, w, h float64) {
	p := r.pdf
	if c.Shaded {
		r.fill(shade)
		p.Rect(x, y, w, h, "F")
	}
	r.draw(ink)
	p.SetLineWidth(0.2)
	p.Rect(x, y, w, h, "D")

	if c.Inline {
		p.SetFont("Helvetica", "", 7)
		p.SetXY(x+1, y)
		p.CellFormat(w-2, h, r.fit(c.Label, w-2), "", 0, "LM", false, 0, "")
		return
	}

	cy := y + 1.2
	if c.Label != "" {
		p.SetFont("Helvetica", "", 6.5)
		p.SetXY(x+1, cy)
		p.CellFormat(w-2, labelH, r.fit(c.Label, w-2), "", 0, "L", false, 0, "")
		cy += labelH
	}
	if c.Sub != "" {
		p.SetFont("Helvetica", "", 5.5)
		p.SetXY(x+1, cy)
		p.CellFormat(w-2, subH, r.fit(c.Sub, w-2), "", 0, "L", false, 0, "")
		cy += subH
	}

	p.SetFont("Helvetica", "", 6.5)
	ox := x + 1.5
	for _, o := range c.Options {
		r.checkbox(ox, cy+(optionH-boxSize)/2, o.Checked)
		label := r.tr(o.Label)
		lw := p.GetStringWidth(label) + 1
		p.SetXY(ox+boxSize+0.8, cy)
		p.CellFormat(lw, optionH, label, "", 0, "LM", false, 0, "")
		if c.Stacked {
			cy += optionH
			continue
		}
		ox += boxSize + 0.8 + lw + 2.5
	}
	if len(c.Options) > 0 && !c.Stacked {
		cy += optionH
	}

	if c.Value != "" {
		p.SetFont("Helvetica", "", 9)
		p.SetXY(x+1, cy)
		p.CellFormat(w-2, valueH, r.fit(c.Value, w-2), "", 0, "L", false, 0, "")
	}
}

func (r *renderer) checkbox(x, y float64, checked bool) {
	p := r.pdf
	r.draw([3]int{0, 0, 0})
	p.SetLineWidth(0.2)
	p.Rect(x, y, boxSize, boxSize, "D")
	if checked {
		p.Line(x+0.5, y+0.5, x+boxSize-0.5, y+boxSize-0.5)
		p.Line(x+0.5, y+boxSize-0.5, x+boxSize-0.5, y+0.5)
	}
}

func (r *renderer) declaration(d Declaration) {
	p := r.pdf
	r.y += 1.5
	p.SetFont("Helvetica", "B", 8)
	p.SetXY(r.left+1, r.y)
	p.CellFormat(r.width-2, 4, r.tr(d.Title), "", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 7)
	p.SetXY(r.left+1, r.y+4.5)
	p.MultiCell(r.width-2, 3.2, r.tr(d.Text), "", "L", false)
	r.y = p.GetY() + 1
}

func (r *renderer) signatures(s Signatures) {
	if len(s.Labels) == 0 {
		return
	}
	p := r.pdf
	r.y += 8
	colW := r.width / float64(len(s.Labels))
	r.draw(ink)
	p.SetLineWidth(0.2)
	p.SetFont("Helvetica", "", 7.5)
	for i, l := range s.Labels {
		x := r.left + float64(i)*colW
		p.Line(x+colW*0.1, r.y, x+colW*0.9, r.y)
		p.SetXY(x, r.y+0.8)
		p.CellFormat(colW, 3.5, r.tr(l), "", 0, "C", false, 0, "")
	}
	r.y += 6
}

func (r *renderer) footer(pg Page) {
	p := r.pdf
	y := r.pageH - margin - 5
	p.SetTextColor(0, 0, 0)
	p.SetFont("Helvetica", "", 8)
	p.SetXY(r.left+1, y)
	p.CellFormat(r.width/2, 5, r.tr(pg.AsOf), "", 0, "L", false, 0, "")
	p.SetFont("Helvetica", "B", 10)
	p.SetXY(r.left+r.width/2, y)
	p.CellFormat(r.width/2-2, 5, pg.Number, "", 0, "R", false, 0, "")
}

// fit translates s and shortens it until it fits into w at the current font.
func (r *renderer) fit(s string, w float64) string {
	t := r.tr(s)
	if r.pdf.GetStringWidth(t) <= w {
		return t
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		t = r.tr(string(runes) + "...")
		if r.pdf.GetStringWidth(t) <= w {
			return t
		}
	}
	return ""
}

func (r *renderer) fill(c [3]int) { r.pdf.SetFillColor(c[0], c[1], c[2]) }

func (r *renderer) draw(c [3]int) { r.pdf.SetDrawColor(c[0], c[1], c[2]) }
